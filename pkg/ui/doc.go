// Package ui renders the builder surface: the editing screen served at the
// root of the HTTP server, the post-purchase thanks page, and the static
// assets both pages load.
package ui
