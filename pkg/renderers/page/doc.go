// Package page renders a field list into a self-contained HTML form page.
// The template receives typed slots only: the field list, submit URL and
// page strings arrive as script-safe JSON literals; the title and language
// go through template autoescaping.
package page
