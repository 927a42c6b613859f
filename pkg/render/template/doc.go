// Package template defines the renderer-agnostic template engine interface.
package template
