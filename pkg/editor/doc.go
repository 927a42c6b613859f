// Package editor holds the pure operations over an ordered field list:
// append, remove, move and single-attribute update.
package editor
