// Package builderapi serves a builder.Session as JSON over HTTP for the
// browser builder screen. Mutations answer with the new session state.
package builderapi
