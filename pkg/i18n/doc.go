// Package i18n provides the message catalogue for field defaults, generated
// pages, the builder screen and the terminal builder. Dutch is the default
// language; English ships alongside it and extra active.<lang>.toml files can
// be loaded from disk.
package i18n
