// Package model defines the field model shared by the editor, the page
// renderer and the builder session. A Field is one form control; its JSON
// keys are exactly the ones the generated page script reads, so the same
// value travels from field files and the builder API into the page without
// a mapping step. The Factory creates a field per type with localized
// defaults and a name derived from the first six characters of its id.
// Unknown types degrade to plain text fields.
package model
