package model

import "encoding/json"

// Note is the domain model for a notebook entry.
// ID is assigned in memory and never written to storage.
type Note struct {
	ID      string `json:"-"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`

	// NoText marks a stored entry that carried no usable text field.
	// It survives a save so the entry is written back without one.
	NoText bool `json:"-"`

	// RawText holds a non-string text value exactly as it was stored.
	// Text carries its JSON form for display. Saves write RawText back
	// until an edit replaces it.
	RawText json.RawMessage `json:"-"`
}
