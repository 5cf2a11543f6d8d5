package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/notebook/internal/model"
)

var errNullEntry = errors.New("null entry in note list")

// storedNote is the current on-disk shape. Text is a string, a
// json.RawMessage for a non-string value read from storage, or nil when the
// entry had none (dropped from the output, matching how it was read).
type storedNote struct {
	Text    any  `json:"text,omitempty"`
	Checked bool `json:"checked"`
}

// Adapter reads and writes the note list under one key.
type Adapter struct {
	storage Storage
	key     string
	logger  *log.Logger
}

// NewAdapter binds storage and key. An empty key means DefaultKey; a nil
// logger discards output.
func NewAdapter(s Storage, key string, logger *log.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{storage: s, key: key, logger: logger}
}

// Key reports the slot this adapter owns.
func (a *Adapter) Key() string { return a.key }

// Load returns the stored list. It never fails: a missing, unreadable or
// malformed value yields an empty list.
func (a *Adapter) Load() []model.Note {
	raw, ok, err := a.storage.GetItem(a.key)
	if err != nil {
		a.logger.Warn("storage read failed, starting empty", "key", a.key, "err", err)
		return []model.Note{}
	}
	if !ok || raw == "" {
		a.logger.Debug("no stored notes", "key", a.key)
		return []model.Note{}
	}
	notes, err := Decode(raw)
	if err != nil {
		a.logger.Warn("stored notes unreadable, starting empty", "key", a.key, "err", err)
		return []model.Note{}
	}
	a.logger.Debug("loaded notes", "key", a.key, "count", len(notes))
	return notes
}

// Save overwrites the slot with the full list in the current shape.
func (a *Adapter) Save(notes []model.Note) error {
	raw, err := Encode(notes)
	if err != nil {
		return err
	}
	if err := a.storage.SetItem(a.key, raw); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	return nil
}

// Encode serializes notes as a compact array of {text, checked} objects.
func Encode(notes []model.Note) (string, error) {
	out := make([]storedNote, 0, len(notes))
	for _, n := range notes {
		sn := storedNote{Checked: n.Checked}
		switch {
		case n.NoText:
		case len(n.RawText) > 0:
			sn.Text = n.RawText
		default:
			sn.Text = n.Text
		}
		out = append(out, sn)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Decode parses either stored shape: an array of plain strings (legacy) or
// an array of {text, checked} objects. Entries of mixed shape are accepted.
func Decode(raw string) ([]model.Note, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	notes := make([]model.Note, 0, len(elems))
	for i, elem := range elems {
		n, err := decodeEntry(elem)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func decodeEntry(elem json.RawMessage) (model.Note, error) {
	elem = bytes.TrimSpace(elem)
	if len(elem) == 0 {
		return model.Note{}, errNullEntry
	}

	switch elem[0] {
	case 'n':
		return model.Note{}, errNullEntry
	case '"':
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			return model.Note{}, err
		}
		return model.Note{Text: s}, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			return model.Note{}, err
		}
		n := model.Note{Checked: truthy(fields["checked"])}
		n.Text, n.RawText, n.NoText = textOf(fields["text"])
		return n, nil
	}
	// numbers, booleans and arrays carry no fields
	return model.Note{NoText: true}, nil
}

// textOf returns a string field as is. Any other present value comes back
// as its compact JSON text plus the raw value, so a save can write it back
// unchanged. Missing and null report absent.
func textOf(raw json.RawMessage) (string, json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, true
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil, false
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), nil, false
	}
	return buf.String(), json.RawMessage(buf.Bytes()), false
}

// truthy coerces a JSON value to bool: false, 0, "", null and missing are
// false, everything else is true.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return true
	case 'f', 'n':
		return false
	case '"':
		return string(raw) != `""`
	case '{', '[':
		return true
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f != 0
}
