// Package notes owns the note list and the editing session.
//
// Views call the mutating operations with underlying indices (as tagged on
// Display entries) and re-render from the accessors afterwards. Every
// mutation writes the whole list through the Persister before returning.
// A Controller is not safe for concurrent use; it expects one event loop.
package notes

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/notebook/internal/model"
)

// Persister is the durable side of the list.
type Persister interface {
	Load() []model.Note
	Save(notes []model.Note) error
}

// Controller is the note list state machine.
type Controller struct {
	store  Persister
	logger *log.Logger
	newID  func() string

	notes []model.Note

	// editing session, addressed by note ID
	editingID   string
	editingText string

	diverged bool
}

// New loads the list once and returns a controller over it.
// A nil logger discards output.
func New(p Persister, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		store:  p,
		logger: logger,
		newID:  uuid.NewString,
	}
	c.notes = p.Load()
	for i := range c.notes {
		c.notes[i].ID = c.newID()
	}
	return c
}

// CleanText trims s and reports whether anything is left. Views run add
// input through it; the controller itself does not validate.
func CleanText(s string) (string, bool) {
	s = strings.TrimSpace(validText(s))
	return s, s != ""
}

// validText replaces invalid UTF-8 with U+FFFD. Stored text is always valid
// UTF-8, so memory then holds exactly what a reload returns.
func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// AddNote appends an unchecked note and persists.
func (c *Controller) AddNote(text string) error {
	c.notes = append(c.notes, model.Note{ID: c.newID(), Text: validText(text)})
	c.logger.Debug("note added", "index", len(c.notes)-1)
	return c.persist()
}

// ToggleCheck flips the completion flag of the note at index and persists.
// Checking the note under edit ends the editing session.
func (c *Controller) ToggleCheck(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	n := &c.notes[index]
	n.Checked = !n.Checked
	if n.Checked && n.ID == c.editingID {
		c.endEdit()
	}
	c.logger.Debug("note toggled", "index", index, "checked", n.Checked)
	return c.persist()
}

// DeleteNote removes the note at index, shifting later notes down, and
// persists. Deleting the note under edit ends the editing session.
func (c *Controller) DeleteNote(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	if c.notes[index].ID == c.editingID {
		c.endEdit()
	}
	c.notes = slices.Delete(c.notes, index, index+1)
	c.logger.Debug("note deleted", "index", index)
	return c.persist()
}

// BeginEdit opens an editing session on the note at index, seeding the
// buffer with its text. Completed notes are not editable.
func (c *Controller) BeginEdit(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	n := c.notes[index]
	if n.Checked {
		return ErrNoteChecked
	}
	c.editingID = n.ID
	c.editingText = n.Text
	return nil
}

// UpdateEditingText replaces the edit buffer.
func (c *Controller) UpdateEditingText(text string) {
	c.editingText = validText(text)
}

// CommitEdit writes the edit buffer into the note at index, persists and
// closes the session. index must address the note the session was opened
// on; the buffer is kept.
func (c *Controller) CommitEdit(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	if c.editingID == "" {
		return ErrNotEditing
	}
	if c.notes[index].ID != c.editingID {
		return ErrStaleEdit
	}
	n := &c.notes[index]
	n.Text = c.editingText
	n.NoText = false
	n.RawText = nil
	c.endEdit()
	c.logger.Debug("note edited", "index", index)
	return c.persist()
}

// Notes returns a copy of the list in underlying order.
func (c *Controller) Notes() []model.Note { return slices.Clone(c.notes) }

// Len is the number of notes.
func (c *Controller) Len() int { return len(c.notes) }

// IndexOf resolves a note ID to its current position.
func (c *Controller) IndexOf(id string) (int, bool) {
	i := slices.IndexFunc(c.notes, func(n model.Note) bool { return n.ID == id })
	return i, i >= 0
}

// PendingCount is the number of unchecked notes.
func (c *Controller) PendingCount() int {
	pending := 0
	for _, n := range c.notes {
		if !n.Checked {
			pending++
		}
	}
	return pending
}

// EditingIndex reports the position of the note under edit, if any.
func (c *Controller) EditingIndex() (int, bool) {
	if c.editingID == "" {
		return -1, false
	}
	return c.IndexOf(c.editingID)
}

// EditingText is the current edit buffer.
func (c *Controller) EditingText() string { return c.editingText }

// Diverged reports whether the last write failed, leaving storage behind
// the in-memory list.
func (c *Controller) Diverged() bool { return c.diverged }

func (c *Controller) check(index int) error {
	if index < 0 || index >= len(c.notes) {
		return &IndexError{Index: index, Len: len(c.notes)}
	}
	return nil
}

func (c *Controller) endEdit() {
	c.editingID = ""
}

func (c *Controller) persist() error {
	if err := c.store.Save(c.notes); err != nil {
		c.diverged = true
		c.logger.Warn("notes not persisted, storage is behind memory", "count", len(c.notes), "err", err)
		return &PersistError{Err: err}
	}
	c.diverged = false
	return nil
}
