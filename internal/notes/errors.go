package notes

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched by every *IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotEditing is returned by CommitEdit when no edit is in progress.
	ErrNotEditing = errors.New("no edit in progress")
	// ErrStaleEdit is returned by CommitEdit when index does not address
	// the note being edited.
	ErrStaleEdit = errors.New("index does not match the note being edited")
	// ErrNoteChecked is returned by BeginEdit for a completed note.
	ErrNoteChecked = errors.New("completed notes cannot be edited")
)

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: have %d, got %d", e.Len, e.Index)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// PersistError means the in-memory list changed but the write failed, so
// durable state lags behind. The operation itself took effect.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return "persist notes: " + e.Err.Error() }

func (e *PersistError) Unwrap() error { return e.Err }
