package notes

import (
	"cmp"
	"slices"

	"github.com/idilsaglam/notebook/internal/model"
)

// Entry is a note in display position, tagged with its underlying index.
type Entry struct {
	model.Note
	Index int
}

// Display returns the list as presented: unchecked notes first, then
// checked, each group in underlying order.
func (c *Controller) Display() []Entry {
	entries := make([]Entry, len(c.notes))
	for i, n := range c.notes {
		entries[i] = Entry{Note: n, Index: i}
	}
	SortEntries(entries)
	return entries
}

// SortEntries orders entries by completion flag (false first), then by
// underlying index.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Checked != b.Checked {
			if a.Checked {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Index, b.Index)
	})
}
