package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/notebook/internal/notes"
	"github.com/idilsaglam/notebook/internal/ui"
)

// noteItem adapts a display entry to list.Item.
type noteItem struct {
	notes.Entry
}

func (i noteItem) FilterValue() string { return i.Text }

// itemDelegate renders one note per line.
type itemDelegate struct {
	ctrl *notes.Controller
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(noteItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Text
	if it.NoText {
		text = t.Muted.Render("(no text)")
	}
	if it.Checked {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	if idx, editing := d.ctrl.EditingIndex(); editing && idx == it.Index {
		text = t.Accent.Render("✎ " + d.ctrl.EditingText())
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
