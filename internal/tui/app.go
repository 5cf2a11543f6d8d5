// Package tui is the interactive view over a notes.Controller.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notebook/internal/notes"
	"github.com/idilsaglam/notebook/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// addCharLimit caps new notes typed here. Edits are unlimited so notes
	// that are already longer are not cut.
	addCharLimit = 200
)

type keyMap struct {
	Toggle key.Binding
	Delete key.Binding
	Add    key.Binding
	Edit   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App renders the display projection and forwards intents to the
// controller. It holds no note state of its own.
type App struct {
	ctrl  *notes.Controller
	list  list.Model
	input textinput.Model
	keys  keyMap

	adding    bool
	status    string
	statusBad bool

	width, height int
}

// New builds the view over ctrl.
func New(ctrl *notes.Controller) App {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{ctrl: ctrl}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("note", "notes")
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	help := func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalShortHelpKeys = help
	l.AdditionalFullHelpKeys = help

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = addCharLimit

	a := App{
		ctrl:   ctrl,
		list:   l,
		input:  ti,
		keys:   keys,
		width:  defaultWidth,
		height: defaultHeight,
	}
	a.resize()
	a.refresh("", 0)
	return a
}

// Run starts the program and blocks until the user quits. Every change is
// persisted by the controller as it happens.
func Run(ctrl *notes.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
		a.resize()
		return a, nil
	}
	if a.adding {
		return a.updateAdd(msg)
	}
	if idx, editing := a.ctrl.EditingIndex(); editing {
		return a.updateEdit(msg, idx)
	}
	return a.updateList(msg)
}

func (a App) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text, ok := notes.CleanText(a.input.Value())
			if !ok {
				a.setStatus("Note cannot be empty", true)
				return a, nil
			}
			err := a.ctrl.AddNote(text)
			a.adding = false
			a.closeInput()
			added := a.ctrl.Notes()
			a.refresh(added[len(added)-1].ID, a.list.Index())
			a.report(err, "added")
			return a, nil
		case "esc":
			a.adding = false
			a.closeInput()
			a.setStatus("", false)
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateEdit forwards keystrokes into the edit buffer. Enter commits, and
// so does leaving the field with esc or tab.
func (a App) updateEdit(msg tea.Msg, idx int) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc", "tab":
			id := a.ctrl.Notes()[idx].ID
			err := a.ctrl.CommitEdit(idx)
			a.closeInput()
			a.refresh(id, a.list.Index())
			a.report(err, "edited")
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.ctrl.UpdateEditingText(a.input.Value())
	return a, cmd
}

func (a App) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(km, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(km, a.keys.Toggle):
		if idx, id, ok := a.selected(); ok {
			err := a.ctrl.ToggleCheck(idx)
			a.refresh(id, a.list.Index())
			a.report(err, "toggled")
		}
		return a, nil

	case key.Matches(km, a.keys.Delete):
		if idx, _, ok := a.selected(); ok {
			pos := a.list.Index()
			err := a.ctrl.DeleteNote(idx)
			a.refresh("", pos)
			a.report(err, "deleted")
		}
		return a, nil

	case key.Matches(km, a.keys.Add):
		a.adding = true
		a.setStatus("", false)
		a.input.CharLimit = addCharLimit
		a.input.SetValue("")
		a.input.Placeholder = "New note..."
		cmd := a.input.Focus()
		return a, cmd

	case key.Matches(km, a.keys.Edit):
		idx, _, ok := a.selected()
		if !ok {
			return a, nil
		}
		if err := a.ctrl.BeginEdit(idx); err != nil {
			a.report(err, "")
			return a, nil
		}
		a.setStatus("", false)
		a.input.CharLimit = 0
		a.input.SetValue(a.ctrl.EditingText())
		a.input.CursorEnd()
		a.input.Placeholder = "Edit note..."
		cmd := a.input.Focus()
		return a, cmd
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// selected resolves the highlighted row to its current underlying index.
func (a App) selected() (int, string, bool) {
	it, ok := a.list.SelectedItem().(noteItem)
	if !ok {
		return -1, "", false
	}
	idx, ok := a.ctrl.IndexOf(it.ID)
	return idx, it.ID, ok
}

// refresh reloads rows from the controller, keeping the cursor on selectID
// when it is still listed and near fallback otherwise.
func (a *App) refresh(selectID string, fallback int) {
	entries := a.ctrl.Display()
	items := make([]list.Item, len(entries))
	sel := -1
	for i, e := range entries {
		items[i] = noteItem{e}
		if selectID != "" && e.ID == selectID {
			sel = i
		}
	}
	a.list.SetItems(items)
	if sel < 0 {
		sel = min(fallback, len(items)-1)
	}
	if sel >= 0 {
		a.list.Select(sel)
	}
	a.list.Title = a.header()
}

func (a App) header() string {
	t := ui.Current()
	total := a.ctrl.Len()
	pending := a.ctrl.PendingCount()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Notes",
		t.Success.Render(t.SymDone), total-pending,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), total,
	)
}

func (a *App) closeInput() {
	a.input.SetValue("")
	a.input.Blur()
}

func (a *App) setStatus(msg string, bad bool) {
	a.status, a.statusBad = msg, bad
}

func (a *App) report(err error, done string) {
	var perr *notes.PersistError
	switch {
	case err == nil:
		a.setStatus(done, false)
	case errors.As(err, &perr):
		a.setStatus("not saved: "+perr.Err.Error(), true)
	case errors.Is(err, notes.ErrNoteChecked):
		a.setStatus("Completed notes cannot be edited", true)
	default:
		a.setStatus(err.Error(), true)
	}
}

func (a *App) resize() {
	// room for the border, progress bar, input box and status lines
	a.list.SetSize(a.width-4, max(a.height-10, 3))
}

func (a App) View() string {
	t := ui.Current()
	total := a.ctrl.Len()
	done := total - a.ctrl.PendingCount()

	var b strings.Builder
	b.WriteString(t.Muted.Render(ui.ProgressBar(done, total, 28)))
	b.WriteString("\n")
	b.WriteString(a.list.View())

	_, editing := a.ctrl.EditingIndex()
	if a.adding || editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add note"
		if editing {
			title = "Edit note"
		}
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + a.input.View()))
	}
	if a.status != "" {
		style := t.Muted
		if a.statusBad {
			style = t.Error
		}
		b.WriteString("\n")
		b.WriteString(style.Render(a.status))
	}
	if a.ctrl.Diverged() {
		b.WriteString("\n")
		b.WriteString(t.Pending.Render("! changes are not saved to storage"))
	}
	return ui.Panel([]string{b.String()})
}
