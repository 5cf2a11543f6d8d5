package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/notebook/internal/notes"
	"github.com/idilsaglam/notebook/internal/tui"
	"github.com/idilsaglam/notebook/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done

	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr

	// Interactive runs the TUI; defaults to tui.Run.
	Interactive func(*notes.Controller) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = tui.Run
	}
}

// Run dispatches subcommands against ctrl and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, ctrl *notes.Controller, opt Options) int {
	opt.defaults()
	r := runner{ctrl: ctrl, opt: opt, out: opt.Stdout, errw: opt.Stderr}

	if len(args) == 0 {
		PrintHelp(r.errw)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return 0

	case "ls":
		return r.list()

	case "pending":
		fmt.Fprintln(r.out, ctrl.PendingCount())
		return 0

	case "tui":
		if err := opt.Interactive(ctrl); err != nil {
			ui.Fail(r.errw, "tui: "+err.Error())
			return 1
		}
		return 0

	case "add":
		if len(a) == 0 {
			ui.Fail(r.errw, "usage: notes add <text...>")
			return 2
		}
		return r.add(strings.Join(a, " "))

	case "done":
		n, code := r.indexArg(cmd, a, 1)
		if code != 0 {
			return code
		}
		return r.toggle(n)

	case "rm":
		n, code := r.indexArg(cmd, a, 1)
		if code != 0 {
			return code
		}
		return r.remove(n)

	case "edit":
		if len(a) < 2 {
			ui.Fail(r.errw, "usage: notes edit <index> <text...>")
			return 2
		}
		n, code := r.indexArg(cmd, a[:1], 1)
		if code != 0 {
			return code
		}
		return r.edit(n, strings.Join(a[1:], " "))
	}

	ui.Fail(r.errw, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.errw)
	PrintHelp(r.errw)
	return 2
}

// Fullscreen reports whether args start the interactive view, which takes
// over the terminal.
func Fullscreen(args []string) bool {
	return len(args) > 0 && args[0] == "tui"
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `notes - a tiny notebook

Usage:
  notes [flags] <subcommand> [args]

Subcommands:
  add <text...>          Add a note (text can be multiple words)
  ls                     List notes, pending first
  done <index>           Toggle done for the note at 1-based index
  rm <index>             Remove the note at 1-based index
  edit <index> <text...> Replace the text of a pending note
  pending                Print the number of pending notes
  tui                    Open the interactive notebook

Examples:
  notes add "Buy milk"
  notes ls
  notes done 2
  notes edit 1 "Buy oat milk"
  notes rm 3
`)
}

type runner struct {
	ctrl *notes.Controller
	opt  Options
	out  io.Writer
	errw io.Writer
}

// -------------- subcommand impls ----------------

func (r runner) indexArg(cmd string, a []string, want int) (int, int) {
	if len(a) != want {
		ui.Fail(r.errw, fmt.Sprintf("usage: notes %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(r.errw, cmd+": not a number: "+a[0])
		return 0, 2
	}
	return n, 0
}

func (r runner) list() int {
	t := ui.Current()
	total := r.ctrl.Len()
	p := r.ctrl.PendingCount()
	d := total - p

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Notes"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, total, 28)))
	lines = append(lines, "")

	entries := r.ctrl.Display()
	if r.opt.Group {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `notes add \"Buy milk\"`"))
	fmt.Fprintln(r.out, ui.Panel(lines))
	return 0
}

func (r runner) add(text string) int {
	text, ok := notes.CleanText(text)
	if !ok {
		ui.Fail(r.errw, "add: empty note")
		return 2
	}
	return r.finish(r.ctrl.AddNote(text), "added")
}

func (r runner) toggle(userIndex int) int {
	return r.finish(r.ctrl.ToggleCheck(userIndex-1), "toggled")
}

func (r runner) remove(userIndex int) int {
	return r.finish(r.ctrl.DeleteNote(userIndex-1), "removed")
}

func (r runner) edit(userIndex int, text string) int {
	idx := userIndex - 1
	if err := r.ctrl.BeginEdit(idx); err != nil {
		return r.finish(err, "")
	}
	r.ctrl.UpdateEditingText(text)
	return r.finish(r.ctrl.CommitEdit(idx), "edited")
}

// finish maps an operation result to output and an exit code. A failed
// write keeps the exit code non-zero: the change did not reach storage.
func (r runner) finish(err error, done string) int {
	var perr *notes.PersistError
	switch {
	case err == nil:
		ui.OK(r.out, done)
		return 0
	case errors.As(err, &perr):
		ui.Fail(r.errw, "save: "+perr.Err.Error())
		return 1
	case errors.Is(err, notes.ErrIndexOutOfRange):
		var ierr *notes.IndexError
		if errors.As(err, &ierr) {
			ui.Fail(r.errw, fmt.Sprintf("index out of range: have %d, got %d", ierr.Len, ierr.Index+1))
		}
		fmt.Fprintln(r.errw, ui.Current().Muted.Render("Hint: run `notes ls` to see valid indexes"))
		return 2
	case errors.Is(err, notes.ErrNoteChecked):
		ui.Fail(r.errw, "edit: note is done; toggle it back first")
		return 2
	}
	ui.Fail(r.errw, err.Error())
	return 1
}

// -------------- rendering helpers --------------

func flatLines(entries []notes.Entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{t.Muted.Render("no notes")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		idx := fmt.Sprintf("%2d.", e.Index+1)
		box := t.Muted.Render(t.BoxUnchecked)
		text := ansi.Truncate(e.Text, 80, "...")
		if e.NoText {
			text = t.Muted.Render("(no text)")
		}
		if e.Checked {
			box = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, text))
	}
	return out
}

func groupLines(entries []notes.Entry) []string {
	t := ui.Current()
	var pend, done []notes.Entry
	for _, e := range entries {
		if e.Checked {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
