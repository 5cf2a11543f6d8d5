package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{2, 2, 10, "██████████ 100%"},
		{1, 1, 2, "█████ 100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestPanelFramesLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	out := Panel([]string{"one", "two"})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.True(t, strings.HasPrefix(lines[0], "+"))
}

func TestStatusLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	OK(&buf, "added")
	Warn(&buf, "careful")
	Fail(&buf, "broken")
	assert.Equal(t, "x added\n! careful\n✖ broken\n", buf.String())
}

func TestSetThemeFallsBackToClassic(t *testing.T) {
	SetTheme("nope")
	assert.Equal(t, "☐", Current().BoxUnchecked)
	assert.Equal(t, "☑", Current().BoxChecked)
}
