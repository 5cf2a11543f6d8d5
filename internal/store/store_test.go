package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/notebook/internal/model"
)

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
	}{
		{BackendJSON, filepath.Join(dir, "notebook.json")},
		{BackendSQLite, filepath.Join(dir, "notebook.db")},
		{BackendMemory, ""},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s, closeFn, err := Open(tt.backend, tt.path)
			require.NoError(t, err)
			defer closeFn()

			a := NewAdapter(s, "", nil)
			want := []model.Note{{Text: "a"}, {Text: "b", Checked: true}}
			require.NoError(t, a.Save(want))
			assert.Equal(t, want, a.Load())
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open("redis", "")
	assert.ErrorContains(t, err, "unknown backend")
}
