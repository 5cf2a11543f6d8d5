package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.GetItem("notes")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetOverwrites(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetItem("notes", `["a"]`))
	require.NoError(t, s.SetItem("notes", `[{"text":"b","checked":true}]`))

	v, ok, err := s.GetItem("notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"text":"b","checked":true}]`, v)
}

func TestPersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("notes", "[]"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.GetItem("notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}
