package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DefaultsSeeded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewStore(dir, Default("/work"))

	got := s.Load(context.Background())

	assert.Equal(t, Default("/work"), got)
	assert.True(t, got.HideArchived)
	assert.False(t, got.HideHiddenProjects)
	assert.FileExists(t, filepath.Join(dir, File))
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir(), Default("/work"))
	ctx := context.Background()

	want := Settings{
		ScanPath:           "/projects",
		TerminalApp:        "iTerm",
		EditorCommand:      "cursor",
		ExcludedFolders:    []string{"tmp"},
		HideArchived:       false,
		HideHiddenProjects: true,
	}
	require.NoError(t, s.Save(want))
	assert.Equal(t, want, s.Load(ctx))
}

func TestStore_SaveValidates(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir(), Default("/work"))

	err := s.Save(Settings{ScanPath: " ", EditorCommand: "code"})
	require.ErrorIs(t, err, ErrScanPathRequired)

	err = s.Save(Settings{ScanPath: "/x"})
	require.Error(t, err)
}

func TestStore_MalformedFallsBackWithoutWriting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, File)
	require.NoError(t, os.WriteFile(path, []byte("{scanPath:"), 0o600))

	got := NewStore(dir, Default("/work")).Load(context.Background())
	assert.Equal(t, "/work", got.ScanPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{scanPath:", string(data))
}

func TestStore_PartialDocumentFilled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, File), []byte(`{"hideHiddenProjects": true}`), 0o600))

	got := NewStore(dir, Default("/work")).Load(context.Background())
	assert.Equal(t, "/work", got.ScanPath)
	assert.Equal(t, "Warp", got.TerminalApp)
	assert.Equal(t, "code", got.EditorCommand)
	assert.True(t, got.HideHiddenProjects)
	assert.NotNil(t, got.ExcludedFolders)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/code", filepath.Join(home, "code")},
		{"/abs/path", "/abs/path"},
		{"rel/~", "rel/~"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
