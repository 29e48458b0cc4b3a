package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "chatdeck.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestDefaultsWhenEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	dev, err := s.DeveloperMode()
	require.NoError(t, err)
	assert.False(t, dev)
}

func TestFlagsSurviveReopen(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.SetTheme("dark"))
	require.NoError(t, s.SetDeveloperMode(true))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	theme, err := reopened.Theme()
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	dev, err := reopened.DeveloperMode()
	require.NoError(t, err)
	assert.True(t, dev)
}

func TestOverwrite(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.SetDeveloperMode(true))
	require.NoError(t, s.SetDeveloperMode(false))

	v, ok, err := GetPref(s.DB, KeyDeveloperMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestUnexpectedValuesFallBack(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, SetPref(s.DB, KeyTheme, "sepia", 1))
	require.NoError(t, SetPref(s.DB, KeyDeveloperMode, "yes", 1))

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	dev, err := s.DeveloperMode()
	require.NoError(t, err)
	assert.False(t, dev)

	assert.Error(t, s.SetTheme("sepia"))
}
