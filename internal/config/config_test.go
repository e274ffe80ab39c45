package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataFile)
	assert.Equal(t, "Flowlyfe", cfg.CalendarName)
	assert.Equal(t, "https://caldav.icloud.com/", cfg.CalDAVEndpoint)
	assert.Equal(t, "primary", cfg.GoogleCalendarID)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		DataFile:         "/tmp/flow.json",
		CalendarName:     "Personal",
		CalDAVEndpoint:   "https://dav.example.com/",
		GoogleCalendarID: "work@example.com",
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendar_name: Personal\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Personal", cfg.CalendarName)
	assert.NotEmpty(t, cfg.DataFile)
	assert.Equal(t, "primary", cfg.GoogleCalendarID)
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRejectsNilConfig(t *testing.T) {
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}
