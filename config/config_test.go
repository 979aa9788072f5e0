package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crossfade.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[matching]
strict = false
enable_album = true
duration_tolerance = 5

[dedupe]
threshold = 0.9
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	opts := cfg.MatchOptions()
	assert.False(t, opts.Strict)
	assert.True(t, opts.EnableDuration) // unset, keeps the default
	assert.True(t, opts.EnableAlbum)
	assert.Equal(t, 5, opts.DurationTolerance)

	dopts := cfg.DedupeOptions()
	assert.Equal(t, 0.9, dopts.Threshold)
}

func TestLoadFileDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	opts := cfg.MatchOptions()
	assert.True(t, opts.Strict)
	assert.True(t, opts.EnableDuration)
	assert.False(t, opts.EnableAlbum)
	assert.Equal(t, 0, opts.DurationTolerance)
	assert.Equal(t, 0.0, cfg.DedupeOptions().Threshold)
}

func TestLoadFileExplicitDurationOff(t *testing.T) {
	path := writeConfig(t, `
[matching]
enable_duration = false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.MatchOptions().EnableDuration)
	assert.True(t, cfg.MatchOptions().Strict)
}

func TestLoadFileValidation(t *testing.T) {
	_, err := LoadFile(writeConfig(t, `
[matching]
duration_tolerance = -1
`))
	assert.ErrorContains(t, err, "duration_tolerance")

	_, err = LoadFile(writeConfig(t, `
[dedupe]
threshold = 1.5
`))
	assert.ErrorContains(t, err, "threshold")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "not toml ==="))
	assert.Error(t, err)
}
