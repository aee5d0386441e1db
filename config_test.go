package headlessterm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DEFAULT_ROWS, cfg.Rows)
	assert.Equal(t, DEFAULT_COLS, cfg.Cols)
	assert.True(t, cfg.SixelEnabled)
	assert.True(t, cfg.KittyEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigClipboardAndInsecureDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultClipboardMaxBytes, cfg.ClipboardMaxBytes)
	assert.False(t, cfg.AllowInsecureSequences)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"negative rows", Config{Rows: -1}},
		{"negative cols", Config{Cols: -1}},
		{"negative max scrollback", Config{MaxScrollback: -1}},
		{"negative image memory", Config{ImageMaxMemory: -1}},
		{"negative image count", Config{ImageMaxCount: -1}},
		{"negative clipboard max bytes", Config{ClipboardMaxBytes: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, c.cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "term.toml")
	contents := "rows = 40\ncols = 100\nsixel_enabled = false\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 40, cfg.Rows)
	assert.Equal(t, 100, cfg.Cols)
	assert.False(t, cfg.SixelEnabled)
	// Fields absent from the file keep the package default.
	assert.True(t, cfg.KittyEnabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("rows = -5\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestWithConfigAppliesPendingFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScrollback = 100
	cfg.ImageMaxMemory = 1024

	term, err := NewTerminal(WithConfig(cfg))
	assert.NoError(t, err)
	assert.NotNil(t, term)
}

func TestNewTerminalRejectsInvalidConfig(t *testing.T) {
	_, err := NewTerminal(WithConfig(Config{Rows: -1}))
	assert.Error(t, err)
}
