package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ru", cfg.Locale)
	assert.Equal(t, language.Russian, cfg.LocaleTag())
	assert.Equal(t, shelflife.DefaultConfig(), cfg.ShelfLife)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Contains(t, cfg.Table.Searchable, "name")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backoffice.yaml")
	content := `
locale: en
shelf_life:
  warning_progress: 0.75
  fallback_days: 3
table:
  page_size: 25
  searchable: [name]
chips:
  width: 40
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, language.English, cfg.LocaleTag())
	assert.Equal(t, shelflife.Config{WarningProgress: 0.75, FallbackDays: 3}, cfg.ShelfLife)
	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.Equal(t, []string{"name"}, cfg.Table.Searchable)
	assert.Equal(t, 40.0, cfg.Chips.Width)
	assert.Equal(t, 1.0, cfg.Chips.Gap)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Parse([]byte("table: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = Parse([]byte("table:\n  page_size: -4\nshelf_life:\n  warning_progress: 2\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "table.page_size must be positive")
	assert.ErrorIs(t, err, shelflife.ErrInvalidConfig)

	_, err = Parse([]byte("logging:\n  format: xml\n"))
	assert.ErrorContains(t, err, "logging.format")
}
