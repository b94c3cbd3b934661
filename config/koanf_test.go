package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/recobot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recobot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Weights.Fields, cfg.Weights.Fields)
	assert.Equal(t, DefaultConfig().Era.Rules, cfg.Era.Rules)
	assert.Equal(t, time.Second, cfg.Import.RetryDelay)
	assert.Equal(t, 6.5, cfg.Predicates.Quality["hidden_gem"].MinRating)
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
weights:
  fields:
    title: 3.0
era:
  rules:
    recent:
      max_age: 5
predicates:
  quality:
    masterpiece:
      min_rating: 8.5
import:
  retry_delay: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Weights.Fields.Title)
	assert.Equal(t, 0.8, cfg.Weights.Fields.Description)
	assert.Equal(t, 5, cfg.Era.Rules["recent"].MaxAge)
	assert.Contains(t, cfg.Era.Rules, "classic")
	assert.Equal(t, 8.5, cfg.Predicates.Quality["masterpiece"].MinRating)
	assert.Contains(t, cfg.Predicates.Quality, "acclaimed")
	assert.Equal(t, 250*time.Millisecond, cfg.Import.RetryDelay)
}

func TestLoad_FileFromEnv(t *testing.T) {
	path := writeConfigFile(t, "quality:\n  popularity_scale: 250\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Quality.PopularityScale)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "weights:\n  fields:\n    title: 3.0\n")
	t.Setenv("RECOBOT_WEIGHTS__FIELDS__TITLE", "4.5")
	t.Setenv("RECOBOT_ANALYZER__EXTRACT_YEARS", "false")
	t.Setenv("RECOBOT_DB", "/tmp/ignored")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.5, cfg.Weights.Fields.Title)
	assert.False(t, cfg.Analyzer.ExtractYears)
}

func TestLoad_SourceOverrideAliases(t *testing.T) {
	path := writeConfigFile(t, `
weights:
  source_overrides:
    époque:
      recent: 3
    genre:
      Comédie: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Weights.SourceWeight(core.CategoryEra, "recent"))
	assert.Equal(t, 4.0, cfg.Weights.SourceWeight(core.CategoryGenre, "comedie"))
	assert.Equal(t, 4.0, cfg.Weights.SourceWeight(core.CategoryGenre, "Comédie"))
	assert.Equal(t, 1.0, cfg.Weights.SourceWeight(core.CategoryGenre, "drame"))
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("failing validation", func(t *testing.T) {
		path := writeConfigFile(t, "quality:\n  popularity_cap: 2\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "quality.popularity_scale", envTransformFunc("RECOBOT_QUALITY__POPULARITY_SCALE"))
	assert.Equal(t, "weights.fields.title", envTransformFunc("RECOBOT_WEIGHTS__FIELDS__TITLE"))
	assert.Equal(t, "", envTransformFunc("RECOBOT_CONFIG"))
	assert.Equal(t, "", envTransformFunc("RECOBOT_DB"))
}
