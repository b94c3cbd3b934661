package config

import (
	"testing"

	"github.com/poiesic/recobot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.2, cfg.Weights.Fields.Title)
	assert.Equal(t, 0.8, cfg.Weights.Fields.Description)
	assert.Equal(t, 2.0, cfg.Weights.Fields.Genre)
	assert.Equal(t, 1.0, cfg.Weights.Sources.Keyword)
	assert.Equal(t, 1.0, cfg.Match.TitleStrength)
	assert.Equal(t, 0.6, cfg.Match.DescriptionStrength)
	assert.Equal(t, 0.5, cfg.Quality.PopularityCap)
	assert.Equal(t, EraRule{MaxAge: 2}, cfg.Era.Rules["recent"])
	assert.Equal(t, 7.0, cfg.Predicates.Quality["acclaimed"].MinRating)
	assert.True(t, cfg.Analyzer.ExtractYears)
}

func TestFieldWeights_For(t *testing.T) {
	w := FieldWeights{Title: 1, Description: 2, Genre: 3, Theme: 4, Era: 5, Tone: 6}

	assert.Equal(t, 1.0, w.For(core.FieldTitle))
	assert.Equal(t, 2.0, w.For(core.FieldDescription))
	assert.Equal(t, 3.0, w.For(core.FieldGenre))
	assert.Equal(t, 4.0, w.For(core.FieldTheme))
	assert.Equal(t, 5.0, w.For(core.FieldEra))
	assert.Equal(t, 6.0, w.For(core.FieldTone))
	assert.Equal(t, 0.0, w.For(core.Field(99)))
}

func TestWeightsConfig_SourceWeight(t *testing.T) {
	cfg := NewConfig(
		WithSourceWeights(SourceWeights{Keyword: 0.5, Genre: 2, Theme: 1, Era: 1, Quality: 1, Tone: 1}),
		WithSourceOverride(core.CategoryGenre, "Science-Fiction", 3),
	)

	assert.Equal(t, 0.5, cfg.Weights.SourceWeight(core.CategoryKeyword, ""))
	assert.Equal(t, 2.0, cfg.Weights.SourceWeight(core.CategoryGenre, "action"))
	assert.Equal(t, 3.0, cfg.Weights.SourceWeight(core.CategoryGenre, "science fiction"))
	assert.Equal(t, 1.0, cfg.Weights.SourceWeight(core.CategoryTheme, "science fiction"))
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), NewConfig())
	})

	t.Run("with era rule", func(t *testing.T) {
		cfg := NewConfig(WithEraRule("Récent", EraRule{MaxAge: 5}))
		assert.Equal(t, EraRule{MaxAge: 5}, cfg.Era.Rules["recent"])
	})

	t.Run("with predicate", func(t *testing.T) {
		cfg := NewConfig(
			WithPredicate(core.CategoryQuality, "masterpiece", Predicate{MinRating: 8.5}),
			WithPredicate(core.CategoryTone, "dark", Predicate{Genres: []string{"thriller"}}),
			WithPredicate(core.CategoryGenre, "ignored", Predicate{MinRating: 1}),
		)
		assert.Equal(t, 8.5, cfg.Predicates.Quality["masterpiece"].MinRating)
		assert.Equal(t, []string{"thriller"}, cfg.Predicates.Tone["dark"].Genres)
		assert.Nil(t, cfg.Predicates.For(core.CategoryGenre))
	})

	t.Run("with popularity and blend", func(t *testing.T) {
		cfg := NewConfig(WithPopularity(500, 0.25), WithScoreBlend(3, 1))
		assert.Equal(t, 500.0, cfg.Quality.PopularityScale)
		assert.Equal(t, 0.25, cfg.Quality.PopularityCap)
		assert.Equal(t, 3.0, cfg.Weights.Relevance)
	})

	t.Run("with year extraction disabled", func(t *testing.T) {
		assert.False(t, NewConfig(WithYearExtraction(false)).Analyzer.ExtractYears)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"negative field weight", NewConfig(WithFieldWeights(FieldWeights{Title: -1}))},
		{"zero quality blend", NewConfig(WithScoreBlend(1, 0))},
		{"popularity cap above half", NewConfig(WithPopularity(100, 0.9))},
		{"zero popularity scale", NewConfig(WithPopularity(0, 0.5))},
		{"inverted era rule", NewConfig(WithEraRule("nineties", EraRule{MinAge: 30, MaxAge: 20}))},
		{"inverted predicate", NewConfig(WithPredicate(core.CategoryQuality, "odd", Predicate{MinVotes: 10, MaxVotes: 5}))},
		{"rating out of range", NewConfig(WithPredicate(core.CategoryQuality, "odd", Predicate{MinRating: 12}))},
		{"negative override", NewConfig(WithSourceOverride(core.CategoryGenre, "action", -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("unknown override category", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.SourceOverrides["colour"] = map[string]float64{"red": 1}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}
