// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/poiesic/recobot/core"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every tuning constant of the recommender.
type Config struct {
	Weights    WeightsConfig    `koanf:"weights"`
	Match      MatchConfig      `koanf:"match"`
	Quality    QualityConfig    `koanf:"quality"`
	Era        EraConfig        `koanf:"era"`
	Predicates PredicatesConfig `koanf:"predicates"`
	Analyzer   AnalyzerConfig   `koanf:"analyzer"`
	Import     ImportConfig     `koanf:"import"`
}

// WeightsConfig controls how match signals turn into relevance.
type WeightsConfig struct {
	Fields  FieldWeights  `koanf:"fields"`
	Sources SourceWeights `koanf:"sources"`

	// SourceOverrides refines Sources per subcategory:
	// category name -> normalized subcategory -> weight.
	SourceOverrides map[string]map[string]float64 `koanf:"source_overrides"`

	// Relevance and Quality scale the two parts of the final score.
	// Both default to 1, which makes final = relevance + quality.
	Relevance float64 `koanf:"relevance" validate:"gte=0"`
	Quality   float64 `koanf:"quality" validate:"gt=0"`
}

// FieldWeights is the weight applied to a signal found on each film field.
type FieldWeights struct {
	Title       float64 `koanf:"title" validate:"gte=0"`
	Description float64 `koanf:"description" validate:"gte=0"`
	Genre       float64 `koanf:"genre" validate:"gte=0"`
	Theme       float64 `koanf:"theme" validate:"gte=0"`
	Era         float64 `koanf:"era" validate:"gte=0"`
	Tone        float64 `koanf:"tone" validate:"gte=0"`
}

// For returns the weight of field f.
func (w FieldWeights) For(f core.Field) float64 {
	switch f {
	case core.FieldTitle:
		return w.Title
	case core.FieldDescription:
		return w.Description
	case core.FieldGenre:
		return w.Genre
	case core.FieldTheme:
		return w.Theme
	case core.FieldEra:
		return w.Era
	case core.FieldTone:
		return w.Tone
	default:
		return 0
	}
}

// SourceWeights is the default source weight of terms of each category.
type SourceWeights struct {
	Keyword float64 `koanf:"keyword" validate:"gte=0"`
	Genre   float64 `koanf:"genre" validate:"gte=0"`
	Theme   float64 `koanf:"theme" validate:"gte=0"`
	Era     float64 `koanf:"era" validate:"gte=0"`
	Quality float64 `koanf:"quality" validate:"gte=0"`
	Tone    float64 `koanf:"tone" validate:"gte=0"`
}

// For returns the weight of category c.
func (w SourceWeights) For(c core.Category) float64 {
	switch c {
	case core.CategoryGenre:
		return w.Genre
	case core.CategoryTheme:
		return w.Theme
	case core.CategoryEra:
		return w.Era
	case core.CategoryQuality:
		return w.Quality
	case core.CategoryTone:
		return w.Tone
	default:
		return w.Keyword
	}
}

// SourceWeight resolves the source weight of a term, preferring a
// subcategory override over the category default.
func (w WeightsConfig) SourceWeight(c core.Category, subcategory string) float64 {
	if subs, ok := w.SourceOverrides[c.String()]; ok && subcategory != "" {
		if weight, ok := subs[core.NormalizeKey(subcategory)]; ok {
			return weight
		}
	}
	return w.Sources.For(c)
}

// NormalizeOverrides rekeys SourceOverrides by canonical category name and
// normalized subcategory, so aliases such as "époque" or "Comédie" resolve
// the same way queries do. Unknown categories are reported.
func (w *WeightsConfig) NormalizeOverrides() error {
	if len(w.SourceOverrides) == 0 {
		return nil
	}
	normalized := make(map[string]map[string]float64, len(w.SourceOverrides))
	for name, subs := range w.SourceOverrides {
		category, err := core.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("%w: source override: %w", ErrInvalidConfig, err)
		}
		key := category.String()
		if normalized[key] == nil {
			normalized[key] = make(map[string]float64, len(subs))
		}
		for sub, weight := range subs {
			normalized[key][core.NormalizeKey(sub)] = weight
		}
	}
	w.SourceOverrides = normalized
	return nil
}

// MatchConfig holds the strengths of free-text matches.
type MatchConfig struct {
	TitleStrength       float64 `koanf:"title_strength" validate:"gt=0,lte=1"`
	DescriptionStrength float64 `koanf:"description_strength" validate:"gt=0,lte=1"`
}

// QualityConfig shapes the query-independent quality score.
type QualityConfig struct {
	// PopularityScale is the popularity at which the bonus saturates.
	PopularityScale float64 `koanf:"popularity_scale" validate:"gt=0"`
	// PopularityCap bounds the multiplicative popularity bonus.
	PopularityCap float64 `koanf:"popularity_cap" validate:"gte=0,lte=0.5"`
}

// EraConfig names relative release windows such as "recent".
type EraConfig struct {
	Rules map[string]EraRule `koanf:"rules" validate:"dive"`
}

// EraRule selects films whose age in years, current year minus release
// year, lies in [MinAge, MaxAge]. MaxAge 0 leaves the window open.
type EraRule struct {
	MinAge int `koanf:"min_age" validate:"gte=0"`
	MaxAge int `koanf:"max_age" validate:"gte=0"`
}

// PredicatesConfig holds the rules behind quality and tone subcategories,
// keyed by normalized subcategory.
type PredicatesConfig struct {
	Quality map[string]Predicate `koanf:"quality" validate:"dive"`
	Tone    map[string]Predicate `koanf:"tone" validate:"dive"`
}

// Predicate is a conjunction of bounds over film statistics. A zero upper
// bound is ignored. When Genres is set the film must also carry one of them.
type Predicate struct {
	MinRating     float64  `koanf:"min_rating" validate:"gte=0,lte=10"`
	MaxRating     float64  `koanf:"max_rating" validate:"gte=0,lte=10"`
	MinVotes      int      `koanf:"min_votes" validate:"gte=0"`
	MaxVotes      int      `koanf:"max_votes" validate:"gte=0"`
	MinPopularity float64  `koanf:"min_popularity" validate:"gte=0"`
	MaxPopularity float64  `koanf:"max_popularity" validate:"gte=0"`
	Genres        []string `koanf:"genres" validate:"dive,required"`
}

// For returns the predicate table of a category, nil for categories that
// are not predicate based.
func (p PredicatesConfig) For(c core.Category) map[string]Predicate {
	switch c {
	case core.CategoryQuality:
		return p.Quality
	case core.CategoryTone:
		return p.Tone
	default:
		return nil
	}
}

// AnalyzerConfig toggles optional query analysis features.
type AnalyzerConfig struct {
	// ExtractYears turns bare four digit years into era terms.
	ExtractYears bool `koanf:"extract_years"`
	// MinYear is the earliest year recognized by ExtractYears.
	MinYear int `koanf:"min_year" validate:"gte=1800"`
}

// ImportConfig tunes catalog imports.
type ImportConfig struct {
	BatchSize      int           `koanf:"batch_size" validate:"gt=0"`
	Workers        int           `koanf:"workers" validate:"gte=0"` // 0 picks from the CPU count
	MaxRetries     int           `koanf:"max_retries" validate:"gt=0"`
	RetryDelay     time.Duration `koanf:"retry_delay" validate:"gte=0"`
	ReportInterval int           `koanf:"report_interval" validate:"gt=0"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithFieldWeights replaces all field weights.
func WithFieldWeights(w FieldWeights) ConfigOption {
	return func(c *Config) {
		c.Weights.Fields = w
	}
}

// WithSourceWeights replaces all category source weights.
func WithSourceWeights(w SourceWeights) ConfigOption {
	return func(c *Config) {
		c.Weights.Sources = w
	}
}

// WithSourceOverride sets the source weight of one subcategory.
func WithSourceOverride(category core.Category, subcategory string, weight float64) ConfigOption {
	return func(c *Config) {
		if c.Weights.SourceOverrides == nil {
			c.Weights.SourceOverrides = make(map[string]map[string]float64)
		}
		name := category.String()
		if c.Weights.SourceOverrides[name] == nil {
			c.Weights.SourceOverrides[name] = make(map[string]float64)
		}
		c.Weights.SourceOverrides[name][core.NormalizeKey(subcategory)] = weight
	}
}

// WithScoreBlend sets the multipliers of relevance and quality in the final score.
func WithScoreBlend(relevance, quality float64) ConfigOption {
	return func(c *Config) {
		c.Weights.Relevance = relevance
		c.Weights.Quality = quality
	}
}

// WithEraRule adds or replaces a named era window.
func WithEraRule(name string, rule EraRule) ConfigOption {
	return func(c *Config) {
		if c.Era.Rules == nil {
			c.Era.Rules = make(map[string]EraRule)
		}
		c.Era.Rules[core.NormalizeKey(name)] = rule
	}
}

// WithPredicate adds or replaces a quality or tone predicate.
// Other categories are ignored.
func WithPredicate(category core.Category, subcategory string, p Predicate) ConfigOption {
	return func(c *Config) {
		key := core.NormalizeKey(subcategory)
		switch category {
		case core.CategoryQuality:
			if c.Predicates.Quality == nil {
				c.Predicates.Quality = make(map[string]Predicate)
			}
			c.Predicates.Quality[key] = p
		case core.CategoryTone:
			if c.Predicates.Tone == nil {
				c.Predicates.Tone = make(map[string]Predicate)
			}
			c.Predicates.Tone[key] = p
		}
	}
}

// WithPopularity sets the popularity bonus saturation point and cap.
func WithPopularity(scale, maxBonus float64) ConfigOption {
	return func(c *Config) {
		c.Quality.PopularityScale = scale
		c.Quality.PopularityCap = maxBonus
	}
}

// WithYearExtraction toggles recognition of bare years in queries.
func WithYearExtraction(enabled bool) ConfigOption {
	return func(c *Config) {
		c.Analyzer.ExtractYears = enabled
	}
}

// DefaultConfig returns a Config with the stock tuning.
func DefaultConfig() *Config {
	return &Config{
		Weights: WeightsConfig{
			Fields: FieldWeights{
				Title:       1.2,
				Description: 0.8,
				Genre:       2.0,
				Theme:       2.0,
				Era:         2.0,
				Tone:        2.0,
			},
			Sources: SourceWeights{
				Keyword: 1.0,
				Genre:   1.0,
				Theme:   1.0,
				Era:     1.0,
				Quality: 1.0,
				Tone:    1.0,
			},
			SourceOverrides: map[string]map[string]float64{},
			Relevance:       1.0,
			Quality:         1.0,
		},
		Match: MatchConfig{
			TitleStrength:       1.0,
			DescriptionStrength: 0.6,
		},
		Quality: QualityConfig{
			PopularityScale: 100,
			PopularityCap:   0.5,
		},
		Era: EraConfig{
			Rules: map[string]EraRule{
				"recent":  {MinAge: 0, MaxAge: 2},
				"modern":  {MinAge: 0, MaxAge: 20},
				"classic": {MinAge: 20},
			},
		},
		Predicates: PredicatesConfig{
			Quality: map[string]Predicate{
				"popular":    {MinPopularity: 20},
				"acclaimed":  {MinRating: 7.0},
				"hidden_gem": {MinRating: 6.5, MaxVotes: 1000},
			},
			Tone: map[string]Predicate{
				"intense":    {Genres: []string{"action", "thriller", "guerre"}},
				"light":      {Genres: []string{"comedie", "familial", "animation"}},
				"serious":    {Genres: []string{"drame", "histoire", "guerre"}},
				"emotional":  {Genres: []string{"drame", "romance"}},
				"scary":      {Genres: []string{"horreur"}},
				"mysterious": {Genres: []string{"mystere", "thriller"}},
			},
		},
		Analyzer: AnalyzerConfig{
			ExtractYears: true,
			MinYear:      1900,
		},
		Import: ImportConfig{
			BatchSize:      100,
			Workers:        0,
			MaxRetries:     3,
			RetryDelay:     time.Second,
			ReportInterval: 100,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEraRule("recent", EraRule{MaxAge: 5}),
//	    WithSourceOverride(core.CategoryGenre, "action", 1.5),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks field bounds and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for category, subs := range c.Weights.SourceOverrides {
		if _, err := core.ParseCategory(category); err != nil {
			return fmt.Errorf("%w: source override: %w", ErrInvalidConfig, err)
		}
		for sub, weight := range subs {
			if weight < 0 {
				return fmt.Errorf("%w: source override %s/%s is negative", ErrInvalidConfig, category, sub)
			}
		}
	}

	for name, rule := range c.Era.Rules {
		if core.NormalizeKey(name) == "" {
			return fmt.Errorf("%w: era rule with empty name", ErrInvalidConfig)
		}
		if rule.MaxAge != 0 && rule.MaxAge < rule.MinAge {
			return fmt.Errorf("%w: era rule %q has max_age below min_age", ErrInvalidConfig, name)
		}
	}

	for _, category := range []core.Category{core.CategoryQuality, core.CategoryTone} {
		for name, p := range c.Predicates.For(category) {
			if err := p.check(); err != nil {
				return fmt.Errorf("%w: %s predicate %q: %w", ErrInvalidConfig, category, name, err)
			}
		}
	}
	return nil
}

func (p Predicate) check() error {
	if p.MaxRating != 0 && p.MaxRating < p.MinRating {
		return errors.New("max_rating below min_rating")
	}
	if p.MaxVotes != 0 && p.MaxVotes < p.MinVotes {
		return errors.New("max_votes below min_votes")
	}
	if p.MaxPopularity != 0 && p.MaxPopularity < p.MinPopularity {
		return errors.New("max_popularity below min_popularity")
	}
	return nil
}
