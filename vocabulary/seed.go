package vocabulary

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/poiesic/recobot/core"
	"gopkg.in/yaml.v3"
)

// Seed is a bulk vocabulary definition. Each category maps a subcategory
// to the words that express it.
//
//	genre:
//	  action: [action, combat, explosion]
//	era:
//	  1990s: [annees 90]
//	stop_words: [le, la, d]
type Seed struct {
	Keyword   map[string][]string `yaml:"keyword,omitempty"`
	Genre     map[string][]string `yaml:"genre,omitempty"`
	Theme     map[string][]string `yaml:"theme,omitempty"`
	Era       map[string][]string `yaml:"era,omitempty"`
	Quality   map[string][]string `yaml:"quality,omitempty"`
	Tone      map[string][]string `yaml:"tone,omitempty"`
	StopWords []string            `yaml:"stop_words,omitempty"`
}

// LoadSeedFile reads a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, path, err)
	}
	return &seed, nil
}

func (s *Seed) byCategory(c core.Category) map[string][]string {
	switch c {
	case core.CategoryGenre:
		return s.Genre
	case core.CategoryTheme:
		return s.Theme
	case core.CategoryEra:
		return s.Era
	case core.CategoryQuality:
		return s.Quality
	case core.CategoryTone:
		return s.Tone
	default:
		return s.Keyword
	}
}

// Entries flattens the seed in a stable order: categories in declaration
// order, subcategories sorted, words as written.
func (s *Seed) Entries() []core.VocabularyEntry {
	var entries []core.VocabularyEntry
	for _, category := range core.Categories() {
		subs := s.byCategory(category)
		for _, sub := range slices.Sorted(maps.Keys(subs)) {
			for _, word := range subs[sub] {
				entries = append(entries, core.VocabularyEntry{
					Word:        word,
					Category:    category,
					Subcategory: sub,
				})
			}
		}
	}
	return entries
}
