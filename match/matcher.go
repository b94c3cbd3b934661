package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
)

// Candidate is a film with its text fields tokenized and its genre and
// theme sets normalized, so that matching many terms costs one pass.
type Candidate struct {
	Film *core.FilmRecord

	title       []string
	description []string
	genres      map[string]struct{}
	themes      map[string]struct{}
}

// NewCandidate prepares film for matching.
func NewCandidate(film *core.FilmRecord) *Candidate {
	return &Candidate{
		Film:        film,
		title:       core.Tokenize(film.Title),
		description: core.Tokenize(film.Description),
		genres:      keySet(film.Genres),
		themes:      keySet(film.Themes),
	}
}

func keySet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if key := core.NormalizeKey(v); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func (c *Candidate) hasGenre(key string) bool {
	_, ok := c.genres[key]
	return ok
}

func (c *Candidate) hasTheme(key string) bool {
	_, ok := c.themes[key]
	return ok
}

// Matcher computes match signals between search terms and films.
type Matcher struct {
	titleStrength       float64
	descriptionStrength float64
	eras                eraResolver
	quality             map[string]predicate
	tone                map[string]predicate
	now                 func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithClock sets the clock that relative era rules are evaluated against.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Matcher from the match, era and predicate settings of cfg.
func New(cfg *config.Config, opts ...Option) *Matcher {
	m := &Matcher{
		titleStrength:       cfg.Match.TitleStrength,
		descriptionStrength: cfg.Match.DescriptionStrength,
		eras:                newEraResolver(cfg.Era.Rules),
		quality:             compilePredicates(cfg.Predicates.Quality),
		tone:                compilePredicates(cfg.Predicates.Tone),
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the signals of term on film. See MatchCandidate.
func (m *Matcher) Match(term core.SearchTerm, film *core.FilmRecord) []core.MatchSignal {
	return m.MatchCandidate(term, NewCandidate(film), m.now().Year())
}

// MatchCandidate returns every signal of term on c. Categorical and
// free-text signals are independent: a genre term found in the description
// yields both a Genre and a Description signal. Zero-strength signals are
// never returned.
func (m *Matcher) MatchCandidate(term core.SearchTerm, c *Candidate, currentYear int) []core.MatchSignal {
	var signals []core.MatchSignal
	emit := func(field core.Field, strength float64) {
		if strength > 0 {
			signals = append(signals, core.MatchSignal{Term: term, Field: field, Strength: strength})
		}
	}

	switch term.Category {
	case core.CategoryGenre:
		if m.inSet(term, c.hasGenre) {
			emit(core.FieldGenre, 1)
		}
	case core.CategoryTheme:
		if m.inSet(term, c.hasTheme) {
			emit(core.FieldTheme, 1)
		}
	case core.CategoryEra:
		if c.Film.ReleaseYear > 0 {
			if r, ok := m.eras.resolve(term.Target(), currentYear); ok && r.contains(c.Film.ReleaseYear) {
				emit(core.FieldEra, 1)
			}
		}
	case core.CategoryQuality:
		if p, ok := m.quality[core.NormalizeKey(term.Subcategory)]; ok && p.holds(c) {
			emit(core.FieldTone, 1)
		}
	case core.CategoryTone:
		if p, ok := m.tone[core.NormalizeKey(term.Subcategory)]; ok && p.holds(c) {
			emit(core.FieldTone, 1)
		}
	}

	field, strength := m.matchText(term, c)
	emit(field, strength)
	return signals
}

func (m *Matcher) inSet(term core.SearchTerm, has func(string) bool) bool {
	if sub := core.NormalizeKey(term.Subcategory); sub != "" && has(sub) {
		return true
	}
	raw := core.NormalizeKey(term.RawText)
	return raw != "" && has(raw)
}

// matchText looks for the term's words in the title, then the description.
// Keyword synonyms also try their subcategory.
func (m *Matcher) matchText(term core.SearchTerm, c *Candidate) (core.Field, float64) {
	needles := [][]string{core.Tokenize(term.RawText)}
	if term.Category == core.CategoryKeyword && term.Subcategory != "" {
		needles = append(needles, core.Tokenize(term.Subcategory))
	}

	for _, needle := range needles {
		if core.ContainsRun(c.title, needle) {
			return core.FieldTitle, m.titleStrength
		}
	}
	for _, needle := range needles {
		if core.ContainsRun(c.description, needle) {
			return core.FieldDescription, m.descriptionStrength
		}
	}
	return core.FieldTitle, 0
}

// ValidateSubcategory reports whether terms of category with subcategory
// can ever match. Era subcategories must resolve to a year range, quality
// and tone ones must name a configured predicate.
func (m *Matcher) ValidateSubcategory(category core.Category, subcategory string) error {
	key := core.NormalizeKey(subcategory)
	switch category {
	case core.CategoryKeyword:
		return nil
	case core.CategoryGenre, core.CategoryTheme:
		if key == "" {
			return fmt.Errorf("%w: %s needs a subcategory", core.ErrInvalidSubcategory, category)
		}
		return nil
	case core.CategoryEra:
		if _, ok := m.eras.resolve(key, m.now().Year()); !ok {
			return fmt.Errorf("%w: unknown era %q", core.ErrInvalidSubcategory, subcategory)
		}
		return nil
	case core.CategoryQuality:
		return checkPredicate(m.quality, category, key, subcategory)
	case core.CategoryTone:
		return checkPredicate(m.tone, category, key, subcategory)
	default:
		return errors.Join(core.ErrInvalidSubcategory, fmt.Errorf("%w: %d", core.ErrUnknownCategory, int(category)))
	}
}

func checkPredicate(table map[string]predicate, category core.Category, key, subcategory string) error {
	if _, ok := table[key]; !ok {
		return fmt.Errorf("%w: no %s rule named %q", core.ErrInvalidSubcategory, category, subcategory)
	}
	return nil
}
