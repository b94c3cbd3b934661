// Package analyzer turns free-text queries into weighted search terms.
package analyzer

import (
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/vocabulary"
)

// Analyzer resolves query tokens against a vocabulary.
type Analyzer struct {
	weights      config.WeightsConfig
	extractYears bool
	minYear      int
	now          func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock sets the clock used to bound year extraction.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Analyzer from the weights and analyzer settings of cfg.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		weights:      cfg.Weights,
		extractYears: cfg.Analyzer.ExtractYears,
		minYear:      cfg.Analyzer.MinYear,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze splits query into tokens and resolves them left to right:
//   - a vocabulary phrase of two or more tokens becomes one term and
//     consumes its tokens, stop words included
//   - a stop word is dropped
//   - a vocabulary word becomes a term of its category
//   - a plausible year becomes an era term, when year extraction is on
//   - anything else becomes a keyword term
//
// Terms keep query order and repeated words yield repeated terms. An empty
// or all stop word query yields no terms.
func (a *Analyzer) Analyze(query string, vocab vocabulary.Provider) []core.SearchTerm {
	tokens := core.Tokenize(query)
	terms := make([]core.SearchTerm, 0, len(tokens))
	currentYear := a.now().Year()

	for i := 0; i < len(tokens); {
		entry, n, ok := vocab.LongestPhraseMatch(tokens[i:])
		if ok && n > 1 {
			terms = append(terms, a.entryTerm(entry, strings.Join(tokens[i:i+n], " ")))
			i += n
			continue
		}

		token := tokens[i]
		i++
		switch {
		case vocab.IsStopWord(token):
		case ok:
			terms = append(terms, a.entryTerm(entry, token))
		case a.isYear(token, currentYear):
			terms = append(terms, core.SearchTerm{
				RawText:      token,
				Category:     core.CategoryEra,
				Subcategory:  token,
				SourceWeight: a.weights.SourceWeight(core.CategoryEra, token),
			})
		default:
			terms = append(terms, core.SearchTerm{
				RawText:      token,
				Category:     core.CategoryKeyword,
				SourceWeight: a.weights.SourceWeight(core.CategoryKeyword, ""),
			})
		}
	}
	return terms
}

func (a *Analyzer) entryTerm(entry core.VocabularyEntry, raw string) core.SearchTerm {
	return core.SearchTerm{
		RawText:      raw,
		Category:     entry.Category,
		Subcategory:  entry.Subcategory,
		SourceWeight: a.weights.SourceWeight(entry.Category, entry.Subcategory),
	}
}

func (a *Analyzer) isYear(token string, currentYear int) bool {
	if !a.extractYears || len(token) != 4 {
		return false
	}
	year, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	return year >= a.minYear && year <= currentYear
}
