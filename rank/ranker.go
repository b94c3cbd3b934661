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


// Package rank scores films against search terms and orders them.
package rank

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/match"
)

// Ranker turns match signals and film statistics into ordered results.
type Ranker struct {
	matcher  *match.Matcher
	fields   config.FieldWeights
	blend    blend
	popScale float64
	popCap   float64
	now      func() time.Time
}

type blend struct {
	relevance float64
	quality   float64
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithClock sets the clock used for relative era terms.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Ranker that matches with m and scores with the weights and
// quality settings of cfg.
func New(cfg *config.Config, m *match.Matcher, opts ...Option) *Ranker {
	r := &Ranker{
		matcher:  m,
		fields:   cfg.Weights.Fields,
		blend:    blend{relevance: cfg.Weights.Relevance, quality: cfg.Weights.Quality},
		popScale: cfg.Quality.PopularityScale,
		popCap:   cfg.Quality.PopularityCap,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every film and returns them all, best first.
//
// When no term matches any film the final score is the quality score alone.
// Equal scores are ordered by vote count descending, then title, then ID,
// so the output never depends on the order of films.
func (r *Ranker) Rank(terms []core.SearchTerm, films []*core.FilmRecord) []core.RankedResult {
	results := make([]core.RankedResult, len(films))
	currentYear := r.now().Year()
	matched := false

	for i, film := range films {
		relevance := r.relevance(terms, match.NewCandidate(film), currentYear)
		if relevance > 0 {
			matched = true
		}
		results[i] = core.RankedResult{
			Film:           film,
			RelevanceScore: relevance,
			QualityScore:   r.Quality(film),
		}
	}

	for i := range results {
		res := &results[i]
		res.FinalScore = r.blend.quality * res.QualityScore
		if matched {
			res.FinalScore += r.blend.relevance * res.RelevanceScore
		}
	}

	slices.SortStableFunc(results, compareResults)
	return results
}

func (r *Ranker) relevance(terms []core.SearchTerm, c *match.Candidate, currentYear int) float64 {
	var total float64
	for _, term := range terms {
		for _, s := range r.matcher.MatchCandidate(term, c, currentYear) {
			total += s.Strength * term.SourceWeight * r.fields.For(s.Field)
		}
	}
	return total
}

// Quality is the query independent score of film:
// rating × ln(1 + votes) × (1 + popularity bonus). The bonus grows linearly
// with popularity up to the configured scale and never exceeds the cap.
func (r *Ranker) Quality(film *core.FilmRecord) float64 {
	var bonus float64
	if r.popScale > 0 {
		bonus = r.popCap * math.Min(1, math.Max(0, film.Popularity)/r.popScale)
	}
	return film.AverageRating * math.Log1p(float64(max(film.VoteCount, 0))) * (1 + bonus)
}

func compareResults(a, b core.RankedResult) int {
	if c := cmp.Compare(b.FinalScore, a.FinalScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Film.VoteCount, a.Film.VoteCount); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Film.Title, b.Film.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.Film.ID, b.Film.ID)
}
