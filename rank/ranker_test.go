package rank

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock2016() time.Time {
	return time.Date(2016, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func newRanker(opts ...config.ConfigOption) *Ranker {
	cfg := config.NewConfig(opts...)
	return New(cfg, match.New(cfg, match.WithClock(clock2016)), WithClock(clock2016))
}

func titles(results []core.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Film.Title
	}
	return out
}

func scenarioCatalog() []*core.FilmRecord {
	return []*core.FilmRecord{
		{ID: 2, Title: "Old Western", Genres: []string{"action"}, ReleaseYear: 1965, AverageRating: 7.0, VoteCount: 500, Popularity: 1.0},
		{ID: 1, Title: "Mad Max", Genres: []string{"action"}, ReleaseYear: 2015, AverageRating: 8.1, VoteCount: 50000, Popularity: 9.0},
	}
}

func TestRank_Scenario(t *testing.T) {
	terms := []core.SearchTerm{
		{RawText: "action", Category: core.CategoryGenre, Subcategory: "action", SourceWeight: 1},
		{RawText: "recent", Category: core.CategoryEra, Subcategory: "recent", SourceWeight: 1},
		{RawText: "film", Category: core.CategoryKeyword, SourceWeight: 1},
	}

	results := newRanker().Rank(terms, scenarioCatalog())

	require.Len(t, results, 2)
	assert.Equal(t, "Mad Max", results[0].Film.Title)
	assert.InDelta(t, 4.0, results[0].RelevanceScore, 1e-9, "genre and era, field weight 2 each")
	assert.InDelta(t, 2.0, results[1].RelevanceScore, 1e-9, "genre only")
	for _, r := range results {
		assert.InDelta(t, r.RelevanceScore+r.QualityScore, r.FinalScore, 1e-9)
	}
}

func TestRank_QualityFallback(t *testing.T) {
	films := []*core.FilmRecord{
		{ID: 1, Title: "Moyen", AverageRating: 6, VoteCount: 1000, Popularity: 10},
		{ID: 2, Title: "Excellent", AverageRating: 9, VoteCount: 20000, Popularity: 80},
		{ID: 3, Title: "Confidentiel", AverageRating: 8, VoteCount: 10, Popularity: 0.5},
		{ID: 4, Title: "Mauvais", AverageRating: 2, VoteCount: 300, Popularity: 3},
	}
	r := newRanker()

	for name, terms := range map[string][]core.SearchTerm{
		"no terms":      nil,
		"nothing found": {{RawText: "zzz", Category: core.CategoryKeyword, SourceWeight: 1}},
	} {
		t.Run(name, func(t *testing.T) {
			results := r.Rank(terms, films)
			require.Len(t, results, len(films))
			for i, res := range results {
				assert.Zero(t, res.RelevanceScore)
				assert.Equal(t, res.QualityScore, res.FinalScore)
				if i > 0 {
					assert.Greater(t, results[i-1].QualityScore, res.QualityScore)
				}
			}
			assert.Equal(t, []string{"Excellent", "Moyen", "Confidentiel", "Mauvais"}, titles(results))
		})
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	results := newRanker().Rank([]core.SearchTerm{{RawText: "action", SourceWeight: 1}}, nil)
	assert.Empty(t, results)
}

func TestRank_Quality(t *testing.T) {
	r := newRanker()

	tests := []struct {
		name string
		film core.FilmRecord
		want float64
	}{
		{"no votes", core.FilmRecord{AverageRating: 8, VoteCount: 0, Popularity: 50}, 0},
		{"no popularity", core.FilmRecord{AverageRating: 8, VoteCount: 99}, 8 * math.Log(100)},
		{"half scale", core.FilmRecord{AverageRating: 8, VoteCount: 99, Popularity: 50}, 8 * math.Log(100) * 1.25},
		{"capped", core.FilmRecord{AverageRating: 8, VoteCount: 99, Popularity: 5000}, 8 * math.Log(100) * 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Quality(&tt.film), 1e-9)
		})
	}

	t.Run("votes are dampened", func(t *testing.T) {
		few := r.Quality(&core.FilmRecord{AverageRating: 7, VoteCount: 10})
		many := r.Quality(&core.FilmRecord{AverageRating: 7, VoteCount: 10000})
		assert.Less(t, many/few, 5.0)
	})
}

func TestRank_ZeroPopularityScale(t *testing.T) {
	r := newRanker(config.WithPopularity(0, 0.5))

	q := r.Quality(&core.FilmRecord{AverageRating: 8, VoteCount: 99})
	assert.False(t, math.IsNaN(q))
	assert.InDelta(t, 8*math.Log(100), q, 1e-9)

	results := r.Rank(nil, []*core.FilmRecord{
		{ID: 1, Title: "B", AverageRating: 6, VoteCount: 10},
		{ID: 2, Title: "A", AverageRating: 8, VoteCount: 10},
	})
	assert.Equal(t, []string{"A", "B"}, titles(results))
}

func TestRank_Monotonic(t *testing.T) {
	terms := []core.SearchTerm{{RawText: "drame", Category: core.CategoryGenre, Subcategory: "drame", SourceWeight: 1}}
	other := &core.FilmRecord{ID: 1, Title: "Autre", Genres: []string{"drame"}, AverageRating: 7, VoteCount: 100}
	before := &core.FilmRecord{ID: 2, Title: "Cible", Genres: []string{"comedie"}, AverageRating: 6, VoteCount: 400, Popularity: 5}
	after := *before
	after.Genres = []string{"comedie", "drame"}

	r := newRanker()
	scoreOf := func(films []*core.FilmRecord, id core.ID) float64 {
		for _, res := range r.Rank(terms, films) {
			if res.Film.ID == id {
				return res.FinalScore
			}
		}
		t.Fatalf("film %d not ranked", id)
		return 0
	}

	assert.GreaterOrEqual(t, scoreOf([]*core.FilmRecord{other, &after}, 2), scoreOf([]*core.FilmRecord{other, before}, 2))
	assert.GreaterOrEqual(t, scoreOf([]*core.FilmRecord{&after}, 2), scoreOf([]*core.FilmRecord{before}, 2))
}

func TestRank_TieBreak(t *testing.T) {
	films := []*core.FilmRecord{
		{ID: 5, Title: "Zorro", AverageRating: 7, VoteCount: 100, Popularity: 5},
		{ID: 4, Title: "Amélie", AverageRating: 7, VoteCount: 100, Popularity: 5},
		{ID: 3, Title: "Amélie", AverageRating: 7, VoteCount: 100, Popularity: 5},
		{ID: 2, Title: "Peu de votes", AverageRating: 0, VoteCount: 10},
		{ID: 1, Title: "Beaucoup de votes", AverageRating: 0, VoteCount: 20},
	}

	results := newRanker().Rank(nil, films)

	assert.Equal(t, []string{"Amélie", "Amélie", "Zorro", "Beaucoup de votes", "Peu de votes"}, titles(results))
	assert.Equal(t, core.ID(3), results[0].Film.ID)
	assert.Equal(t, core.ID(4), results[1].Film.ID)
}

func TestRank_Deterministic(t *testing.T) {
	terms := []core.SearchTerm{
		{RawText: "action", Category: core.CategoryGenre, Subcategory: "action", SourceWeight: 1},
		{RawText: "max", Category: core.CategoryKeyword, SourceWeight: 1},
	}
	films := append(scenarioCatalog(),
		&core.FilmRecord{ID: 3, Title: "Max et les ferrailleurs", AverageRating: 6.8, VoteCount: 900, Popularity: 2},
		&core.FilmRecord{ID: 4, Title: "Taxi", Genres: []string{"action", "comedie"}, AverageRating: 6.1, VoteCount: 3000, Popularity: 12},
	)
	r := newRanker()

	first := r.Rank(terms, films)
	second := r.Rank(terms, films)
	assert.Equal(t, first, second)

	reversed := slices.Clone(films)
	slices.Reverse(reversed)
	assert.Equal(t, titles(first), titles(r.Rank(terms, reversed)))
}

func TestRank_Weights(t *testing.T) {
	terms := []core.SearchTerm{{RawText: "action", Category: core.CategoryGenre, Subcategory: "action", SourceWeight: 1.5}}
	film := &core.FilmRecord{ID: 1, Title: "Sans titre", Genres: []string{"action"}, AverageRating: 5, VoteCount: 10}

	r := newRanker(config.WithScoreBlend(2, 0.5))
	results := r.Rank(terms, []*core.FilmRecord{film})

	require.Len(t, results, 1)
	res := results[0]
	assert.InDelta(t, 1.5*2.0, res.RelevanceScore, 1e-9)
	assert.InDelta(t, 2*res.RelevanceScore+0.5*res.QualityScore, res.FinalScore, 1e-9)
}
