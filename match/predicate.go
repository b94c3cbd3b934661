package match

import (
	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
)

// predicate is a config.Predicate with its genre affinity normalized.
type predicate struct {
	config.Predicate
	genres []string
}

func compilePredicates(src map[string]config.Predicate) map[string]predicate {
	out := make(map[string]predicate, len(src))
	for name, p := range src {
		genres := make([]string, 0, len(p.Genres))
		for _, g := range p.Genres {
			if key := core.NormalizeKey(g); key != "" {
				genres = append(genres, key)
			}
		}
		out[core.NormalizeKey(name)] = predicate{Predicate: p, genres: genres}
	}
	return out
}

func (p predicate) holds(c *Candidate) bool {
	f := c.Film
	if f.AverageRating < p.MinRating || (p.MaxRating > 0 && f.AverageRating > p.MaxRating) {
		return false
	}
	if f.VoteCount < p.MinVotes || (p.MaxVotes > 0 && f.VoteCount > p.MaxVotes) {
		return false
	}
	if f.Popularity < p.MinPopularity || (p.MaxPopularity > 0 && f.Popularity > p.MaxPopularity) {
		return false
	}
	if len(p.genres) == 0 {
		return true
	}
	for _, g := range p.genres {
		if c.hasGenre(g) {
			return true
		}
	}
	return false
}
