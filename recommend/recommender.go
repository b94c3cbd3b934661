package recommend

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/poiesic/recobot/analyzer"
	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/match"
	"github.com/poiesic/recobot/rank"
	"github.com/poiesic/recobot/vocabulary"
)

// Catalog supplies the films to rank.
type Catalog interface {
	// GetAllFilms yields the whole catalog. A record that cannot be decoded
	// is yielded as a *core.LocalDataError and iteration continues; any
	// other error ends the sequence.
	GetAllFilms(ctx context.Context) iter.Seq2[*core.FilmRecord, error]
}

// Recommender ranks the catalog against free-text queries.
type Recommender struct {
	catalog    Catalog
	vocabulary vocabulary.Source
	analyzer   *analyzer.Analyzer
	matcher    *match.Matcher
	ranker     *rank.Ranker
	monitor    Monitor
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor used by Recommend.
func WithMonitor(monitor Monitor) Option {
	return func(r *Recommender) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithClock sets the clock for year extraction and relative eras.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		r.now = now
		return nil
	}
}

// NewRecommender creates a new recommender.
func NewRecommender(catalog Catalog, vocab vocabulary.Source, cfg *config.Config, opts ...Option) (*Recommender, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Recommender{
		catalog:    catalog,
		vocabulary: vocab,
		monitor:    &noopMonitor{},
		now:        time.Now,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "recommender")

	r.analyzer = analyzer.New(cfg, analyzer.WithClock(r.now))
	r.matcher = match.New(cfg, match.WithClock(r.now))
	r.ranker = rank.New(cfg, r.matcher, rank.WithClock(r.now))
	return r, nil
}

// Recommend ranks the whole catalog against query, best first.
// An empty catalog yields an empty result, not an error.
func (r *Recommender) Recommend(ctx context.Context, query string) ([]core.RankedResult, error) {
	return r.RecommendWithMonitor(ctx, query, r.monitor)
}

// RecommendWithMonitor is Recommend reporting to monitor instead of the
// configured one.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, query string, monitor Monitor) ([]core.RankedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	vocab, err := r.vocabulary.Load(ctx)
	if err != nil {
		r.logger.Error("error loading vocabulary", "err", err)
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	terms := r.analyzer.Analyze(query, vocab)
	r.logger.Debug("query analyzed", "query", query, "terms", len(terms))
	monitor.AfterAnalysis(terms)

	films, err := r.loadCatalog(ctx, monitor)
	if err != nil {
		r.logger.Error("error reading catalog", "err", err)
		return nil, err
	}
	monitor.AfterCatalogLoad(films)

	results := r.ranker.Rank(terms, films)
	monitor.Finish(results)
	return results, nil
}

func (r *Recommender) loadCatalog(ctx context.Context, monitor Monitor) ([]*core.FilmRecord, error) {
	var films []*core.FilmRecord
	for film, err := range r.catalog.GetAllFilms(ctx) {
		if err != nil {
			var local *core.LocalDataError
			if !errors.As(err, &local) {
				return nil, fmt.Errorf("failed to read catalog: %w", err)
			}
			r.skip(local, monitor)
			continue
		}
		if err := core.ValidateFilm(film); err != nil {
			local := &core.LocalDataError{Err: err}
			if film != nil {
				local.FilmID = film.ID
			}
			r.skip(local, monitor)
			continue
		}
		films = append(films, film)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *Recommender) skip(err *core.LocalDataError, monitor Monitor) {
	r.logger.Warn("skipping catalog record", "film", err.FilmID, "err", err.Err)
	monitor.FilmSkipped(err)
}
