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


// Package recobot recommends films from a local catalog for free-text
// requests. Database is the entry point: it owns the store and hands out
// the services that work on it.
package recobot

import (
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/ingestion"
	"github.com/poiesic/recobot/match"
	"github.com/poiesic/recobot/recommend"
	"github.com/poiesic/recobot/storage"
	"github.com/poiesic/recobot/storage/badger"
	"github.com/poiesic/recobot/vocabulary"
)

type Database struct {
	backend    *badger.Backend
	films      storage.FilmRepository
	vocabRepo  storage.VocabularyRepository
	vocabulary *vocabulary.Service
	cfg        *config.Config
	now        func() time.Time
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	cfg      *config.Config
	inMemory bool
	now      func() time.Time
	logger   *slog.Logger
}

// WithConfig sets the tuning configuration. Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.cfg = cfg
	}
}

// WithInMemory keeps everything in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithClock sets the clock used for relative eras and year extraction.
func WithClock(now func() time.Time) DatabaseOption {
	return func(o *databaseOptions) {
		o.now = now
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.cfg == nil {
		options.cfg = config.DefaultConfig()
	}
	if options.now == nil {
		options.now = time.Now
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	films, err := badger.NewFilmRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vocabRepo, err := badger.NewVocabularyRepository(backend)
	if err != nil {
		films.Close()
		backend.Close()
		return nil, err
	}

	// The matcher decides which subcategories can ever match, so it
	// guards vocabulary edits.
	matcher := match.New(options.cfg, match.WithClock(options.now))
	service, err := vocabulary.NewService(vocabRepo,
		vocabulary.WithLogger(options.logger),
		vocabulary.WithSubcategoryValidator(matcher))
	if err != nil {
		vocabRepo.Close()
		films.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:    backend,
		films:      films,
		vocabRepo:  vocabRepo,
		vocabulary: service,
		cfg:        options.cfg,
		now:        options.now,
		logger:     options.logger,
	}, nil
}

func (db *Database) Close() error {
	var errs []error
	if err := db.vocabRepo.Close(); err != nil {
		db.logger.Error("error closing vocabulary repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.films.Close(); err != nil {
		db.logger.Error("error closing film repository", "err", err)
		errs = append(errs, err)
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) Films() storage.FilmRepository {
	return db.films
}

func (db *Database) Vocabulary() *vocabulary.Service {
	return db.vocabulary
}

func (db *Database) Config() *config.Config {
	return db.cfg
}

// NewRecommender returns a recommender over the stored catalog and
// vocabulary. The vocabulary is reread for every query.
func (db *Database) NewRecommender(opts ...recommend.Option) (*recommend.Recommender, error) {
	base := []recommend.Option{
		recommend.WithLogger(db.logger),
		recommend.WithClock(db.now),
	}
	return recommend.NewRecommender(db.films, db.vocabulary, db.cfg, append(base, opts...)...)
}

// NewImporter returns a catalog importer. Callers must Release it.
func (db *Database) NewImporter(opts ...ingestion.Option) (*ingestion.Importer, error) {
	base := []ingestion.Option{ingestion.WithLogger(db.logger)}
	return ingestion.NewImporter(db.films, db.cfg.Import, append(base, opts...)...)
}
