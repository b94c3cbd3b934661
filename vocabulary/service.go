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


package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
)

// SubcategoryValidator decides whether a subcategory can ever match.
type SubcategoryValidator interface {
	ValidateSubcategory(category core.Category, subcategory string) error
}

// Service manages the persisted vocabulary.
type Service struct {
	repo      storage.VocabularyRepository
	validator SubcategoryValidator
	logger    *slog.Logger
}

var _ Source = (*Service)(nil)

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSubcategoryValidator checks subcategories of new entries.
// Without one, any non-empty subcategory is accepted.
func WithSubcategoryValidator(v SubcategoryValidator) Option {
	return func(s *Service) error {
		s.validator = v
		return nil
	}
}

// NewService creates a vocabulary service over repo.
func NewService(repo storage.VocabularyRepository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Service{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "vocabulary")
	return s, nil
}

// Load reads the whole vocabulary into a new Snapshot.
func (s *Service) Load(ctx context.Context) (Provider, error) {
	entries, err := s.repo.AllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary entries: %w", err)
	}
	stopWords, err := s.repo.AllStopWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}

	values := make([]core.VocabularyEntry, len(entries))
	for i, entry := range entries {
		values[i] = *entry
	}
	return NewSnapshot(values, stopWords), nil
}

// AddWord adds or replaces a vocabulary entry. The category is parsed by
// name (English or French). An empty subcategory defaults to the word itself
// for categorical entries. Nothing is stored when validation fails.
func (s *Service) AddWord(ctx context.Context, word, category, subcategory string) (*core.VocabularyEntry, error) {
	c, err := core.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrValidation, err)
	}
	return s.AddEntry(ctx, core.VocabularyEntry{Word: word, Category: c, Subcategory: subcategory})
}

// AddEntry validates, normalizes and stores entry.
func (s *Service) AddEntry(ctx context.Context, entry core.VocabularyEntry) (*core.VocabularyEntry, error) {
	normalized, err := s.prepare(entry)
	if err != nil {
		return nil, err
	}
	if err := s.repo.PutEntries(ctx, normalized); err != nil {
		return nil, err
	}
	s.logger.Debug("vocabulary entry stored", "word", normalized.Word,
		"category", normalized.Category, "subcategory", normalized.Subcategory)
	return normalized, nil
}

func (s *Service) prepare(entry core.VocabularyEntry) (*core.VocabularyEntry, error) {
	if err := core.ValidateVocabularyEntry(&entry); err != nil {
		return nil, err
	}

	out := &core.VocabularyEntry{
		Word:        core.NormalizeKey(entry.Word),
		Category:    entry.Category,
		Subcategory: core.NormalizeKey(entry.Subcategory),
	}
	if out.Subcategory == "" && out.Category != core.CategoryKeyword {
		out.Subcategory = out.Word
	}

	if s.validator != nil {
		if err := s.validator.ValidateSubcategory(out.Category, out.Subcategory); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrValidation, err)
		}
	}
	return out, nil
}

// AddStopWord adds a single-token stop word and returns its normalized form.
func (s *Service) AddStopWord(ctx context.Context, word string) (string, error) {
	token, err := core.ValidateStopWord(word)
	if err != nil {
		return "", err
	}
	if err := s.repo.PutStopWords(ctx, token); err != nil {
		return "", err
	}
	s.logger.Debug("stop word stored", "word", token)
	return token, nil
}

// DeleteWord removes a vocabulary entry.
func (s *Service) DeleteWord(ctx context.Context, word string) error {
	return s.repo.DeleteEntries(ctx, core.NormalizeKey(word))
}

// DeleteStopWord removes a stop word.
func (s *Service) DeleteStopWord(ctx context.Context, word string) error {
	return s.repo.DeleteStopWords(ctx, core.NormalizeKey(word))
}

// Entries returns every stored entry ordered by word.
func (s *Service) Entries(ctx context.Context) ([]*core.VocabularyEntry, error) {
	return s.repo.AllEntries(ctx)
}

// StopWords returns every stored stop word.
func (s *Service) StopWords(ctx context.Context) ([]string, error) {
	return s.repo.AllStopWords(ctx)
}

// ApplyReport summarizes a seed application.
type ApplyReport struct {
	Entries   int
	StopWords int
	Rejected  []error
}

// Apply stores every valid entry and stop word of seed. Invalid items are
// collected in the report instead of aborting the whole seed.
func (s *Service) Apply(ctx context.Context, seed *Seed) (*ApplyReport, error) {
	report := &ApplyReport{}

	var entries []*core.VocabularyEntry
	for _, entry := range seed.Entries() {
		prepared, err := s.prepare(entry)
		if err != nil {
			report.Rejected = append(report.Rejected, fmt.Errorf("word %q: %w", entry.Word, err))
			continue
		}
		entries = append(entries, prepared)
	}

	var stopWords []string
	for _, word := range seed.StopWords {
		token, err := core.ValidateStopWord(word)
		if err != nil {
			report.Rejected = append(report.Rejected, fmt.Errorf("stop word %q: %w", word, err))
			continue
		}
		stopWords = append(stopWords, token)
	}

	if len(entries) > 0 {
		if err := s.repo.PutEntries(ctx, entries...); err != nil {
			return nil, err
		}
	}
	if len(stopWords) > 0 {
		if err := s.repo.PutStopWords(ctx, stopWords...); err != nil {
			return nil, err
		}
	}

	report.Entries = len(entries)
	report.StopWords = len(stopWords)
	for _, rejected := range report.Rejected {
		s.logger.Warn("seed item rejected", "err", rejected)
	}
	return report, nil
}

// Seed installs the default vocabulary when the store holds no entries and
// no stop words. It reports whether anything was installed.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	entries, stopWords, err := s.repo.Counts(ctx)
	if err != nil {
		return false, err
	}
	if entries > 0 || stopWords > 0 {
		return false, nil
	}

	report, err := s.Apply(ctx, Defaults())
	if err != nil {
		return false, err
	}
	s.logger.Info("default vocabulary installed", "entries", report.Entries, "stopWords", report.StopWords)
	return true, nil
}

// ImportFile applies a YAML seed file.
func (s *Service) ImportFile(ctx context.Context, path string) (*ApplyReport, error) {
	seed, err := LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, seed)
}
