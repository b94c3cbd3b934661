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


package storage

import (
	"context"
	"iter"

	"github.com/poiesic/recobot/core"
)

// FilmRepository provides operations for managing the film catalog.
// Implementations must be thread-safe and support concurrent access.
type FilmRepository interface {
	// AddFilms inserts or replaces films.
	// Films with ID=0 get a content-based ID from their title and year.
	// Returns the films with IDs populated.
	AddFilms(ctx context.Context, films ...*core.FilmRecord) ([]*core.FilmRecord, error)

	// DeleteFilms removes films by their IDs, including their title index entries.
	// Returns ErrNotFound if any film doesn't exist.
	DeleteFilms(ctx context.Context, ids ...core.ID) error

	// GetFilm retrieves a single film by ID.
	// Returns ErrNotFound if the film doesn't exist.
	GetFilm(ctx context.Context, id core.ID) (*core.FilmRecord, error)

	// GetAllFilms yields every stored film. A record that cannot be decoded
	// is yielded as a *core.LocalDataError and iteration continues; any
	// other error ends the sequence.
	GetAllFilms(ctx context.Context) iter.Seq2[*core.FilmRecord, error]

	// ListFilms returns films ordered by normalized title, skipping offset
	// films and returning at most limit. The total film count is returned
	// alongside for paging.
	ListFilms(ctx context.Context, offset, limit int) ([]*core.FilmRecord, int, error)

	// CountFilms returns the number of stored films.
	CountFilms(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}

// VocabularyRepository stores vocabulary entries and stop words, both keyed
// by their normalized word.
type VocabularyRepository interface {
	// PutEntries inserts or replaces vocabulary entries.
	PutEntries(ctx context.Context, entries ...*core.VocabularyEntry) error

	// GetEntry retrieves an entry by normalized word.
	// Returns ErrNotFound if the word is not in the vocabulary.
	GetEntry(ctx context.Context, word string) (*core.VocabularyEntry, error)

	// DeleteEntries removes entries by normalized word.
	// Returns ErrNotFound if any word is not in the vocabulary.
	DeleteEntries(ctx context.Context, words ...string) error

	// AllEntries returns every entry ordered by word.
	AllEntries(ctx context.Context) ([]*core.VocabularyEntry, error)

	// PutStopWords inserts normalized stop words. Existing words are kept.
	PutStopWords(ctx context.Context, words ...string) error

	// DeleteStopWords removes stop words.
	// Returns ErrNotFound if any word is not a stop word.
	DeleteStopWords(ctx context.Context, words ...string) error

	// AllStopWords returns every stop word in lexical order.
	AllStopWords(ctx context.Context) ([]string, error)

	// Counts returns the number of entries and stop words.
	Counts(ctx context.Context) (entries int, stopWords int, err error)

	// Close releases resources held by the repository.
	Close() error
}
