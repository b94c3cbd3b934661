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


package badger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
)

// errStopIteration ends a scan early when the consumer stops ranging.
var errStopIteration = errors.New("stop iteration")

// FilmRepository implements storage.FilmRepository for BadgerDB.
type FilmRepository struct {
	backend *Backend
}

var _ storage.FilmRepository = (*FilmRepository)(nil)

// NewFilmRepository creates a new FilmRepository.
func NewFilmRepository(backend *Backend) (*FilmRepository, error) {
	if backend == nil {
		return nil, errors.New("badger backend required")
	}
	return &FilmRepository{
		backend: backend,
	}, nil
}

// Close releases resources. FilmRepository has no resources to release.
func (r *FilmRepository) Close() error {
	return nil
}

// AddFilms inserts or replaces films and maintains the title index.
func (r *FilmRepository) AddFilms(ctx context.Context, films ...*core.FilmRecord) ([]*core.FilmRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, film := range films {
			if film.ID == 0 {
				film.ID = core.IDFromContent(film.ContentKey())
			}
			key := makeFilmKey(film.ID)

			// Drop the old title index entry when replacing
			old, err := readFilm(tx, key)
			switch {
			case errors.Is(err, storage.ErrSerializationFailed):
				if err := deleteTitleIndex(tx, film.ID); err != nil {
					return err
				}
			case err != nil:
				return err
			case old != nil && core.NormalizeKey(old.Title) != core.NormalizeKey(film.Title):
				if err := tx.Delete(makeFilmTitleKey(old.Title, old.ID)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalFilm(film)); err != nil {
				return err
			}
			if err := tx.Set(makeFilmTitleKey(film.Title, film.ID), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return films, err
}

// DeleteFilms removes films by their IDs.
func (r *FilmRepository) DeleteFilms(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFilmKey(id)

			film, err := readFilm(tx, key)
			switch {
			case errors.Is(err, storage.ErrSerializationFailed):
				// Undecodable record: find its index entry by ID instead
				if err := deleteTitleIndex(tx, id); err != nil {
					return err
				}
			case err != nil:
				return err
			case film == nil:
				return fmt.Errorf("%w: film %d", storage.ErrNotFound, id)
			default:
				if err := tx.Delete(makeFilmTitleKey(film.Title, film.ID)); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFilm retrieves a single film by ID.
func (r *FilmRepository) GetFilm(ctx context.Context, id core.ID) (*core.FilmRecord, error) {
	var result *core.FilmRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readFilm(tx, makeFilmKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllFilms yields every stored film within a single read transaction.
func (r *FilmRepository) GetAllFilms(ctx context.Context) iter.Seq2[*core.FilmRecord, error] {
	return func(yield func(*core.FilmRecord, error) bool) {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(filmRecordPrefix)
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				item := it.Item()
				var film *core.FilmRecord
				err := item.Value(func(val []byte) error {
					var err error
					film, err = storage.UnmarshalFilm(val)
					return err
				})
				if errors.Is(err, storage.ErrSerializationFailed) {
					key := item.KeyCopy(nil)
					id, _ := filmIDFromKey(key)
					if !yield(nil, &core.LocalDataError{FilmID: id, Key: string(key), Err: err}) {
						return errStopIteration
					}
					continue
				}
				if err != nil {
					return err
				}
				if !yield(film, nil) {
					return errStopIteration
				}
			}
			return nil
		}, false)

		if err != nil && !errors.Is(err, errStopIteration) {
			yield(nil, err)
		}
	}
}

// ListFilms pages through films in title order using the title index.
func (r *FilmRepository) ListFilms(ctx context.Context, offset, limit int) ([]*core.FilmRecord, int, error) {
	if offset < 0 || limit < 0 {
		return nil, 0, fmt.Errorf("%w: offset %d, limit %d", storage.ErrInvalidQuery, offset, limit)
	}

	var (
		films []*core.FilmRecord
		total int
	)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(filmTitlePrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			position := total
			total++
			if position < offset || (limit > 0 && position >= offset+limit) {
				continue
			}

			id := filmIDFromTitleKey(it.Item().Key())
			film, err := readFilm(tx, makeFilmKey(id))
			if errors.Is(err, storage.ErrSerializationFailed) {
				r.backend.logger.Warn("skipping undecodable film", "id", id, "err", err)
				continue
			}
			if err != nil {
				return err
			}
			if film != nil {
				films = append(films, film)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, 0, err
	}
	return films, total, nil
}

// CountFilms returns the number of stored films.
func (r *FilmRepository) CountFilms(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		count = countPrefix(tx, []byte(filmRecordPrefix))
		return nil
	}, false)
	return count, err
}

// deleteTitleIndex removes the title index entry of id by scanning the index.
func deleteTitleIndex(tx *badger.Txn, id core.ID) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(filmTitlePrefix)
	it := tx.NewIterator(opts)

	// Read-write transactions allow one open iterator, so collect first.
	var stale [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		if filmIDFromTitleKey(it.Item().Key()) == id {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
	}
	it.Close()

	for _, key := range stale {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// readFilm returns nil, nil when the key does not exist.
func readFilm(tx *badger.Txn, key []byte) (*core.FilmRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var film *core.FilmRecord
	err = item.Value(func(val []byte) error {
		var err error
		film, err = storage.UnmarshalFilm(val)
		return err
	})
	return film, err
}
