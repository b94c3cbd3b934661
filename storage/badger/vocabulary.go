package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
)

// VocabularyRepository implements storage.VocabularyRepository for BadgerDB.
type VocabularyRepository struct {
	backend *Backend
}

var _ storage.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(backend *Backend) (*VocabularyRepository, error) {
	if backend == nil {
		return nil, errors.New("badger backend required")
	}
	return &VocabularyRepository{
		backend: backend,
	}, nil
}

// Close releases resources. VocabularyRepository has no resources to release.
func (r *VocabularyRepository) Close() error {
	return nil
}

// PutEntries inserts or replaces vocabulary entries.
func (r *VocabularyRepository) PutEntries(ctx context.Context, entries ...*core.VocabularyEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := tx.Set(makeVocabularyKey(entry.Word), storage.MarshalVocabularyEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves an entry by normalized word.
func (r *VocabularyRepository) GetEntry(ctx context.Context, word string) (*core.VocabularyEntry, error) {
	var entry *core.VocabularyEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVocabularyKey(word))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = storage.UnmarshalVocabularyEntry(val)
			return err
		})
	}, false)
	return entry, err
}

// DeleteEntries removes entries by normalized word.
func (r *VocabularyRepository) DeleteEntries(ctx context.Context, words ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, word := range words {
			if err := deleteExisting(tx, makeVocabularyKey(word)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AllEntries returns every entry ordered by word.
func (r *VocabularyRepository) AllEntries(ctx context.Context) ([]*core.VocabularyEntry, error) {
	var entries []*core.VocabularyEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vocabEntryPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalVocabularyEntry(val)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return fmt.Errorf("vocabulary key %q: %w", it.Item().Key(), err)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PutStopWords inserts normalized stop words.
func (r *VocabularyRepository) PutStopWords(ctx context.Context, words ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, word := range words {
			if err := tx.Set(makeStopWordKey(word), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteStopWords removes stop words.
func (r *VocabularyRepository) DeleteStopWords(ctx context.Context, words ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, word := range words {
			if err := deleteExisting(tx, makeStopWordKey(word)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AllStopWords returns every stop word in lexical order.
func (r *VocabularyRepository) AllStopWords(ctx context.Context) ([]string, error) {
	var words []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(stopWordKeyPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			words = append(words, strings.TrimPrefix(string(it.Item().Key()), stopWordKeyPrefix))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Counts returns the number of entries and stop words.
func (r *VocabularyRepository) Counts(ctx context.Context) (int, int, error) {
	var entries, stopWords int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		entries = countPrefix(tx, []byte(vocabEntryPrefix))
		stopWords = countPrefix(tx, []byte(stopWordKeyPrefix))
		return nil
	}, false)
	return entries, stopWords, err
}

// deleteExisting deletes key, failing with storage.ErrNotFound when absent.
func deleteExisting(tx *badger.Txn, key []byte) error {
	if _, err := tx.Get(key); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return err
	}
	return tx.Delete(key)
}
