package vocabulary

import (
	"context"
	"strings"

	"github.com/poiesic/recobot/core"
)

// Provider answers vocabulary questions for normalized tokens.
type Provider interface {
	// LookupWord returns the entry for a single word or phrase.
	LookupWord(word string) (core.VocabularyEntry, bool)

	// IsStopWord reports whether token is dropped from queries.
	IsStopWord(token string) bool

	// LongestPhraseMatch returns the longest entry whose word is a prefix
	// run of tokens, and how many tokens it spans.
	LongestPhraseMatch(tokens []string) (core.VocabularyEntry, int, bool)
}

// Source yields a Provider reflecting the current vocabulary.
type Source interface {
	Load(ctx context.Context) (Provider, error)
}

// Snapshot is an immutable in-memory Provider.
type Snapshot struct {
	entries   map[string]core.VocabularyEntry
	stopWords map[string]struct{}
	maxTokens int
}

var (
	_ Provider = (*Snapshot)(nil)
	_ Source   = (*Snapshot)(nil)
)

// NewSnapshot builds a Snapshot. Words are normalized; when two entries
// share a normalized word the later one wins.
func NewSnapshot(entries []core.VocabularyEntry, stopWords []string) *Snapshot {
	s := &Snapshot{
		entries:   make(map[string]core.VocabularyEntry, len(entries)),
		stopWords: make(map[string]struct{}, len(stopWords)),
	}
	for _, entry := range entries {
		key := core.NormalizeKey(entry.Word)
		if key == "" {
			continue
		}
		entry.Word = key
		s.entries[key] = entry
		if n := strings.Count(key, " ") + 1; n > s.maxTokens {
			s.maxTokens = n
		}
	}
	for _, word := range stopWords {
		if key := core.NormalizeKey(word); key != "" {
			s.stopWords[key] = struct{}{}
		}
	}
	return s
}

// Load returns the snapshot itself.
func (s *Snapshot) Load(context.Context) (Provider, error) {
	return s, nil
}

func (s *Snapshot) LookupWord(word string) (core.VocabularyEntry, bool) {
	entry, ok := s.entries[core.NormalizeKey(word)]
	return entry, ok
}

func (s *Snapshot) IsStopWord(token string) bool {
	_, ok := s.stopWords[core.NormalizeKey(token)]
	return ok
}

func (s *Snapshot) LongestPhraseMatch(tokens []string) (core.VocabularyEntry, int, bool) {
	for n := min(s.maxTokens, len(tokens)); n > 0; n-- {
		if entry, ok := s.entries[strings.Join(tokens[:n], " ")]; ok {
			return entry, n, true
		}
	}
	return core.VocabularyEntry{}, 0, false
}

// Len returns the number of entries and stop words.
func (s *Snapshot) Len() (entries, stopWords int) {
	return len(s.entries), len(s.stopWords)
}
