package badger

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/recobot/core"
)

// Key prefixes for different data types
const (
	filmRecordPrefix  = "film:"
	filmTitlePrefix   = "filmt:"
	vocabEntryPrefix  = "vocab:"
	stopWordKeyPrefix = "stop:"
)

// makeFilmKey generates a key for a film by ID.
func makeFilmKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", filmRecordPrefix, id))
}

// filmIDFromKey recovers the ID from a key built by makeFilmKey.
func filmIDFromKey(key []byte) (core.ID, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(string(key), filmRecordPrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return core.ID(id), true
}

// makeFilmTitleKey generates a composite key for the title index.
// Format: prefix:normalizedTitle\x00id
func makeFilmTitleKey(title string, id core.ID) []byte {
	normalized := core.NormalizeKey(title)
	buf := make([]byte, len(filmTitlePrefix)+len(normalized)+1+8)
	offset := copy(buf, filmTitlePrefix)
	offset += copy(buf[offset:], normalized)
	buf[offset] = 0 // sorts "max" before "max 2"
	offset++
	// BigEndian keeps films sharing a title in ID order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// filmIDFromTitleKey extracts the ID suffix of a title index key.
func filmIDFromTitleKey(key []byte) core.ID {
	if len(key) < 8 {
		return 0
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// makeVocabularyKey generates a key for a vocabulary entry.
func makeVocabularyKey(word string) []byte {
	return []byte(vocabEntryPrefix + word)
}

// makeStopWordKey generates a key for a stop word.
func makeStopWordKey(word string) []byte {
	return []byte(stopWordKeyPrefix + word)
}
