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
	"fmt"
	"math"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/recobot/core"
)

const (
	filmFormatVersion  = 1
	entryFormatVersion = 1
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalFilm serializes a FilmRecord to bytes.
func MarshalFilm(film *core.FilmRecord) []byte {
	var s sizer
	s.int(filmFormatVersion)
	s.uint64(uint64(film.ID))
	s.string(film.Title)
	s.string(film.Description)
	s.strings(film.Genres)
	s.strings(film.Themes)
	s.int(film.ReleaseYear)
	s.float64(film.AverageRating)
	s.int(film.VoteCount)
	s.float64(film.Popularity)

	w := writer{bs: make([]byte, s.n)}
	w.int(filmFormatVersion)
	w.uint64(uint64(film.ID))
	w.string(film.Title)
	w.string(film.Description)
	w.strings(film.Genres)
	w.strings(film.Themes)
	w.int(film.ReleaseYear)
	w.float64(film.AverageRating)
	w.int(film.VoteCount)
	w.float64(film.Popularity)
	return w.bs
}

// UnmarshalFilm deserializes a FilmRecord from bytes.
func UnmarshalFilm(data []byte) (*core.FilmRecord, error) {
	r := reader{bs: data}
	if v := r.int(); r.err == nil && v != filmFormatVersion {
		return nil, fmt.Errorf("%w: %w: film v%d", ErrSerializationFailed, ErrUnsupportedVersion, v)
	}
	film := &core.FilmRecord{
		ID:            core.ID(r.uint64()),
		Title:         r.string(),
		Description:   r.string(),
		Genres:        r.strings(),
		Themes:        r.strings(),
		ReleaseYear:   r.int(),
		AverageRating: r.float64(),
		VoteCount:     r.int(),
		Popularity:    r.float64(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: film: %w", ErrSerializationFailed, r.err)
	}
	return film, nil
}

// MarshalVocabularyEntry serializes a VocabularyEntry to bytes.
func MarshalVocabularyEntry(entry *core.VocabularyEntry) []byte {
	var s sizer
	s.int(entryFormatVersion)
	s.string(entry.Word)
	s.int(int(entry.Category))
	s.string(entry.Subcategory)

	w := writer{bs: make([]byte, s.n)}
	w.int(entryFormatVersion)
	w.string(entry.Word)
	w.int(int(entry.Category))
	w.string(entry.Subcategory)
	return w.bs
}

// UnmarshalVocabularyEntry deserializes a VocabularyEntry from bytes.
func UnmarshalVocabularyEntry(data []byte) (*core.VocabularyEntry, error) {
	r := reader{bs: data}
	if v := r.int(); r.err == nil && v != entryFormatVersion {
		return nil, fmt.Errorf("%w: %w: entry v%d", ErrSerializationFailed, ErrUnsupportedVersion, v)
	}
	entry := &core.VocabularyEntry{
		Word:        r.string(),
		Category:    core.Category(r.int()),
		Subcategory: r.string(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: vocabulary entry: %w", ErrSerializationFailed, r.err)
	}
	return entry, nil
}

// sizer accumulates the encoded size of a record.
type sizer struct {
	n int
}

func (s *sizer) int(v int)         { s.n += varint.Int.Size(v) }
func (s *sizer) uint64(v uint64)   { s.n += varint.Uint64.Size(v) }
func (s *sizer) float64(v float64) { s.uint64(math.Float64bits(v)) }
func (s *sizer) string(v string)   { s.n += ord.String.Size(v) }

func (s *sizer) strings(v []string) {
	s.int(len(v))
	for _, str := range v {
		s.string(str)
	}
}

// writer encodes into a buffer sized by sizer.
type writer struct {
	bs []byte
	n  int
}

func (w *writer) int(v int)         { w.n += varint.Int.Marshal(v, w.bs[w.n:]) }
func (w *writer) uint64(v uint64)   { w.n += varint.Uint64.Marshal(v, w.bs[w.n:]) }
func (w *writer) float64(v float64) { w.uint64(math.Float64bits(v)) }
func (w *writer) string(v string)   { w.n += ord.String.Marshal(v, w.bs[w.n:]) }

func (w *writer) strings(v []string) {
	w.int(len(v))
	for _, str := range v {
		w.string(str)
	}
}

// reader decodes sequentially and remembers the first error. Once an error
// is recorded every further read returns a zero value.
type reader struct {
	bs  []byte
	n   int
	err error
}

func (r *reader) int() int {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *reader) uint64() uint64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *reader) float64() float64 {
	return math.Float64frombits(r.uint64())
}

func (r *reader) string() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *reader) strings() []string {
	count := r.int()
	if r.err != nil {
		return nil
	}
	// Every string takes at least one byte.
	if count < 0 || count > len(r.bs)-r.n {
		r.err = ErrTruncatedData
		return nil
	}
	if count == 0 {
		return nil
	}
	out := make([]string, 0, count)
	for range count {
		out = append(out, r.string())
	}
	return out
}
