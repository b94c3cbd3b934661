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


package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entities.
// Films imported without an upstream identifier get a content-based ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FilmRecord is a single catalog entry.
type FilmRecord struct {
	ID            ID       `validate:"required"`
	Title         string   `validate:"required"`
	Description   string
	Genres        []string `validate:"dive,required"`
	Themes        []string `validate:"dive,required"`
	ReleaseYear   int      `validate:"omitempty,gte=1870,lte=2200"` // 0 when unknown
	AverageRating float64  `validate:"gte=0,lte=10"`
	VoteCount     int      `validate:"gte=0"`
	Popularity    float64  `validate:"gte=0"`
}

// ContentKey is the text hashed into a film's ID when it has none.
func (f *FilmRecord) ContentKey() string {
	return NormalizeKey(f.Title) + "|" + strconv.Itoa(f.ReleaseYear)
}

// VocabularyEntry maps a normalized word or phrase to a category and
// subcategory. Word is the entry's unique key.
type VocabularyEntry struct {
	Word        string   `validate:"required"`
	Category    Category `validate:"category"`
	Subcategory string
}

// StopWord is a normalized token dropped from queries.
type StopWord struct {
	Word string `validate:"required"`
}

// SearchTerm is one unit of query meaning produced by the analyzer.
// A term whose Category is CategoryKeyword carries no resolved category.
type SearchTerm struct {
	RawText      string
	Category     Category
	Subcategory  string
	SourceWeight float64
}

// Target returns the value matched against categorical film fields:
// the subcategory when set, the raw text otherwise.
func (t SearchTerm) Target() string {
	if t.Subcategory != "" {
		return t.Subcategory
	}
	return t.RawText
}

func (t SearchTerm) String() string {
	if t.Category == CategoryKeyword {
		return "keyword:" + t.RawText
	}
	return t.Category.String() + ":" + t.Target()
}

// MatchSignal is evidence that one term matched one film field.
// Strength is always in (0, 1].
type MatchSignal struct {
	Term     SearchTerm
	Field    Field
	Strength float64
}

// RankedResult is one scored film in a recommendation.
type RankedResult struct {
	Film           *FilmRecord
	RelevanceScore float64
	QualityScore   float64
	FinalScore     float64
}
