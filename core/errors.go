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
	"errors"
	"fmt"
)

var (
	// ErrValidation marks every input or record validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrLocalData marks a catalog record that cannot be used for scoring.
	ErrLocalData = errors.New("invalid local data")

	// ErrInvalidFilm indicates a FilmRecord failed validation.
	ErrInvalidFilm = errors.New("invalid film record")

	// ErrInvalidVocabularyEntry indicates a VocabularyEntry failed validation.
	ErrInvalidVocabularyEntry = errors.New("invalid vocabulary entry")

	// ErrEmptyWord indicates a word normalizes to nothing.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrMultiTokenStopWord indicates a stop word spans more than one token.
	ErrMultiTokenStopWord = errors.New("stop word must be a single token")

	// ErrUnknownCategory indicates a category name that is not recognized.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidSubcategory indicates a subcategory that cannot be matched.
	ErrInvalidSubcategory = errors.New("invalid subcategory")
)

// LocalDataError reports a catalog record that failed to decode or
// validate. Such records are skipped, never fatal to a query.
type LocalDataError struct {
	FilmID ID
	Key    string
	Err    error
}

func (e *LocalDataError) Error() string {
	switch {
	case e.FilmID != 0:
		return fmt.Sprintf("film %d: %v", e.FilmID, e.Err)
	case e.Key != "":
		return fmt.Sprintf("film record %q: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("film record: %v", e.Err)
	}
}

func (e *LocalDataError) Unwrap() error {
	return e.Err
}

// Is makes every LocalDataError match ErrLocalData.
func (e *LocalDataError) Is(target error) bool {
	return target == ErrLocalData
}
