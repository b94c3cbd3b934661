package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().Int()).Valid()
	})
	return v
}

// ValidateFilm validates a FilmRecord before it is scored or stored.
//
// Validation rules:
//   - ID must be non-zero
//   - Title must contain at least one letter or digit
//   - AverageRating must be a number in [0, 10]
//   - VoteCount and Popularity must not be negative
//   - ReleaseYear is either 0 (unknown) or a plausible year
//   - Genres and Themes must not contain empty names
func ValidateFilm(film *FilmRecord) error {
	if film == nil {
		return fmt.Errorf("%w: %w: record is nil", ErrValidation, ErrInvalidFilm)
	}
	if err := validate.Struct(film); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidFilm, err)
	}
	if NormalizeKey(film.Title) == "" {
		return fmt.Errorf("%w: %w: title has no words", ErrValidation, ErrInvalidFilm)
	}
	return nil
}

// ValidateVocabularyEntry validates a VocabularyEntry. Subcategory rules
// depend on matching configuration and are checked by the matcher.
func ValidateVocabularyEntry(entry *VocabularyEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: %w: entry is nil", ErrValidation, ErrInvalidVocabularyEntry)
	}
	if NormalizeKey(entry.Word) == "" {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidVocabularyEntry, ErrEmptyWord)
	}
	if err := validate.Struct(entry); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidVocabularyEntry, err)
	}
	return nil
}

// ValidateStopWord checks that word normalizes to exactly one token and
// returns that token.
func ValidateStopWord(word string) (string, error) {
	tokens := Tokenize(word)
	switch len(tokens) {
	case 0:
		return "", fmt.Errorf("%w: %w", ErrValidation, ErrEmptyWord)
	case 1:
		return tokens[0], nil
	default:
		return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrMultiTokenStopWord, word)
	}
}
