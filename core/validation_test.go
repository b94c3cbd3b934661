package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() *FilmRecord {
	return &FilmRecord{
		ID:            1,
		Title:         "Mad Max: Fury Road",
		Description:   "Dans un monde post-apocalyptique...",
		Genres:        []string{"Action", "Aventure"},
		ReleaseYear:   2015,
		AverageRating: 7.6,
		VoteCount:     20000,
		Popularity:    80,
	}
}

func TestValidateFilm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *FilmRecord)
		wantErr bool
	}{
		{name: "valid film", mutate: func(*FilmRecord) {}},
		{name: "unknown release year", mutate: func(f *FilmRecord) { f.ReleaseYear = 0 }},
		{name: "zero id", mutate: func(f *FilmRecord) { f.ID = 0 }, wantErr: true},
		{name: "empty title", mutate: func(f *FilmRecord) { f.Title = "" }, wantErr: true},
		{name: "punctuation title", mutate: func(f *FilmRecord) { f.Title = "?!" }, wantErr: true},
		{name: "missing rating", mutate: func(f *FilmRecord) { f.AverageRating = math.NaN() }, wantErr: true},
		{name: "rating above ten", mutate: func(f *FilmRecord) { f.AverageRating = 11 }, wantErr: true},
		{name: "negative votes", mutate: func(f *FilmRecord) { f.VoteCount = -1 }, wantErr: true},
		{name: "negative popularity", mutate: func(f *FilmRecord) { f.Popularity = -3 }, wantErr: true},
		{name: "implausible year", mutate: func(f *FilmRecord) { f.ReleaseYear = 12 }, wantErr: true},
		{name: "empty genre", mutate: func(f *FilmRecord) { f.Genres = []string{"Action", ""} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			film := validFilm()
			tt.mutate(film)
			err := ValidateFilm(film)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, ErrInvalidFilm)
		})
	}

	t.Run("nil film", func(t *testing.T) {
		assert.ErrorIs(t, ValidateFilm(nil), ErrInvalidFilm)
	})
}

func TestValidateVocabularyEntry(t *testing.T) {
	require.NoError(t, ValidateVocabularyEntry(&VocabularyEntry{Word: "combat", Category: CategoryGenre, Subcategory: "action"}))
	require.NoError(t, ValidateVocabularyEntry(&VocabularyEntry{Word: "film", Category: CategoryKeyword}))

	err := ValidateVocabularyEntry(&VocabularyEntry{Word: "  ", Category: CategoryGenre})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrEmptyWord)

	err = ValidateVocabularyEntry(&VocabularyEntry{Word: "combat", Category: Category(99)})
	assert.ErrorIs(t, err, ErrInvalidVocabularyEntry)

	assert.ErrorIs(t, ValidateVocabularyEntry(nil), ErrValidation)
}

func TestValidateStopWord(t *testing.T) {
	word, err := ValidateStopWord("  D' ")
	require.NoError(t, err)
	assert.Equal(t, "d", word)

	_, err = ValidateStopWord("")
	assert.ErrorIs(t, err, ErrEmptyWord)

	_, err = ValidateStopWord("un film")
	assert.ErrorIs(t, err, ErrMultiTokenStopWord)
	assert.ErrorIs(t, err, ErrValidation)
}
