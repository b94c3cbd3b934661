package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Récent", "recent"},
		{"COMÉDIE", "comedie"},
		{"Noël à Paris", "noel a paris"},
		{"cœur", "coeur"},
		{"", ""},
		{"already plain", "already plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"elision", "film d'action récent", []string{"film", "d", "action", "recent"}},
		{"typographic apostrophe", "l’été", []string{"l", "ete"}},
		{"hyphen", "Science-Fiction", []string{"science", "fiction"}},
		{"punctuation and digits", "Top 10, années 90 !", []string{"top", "10", "annees", "90"}},
		{"only punctuation", "?! ...", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "science fiction", NormalizeKey("Science-Fiction"))
	assert.Equal(t, "science fiction", NormalizeKey("  science   FICTION "))
	assert.Equal(t, "far west", NormalizeKey("Far-West"))
	assert.Equal(t, "", NormalizeKey("--"))
}

func TestContainsRun(t *testing.T) {
	tokens := []string{"mad", "max", "fury", "road"}

	assert.True(t, ContainsRun(tokens, []string{"max"}))
	assert.True(t, ContainsRun(tokens, []string{"fury", "road"}))
	assert.True(t, ContainsRun(tokens, tokens))
	assert.False(t, ContainsRun(tokens, []string{"road", "fury"}))
	assert.False(t, ContainsRun(tokens, []string{"ma"}))
	assert.False(t, ContainsRun(tokens, nil))
	assert.False(t, ContainsRun(nil, []string{"max"}))
}
