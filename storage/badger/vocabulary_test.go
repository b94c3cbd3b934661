package badger

import (
	"context"
	"testing"

	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyRepository_Entries(t *testing.T) {
	filmRepo, vocabRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { vocabRepo.Close(); filmRepo.Close(); backend.Close() }()

	ctx := context.Background()

	err = vocabRepo.PutEntries(ctx,
		&core.VocabularyEntry{Word: "combat", Category: core.CategoryGenre, Subcategory: "action"},
		&core.VocabularyEntry{Word: "far west", Category: core.CategoryTheme, Subcategory: "western"},
	)
	require.NoError(t, err)

	entry, err := vocabRepo.GetEntry(ctx, "far west")
	require.NoError(t, err)
	assert.Equal(t, core.CategoryTheme, entry.Category)
	assert.Equal(t, "western", entry.Subcategory)

	_, err = vocabRepo.GetEntry(ctx, "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Replace
	err = vocabRepo.PutEntries(ctx, &core.VocabularyEntry{Word: "combat", Category: core.CategoryTheme, Subcategory: "guerre"})
	require.NoError(t, err)

	entries, err := vocabRepo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "combat", entries[0].Word)
	assert.Equal(t, core.CategoryTheme, entries[0].Category)
	assert.Equal(t, "far west", entries[1].Word)

	require.NoError(t, vocabRepo.DeleteEntries(ctx, "combat"))
	assert.ErrorIs(t, vocabRepo.DeleteEntries(ctx, "combat"), storage.ErrNotFound)

	entriesCount, stopCount, err := vocabRepo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, entriesCount)
	assert.Equal(t, 0, stopCount)
}

func TestVocabularyRepository_StopWords(t *testing.T) {
	filmRepo, vocabRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { vocabRepo.Close(); filmRepo.Close(); backend.Close() }()

	ctx := context.Background()

	require.NoError(t, vocabRepo.PutStopWords(ctx, "le", "d", "un"))
	require.NoError(t, vocabRepo.PutStopWords(ctx, "le"))

	words, err := vocabRepo.AllStopWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "le", "un"}, words)

	require.NoError(t, vocabRepo.DeleteStopWords(ctx, "un"))
	assert.ErrorIs(t, vocabRepo.DeleteStopWords(ctx, "un"), storage.ErrNotFound)

	_, stopCount, err := vocabRepo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stopCount)
}
