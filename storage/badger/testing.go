package badger

import "github.com/poiesic/recobot/storage"

// NewMemoryRepositories creates in-memory film and vocabulary repositories for testing.
// Returns filmRepo, vocabRepo, backend, and error.
// Caller must close both repos and backend when done.
func NewMemoryRepositories() (storage.FilmRepository, storage.VocabularyRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	filmRepo, err := NewFilmRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	vocabRepo, err := NewVocabularyRepository(backend)
	if err != nil {
		filmRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return filmRepo, vocabRepo, backend, nil
}
