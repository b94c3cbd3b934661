package vocabulary

import "errors"

var (
	// ErrRepositoryRequired is returned when a vocabulary repository is not provided.
	ErrRepositoryRequired = errors.New("vocabulary repository required")

	// ErrInvalidSeed indicates a seed file that cannot be parsed.
	ErrInvalidSeed = errors.New("invalid vocabulary seed")
)
