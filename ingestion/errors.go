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


package ingestion

import "errors"

var (
	// ErrFilmRepositoryRequired is returned when a film repository is not provided.
	ErrFilmRepositoryRequired = errors.New("film repository required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrMalformedDump is returned when an import file is neither a JSON
	// array nor a stream of JSON objects.
	ErrMalformedDump = errors.New("malformed catalog dump")

	// ErrMalformedRecord marks a single record that could not be converted.
	ErrMalformedRecord = errors.New("malformed catalog record")
)
