// Package ingestion imports catalog dumps into the film store.
//
// The Importer accepts a JSON array of film objects or a stream of JSON
// objects (JSON lines). Field names of common movie database exports are
// understood: id or tmdb_id, overview or description, genres as an array of
// names, an array of {"name": ...} objects or a comma separated string,
// release_year or release_date.
//
// Records are decoded and validated concurrently on a worker pool and then
// written in batches. Writes are retried with exponential backoff. Records
// that fail to decode or validate are reported and skipped.
package ingestion
