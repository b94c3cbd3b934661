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

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
)

// Importer loads catalog dumps into a film repository. Records are decoded
// and validated on a worker pool, then stored in batches.
type Importer struct {
	films    storage.FilmRepository
	pool     *ants.Pool
	settings config.ImportConfig
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the number of decoding workers.
// Default is import.workers, or runtime.NumCPU() / 2 when that is 0.
func WithPoolSize(size int) Option {
	return func(i *Importer) error {
		pool, err := ants.NewPool(max(size, 1))
		if err != nil {
			return err
		}
		if i.pool != nil {
			i.pool.Release()
		}
		i.pool = pool
		return nil
	}
}

// WithProgress reports progress to w.
func WithProgress(w io.Writer) Option {
	return func(i *Importer) error {
		i.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewImporter creates an importer writing to films.
func NewImporter(films storage.FilmRepository, settings config.ImportConfig, opts ...Option) (*Importer, error) {
	if films == nil {
		return nil, ErrFilmRepositoryRequired
	}

	poolSize := settings.Workers
	if poolSize <= 0 {
		poolSize = max(runtime.NumCPU()/2, 1)
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	i := &Importer{
		films:    films,
		pool:     pool,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			i.Release()
			return nil, err
		}
	}
	i.logger = i.logger.With("component", "importer")
	return i, nil
}

// Report summarizes an import.
type Report struct {
	Read     int
	Imported int
	// Rejected holds one error per record that was not imported, in input order.
	Rejected []error
	Duration time.Duration
}

// ImportFile imports the dump at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog dump: %w", err)
	}
	defer f.Close()
	return i.Import(ctx, f)
}

// Import reads a JSON array or JSON lines dump from r and stores every valid
// record. Invalid records are reported, not fatal. A store failure that
// persists after retries aborts the import; batches stored before it stay.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	start := time.Now()
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	report := &Report{Read: len(records)}
	var tracker *ProgressTracker
	if i.progress != nil {
		tracker = NewProgressTracker(i.progress, len(records), i.settings.ReportInterval, "films")
		tracker.Start()
	}

	batchSize := max(i.settings.BatchSize, 1)
	for offset := 0; offset < len(records); offset += batchSize {
		batch := records[offset:min(offset+batchSize, len(records))]
		films, rejected, err := i.decodeBatch(ctx, batch, offset)
		if err != nil {
			return report, err
		}
		report.Rejected = append(report.Rejected, rejected...)

		if len(films) > 0 {
			if err := i.store(ctx, films); err != nil {
				report.Duration = time.Since(start)
				return report, err
			}
			report.Imported += len(films)
		}
		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	if tracker != nil {
		tracker.Finish()
	}
	report.Duration = time.Since(start)
	i.logger.Info("catalog import finished", "read", report.Read,
		"imported", report.Imported, "rejected", len(report.Rejected), "elapsed", report.Duration)
	return report, nil
}

func (i *Importer) decodeBatch(ctx context.Context, batch []json.RawMessage, offset int) ([]*core.FilmRecord, []error, error) {
	films := make([]*core.FilmRecord, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	for n, data := range batch {
		wg.Add(1)
		err := i.pool.Submit(func() {
			defer wg.Done()
			films[n], errs[n] = decodeRecord(data)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, nil, fmt.Errorf("failed to schedule record decoding: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	valid := make([]*core.FilmRecord, 0, len(batch))
	var rejected []error
	for n, err := range errs {
		if err != nil {
			local := &core.LocalDataError{Key: fmt.Sprintf("record %d", offset+n+1), Err: err}
			i.logger.Warn("rejecting catalog record", "record", offset+n+1, "err", err)
			rejected = append(rejected, local)
			continue
		}
		valid = append(valid, films[n])
	}
	return valid, rejected, nil
}

func (i *Importer) store(ctx context.Context, films []*core.FilmRecord) error {
	err := RetryWithBackoff(ctx, i.logger, i.settings.MaxRetries, i.settings.RetryDelay, func(int) error {
		_, err := i.films.AddFilms(ctx, films...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to store %d films after %d attempts: %w", len(films), i.settings.MaxRetries, err)
	}
	return nil
}

// Release frees the worker pool. The importer must not be used afterwards.
func (i *Importer) Release() {
	if i.pool != nil {
		i.pool.Release()
	}
}
