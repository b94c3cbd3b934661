package ingestion

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/recobot/core"
)

// rawFilm is one record of a catalog dump. Field names follow the usual
// movie database exports; alternatives are merged in toFilm.
type rawFilm struct {
	ID          uint64   `json:"id"`
	TMDBID      uint64   `json:"tmdb_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Description string   `json:"description"`
	Genres      nameList `json:"genres"`
	Themes      nameList `json:"themes"`
	Keywords    nameList `json:"keywords"`
	ReleaseYear int      `json:"release_year"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
	Popularity  float64  `json:"popularity"`
}

// nameList accepts a JSON array of strings, an array of {"name": ...}
// objects, or a single comma separated string.
type nameList []string

func (n *nameList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = splitNames(s)
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(nameList, 0, len(items))
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				out = append(out, splitNames(s)...)
				continue
			}
			var named struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(item, &named); err != nil {
				return fmt.Errorf("genre entry %s: %w", item, err)
			}
			out = append(out, splitNames(named.Name)...)
		}
		*n = out
		return nil
	default:
		return fmt.Errorf("expected string or array, got %s", data)
	}
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// toFilm converts r into a film record. A missing rating becomes NaN, which
// validation rejects. Records without an upstream ID get a content ID.
func (r *rawFilm) toFilm() *core.FilmRecord {
	film := &core.FilmRecord{
		ID:            core.ID(r.ID),
		Title:         strings.TrimSpace(r.Title),
		Description:   strings.TrimSpace(r.Description),
		Genres:        r.Genres,
		Themes:        append(append([]string(nil), r.Themes...), r.Keywords...),
		ReleaseYear:   r.ReleaseYear,
		AverageRating: math.NaN(),
		VoteCount:     r.VoteCount,
		Popularity:    r.Popularity,
	}
	if film.ID == 0 {
		film.ID = core.ID(r.TMDBID)
	}
	if film.Description == "" {
		film.Description = strings.TrimSpace(r.Overview)
	}
	if film.ReleaseYear == 0 {
		film.ReleaseYear = yearOf(r.ReleaseDate)
	}
	if r.VoteAverage != nil {
		film.AverageRating = *r.VoteAverage
	}
	if len(film.Themes) == 0 {
		film.Themes = nil
	}
	if film.ID == 0 {
		film.ID = core.IDFromContent(film.ContentKey())
	}
	return film
}

// yearOf extracts the year of a "YYYY-MM-DD" or "YYYY" date, 0 if absent.
func yearOf(date string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if len(head) != 4 {
		return 0
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return year
}

// readRecords splits a dump into raw records. A dump is either one JSON
// array of objects or a sequence of JSON objects, one per line or not.
func readRecords(r io.Reader) ([]json.RawMessage, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var records []json.RawMessage
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDump, err)
		}
		for i, record := range records {
			if !json.Valid(record) {
				return nil, fmt.Errorf("%w: record %d is not valid JSON", ErrMalformedDump, i+1)
			}
		}
		return records, nil
	}
	if first != '{' {
		return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedDump, first)
	}

	var records []json.RawMessage
	for {
		var record json.RawMessage
		err := dec.Decode(&record)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("%w: record %d: %w", ErrMalformedDump, len(records)+1, err)
		}
		// the decoder does not check the contents of a raw message
		if !json.Valid(record) {
			return records, fmt.Errorf("%w: record %d is not valid JSON", ErrMalformedDump, len(records)+1)
		}
		records = append(records, record)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case 0xEF:
			// UTF-8 byte order mark
			if _, err := br.Discard(2); err != nil {
				return 0, err
			}
			continue
		}
		return b, br.UnreadByte()
	}
}

// decodeRecord turns one raw record into a validated film.
func decodeRecord(data json.RawMessage) (*core.FilmRecord, error) {
	var raw rawFilm
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	film := raw.toFilm()
	if err := core.ValidateFilm(film); err != nil {
		return nil, err
	}
	return film, nil
}
