package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/recobot/core"
	"github.com/poiesic/recobot/storage"
)

const (
	defaultPageSize   = 10
	descriptionLength = 200
)

func writeResults(w io.Writer, results []core.RankedResult, limit int) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No films in the catalog yet. Import some with 'recobot import'.")
		return
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i, r := range results {
		f := r.Film
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, f.Title, yearLabel(f.ReleaseYear))
		if len(f.Genres) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(f.Genres, ", "))
		}
		fmt.Fprintf(w, "   %.1f/10 (%d votes) - score %.2f\n", f.AverageRating, f.VoteCount, r.FinalScore)
		if f.Description != "" {
			fmt.Fprintf(w, "   %s\n", truncate(f.Description, descriptionLength))
		}
	}
}

// writePage prints one page of the catalog sorted by title. Out of range
// pages are clamped to the first or last page.
func writePage(ctx context.Context, w io.Writer, films storage.FilmRepository, page, perPage int) error {
	if perPage <= 0 {
		perPage = defaultPageSize
	}
	total, err := films.CountFilms(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(w, "The catalog is empty.")
		return nil
	}

	pages := (total + perPage - 1) / perPage
	page = max(1, min(page, pages))
	list, _, err := films.ListFilms(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Films (page %d/%d)\n\n", page, pages)
	for _, f := range list {
		fmt.Fprintf(w, "%s (%s) - %.1f/10 (%d votes)\n", f.Title, yearLabel(f.ReleaseYear), f.AverageRating, f.VoteCount)
	}
	fmt.Fprintf(w, "\n--- page %d/%d ---\n", page, pages)
	return nil
}

func yearLabel(year int) string {
	if year == 0 {
		return "?"
	}
	return strconv.Itoa(year)
}

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
