package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/recobot/recommend"
	"github.com/poiesic/recobot/storage"
	"github.com/poiesic/recobot/vocabulary"
)

const chatHelp = `Ask for a film in plain words, for example:
  un film d'action récent avec des explosions
  un film drôle et léger pour toute la famille
Commands:
  list                      list the catalog, 10 films per page
  list page N               show page N
  add word W CATEGORY [SUB] add a significant word,
                            quote phrases: add word "film noir" genre
  add stop W                add a stop word
  help                      show this message
  quit                      leave`

// session is one interactive chat.
type session struct {
	films       storage.FilmRepository
	vocabulary  *vocabulary.Service
	recommender *recommend.Recommender
	limit       int
	out         io.Writer
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, chatHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if quit := s.handle(ctx, strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// handle runs one line. Errors are shown to the user, never fatal.
func (s *session) handle(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, chatHelp)
	case "list":
		err = s.list(ctx, fields[1:])
	case "add":
		var args []string
		if args, err = splitQuoted(line); err == nil {
			err = s.add(ctx, args[1:])
		}
	default:
		err = s.recommend(ctx, line)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

// splitQuoted splits line on whitespace, keeping "double quoted" runs
// together so phrases can be added as one word.
func splitQuoted(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && unicode.IsSpace(r):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote", errUsage)
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

func (s *session) list(ctx context.Context, args []string) error {
	page := 1
	switch {
	case len(args) == 0:
	case len(args) == 2 && strings.EqualFold(args[0], "page"):
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: use 'list page 2'", errUsage)
		}
		page = n
	default:
		return fmt.Errorf("%w: use 'list' or 'list page N'", errUsage)
	}
	return writePage(ctx, s.out, s.films, page, defaultPageSize)
}

func (s *session) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: use 'add word ...' or 'add stop ...'", errUsage)
	}

	switch strings.ToLower(args[0]) {
	case "word":
		if len(args) < 3 {
			return fmt.Errorf("%w: use 'add word W CATEGORY [SUB]'", errUsage)
		}
		entry, err := s.vocabulary.AddWord(ctx, args[1], args[2], strings.Join(args[3:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added %q as %s/%s\n", entry.Word, entry.Category, entry.Subcategory)
	case "stop":
		if len(args) != 2 {
			return fmt.Errorf("%w: use 'add stop W'", errUsage)
		}
		token, err := s.vocabulary.AddStopWord(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added stop word %q\n", token)
	default:
		return fmt.Errorf("%w: use 'add word ...' or 'add stop ...'", errUsage)
	}
	return nil
}

func (s *session) recommend(ctx context.Context, query string) error {
	results, err := s.recommender.Recommend(ctx, query)
	if err != nil {
		return err
	}
	writeResults(s.out, results, s.limit)
	return nil
}
