package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/recobot/ingestion"
	"github.com/poiesic/recobot/vocabulary"
	"github.com/urfave/cli/v2"
)

var errUsage = errors.New("wrong number of arguments")

func recommendCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: a request is required", errUsage)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	recommender, err := db.NewRecommender()
	if err != nil {
		return err
	}
	results, err := recommender.Recommend(c.Context, query)
	if err != nil {
		return err
	}
	writeResults(c.App.Writer, results, c.Int("limit"))
	return nil
}

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return writePage(c.Context, c.App.Writer, db.Films(), c.Int("page"), c.Int("per-page"))
}

func addWordCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: usage: add-word <word> <category> [subcategory]", errUsage)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var sub string
	if len(args) == 3 {
		sub = args[2]
	}
	entry, err := db.Vocabulary().AddWord(c.Context, args[0], args[1], sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added %q as %s/%s\n", entry.Word, entry.Category, entry.Subcategory)
	return nil
}

func addStopWordCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: usage: add-stop-word <word>", errUsage)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	token, err := db.Vocabulary().AddStopWord(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added stop word %q\n", token)
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: usage: import <file>", errUsage)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if !c.Bool("quiet") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}
	importer, err := db.NewImporter(opts...)
	if err != nil {
		return err
	}
	defer importer.Release()

	report, err := importer.ImportFile(c.Context, c.Args().First())
	if report != nil {
		fmt.Fprintf(c.App.Writer, "Read %d records, imported %d, rejected %d in %s\n",
			report.Read, report.Imported, len(report.Rejected), report.Duration.Round(time.Millisecond))
		for _, rejected := range report.Rejected {
			fmt.Fprintf(c.App.ErrWriter, "  %v\n", rejected)
		}
	}
	return err
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var report *vocabulary.ApplyReport
	if path := c.String("file"); path != "" {
		report, err = db.Vocabulary().ImportFile(c.Context, path)
	} else {
		report, err = db.Vocabulary().Apply(c.Context, vocabulary.Defaults())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Stored %d words and %d stop words\n", report.Entries, report.StopWords)
	for _, rejected := range report.Rejected {
		fmt.Fprintf(c.App.ErrWriter, "  rejected: %v\n", rejected)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	recommender, err := db.NewRecommender()
	if err != nil {
		return err
	}

	s := &session{
		films:       db.Films(),
		vocabulary:  db.Vocabulary(),
		recommender: recommender,
		limit:       c.Int("limit"),
		out:         c.App.Writer,
	}
	return s.run(c.Context, c.App.Reader)
}
