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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/recobot"
	"github.com/poiesic/recobot/config"
	"github.com/urfave/cli/v2"
)

const defaultDBPath = "./recobot_db"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recobot",
		Usage: "Film recommendations from free-text requests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   defaultDBPath,
				EnvVars: []string{"RECOBOT_DB"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML tuning file (also " + config.ConfigPathEnvVar + ")",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "recommend",
				Aliases:   []string{"r"},
				Usage:     "Recommend films for a request",
				ArgsUsage: "<request...>",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of films to show",
						Value:   5,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the catalog by title",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page to show",
						Value:   1,
					},
					&cli.IntFlag{
						Name:  "per-page",
						Usage: "Films per page",
						Value: defaultPageSize,
					},
				},
			},
			{
				Name:      "add-word",
				Usage:     "Add a significant word to the vocabulary",
				ArgsUsage: "<word> <category> [subcategory]",
				Action:    addWordCommand,
			},
			{
				Name:      "add-stop-word",
				Usage:     "Add a stop word",
				ArgsUsage: "<word>",
				Action:    addStopWordCommand,
			},
			{
				Name:      "import",
				Usage:     "Import a JSON catalog dump",
				ArgsUsage: "<file>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not report progress",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Install the default vocabulary or a YAML seed file",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "YAML seed file",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Interactive session",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of films per answer",
						Value:   5,
					},
				},
			},
		},
	}
}

// openDatabase loads the configuration and opens the store. An empty
// vocabulary gets the default one.
func openDatabase(c *cli.Context) (*recobot.Database, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	db, err := recobot.NewDatabase(c.String("db"), recobot.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Vocabulary().Seed(c.Context); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed vocabulary: %w", err)
	}
	return db, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
