package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testDump = `[
  {"id": 1, "title": "Mad Max: Fury Road", "overview": "Dans un désert post-apocalyptique, une course poursuite sans fin.", "genres": ["Action"], "release_date": "2015-05-13", "vote_average": 7.6, "vote_count": 21000, "popularity": 55},
  {"id": 2, "title": "Old Western", "genres": ["Action", "Western"], "release_year": 1965, "vote_average": 7.0, "vote_count": 500, "popularity": 1},
  {"id": 3, "title": "Amélie", "genres": ["Comédie", "Romance"], "release_year": 2001, "vote_average": 7.9, "vote_count": 10000, "popularity": 25},
  {"id": 4, "title": "Cassé", "genres": ["Drame"]}
]`

// testEnv runs the app against a fresh database.
type testEnv struct {
	t          *testing.T
	dbPath     string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Setenv("RECOBOT_CONFIG", "")
	return &testEnv{t: t, dbPath: filepath.Join(t.TempDir(), "db")}
}

func (e *testEnv) run(stdin string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}

	argv := []string{"recobot", "--log-level", "error", "--db", e.dbPath}
	if e.configPath != "" {
		argv = append(argv, "--config", e.configPath)
	}
	argv = append(argv, args...)
	err := app.Run(argv)
	return out.String(), errOut.String(), err
}

func (e *testEnv) importDump() {
	path := filepath.Join(e.t.TempDir(), "dump.json")
	require.NoError(e.t, os.WriteFile(path, []byte(testDump), 0o644))
	out, _, err := e.run("", "import", "--quiet", path)
	require.NoError(e.t, err)
	require.Contains(e.t, out, "imported 3, rejected 1")
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		t.Run(level, func(t *testing.T) {
			app := &cli.App{
				Flags:  []cli.Flag{&cli.StringFlag{Name: "log-level", Value: level}},
				Before: setupLogger,
				Action: func(*cli.Context) error { return nil },
			}
			assert.NoError(t, app.Run([]string{"recobot"}))
		})
	}

	t.Run("invalid", func(t *testing.T) {
		app := &cli.App{
			Flags:  []cli.Flag{&cli.StringFlag{Name: "log-level", Value: "loud"}},
			Before: setupLogger,
			Action: func(*cli.Context) error { return nil },
		}
		err := app.Run([]string{"recobot"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	var db *cli.StringFlag
	for _, flag := range app.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == "db" {
			db = f
		}
	}
	require.NotNil(t, db)
	assert.Equal(t, defaultDBPath, db.Value)
	assert.Equal(t, []string{"RECOBOT_DB"}, db.EnvVars)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"recommend", "list", "add-word", "add-stop-word", "import", "seed", "chat"}, names)
}

func TestRecommendCommand(t *testing.T) {
	env := newTestEnv(t)
	env.importDump()

	out, _, err := env.run("", "recommend", "--limit", "2", "un", "film", "d'action")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1. Mad Max: Fury Road (2015)"), out)
	assert.Contains(t, out, "2. ")
	assert.NotContains(t, out, "3. ")

	_, _, err = env.run("", "recommend")
	assert.ErrorIs(t, err, errUsage)
}

func TestRecommendCommand_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	out, _, err := env.run("", "recommend", "action")
	require.NoError(t, err)
	assert.Contains(t, out, "No films")
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)
	env.importDump()

	out, _, err := env.run("", "list", "--per-page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "page 1/2")
	assert.Less(t, strings.Index(out, "Amélie"), strings.Index(out, "Mad Max"))
	assert.NotContains(t, out, "Old Western")

	out, _, err = env.run("", "list", "--per-page", "2", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "page 2/2")
	assert.Contains(t, out, "Old Western")
}

func TestVocabularyCommands(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run("", "add-word", "Poilant", "genre", "comédie")
	require.NoError(t, err)
	assert.Contains(t, out, `"poilant" as genre/comedie`)

	_, _, err = env.run("", "add-word", "bientôt", "era", "prochainement")
	assert.Error(t, err)

	_, _, err = env.run("", "add-word", "seul")
	assert.ErrorIs(t, err, errUsage)

	out, _, err = env.run("", "add-stop-word", "Svp")
	require.NoError(t, err)
	assert.Contains(t, out, `"svp"`)

	_, _, err = env.run("", "add-stop-word", "deux mots")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run("", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored ")

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("genre:\n  western:\n    - far-west\n    - cowboys\nstop_words:\n  - svp\n"), 0o644))
	out, _, err = env.run("", "seed", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 2 words and 1 stop words")
}

func TestChatCommand(t *testing.T) {
	env := newTestEnv(t)
	env.importDump()

	// Weigh relevance heavily so a single genre match beats a more popular film.
	env.configPath = filepath.Join(t.TempDir(), "recobot.yaml")
	require.NoError(t, os.WriteFile(env.configPath, []byte("weights:\n  relevance: 50\n"), 0o644))

	input := strings.Join([]string{
		"list",
		"list page deux",
		"add word poilant genre comédie",
		`add word "film noir" genre crime`,
		`add word "film noir genre`,
		"add stop svp",
		"add word",
		"",
		"quelque chose de poilant svp",
		"quit",
		"this line is never read",
	}, "\n")

	out, _, err := env.run(input, "chat", "--limit", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Films (page 1/1)")
	assert.Contains(t, out, "use 'list page 2'")
	assert.Contains(t, out, `Added "poilant" as genre/comedie`)
	assert.Contains(t, out, `Added "film noir" as genre/crime`)
	assert.Contains(t, out, "unterminated quote")
	assert.Contains(t, out, `Added stop word "svp"`)
	assert.Contains(t, out, "use 'add word W CATEGORY [SUB]'")
	assert.Contains(t, out, "1. Amélie (2001)")
	assert.NotContains(t, out, "2. ")
}

func TestChatCommand_EndOfInput(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run("help\n", "chat")
	assert.NoError(t, err)
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "add word poilant genre", []string{"add", "word", "poilant", "genre"}},
		{"quoted phrase", `add word "film noir" genre crime`, []string{"add", "word", "film noir", "genre", "crime"}},
		{"extra spaces", `  add   "a  b"  `, []string{"add", "a  b"}},
		{"elision kept", "add word d'action genre", []string{"add", "word", "d'action", "genre"}},
		{"empty quotes", `add ""`, []string{"add", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitQuoted(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		_, err := splitQuoted(`add word "film noir genre`)
		assert.ErrorIs(t, err, errUsage)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "court", truncate("court", 200))
	long := strings.Repeat("é", 250)
	got := truncate(long, 200)
	assert.Equal(t, 203, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
