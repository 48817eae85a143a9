package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"coursetree"
	main "coursetree/cmd/coursetree"
	"coursetree/fs"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"scrape", "stats"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestCmdStats(t *testing.T) {
	t.Parallel()

	t.Run("reports empty store", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"stats"}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No units stored")
	})

	t.Run("summarizes a saved tree file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		course := &coursetree.Course{
			Title: "Saved Course",
			URL:   "https://learn.example.com/en-us/training/courses/saved",
			LearningPaths: []*coursetree.LearningPath{
				{
					Title: "Path",
					URL:   "https://learn.example.com/en-us/training/paths/path/",
					Modules: []*coursetree.Module{
						{
							Title: "Module",
							URL:   "https://learn.example.com/en-us/training/modules/module/",
							Units: []*coursetree.Unit{
								{
									Title: "Unit",
									URL:   "https://learn.example.com/en-us/training/modules/module/1-unit",
									Blocks: []coursetree.ContentBlock{
										{Kind: coursetree.BlockText, Text: "Some content."},
									},
								},
							},
						},
					},
				},
			},
		}
		course.Stats = coursetree.Summarize(course, true)

		writer := fs.NewWriter(dir)
		_, err := writer.WriteCourse(course, coursetree.LimitSet{})
		require.NoError(t, err)

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err = m.Run(context.Background(), []string{"stats", "--tree", writer.TreePath(course.Title)}, stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved Course")
		assert.Contains(t, stdout.String(), "1 learning paths, 1 modules, 1 units")
		assert.Contains(t, stdout.String(), "1 of 1 units have content")
	})
}

// testCourseServer serves a minimal two-level course site.
func testCourseServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/en-us/training/courses/az-900t00", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>
			<h1>AZ-900 Fundamentals</h1>
			<article data-learn-uid="learn.wwl.describe-cloud-concepts">
				<h3>Describe cloud concepts</h3>
			</article>
		</main></body></html>`))
	})
	mux.HandleFunc("/en-us/training/paths/describe-cloud-concepts/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>
			<h1>Describe cloud concepts</h1>
			<a href="/en-us/training/modules/describe-cloud-compute/">1. Describe cloud computing</a>
		</main></body></html>`))
	})
	mux.HandleFunc("/en-us/training/modules/describe-cloud-compute/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>
			<h1>Describe cloud computing</h1>
			<a href="1-introduction">Introduction</a>
			<a href="2-summary">Summary</a>
		</main></body></html>`))
	})
	mux.HandleFunc("/en-us/training/modules/describe-cloud-compute/1-introduction", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>
			<h1>Introduction</h1>
			<p>Cloud computing delivers services over the internet.</p>
			<pre>az account show</pre>
			<img src="media/architecture-diagram.png" alt="Architecture diagram">
		</main></body></html>`))
	})
	mux.HandleFunc("/en-us/training/modules/describe-cloud-compute/2-summary", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>
			<h1>Summary</h1>
			<p>You learned about cloud computing.</p>
		</main></body></html>`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCmdScrape(t *testing.T) {
	t.Parallel()

	t.Run("scrapes a course end to end", func(t *testing.T) {
		t.Parallel()

		server := testCourseServer(t)
		outDir := t.TempDir()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"scrape", server.URL + "/en-us/training/courses/az-900t00",
			"--delay-ms", "1",
			"--output-dir", outDir,
		}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "AZ-900 Fundamentals")
		assert.Contains(t, out, "1 learning paths, 1 modules, 2 units")

		data, err := os.ReadFile(filepath.Join(outDir, "az-900-fundamentals_complete.json"))
		require.NoError(t, err)

		var course coursetree.Course
		require.NoError(t, json.Unmarshal(data, &course))
		require.Len(t, course.LearningPaths, 1)
		assert.Equal(t, "Describe cloud concepts", course.LearningPaths[0].Title)

		mod := course.LearningPaths[0].Modules[0]
		assert.Equal(t, "Describe cloud computing", mod.Title)
		require.Len(t, mod.Units, 2)

		intro := mod.Units[0]
		assert.Equal(t, "Introduction", intro.Title)
		require.NotEmpty(t, intro.Blocks)
		assert.Equal(t, coursetree.BlockHeading, intro.Blocks[0].Kind)

		records := coursetree.Flatten(&course)
		require.Len(t, records, 2)
		assert.Contains(t, records[0].Content, "Cloud computing delivers services")
		assert.Equal(t, []string{"az account show"}, records[0].CodeBlocks)
		require.Len(t, records[0].Images, 1)
		assert.Equal(t, coursetree.ImageDiagram, records[0].Images[0].Type)

		_, err = os.Stat(filepath.Join(outDir, "az-900-fundamentals_training.jsonl"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(outDir, "az-900-fundamentals_summary.json"))
		assert.NoError(t, err)
	})

	t.Run("second run reuses stored units", func(t *testing.T) {
		t.Parallel()

		server := testCourseServer(t)
		dbPath := filepath.Join(t.TempDir(), "test.db")
		courseURL := server.URL + "/en-us/training/courses/az-900t00"

		run := func() string {
			m := main.NewMain()
			m.DBPath = dbPath
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			err := m.Run(context.Background(), []string{
				"scrape", courseURL,
				"--delay-ms", "1",
				"--output-dir", t.TempDir(),
			}, stdout, stderr)
			require.NoError(t, err)
			return stdout.String()
		}

		first := run()
		assert.NotContains(t, first, "reused")

		second := run()
		assert.Contains(t, second, "reused 2 units")
	})

	t.Run("structure-only run leaves units empty", func(t *testing.T) {
		t.Parallel()

		server := testCourseServer(t)
		outDir := t.TempDir()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"scrape", server.URL + "/en-us/training/courses/az-900t00",
			"--delay-ms", "1",
			"--output-dir", outDir,
			"--no-content",
		}, stdout, stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(outDir, "az-900-fundamentals_complete.json"))
		require.NoError(t, err)

		var course coursetree.Course
		require.NoError(t, json.Unmarshal(data, &course))
		for _, u := range course.LearningPaths[0].Modules[0].Units {
			assert.Empty(t, u.Blocks)
		}
		assert.False(t, course.Stats.ContentExtracted)
	})

	t.Run("unreachable course page is an error", func(t *testing.T) {
		t.Parallel()

		server := testCourseServer(t)

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"scrape", server.URL + "/en-us/training/courses/nope",
			"--delay-ms", "1",
			"--output-dir", t.TempDir(),
		}, stdout, stderr)
		require.Error(t, err)
		assert.Equal(t, coursetree.EUNAVAILABLE, coursetree.ErrorCode(err))
	})

	t.Run("config file supplies limits and output dir", func(t *testing.T) {
		t.Parallel()

		server := testCourseServer(t)
		outDir := t.TempDir()

		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte(
			"limits:\n  max_units_per_module: 1\nfetch:\n  delay_ms: 1\noutput:\n  dir: "+outDir+"\n"), 0644))

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"scrape", server.URL + "/en-us/training/courses/az-900t00",
			"--config", cfgPath,
		}, stdout, stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(outDir, "az-900-fundamentals_complete.json"))
		require.NoError(t, err)

		var course coursetree.Course
		require.NoError(t, json.Unmarshal(data, &course))
		units := course.LearningPaths[0].Modules[0].Units
		require.Len(t, units, 1)
		assert.Equal(t, "Introduction", units[0].Title)
	})
}
