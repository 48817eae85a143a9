package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"coursetree"
	"coursetree/sqlite"
	"coursetree/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the unit store.
	DB *sqlite.DB

	// Unit store for end-to-end testing.
	Units coursetree.UnitStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("coursetree"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'coursetree --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Load the config file before opening the database so its db_path can
	// take effect. Explicit flags and COURSETREE_DB still win.
	if cmd == "scrape" && cli.Scrape.Config != "" {
		cfg, err := yaml.LoadConfig(cli.Scrape.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", coursetree.ErrorMessage(err))
			return err
		}
		deps.Config = cfg
		if cfg.Output.DBPath != "" && os.Getenv("COURSETREE_DB") == "" {
			m.DBPath = cfg.Output.DBPath
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set COURSETREE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Units = sqlite.NewUnitService(m.DB)
	deps.DB = m.DB
	deps.Units = m.Units

	level := slog.LevelInfo
	if cmd == "scrape" && cli.Scrape.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("COURSETREE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "coursetree.db"
	}
	dir := filepath.Join(home, ".coursetree")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "coursetree.db")
}
