package main

import (
	"context"
	"io"
	"log/slog"

	"coursetree"
	"coursetree/sqlite"
	"coursetree/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Units  coursetree.UnitStore
	Config *yaml.Config
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape a course page into its content tree"`
	Stats  StatsCmd  `cmd:"" help:"Show stored unit counts or summarize a saved tree"`
}

// ScrapeCmd is the "scrape" subcommand. Pointer-typed flags distinguish
// "not given" from zero so config file values only apply when the flag is
// absent.
type ScrapeCmd struct {
	URL        string  `arg:"" help:"Course page URL"`
	Config     string  `short:"c" help:"YAML config file"`
	MaxPaths   *int    `help:"Keep only the first N learning paths"`
	MaxModules *int    `help:"Keep only the first N modules per learning path"`
	MaxUnits   *int    `help:"Keep only the first N units per module"`
	DelayMS    *int    `name:"delay-ms" help:"Minimum delay between requests in milliseconds (default 500)"`
	TimeoutSec *int    `name:"timeout-sec" help:"HTTP request timeout in seconds (default 10)"`
	OutputDir  *string `name:"output-dir" help:"Directory for output artifacts (default scraped)"`
	NoContent  bool    `help:"Skip unit content extraction (structure only)"`
	NoResume   bool    `help:"Refetch units already present in the store"`
	Verbose    bool    `short:"v" help:"Enable debug logging"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Tree string `help:"Summarize a saved course tree file instead of the store"`
}
