package main

import (
	"fmt"
	"time"

	"coursetree"
	"coursetree/fs"
	"coursetree/goquery"
	coursehttp "coursetree/http"
	"coursetree/scrape"
	courseslog "coursetree/slog"
	"coursetree/yaml"
)

const (
	defaultOutputDir  = "scraped"
	defaultTimeoutSec = 10
	displayURLWidth   = 60
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if cfg == nil {
		cfg = &yaml.Config{}
	}

	limits := coursetree.LimitSet{
		MaxPaths:          intFlag(c.MaxPaths, cfg.Limits.MaxPaths),
		MaxModulesPerPath: intFlag(c.MaxModules, cfg.Limits.MaxModulesPerPath),
		MaxUnitsPerModule: intFlag(c.MaxUnits, cfg.Limits.MaxUnitsPerModule),
	}

	delay := time.Duration(intFlag(c.DelayMS, cfg.Fetch.DelayMS)) * time.Millisecond
	if delay <= 0 {
		delay = scrape.DefaultFetchInterval
	}
	timeoutSec := intFlag(c.TimeoutSec, cfg.Fetch.TimeoutSec)
	if timeoutSec <= 0 {
		timeoutSec = defaultTimeoutSec
	}
	outputDir := defaultOutputDir
	if cfg.Output.Dir != "" {
		outputDir = cfg.Output.Dir
	}
	if c.OutputDir != nil {
		outputDir = *c.OutputDir
	}
	extractContent := cfg.ContentEnabled() && !c.NoContent

	fetcher := coursehttp.NewFetcher(coursehttp.WithTimeout(time.Duration(timeoutSec) * time.Second))
	defer fetcher.Close()

	units := deps.Units
	if c.Verbose {
		units = courseslog.NewLoggingUnitStore(units, deps.Logger)
	}

	scraper := &scrape.Scraper{
		Fetcher:           courseslog.NewLoggingFetcher(fetcher, deps.Logger),
		Parser:            goquery.NewExtractor(),
		Blocks:            goquery.NewExtractor(),
		Limiter:           scrape.NewDelayLimiter(delay),
		Units:             units,
		MaxLearningPaths:  limits.MaxPaths,
		MaxModulesPerPath: limits.MaxModulesPerPath,
		MaxUnitsPerModule: limits.MaxUnitsPerModule,
		ExtractContent:    extractContent,
		Resume:            !c.NoResume,
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s %s: %v\n",
				event.Level, scrape.TruncateURL(event.URL, displayURLWidth), event.Err)
		case scrape.ProgressReused:
			fmt.Fprintf(deps.Stdout, "  reuse %s\n", scrape.TruncateURL(event.URL, displayURLWidth))
		}
	}

	fmt.Fprintf(deps.Stdout, "Scraping %s\n", c.URL)

	course, result, err := scraper.Scrape(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursetree.ErrorMessage(err))
		return err
	}

	writer := fs.NewWriter(outputDir)
	summary, err := writer.WriteCourse(course, limits)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursetree.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%q: %d learning paths, %d modules, %d units\n",
		course.Title, summary.LearningPaths, summary.TotalModules, summary.TotalUnits)
	fmt.Fprintf(deps.Stdout, "  fetched %d pages", result.Fetched)
	if result.Reused > 0 {
		fmt.Fprintf(deps.Stdout, ", reused %d units", result.Reused)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failures", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	for _, path := range summary.FilesCreated {
		fmt.Fprintf(deps.Stdout, "  wrote %s\n", path)
	}

	return nil
}

// intFlag returns the flag value when given, else the config value.
func intFlag(flag *int, config int) int {
	if flag != nil {
		return *flag
	}
	return config
}
