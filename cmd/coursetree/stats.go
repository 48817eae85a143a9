package main

import (
	"fmt"

	"coursetree"
	"coursetree/fs"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if c.Tree != "" {
		course, err := fs.LoadCourse(c.Tree)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", coursetree.ErrorMessage(err))
			return err
		}

		stats := course.Stats
		if stats == nil {
			stats = coursetree.Summarize(course, false)
		}
		fmt.Fprintf(deps.Stdout, "%q (%s)\n", course.Title, course.URL)
		fmt.Fprintf(deps.Stdout, "  %d learning paths, %d modules, %d units\n",
			stats.LearningPaths, stats.Modules, stats.Units)
		fmt.Fprintf(deps.Stdout, "  scraped at %s\n", course.ScrapedAt.Format("2006-01-02 15:04:05"))

		records := coursetree.Flatten(course)
		var withContent int
		for _, rec := range records {
			if rec.Content != "" {
				withContent++
			}
		}
		fmt.Fprintf(deps.Stdout, "  %d of %d units have content\n", withContent, len(records))
		return nil
	}

	n, err := deps.Units.UnitCount(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursetree.ErrorMessage(err))
		return err
	}

	if n == 0 {
		fmt.Fprintln(deps.Stdout, "No units stored. Use 'coursetree scrape' to scrape a course.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d units stored\n", n)
	return nil
}
