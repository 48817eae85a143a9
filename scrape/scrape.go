// Package scrape assembles the course content tree. It drives the page
// fetcher, entity parser, and block extractor across the full hierarchy,
// applying configured limits and the per-node failure policy.
package scrape

import (
	"context"
	"net/url"
	"time"

	"coursetree"
)

// placeholderTitle is recorded when a page yields no usable title. The node
// keeps its URL identity and is otherwise treated as recoverable.
const placeholderTitle = "(untitled)"

// Scraper orchestrates the top-down traversal of a course.
type Scraper struct {
	Fetcher coursetree.Fetcher
	Parser  coursetree.ChildExtractor
	Blocks  coursetree.BlockExtractor
	Limiter coursetree.Limiter
	Units   coursetree.UnitStore // optional; enables resume and reuse

	// Child-count caps, applied by truncating each level's extraction
	// result to the first N entries. Zero means unlimited.
	MaxLearningPaths  int
	MaxModulesPerPath int
	MaxUnitsPerModule int

	// ExtractContent toggles unit content extraction. When false the run
	// produces a structure-only tree, a fast path for validating course
	// shape before a full scrape.
	ExtractContent bool

	// Resume reuses units already present in the store instead of
	// refetching them.
	Resume bool

	visited *visitedFilter
}

// Result summarizes the outcome of a run.
type Result struct {
	Fetched int // pages fetched
	Failed  int // node-level failures, recorded and skipped
	Reused  int // units served from the store without a fetch
	Saved   int // units saved to the store
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressFetched ProgressType = iota
	ProgressReused
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports traversal progress. Failures carry the node's URL
// and hierarchy position so a human can re-run or investigate.
type ProgressEvent struct {
	Type  ProgressType
	Level string
	Title string
	URL   string
	Err   error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scrape builds the content tree rooted at courseURL. A failure to fetch
// or parse the course page itself is fatal and returns an error with no
// tree. Failures below the root are recorded per node and never abort the
// run; the affected node keeps its title and URL with no children. If the
// context is canceled mid-run, the tree assembled so far is returned: a
// truncated tree is still a valid tree.
func (s *Scraper) Scrape(ctx context.Context, courseURL string, progress ProgressFunc) (*coursetree.Course, *Result, error) {
	result := &Result{}
	s.visited = newVisitedFilter()

	html, err := s.fetch(ctx, courseURL)
	if err != nil {
		return nil, nil, coursetree.Errorf(coursetree.EUNAVAILABLE, "course page unreachable: %v", err)
	}
	result.Fetched++

	title := s.Parser.ExtractTitle(html)
	if title == "" {
		title = placeholderTitle
	}
	course := &coursetree.Course{
		Title:         title,
		URL:           courseURL,
		ScrapedAt:     time.Now().UTC(),
		LearningPaths: []*coursetree.LearningPath{},
	}

	children, err := s.Parser.ExtractChildren(html, courseURL, coursetree.ChildLearningPaths)
	if err != nil {
		return nil, nil, coursetree.Errorf(coursetree.EINVALID, "course page unparseable: %v", err)
	}
	children = truncate(children, s.MaxLearningPaths)

	var work worklist
	for i, ref := range children {
		lp := &coursetree.LearningPath{
			Title:    ref.Title,
			URL:      ref.URL,
			Position: i,
			Modules:  []*coursetree.Module{},
		}
		course.LearningPaths = append(course.LearningPaths, lp)
		work.push(task{level: levelLearningPath, path: lp})
	}

	for {
		t, ok := work.pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		switch t.level {
		case levelLearningPath:
			s.processLearningPath(ctx, t.path, &work, result, progress)
		case levelModule:
			s.processModule(ctx, t.path, t.mod, &work, result, progress)
		case levelUnit:
			s.processUnit(ctx, course, t.path, t.mod, t.unit, result, progress)
		}
	}

	course.Stats = coursetree.Summarize(course, s.ExtractContent)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return course, result, nil
}

func (s *Scraper) processLearningPath(ctx context.Context, lp *coursetree.LearningPath, work *worklist, result *Result, progress ProgressFunc) {
	html, err := s.fetch(ctx, lp.URL)
	if err != nil {
		s.fail(result, progress, levelLearningPath, lp.Title, lp.URL, err)
		return
	}
	result.Fetched++
	s.report(progress, ProgressFetched, levelLearningPath, lp.Title, lp.URL)

	children, err := s.Parser.ExtractChildren(html, lp.URL, coursetree.ChildModules)
	if err != nil {
		s.fail(result, progress, levelLearningPath, lp.Title, lp.URL, err)
		return
	}
	children = truncate(children, s.MaxModulesPerPath)

	for i, ref := range children {
		mod := &coursetree.Module{
			Title:    ref.Title,
			URL:      ref.URL,
			Position: i,
			Units:    []*coursetree.Unit{},
		}
		lp.Modules = append(lp.Modules, mod)
		work.push(task{level: levelModule, path: lp, mod: mod})
	}
}

func (s *Scraper) processModule(ctx context.Context, lp *coursetree.LearningPath, mod *coursetree.Module, work *worklist, result *Result, progress ProgressFunc) {
	html, err := s.fetch(ctx, mod.URL)
	if err != nil {
		s.fail(result, progress, levelModule, mod.Title, mod.URL, err)
		return
	}
	result.Fetched++
	s.report(progress, ProgressFetched, levelModule, mod.Title, mod.URL)

	children, err := s.Parser.ExtractChildren(html, mod.URL, coursetree.ChildUnits)
	if err != nil {
		s.fail(result, progress, levelModule, mod.Title, mod.URL, err)
		return
	}
	children = truncate(children, s.MaxUnitsPerModule)

	for i, ref := range children {
		unit := &coursetree.Unit{
			Title:        ref.Title,
			URL:          ref.URL,
			Position:     i,
			LearningPath: lp.Title,
			ModuleTitle:  mod.Title,
			Blocks:       []coursetree.ContentBlock{},
		}
		mod.Units = append(mod.Units, unit)
		if s.ExtractContent {
			work.push(task{level: levelUnit, path: lp, mod: mod, unit: unit})
		}
	}
}

func (s *Scraper) processUnit(ctx context.Context, course *coursetree.Course, lp *coursetree.LearningPath, mod *coursetree.Module, unit *coursetree.Unit, result *Result, progress ProgressFunc) {
	firstVisit := s.visited.visit(unit.URL)

	// Serve from the store when resuming, or when the same unit URL was
	// already fetched earlier in this run under another branch.
	if s.Units != nil && (s.Resume || !firstVisit) {
		if stored, err := s.Units.FindUnitByURL(ctx, unit.URL); err == nil {
			unit.Blocks = stored.Blocks
			unit.ContentHash = stored.ContentHash
			result.Reused++
			s.report(progress, ProgressReused, levelUnit, unit.Title, unit.URL)
			return
		}
	}

	html, err := s.fetch(ctx, unit.URL)
	if err != nil {
		s.fail(result, progress, levelUnit, unit.Title, unit.URL, err)
		return
	}
	result.Fetched++

	blocks, err := s.Blocks.ExtractBlocks(html, unit.URL)
	if err != nil {
		s.fail(result, progress, levelUnit, unit.Title, unit.URL, err)
		return
	}
	if blocks == nil {
		blocks = []coursetree.ContentBlock{}
	}
	unit.Blocks = blocks
	unit.ContentHash = HashBlocks(blocks)
	s.report(progress, ProgressFetched, levelUnit, unit.Title, unit.URL)

	if s.Units != nil {
		stored := &coursetree.StoredUnit{
			SourceURL:    unit.URL,
			Title:        unit.Title,
			Position:     unit.Position,
			CourseTitle:  course.Title,
			LearningPath: lp.Title,
			ModuleTitle:  mod.Title,
			ContentHash:  unit.ContentHash,
			Blocks:       unit.Blocks,
			ScrapedAt:    course.ScrapedAt,
		}
		if err := s.Units.SaveUnit(ctx, stored); err != nil {
			s.fail(result, progress, levelUnit, unit.Title, unit.URL, err)
			return
		}
		result.Saved++
	}
}

// fetch waits out the politeness interval for the URL's domain, then
// fetches. The delay applies between successive requests at every level.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", coursetree.Errorf(coursetree.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return s.Fetcher.Fetch(ctx, rawURL)
}

func (s *Scraper) fail(result *Result, progress ProgressFunc, level, title, url string, err error) {
	result.Failed++
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressFailed,
			Level: level,
			Title: title,
			URL:   url,
			Err:   err,
		})
	}
}

func (s *Scraper) report(progress ProgressFunc, typ ProgressType, level, title, url string) {
	if progress != nil {
		progress(ProgressEvent{Type: typ, Level: level, Title: title, URL: url})
	}
}

// truncate caps the ordered child sequence to its first n entries.
// Limits never sample or reorder.
func truncate(refs []coursetree.ChildRef, n int) []coursetree.ChildRef {
	if n > 0 && len(refs) > n {
		return refs[:n]
	}
	return refs
}
