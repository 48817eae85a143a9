package scrape

import (
	"coursetree"

	"github.com/bits-and-blooms/bloom/v3"
)

// Hierarchy levels processed by the worklist.
const (
	levelLearningPath = "learning_path"
	levelModule       = "module"
	levelUnit         = "unit"
)

// task is one pending page in the traversal: the node whose page must be
// fetched and whose children must be populated.
type task struct {
	level string
	path  *coursetree.LearningPath
	mod   *coursetree.Module
	unit  *coursetree.Unit
}

// worklist is a FIFO queue of traversal tasks. Processing it iteratively
// replaces top-down recursion, so unusually large courses cannot exhaust
// the call stack. FIFO order keeps siblings in extraction order.
type worklist struct {
	tasks []task
}

func (w *worklist) push(t task) {
	w.tasks = append(w.tasks, t)
}

func (w *worklist) pop() (task, bool) {
	if len(w.tasks) == 0 {
		return task{}, false
	}
	t := w.tasks[0]
	w.tasks = w.tasks[1:]
	return t, true
}

// Sizing for the visited-URL Bloom filter. A course tops out in the low
// thousands of pages, so 10k keeps the false positive rate comfortably
// under the configured bound.
const (
	visitedExpectedURLs      = 10000
	visitedFalsePositiveRate = 0.001
)

// visitedFilter tracks unit URLs fetched during a single run. A unit
// referenced from more than one branch keeps its node identity in each
// branch, but when a unit store is available its content is fetched once
// and later occurrences are served from the store.
type visitedFilter struct {
	f *bloom.BloomFilter
}

func newVisitedFilter() *visitedFilter {
	return &visitedFilter{
		f: bloom.NewWithEstimates(visitedExpectedURLs, visitedFalsePositiveRate),
	}
}

// visit records the URL and reports whether it had not been seen before.
func (v *visitedFilter) visit(url string) bool {
	if v.f.TestString(url) {
		return false
	}
	v.f.AddString(url)
	return true
}
