package mock

import "coursetree"

var _ coursetree.ChildExtractor = (*ChildExtractor)(nil)

// ChildExtractor is a mock implementation of coursetree.ChildExtractor.
type ChildExtractor struct {
	ExtractChildrenFn func(html string, baseURL string, kind coursetree.ChildKind) ([]coursetree.ChildRef, error)
	ExtractTitleFn    func(html string) string
}

func (e *ChildExtractor) ExtractChildren(html string, baseURL string, kind coursetree.ChildKind) ([]coursetree.ChildRef, error) {
	return e.ExtractChildrenFn(html, baseURL, kind)
}

func (e *ChildExtractor) ExtractTitle(html string) string {
	if e.ExtractTitleFn != nil {
		return e.ExtractTitleFn(html)
	}
	return ""
}

var _ coursetree.BlockExtractor = (*BlockExtractor)(nil)

// BlockExtractor is a mock implementation of coursetree.BlockExtractor.
type BlockExtractor struct {
	ExtractBlocksFn func(html string, pageURL string) ([]coursetree.ContentBlock, error)
}

func (e *BlockExtractor) ExtractBlocks(html string, pageURL string) ([]coursetree.ContentBlock, error) {
	return e.ExtractBlocksFn(html, pageURL)
}
