package coursetree

// BlockKind identifies the type of a content block.
type BlockKind string

// Content block kinds.
const (
	BlockHeading BlockKind = "heading"
	BlockText    BlockKind = "text"
	BlockCode    BlockKind = "code"
	BlockImage   BlockKind = "image"
)

// ContentBlock is a typed, ordered fragment of a unit's content.
// Exactly one of the payload fields is populated for a given kind:
// Level+Text for headings, Text for text, Code for code (verbatim,
// never whitespace-normalized), Image for images.
type ContentBlock struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text,omitempty"`
	Code  string    `json:"code,omitempty"`
	Image *Image    `json:"image,omitempty"`
}

// Image is an image reference extracted from a unit page. Only metadata is
// recorded; image binaries are never downloaded.
type Image struct {
	Src     string    `json:"src"`
	Type    ImageType `json:"image_type"`
	AltText string    `json:"alt_text"`
}

// Heading is a heading entry in a flattened unit record.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// BlockExtractor parses a unit page into an ordered sequence of typed
// content blocks.
type BlockExtractor interface {
	// ExtractBlocks returns the page's content blocks in document order,
	// scoped to the main content region. Relative image sources are
	// resolved against pageURL. A malformed element is skipped; it never
	// fails the rest of the page.
	ExtractBlocks(html string, pageURL string) ([]ContentBlock, error)
}
