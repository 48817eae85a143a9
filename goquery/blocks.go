package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"coursetree"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// chromeSelector matches page furniture that must never leak into content
// blocks, identified by container markers rather than text heuristics.
const chromeSelector = "script, style, nav, header, footer, aside"

// ExtractBlocks parses a unit page into an ordered sequence of typed
// content blocks, scoped to the page's main content region. A malformed
// element is skipped; extraction continues with the rest of the page.
func (e *Extractor) ExtractBlocks(htmlStr string, pageURL string) ([]coursetree.ContentBlock, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "failed to parse HTML: %v", err)
	}

	scope := doc.Find("main").First()
	if scope.Length() == 0 {
		scope = doc.Find("article").First()
	}
	if scope.Length() == 0 {
		scope = doc.Find("body").First()
	}
	if scope.Length() == 0 {
		return nil, nil
	}
	scope.Find(chromeSelector).Remove()

	w := &blockWalker{base: base}
	for _, n := range scope.Nodes {
		w.walk(n, false)
	}
	return w.blocks, nil
}

// blockWalker traverses the content region's node tree in document order,
// emitting one block per heading, paragraph-level text node, preformatted
// region, and embedded image.
type blockWalker struct {
	base   *url.URL
	blocks []coursetree.ContentBlock
}

// walk visits n and its children. In imagesOnly mode (inside an already
// emitted text block) only images are collected, so an illustration keeps
// its position without its surrounding text being emitted twice.
func (w *blockWalker) walk(n *html.Node, imagesOnly bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if !imagesOnly {
				if text := normalizeSpace(nodeText(n)); text != "" {
					level := int(n.Data[1] - '0')
					w.blocks = append(w.blocks, coursetree.ContentBlock{
						Kind:  coursetree.BlockHeading,
						Level: level,
						Text:  text,
					})
				}
			}
			return
		case "pre":
			if !imagesOnly {
				// Whitespace inside code is semantically significant:
				// verbatim except the parser-inserted leading newline.
				if code := strings.TrimPrefix(nodeText(n), "\n"); strings.TrimSpace(code) != "" {
					w.blocks = append(w.blocks, coursetree.ContentBlock{
						Kind: coursetree.BlockCode,
						Code: code,
					})
				}
			}
			return
		case "p", "li":
			if !imagesOnly {
				if text := normalizeSpace(nodeText(n)); text != "" {
					w.blocks = append(w.blocks, coursetree.ContentBlock{
						Kind: coursetree.BlockText,
						Text: text,
					})
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					w.walk(c, true)
				}
				return
			}
		case "img":
			w.emitImage(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, imagesOnly)
	}
}

// emitImage emits an image block for an img element. Images without a
// resolvable src, explicit zero-size tracking pixels, and icon-classified
// decoration are dropped; classification and filtering are one decision
// point.
func (w *blockWalker) emitImage(n *html.Node) {
	src := nodeAttr(n, "src")
	if src == "" {
		return
	}
	if isTrackingPixel(n) {
		return
	}

	alt := nodeAttr(n, "alt")
	imageType := coursetree.ClassifyImage(src, alt)
	if imageType == coursetree.ImageIcon {
		return
	}

	resolved := resolveURL(w.base, src)
	if resolved == "" {
		return
	}

	w.blocks = append(w.blocks, coursetree.ContentBlock{
		Kind: coursetree.BlockImage,
		Image: &coursetree.Image{
			Src:     resolved,
			Type:    imageType,
			AltText: alt,
		},
	})
}

// isTrackingPixel reports whether the img declares a zero- or one-pixel
// dimension.
func isTrackingPixel(n *html.Node) bool {
	for _, attr := range []string{"width", "height"} {
		if v := nodeAttr(n, attr); v != "" {
			if size, err := strconv.Atoi(v); err == nil && size <= 1 {
				return true
			}
		}
	}
	return false
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates the text nodes under n without normalization.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeSpace collapses whitespace runs to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
