// Package goquery provides CSS-selector based extraction of course
// hierarchy and unit content from training-site markup.
package goquery

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"coursetree"

	"github.com/PuerkitoBio/goquery"
)

// Ensure Extractor implements the parsing interfaces at compile time.
var (
	_ coursetree.ChildExtractor = (*Extractor)(nil)
	_ coursetree.BlockExtractor = (*Extractor)(nil)
)

// Extractor parses training-course pages. Learning paths are discovered
// from course pages, modules from learning path pages, and units from
// module pages, each with its own listing markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTitle returns the page's first h1 text, whitespace-normalized,
// or "" when the page has none.
func (e *Extractor) ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return normalizeSpace(doc.Find("h1").First().Text())
}

// ExtractChildren returns the page's children of the given kind in document
// order, deduplicated by URL with the first occurrence winning.
func (e *Extractor) ExtractChildren(html string, baseURL string, kind coursetree.ChildKind) ([]coursetree.ChildRef, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "failed to parse HTML: %v", err)
	}

	switch kind {
	case coursetree.ChildLearningPaths:
		return extractLearningPaths(doc, base), nil
	case coursetree.ChildModules:
		return extractModules(doc, base), nil
	case coursetree.ChildUnits:
		return extractUnits(doc, base), nil
	default:
		return nil, coursetree.Errorf(coursetree.EINVALID, "unknown child kind %q", kind)
	}
}

// learnUIDPrefix marks learning path cards on a course page. The card body
// is injected client-side, so the title is reconstructed from the UID slug.
const learnUIDPrefix = "learn."

// extractLearningPaths finds learning path references on a course page via
// data-learn-uid article markers.
func extractLearningPaths(doc *goquery.Document, base *url.URL) []coursetree.ChildRef {
	pathsBase := trainingBase(base) + "paths/"

	seen := make(map[string]bool)
	var refs []coursetree.ChildRef

	doc.Find("article[data-learn-uid]").Each(func(_ int, sel *goquery.Selection) {
		uid, _ := sel.Attr("data-learn-uid")
		if !strings.HasPrefix(uid, learnUIDPrefix) {
			return
		}
		// learn.wwl.explore-azure-machine-learning-workspace → last dot segment
		slug := uid[strings.LastIndex(uid, ".")+1:]
		if slug == "" {
			return
		}

		pathURL := pathsBase + slug + "/"
		if seen[pathURL] {
			return
		}
		seen[pathURL] = true

		title := normalizeSpace(sel.Find("h3, h2").First().Text())
		if title == "" {
			title = humanizeSlug(slug)
		}

		refs = append(refs, coursetree.ChildRef{Title: title, URL: pathURL})
	})

	return refs
}

// extractModules finds module references on a learning path page: anchors
// whose href points into the modules tree.
func extractModules(doc *goquery.Document, base *url.URL) []coursetree.ChildRef {
	seen := make(map[string]bool)
	var refs []coursetree.ChildRef

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "modules") {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}
		if !strings.HasSuffix(resolved, "/") {
			resolved += "/"
		}

		title := cleanTitle(sel.Text())
		if title == "" {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		refs = append(refs, coursetree.ChildRef{Title: title, URL: resolved})
	})

	return refs
}

// unitHrefRe matches numbered unit hrefs like "1-introduction" or
// "3-configure-workspace/".
var unitHrefRe = regexp.MustCompile(`(?:^|/)\d+-[\w-]+/?$`)

// unitKeywords are hrefs of common unnumbered unit types.
var unitKeywords = []string{"introduction", "summary", "assessment", "exercise", "knowledge-check"}

// extractUnits finds unit references on a module page. Units are anchors
// below the module's own path, either numbered ("2-provision") or matching
// a well-known unit keyword. The result is ordered by unit number, which
// reproduces pedagogical order even when the markup lists units twice.
func extractUnits(doc *goquery.Document, base *url.URL) []coursetree.ChildRef {
	type unitRef struct {
		ref    coursetree.ChildRef
		number int
	}

	modulePath := base.Path
	seen := make(map[string]bool)
	var units []unitRef

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || !isUnitHref(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}

		// Units live below their module's path; anything else is chrome.
		resolvedURL, err := url.Parse(resolved)
		if err != nil || !strings.HasPrefix(resolvedURL.Path, modulePath) {
			return
		}

		title := cleanTitle(sel.Text())
		if title == "" {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		units = append(units, unitRef{
			ref:    coursetree.ChildRef{Title: title, URL: resolved},
			number: unitNumber(resolved, title),
		})
	})

	// Stable sort keeps document order for units with equal numbers.
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].number < units[j].number
	})

	refs := make([]coursetree.ChildRef, 0, len(units))
	for _, u := range units {
		refs = append(refs, u.ref)
	}
	return refs
}

func isUnitHref(href string) bool {
	if unitHrefRe.MatchString(strings.TrimSuffix(href, "/")) {
		return true
	}
	for _, kw := range unitKeywords {
		if strings.Contains(href, kw) {
			return true
		}
	}
	return false
}

var (
	urlNumberRe   = regexp.MustCompile(`/(\d+)-`)
	titleNumberRe = regexp.MustCompile(`^(\d+)[.\s]`)
)

// unitOrder assigns fallback positions to common unnumbered unit types.
var unitOrder = []struct {
	keyword string
	number  int
}{
	{"introduction", 1},
	{"exercise", 900},
	{"knowledge-check", 998},
	{"knowledge check", 998},
	{"assessment", 998},
	{"summary", 999},
}

// unitNumber extracts the unit's position from its URL or title, falling
// back to keyword conventions, then a middle default.
func unitNumber(unitURL, title string) int {
	if m := urlNumberRe.FindStringSubmatch(unitURL); m != nil {
		return atoi(m[1])
	}
	if m := titleNumberRe.FindStringSubmatch(title); m != nil {
		return atoi(m[1])
	}
	lower := strings.ToLower(title)
	for _, u := range unitOrder {
		if strings.Contains(lower, u.keyword) {
			return u.number
		}
	}
	return 500
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// trainingBase returns the site's training root (scheme://host/<locale>/training/)
// derived from the course URL, so locale and host carry over to child URLs.
func trainingBase(base *url.URL) string {
	const marker = "/training/"
	prefix := "/en-us" + marker
	if idx := strings.Index(base.Path, marker); idx >= 0 {
		prefix = base.Path[:idx+len(marker)]
	}
	return base.Scheme + "://" + base.Host + prefix
}

// titleNumberPrefixRe strips listing residue like "3. " or "2) " from
// anchor text so stored titles read as prose.
var titleNumberPrefixRe = regexp.MustCompile(`^\d+[.)]?\s+`)

// cleanTitle normalizes anchor text into a human-readable title.
func cleanTitle(s string) string {
	return titleNumberPrefixRe.ReplaceAllString(normalizeSpace(s), "")
}

// humanizeSlug turns a URL slug into a readable title
// ("explore-azure-workspace" → "Explore Azure Workspace").
func humanizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// resolveURL resolves a relative URL against a base URL, stripping
// fragments for deduplication. Returns "" if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}
