package coursetree

import "strings"

// ImageType is the heuristic category assigned to an image reference.
type ImageType string

// Image categories.
const (
	ImageDiagram    ImageType = "diagram"
	ImageScreenshot ImageType = "screenshot"
	ImageChart      ImageType = "chart"
	ImageIcon       ImageType = "icon"
	ImageOther      ImageType = "other"
)

// classifierRule maps a set of keywords to an image category. Rules are
// evaluated in table order; the first matching rule wins.
type classifierRule struct {
	category ImageType
	keywords []string
}

// pathRules classify by tokens in the image source path. Path signals take
// precedence over alt-text signals: filenames are a more stable signal
// across page redesigns than free-text alt copy.
var pathRules = []classifierRule{
	{ImageDiagram, []string{"diagram", "architecture", "flowchart", "workflow"}},
	{ImageScreenshot, []string{"screenshot", "screen", "interface"}},
	{ImageChart, []string{"chart", "graph", "plot"}},
	{ImageIcon, []string{"icon", "logo", "badge", "sprite"}},
}

// altRules classify by tokens in the alternate text, consulted only when no
// path rule matches.
var altRules = []classifierRule{
	{ImageDiagram, []string{"diagram", "architecture", "flowchart", "workflow", "hierarchy"}},
	{ImageScreenshot, []string{"screenshot", "screen", "interface", "portal", "window"}},
	{ImageChart, []string{"chart", "graph", "plot", "visualization"}},
	{ImageIcon, []string{"icon", "logo", "badge", "button"}},
}

// ClassifyImage assigns a category to an image from its source path and
// alternate text. It is a pure function: no network access, no binary
// inspection, same inputs always produce the same category. When path and
// alt signals disagree, the path wins.
func ClassifyImage(src, altText string) ImageType {
	if t, ok := matchRules(pathRules, strings.ToLower(src)); ok {
		return t
	}
	if t, ok := matchRules(altRules, strings.ToLower(altText)); ok {
		return t
	}
	return ImageOther
}

func matchRules(rules []classifierRule, s string) (ImageType, bool) {
	if s == "" {
		return ImageOther, false
	}
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.category, true
			}
		}
	}
	return ImageOther, false
}
