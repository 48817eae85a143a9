package scrape

import (
	"encoding/json"
	"fmt"

	"coursetree"

	"github.com/cespare/xxhash/v2"
)

// HashBlocks computes a stable hash over a unit's ordered block sequence.
// Two runs over unchanged markup produce the same hash, which is how the
// resume path decides a stored unit is still usable.
func HashBlocks(blocks []coursetree.ContentBlock) string {
	data, err := json.Marshal(blocks)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
