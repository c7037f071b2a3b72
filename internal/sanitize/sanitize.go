// Package sanitize reduces feed HTML to plain text before summarization.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strippedElements are removed together with their contents. Links are dropped
// wholesale because anchor text is navigation noise for a summarizer.
var strippedElements = []string{
	"script", "style", "img", "a", "video", "audio", "iframe", "input",
}

// Cleaner strips markup from article bodies. Safe for concurrent use.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner builds a text-only cleaner.
func NewCleaner() *Cleaner {
	p := bluemonday.StrictPolicy()
	p.SkipElementsContent(strippedElements...)
	return &Cleaner{policy: p}
}

// Text returns the plain text remaining after markup removal, with HTML
// entities decoded and surrounding whitespace trimmed.
func (c *Cleaner) Text(raw string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(raw)))
}
