// Package feed defines the entry record produced by normalization and shared by
// every pipeline stage.
package feed

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// titleFallbackRunes is how much of the article body becomes the title when the
// upstream entry has none.
const titleFallbackRunes = 50

// Entry is one syndication item after normalization. The link is the identity
// key; entries with equal links are the same entry regardless of other fields.
// Entries are never mutated once accepted into a merge result.
type Entry struct {
	Link      string
	Title     string
	Article   string
	Summary   string
	Published time.Time
}

// HasSummary reports whether summarization produced output for this entry.
func (e Entry) HasSummary() bool {
	return strings.TrimSpace(e.Summary) != ""
}

// CleanLink strips the reply anchor v2ex appends for deep linking. The fragment
// would otherwise make the same topic look like a new entry on every poll. This
// is a narrow site-specific fixup, not URL canonicalization.
func CleanLink(link string) string {
	if strings.Contains(link, "v2ex") && strings.Contains(link, "#replay") {
		if idx := strings.Index(link, "#"); idx >= 0 {
			return link[:idx]
		}
	}
	return link
}

// Normalize derives a stable Entry from a parsed feed item. Title falls back to
// the first 50 runes of the article body, then to the link; the article body
// falls back from content to description to the resolved title, so it is never
// empty once the title resolves. Pure function of the item.
func Normalize(item *gofeed.Item) Entry {
	entry := Entry{Link: CleanLink(item.Link)}
	if item.PublishedParsed != nil {
		entry.Published = *item.PublishedParsed
	}

	entry.Article = articleOf(item)
	entry.Title = titleOf(item, entry.Article, entry.Link)
	if entry.Article == "" {
		entry.Article = entry.Title
	}
	return entry
}

func articleOf(item *gofeed.Item) string {
	if strings.TrimSpace(item.Content) != "" {
		return item.Content
	}
	return item.Description
}

func titleOf(item *gofeed.Item, article, link string) string {
	if strings.TrimSpace(item.Title) != "" {
		return item.Title
	}
	if article != "" {
		runes := []rune(article)
		if len(runes) > titleFallbackRunes {
			return string(runes[:titleFallbackRunes])
		}
		return article
	}
	return link
}
