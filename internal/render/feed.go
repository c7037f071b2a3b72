// Package render produces the output artifacts of a run: per-section feed
// files, the index page, and the README feed listing.
package render

import (
	"time"

	"github.com/gorilla/feeds"
	"github.com/mmcdole/gofeed"

	"feedloom/internal/feed"
	"feedloom/internal/fileutil"
	"feedloom/internal/services"
)

// RetainedExisting is the maximum number of carried-over prior entries per
// section file. Newly accepted entries are not subject to this cap.
const RetainedExisting = 10

// WriteFeed renders the merged section feed to path: newly accepted entries
// first, then up to RetainedExisting prior entries, under the metadata of the
// last successfully fetched upstream feed.
func WriteFeed(path string, meta *gofeed.Feed, appended, existing []feed.Entry, now time.Time) error {
	if len(existing) > RetainedExisting {
		existing = existing[:RetainedExisting]
	}

	out := &feeds.Feed{
		Title:       meta.Title,
		Link:        &feeds.Link{Href: meta.Link},
		Description: meta.Description,
		Updated:     now,
	}
	for _, entry := range appended {
		out.Items = append(out.Items, rssItem(entry))
	}
	for _, entry := range existing {
		out.Items = append(out.Items, rssItem(entry))
	}

	rss, err := out.ToRss()
	if err != nil {
		return services.Wrap(services.ErrRender, "render", "encode feed", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(rss), 0o644); err != nil {
		return services.Wrap(services.ErrRender, "render", "write feed", path, err)
	}
	return nil
}

func rssItem(entry feed.Entry) *feeds.Item {
	return &feeds.Item{
		Title:       entry.Title,
		Link:        &feeds.Link{Href: entry.Link},
		Id:          entry.Link,
		Description: Description(entry),
		Created:     entry.Published,
	}
}

// Description builds the rendered entry body. When a summary exists it leads,
// separated from the original article by an HTML double line break. The
// summary text carries its own "<br><br>Summary:" marker as demanded by the
// summarization prompt.
func Description(entry feed.Entry) string {
	if entry.HasSummary() {
		return entry.Summary + "<br><br>" + entry.Article
	}
	return entry.Article
}
