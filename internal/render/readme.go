package render

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"feedloom/internal/fileutil"
	"feedloom/internal/services"
)

// UpdateReadme rewrites the trailing feed-link block of a README-style file:
// the contiguous run of "- " or blank lines at the end of the file is removed
// and replaced with the given links (one "- url -> feed" line each). A missing
// file is created from scratch.
func UpdateReadme(path string, links []string) error {
	var lines []string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = splitLines(string(data))
	case errors.Is(err, fs.ErrNotExist):
		// New file: just the link block.
	default:
		return services.Wrap(services.ErrRender, "render", "read readme", path, err)
	}

	lines = trimTrailingLinkBlock(lines)
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, links...)

	content := strings.Join(lines, "\n") + "\n"
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return services.Wrap(services.ErrRender, "render", "write readme", path, err)
	}
	return nil
}

// FeedLink formats one README line for a section.
func FeedLink(urls []string, deployURL, name string) string {
	return "- " + strings.Join(urls, ", ") + " -> " + deployURL + name + ".xml"
}

func trimTrailingLinkBlock(lines []string) []string {
	end := len(lines)
	for end > 0 {
		line := lines[end-1]
		if strings.HasPrefix(line, "- ") || strings.TrimSpace(line) == "" {
			end--
			continue
		}
		break
	}
	return lines[:end]
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	// A trailing newline produces one empty trailing element; drop it so the
	// join on write does not duplicate it.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
