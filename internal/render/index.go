package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
	"time"

	"feedloom/internal/fileutil"
	"feedloom/internal/services"
)

//go:embed index.html.tmpl
var indexTemplate string

// IndexSection is one row of the generated index page.
type IndexSection struct {
	Name string
	// URLDisplay joins the configured source URLs with "<br>" for display.
	URLDisplay template.HTML
}

// NewIndexSection builds an index row from a section name and its source URLs.
func NewIndexSection(name string, urls []string) IndexSection {
	escaped := make([]string, len(urls))
	for i, u := range urls {
		escaped[i] = template.HTMLEscapeString(u)
	}
	return IndexSection{
		Name:       name,
		URLDisplay: template.HTML(strings.Join(escaped, "<br>")),
	}
}

type indexData struct {
	UpdateTime string
	Sections   []IndexSection
}

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// WriteIndex renders the index page listing every section with a last-update
// timestamp.
func WriteIndex(path string, sections []IndexSection, now time.Time) error {
	var buf bytes.Buffer
	data := indexData{
		UpdateTime: now.Format("2006-01-02 15:04:05"),
		Sections:   sections,
	}
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return services.Wrap(services.ErrRender, "render", "execute index template", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return services.Wrap(services.ErrRender, "render", "write index", path, err)
	}
	return nil
}
