package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/a-h/templ"
	"github.com/rubiojr/apodview/pkg/page"
	"github.com/rubiojr/apodview/pkg/version"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageTitle is the document and header title.
const PageTitle = "NASA Space Explorer"

// PageData is the data of the full page template.
type PageData struct {
	Title   string
	Version string
	View    page.View
	Regions map[string]template.HTML
}

// Views renders the page and its regions from the embedded templates.
type Views struct {
	tmpl *template.Template
}

// NewViews parses the embedded templates.
func NewViews() (*Views, error) {
	tmpl, err := template.New("apodview").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	for _, r := range page.AllRegions {
		if tmpl.Lookup(string(r)) == nil {
			return nil, fmt.Errorf("missing template for region %q", r)
		}
	}
	return &Views{tmpl: tmpl}, nil
}

// Region returns the component rendering one page region.
func (v *Views) Region(r page.Region, view page.View) templ.Component {
	return templ.FromGoHTML(v.tmpl.Lookup(string(r)), view)
}

// Page returns the full page component for view.
func (v *Views) Page(ctx context.Context, view page.View) (templ.Component, error) {
	regions := make(map[string]template.HTML, len(page.AllRegions))
	for _, r := range page.AllRegions {
		html, err := templ.ToGoHTML(ctx, v.Region(r, view))
		if err != nil {
			return nil, fmt.Errorf("rendering region %s: %w", r, err)
		}
		regions[string(r)] = html
	}
	data := PageData{
		Title:   PageTitle,
		Version: version.APIVersion(),
		View:    view,
		Regions: regions,
	}
	return templ.FromGoHTML(v.tmpl.Lookup("page"), data), nil
}

// RenderRegions renders the named regions to HTML strings keyed by region.
func (v *Views) RenderRegions(ctx context.Context, view page.View, regions []page.Region) (map[string]string, error) {
	out := make(map[string]string, len(regions))
	var buf bytes.Buffer
	for _, r := range regions {
		buf.Reset()
		if err := v.Region(r, view).Render(ctx, &buf); err != nil {
			return nil, fmt.Errorf("rendering region %s: %w", r, err)
		}
		out[string(r)] = buf.String()
	}
	return out, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"paragraphs": paragraphs,
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
	}
}

// paragraphs splits text on blank lines, dropping empty parts.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
