package metagen

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/microcosm-cc/bluemonday"
)

const headTemplate = `<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
<title>{{.Title}}</title>
<meta name="title" content="{{.Title}}">
<meta name="description" content="{{.Description}}">
{{- if .Keywords}}
<meta name="keywords" content="{{.Keywords}}">
{{- end}}
<meta name="robots" content="{{.Robots}}">
<meta name="author" content="{{.Author}}">
{{- if .Canonical}}
<link rel="canonical" href="{{.Canonical}}">
{{- end}}
<meta property="og:type" content="website">
<meta property="og:url" content="{{.URL}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.Image}}">
<meta property="twitter:card" content="summary_large_image">
<meta property="twitter:url" content="{{.URL}}">
<meta property="twitter:title" content="{{.Title}}">
<meta property="twitter:description" content="{{.Description}}">
<meta property="twitter:image" content="{{.Image}}">
<link rel="icon" href="{{.Favicon}}">
<link rel="apple-touch-icon" href="{{.AppleTouchIcon}}">
`

// Defaults returns the values used for fields left empty
func Defaults() types.GenerateRequest {
	return types.GenerateRequest{
		Title:          "SEO Inspect",
		Description:    "Generate SEO for your project",
		URL:            "https://seo-inspect.vercel.app",
		Image:          "https://seo-inspect.vercel.app",
		Author:         "developer",
		Keywords:       "seo, web, meta tags",
		Robots:         "index, follow",
		Canonical:      "https://seo-inspect.vercel.app",
		Favicon:        "/favicon.ico",
		AppleTouchIcon: "/apple-touch-icon.png",
	}
}

// Generator renders <head> snippets
type Generator struct {
	policy   *bluemonday.Policy
	tmpl     *template.Template
	defaults types.GenerateRequest
}

// NewGenerator creates a generator with the standard defaults
func NewGenerator() *Generator {
	return &Generator{
		policy:   bluemonday.StrictPolicy(),
		tmpl:     template.Must(template.New("head").Parse(headTemplate)),
		defaults: Defaults(),
	}
}

// Generate sanitizes req, fills empty fields from the defaults and renders
// the snippet
func (g *Generator) Generate(req types.GenerateRequest) (string, error) {
	return g.Render(g.Resolve(req))
}

// Resolve returns the sanitized request with defaults applied
func (g *Generator) Resolve(req types.GenerateRequest) types.GenerateRequest {
	pick := func(value, fallback string) string {
		if v := g.clean(value); v != "" {
			return v
		}
		return fallback
	}

	d := g.defaults
	return types.GenerateRequest{
		Title:          pick(req.Title, d.Title),
		Description:    pick(req.Description, d.Description),
		URL:            pick(req.URL, d.URL),
		Image:          pick(req.Image, d.Image),
		Author:         pick(req.Author, d.Author),
		Keywords:       pick(req.Keywords, d.Keywords),
		Robots:         pick(req.Robots, d.Robots),
		Canonical:      pick(req.Canonical, d.Canonical),
		Favicon:        pick(req.Favicon, d.Favicon),
		AppleTouchIcon: pick(req.AppleTouchIcon, d.AppleTouchIcon),
	}
}

// Render writes m as-is. Keywords and canonical are omitted when empty.
func (g *Generator) Render(m types.GenerateRequest) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("render head: %w", err)
	}
	return buf.String(), nil
}

// clean strips markup and returns plain text; escaping is left to the template
func (g *Generator) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(g.policy.Sanitize(s)))
}
