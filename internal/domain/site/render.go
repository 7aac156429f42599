package site

import (
	"bytes"
	"html/template"

	"school-builder/internal/domain/blocks"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{with .Page}} | {{.}}{{end}}</title>
{{if .NoIndex}}<meta name="robots" content="noindex">{{end}}
<style>{{.CSS}}
body{font-family:var(--font-body);margin:0;background:var(--color-secondary)}
header,.block{padding:2rem}header a{color:var(--color-primary);margin-right:1rem}
.button{background:var(--color-accent);padding:.5rem 1rem;color:#fff;text-decoration:none}
</style>
</head>
<body>
<header>{{with .Logo}}<img src="{{.}}" alt="" height="40">{{end}}<strong>{{.Title}}</strong>
{{if gt (len .Nav) 1}}<nav>{{range .Nav}}<a href="{{.Href}}">{{.Name}}</a>{{end}}</nav>{{end}}
</header>
<main>
{{range .Blocks}}<div data-block-id="{{.ID}}" data-block-type="{{.Type}}">{{.HTML}}</div>
{{end}}</main>
</body>
</html>
`))

// NavLink is one entry of the rendered page navigation.
type NavLink struct {
	Name string
	Href string
}

// RenderOptions controls page rendering.
type RenderOptions struct {
	Title    string
	Page     string
	Settings Settings
	Nav      []NavLink
	NoIndex  bool
}

type renderedBlock struct {
	ID   string
	Type string
	HTML template.HTML
}

// RenderPage renders blocks as a standalone HTML document. Every block goes
// through the registry, so unknown types show a placeholder.
func RenderPage(reg *blocks.Registry, list []Block, opts RenderOptions) ([]byte, error) {
	rendered := make([]renderedBlock, 0, len(list))
	for _, b := range list {
		rendered = append(rendered, renderedBlock{ID: b.ID, Type: b.Type, HTML: reg.Render(b.Type, b.Props)})
	}
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, map[string]any{
		"Title":   opts.Title,
		"Page":    opts.Page,
		"CSS":     opts.Settings.CSS(),
		"Logo":    opts.Settings.LogoURL,
		"Nav":     opts.Nav,
		"NoIndex": opts.NoIndex,
		"Blocks":  rendered,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
