package site

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"school-builder/internal/domain/blocks"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Template is a starter site an owner can copy into their workspace.
type Template struct {
	Slug        string         `yaml:"slug" json:"slug"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description"`
	Pages       []TemplatePage `yaml:"pages" json:"pages"`
}

type TemplatePage struct {
	Name   string  `yaml:"name" json:"name"`
	Blocks []Block `yaml:"blocks" json:"blocks"`
}

// Catalog holds the starter templates, sorted by name.
type Catalog struct {
	templates []Template
}

// LoadCatalog parses the embedded templates.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(templateFS, "templates/*.yaml")
}

func ParseCatalog(fsys fs.FS, pattern string) (*Catalog, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	seen := map[string]bool{}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", f, err)
		}
		var t Template
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", f, err)
		}
		if t.Slug == "" {
			t.Slug = MakeSlug(t.Name)
		}
		if seen[t.Slug] {
			return nil, fmt.Errorf("template %s: duplicate slug %q", f, t.Slug)
		}
		seen[t.Slug] = true
		c.templates = append(c.templates, t)
	}
	sort.Slice(c.templates, func(i, j int) bool { return c.templates[i].Name < c.templates[j].Name })
	return c, nil
}

func (c *Catalog) List() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

func (c *Catalog) Get(slug string) (Template, error) {
	for _, t := range c.templates {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%s: %w", slug, ErrTemplateNotFound)
}

// Instantiate turns the template into pages of fresh blocks. Template props
// are layered over the registry defaults.
func (t Template) Instantiate(reg *blocks.Registry, opts ...DocumentOption) []Page {
	pages := make([]Page, 0, len(t.Pages))
	for _, tp := range t.Pages {
		doc := NewDocument(reg, nil, opts...)
		for _, tb := range tp.Blocks {
			b := doc.Append(tb.Type)
			if len(tb.Props) > 0 {
				_ = doc.UpdateProps(b.ID, tb.Props)
			}
		}
		pages = append(pages, Page{Name: tp.Name, Slug: MakeSlug(tp.Name), Blocks: doc.Blocks()})
	}
	return pages
}
