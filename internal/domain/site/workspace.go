package site

import (
	"fmt"
	"strings"

	"school-builder/internal/domain/blocks"
)

const DefaultPageName = "Home"

// Workspace is an owner's whole site as it is being edited: named pages, one
// of which is loaded into the editor, plus site-wide settings and publish
// status. It is not safe for concurrent use.
type Workspace struct {
	Name     string
	Settings Settings

	reg       *blocks.Registry
	variant   Variant
	docOpts   []DocumentOption
	order     []string
	pages     map[string][]Block
	current   string
	editor    *Editor
	publisher *Publisher
	published *PublishedSite
	dirty     bool
}

// NewWorkspace returns a workspace with one empty page.
func NewWorkspace(reg *blocks.Registry, variant Variant, opts ...DocumentOption) *Workspace {
	return FromState(reg, variant, State{}, opts...)
}

// FromState rebuilds a workspace from persisted state. Missing pieces fall
// back to defaults.
func FromState(reg *blocks.Registry, variant Variant, st State, opts ...DocumentOption) *Workspace {
	ws := &Workspace{
		Name:      st.Name,
		Settings:  DefaultSettings().Merge(st.Settings),
		reg:       reg,
		variant:   variant,
		docOpts:   opts,
		pages:     make(map[string][]Block),
		publisher: NewPublisher(st.Status, st.LastPublished),
		published: st.Published,
	}
	if ws.Name == "" {
		ws.Name = "My School"
	}
	for _, p := range st.Pages {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		if _, dup := ws.pages[name]; dup {
			continue
		}
		ws.order = append(ws.order, name)
		ws.pages[name] = cloneBlocks(p.Blocks, false)
	}
	if len(ws.order) == 0 {
		ws.order = []string{DefaultPageName}
		ws.pages[DefaultPageName] = nil
	}
	current := st.CurrentPage
	if _, ok := ws.pages[current]; !ok {
		current = ws.order[0]
	}
	ws.load(current)
	return ws
}

func (ws *Workspace) load(name string) {
	ws.current = name
	ws.editor = NewEditor(NewDocument(ws.reg, ws.pages[name], ws.docOpts...), ws.variant)
}

// flush writes the editor's blocks back into the page map.
func (ws *Workspace) flush() {
	ws.pages[ws.current] = cloneBlocks(ws.editor.Blocks(), false)
}

func (ws *Workspace) Editor() *Editor { return ws.editor }
func (ws *Workspace) Registry() *blocks.Registry { return ws.reg }
func (ws *Workspace) Publisher() *Publisher { return ws.publisher }
func (ws *Workspace) CurrentPage() string { return ws.current }

func (ws *Workspace) Pages() []string {
	out := make([]string, len(ws.order))
	copy(out, ws.order)
	return out
}

// PageBlocks returns the blocks of a page, looked up by name or slug. The
// current page is read from the editor.
func (ws *Workspace) PageBlocks(ref string) ([]Block, error) {
	name, ok := ws.resolve(ref)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrPageNotFound)
	}
	if name == ws.current {
		return ws.editor.Blocks(), nil
	}
	return cloneBlocks(ws.pages[name], false), nil
}

// resolve maps a page reference, either its name or its slug, onto the name.
func (ws *Workspace) resolve(ref string) (string, bool) {
	if _, ok := ws.pages[ref]; ok {
		return ref, true
	}
	for _, name := range ws.order {
		if MakeSlug(name) == ref {
			return name, true
		}
	}
	return "", false
}

// AddPage appends an empty page. The name must produce a slug of its own, so
// every page stays reachable by URL.
func (ws *Workspace) AddPage(name string) error {
	name = strings.TrimSpace(name)
	slug := MakeSlug(name)
	if name == "" || slug == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, ErrInvalidPageName)
	}
	if _, ok := ws.pages[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrPageExists)
	}
	for _, other := range ws.order {
		if MakeSlug(other) == slug {
			return fmt.Errorf("%s: slug %q taken by %s: %w", name, slug, other, ErrPageExists)
		}
	}
	ws.order = append(ws.order, name)
	ws.pages[name] = nil
	ws.dirty = true
	return nil
}

// SwitchPage snapshots the outgoing page and loads ref, a name or slug, into
// the editor.
func (ws *Workspace) SwitchPage(ref string) error {
	name, ok := ws.resolve(ref)
	if !ok {
		return fmt.Errorf("%s: %w", ref, ErrPageNotFound)
	}
	if name == ws.current {
		return nil
	}
	ws.flush()
	ws.dirty = ws.dirty || ws.editor.Dirty()
	ws.load(name)
	return nil
}

// DeletePage drops a page, named by name or slug, and its blocks. The last
// page cannot go; deleting the current page loads the first remaining one.
func (ws *Workspace) DeletePage(ref string) error {
	name, ok := ws.resolve(ref)
	if !ok {
		return fmt.Errorf("%s: %w", ref, ErrPageNotFound)
	}
	if len(ws.order) == 1 {
		return ErrLastPage
	}
	for i, n := range ws.order {
		if n == name {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	delete(ws.pages, name)
	ws.dirty = true
	if name == ws.current {
		ws.dirty = ws.dirty || ws.editor.Dirty()
		ws.load(ws.order[0])
	}
	return nil
}

// ReplacePages swaps every page for pages, as when a starter template is
// applied.
func (ws *Workspace) ReplacePages(pages []Page) {
	ws.order = nil
	ws.pages = make(map[string][]Block)
	slugs := make(map[string]bool, len(pages))
	for _, p := range pages {
		slug := MakeSlug(p.Name)
		if _, dup := ws.pages[p.Name]; dup || slugs[slug] || strings.TrimSpace(p.Name) == "" {
			continue
		}
		slugs[slug] = true
		ws.order = append(ws.order, p.Name)
		ws.pages[p.Name] = cloneBlocks(p.Blocks, false)
	}
	if len(ws.order) == 0 {
		ws.order = []string{DefaultPageName}
		ws.pages[DefaultPageName] = nil
	}
	ws.dirty = true
	ws.load(ws.order[0])
}

// Empty reports whether no page holds a block.
func (ws *Workspace) Empty() bool {
	if ws.editor.Document().Len() > 0 {
		return false
	}
	for name, b := range ws.pages {
		if name != ws.current && len(b) > 0 {
			return false
		}
	}
	return true
}

func (ws *Workspace) SetName(name string) {
	name = strings.TrimSpace(name)
	if name != "" && name != ws.Name {
		ws.Name = name
		ws.dirty = true
	}
}

func (ws *Workspace) UpdateSettings(patch Settings) {
	ws.Settings = ws.Settings.Merge(patch)
	ws.dirty = true
}

func (ws *Workspace) Dirty() bool { return ws.dirty || ws.editor.Dirty() }

func (ws *Workspace) MarkClean() {
	ws.dirty = false
	ws.editor.MarkClean()
}

func (ws *Workspace) Published() *PublishedSite { return ws.published }

// SetPublished records the site copy made by a finished publish.
func (ws *Workspace) SetPublished(p *PublishedSite) { ws.published = p }

// Snapshot captures the workspace in its persisted shape. Editing flags are
// dropped and a running publish is not visible.
func (ws *Workspace) Snapshot() State {
	status, last := ws.publisher.Settled()
	st := State{
		Name:          ws.Name,
		CurrentPage:   ws.current,
		Settings:      ws.Settings,
		Status:        status,
		LastPublished: last,
		Published:     ws.published,
		Pages:         make([]Page, 0, len(ws.order)),
	}
	for _, name := range ws.order {
		var b []Block
		if name == ws.current {
			b = cloneBlocks(ws.editor.Blocks(), false)
		} else {
			b = cloneBlocks(ws.pages[name], false)
		}
		st.Pages = append(st.Pages, Page{Name: name, Slug: MakeSlug(name), Blocks: b})
	}
	return st
}
