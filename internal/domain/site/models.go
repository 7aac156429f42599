package site

import (
	"time"

	"school-builder/internal/domain/blocks"
)

// Block is one content unit on a page. Editing is editor state and is never
// serialized.
type Block struct {
	ID      string       `json:"id" yaml:"id,omitempty"`
	Type    string       `json:"type" yaml:"type"`
	Props   blocks.Props `json:"props" yaml:"props"`
	Editing bool         `json:"-" yaml:"-"`
}

func (b Block) Clone() Block {
	b.Props = b.Props.Clone()
	return b
}

func cloneBlocks(in []Block, keepEditing bool) []Block {
	out := make([]Block, len(in))
	for i, b := range in {
		out[i] = b.Clone()
		if !keepEditing {
			out[i].Editing = false
		}
	}
	return out
}

type Page struct {
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Blocks []Block `json:"blocks"`
}

// PublishedSite is the copy of the saved pages served publicly.
type PublishedSite struct {
	Name        string    `json:"name"`
	Pages       []Page    `json:"pages"`
	Settings    Settings  `json:"settings"`
	PublishedAt time.Time `json:"publishedAt"`
}

// State is the persisted shape of a workspace.
type State struct {
	Name          string
	Pages         []Page
	CurrentPage   string
	Settings      Settings
	Status        Status
	LastPublished *time.Time
	Published     *PublishedSite
}

// CurrentBlocks returns the blocks of the current page, or nil.
func (s State) CurrentBlocks() []Block {
	if p, ok := s.Page(s.CurrentPage); ok {
		return p.Blocks
	}
	return nil
}

func (s State) Page(name string) (Page, bool) {
	for _, p := range s.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}
