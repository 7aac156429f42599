package blocks

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"sync"
)

var (
	ErrDuplicateType = errors.New("block type already registered")
	ErrNoEditor      = errors.New("no editor available")
	ErrUnknownField  = errors.New("unknown editor field")
)

// RenderFunc turns a fully defaulted props bag into markup.
type RenderFunc func(props Props) (template.HTML, error)

// Definition describes one entry of the block palette.
type Definition struct {
	Type        string
	Description string
	Defaults    Props
	Fields      []Field
	Render      RenderFunc
}

// Registry maps block types to their renderer and editor schema.
// It is filled once at startup and read concurrently afterwards.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Definition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("register block: empty type")
	}
	if def.Render == nil {
		return fmt.Errorf("register block %q: nil renderer", def.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Type]; ok {
		return fmt.Errorf("register block %q: %w", def.Type, ErrDuplicateType)
	}
	def.Defaults = def.Defaults.Clone()
	r.defs[def.Type] = def
	r.order = append(r.order, def.Type)
	return nil
}

func (r *Registry) Lookup(typ string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[typ]
	return def, ok
}

func (r *Registry) Has(typ string) bool {
	_, ok := r.Lookup(typ)
	return ok
}

// Types lists the registered types in registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Defaults returns a copy of the default props of typ. Unknown types get an
// empty bag.
func (r *Registry) Defaults(typ string) Props {
	def, ok := r.Lookup(typ)
	if !ok {
		return Props{}
	}
	return def.Defaults.Clone()
}

var unknownTmpl = template.Must(template.New("unknown").Parse(
	`<div class="block block-unknown" role="note">Unknown component: {{.}}</div>`))

// Render never fails: unknown types and renderer errors produce a visible
// placeholder instead.
func (r *Registry) Render(typ string, props Props) template.HTML {
	def, ok := r.Lookup(typ)
	if !ok {
		return unknownPlaceholder(typ)
	}
	out, err := def.Render(def.Defaults.Merge(props))
	if err != nil {
		log.Printf("[blocks] render %q: %v", typ, err)
		return unknownPlaceholder(typ)
	}
	return out
}

func unknownPlaceholder(typ string) template.HTML {
	var buf bytes.Buffer
	if err := unknownTmpl.Execute(&buf, typ); err != nil {
		return template.HTML(`<div class="block block-unknown">Unknown component</div>`)
	}
	return template.HTML(buf.String())
}

// Editor builds the form for a block, seeded from its current props with
// missing fields filled from the defaults.
func (r *Registry) Editor(typ string, props Props) Form {
	def, ok := r.Lookup(typ)
	if !ok || len(def.Fields) == 0 {
		return Form{
			Type:      typ,
			Available: false,
			Message:   "No editor available for " + typ,
		}
	}
	merged := def.Defaults.Merge(props)
	form := Form{Type: typ, Available: true, Fields: make([]FormField, 0, len(def.Fields))}
	for _, f := range def.Fields {
		form.Fields = append(form.Fields, FormField{Field: f, Value: cloneValue(merged[f.Name])})
	}
	return form
}
