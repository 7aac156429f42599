package site

import (
	"fmt"

	"school-builder/internal/domain/blocks"
)

// Variant picks the click semantics of the editor.
type Variant string

const (
	// VariantBuilder opens the inline editor on click; there is no separate
	// selected state.
	VariantBuilder Variant = "builder"
	// VariantPage selects on click and opens the editor on an explicit edit.
	VariantPage Variant = "page"
)

type EditorState string

const (
	StateIdle     EditorState = "idle"
	StateSelected EditorState = "selected"
	StateEditing  EditorState = "editing"
)

// Editor drives selection and editing over a Document. It guarantees that at
// most one block has Editing set.
type Editor struct {
	doc      *Document
	variant  Variant
	state    EditorState
	selected string
	dirty    bool
}

func NewEditor(doc *Document, variant Variant) *Editor {
	if variant != VariantPage {
		variant = VariantBuilder
	}
	doc.setEditing("")
	return &Editor{doc: doc, variant: variant, state: StateIdle}
}

func (e *Editor) Document() *Document { return e.doc }
func (e *Editor) Variant() Variant { return e.variant }
func (e *Editor) State() EditorState { return e.state }
func (e *Editor) SelectedID() string { return e.selected }
func (e *Editor) Dirty() bool { return e.dirty }
func (e *Editor) MarkClean() { e.dirty = false }
func (e *Editor) Blocks() []Block { return e.doc.Blocks() }
func (e *Editor) Block(id string) (Block, bool) { return e.doc.Block(id) }

func (e *Editor) toIdle() {
	e.state = StateIdle
	e.selected = ""
	e.doc.setEditing("")
}

func (e *Editor) toEditing(id string) {
	e.state = StateEditing
	e.selected = id
	e.doc.setEditing(id)
}

func (e *Editor) require(id string) error {
	if e.doc.Index(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrBlockNotFound)
	}
	return nil
}

// Select handles a click on a block.
func (e *Editor) Select(id string) error {
	if e.variant == VariantBuilder {
		return e.ToggleEdit(id)
	}
	if err := e.require(id); err != nil {
		return err
	}
	if e.state != StateIdle && e.selected == id {
		e.toIdle()
		return nil
	}
	e.state = StateSelected
	e.selected = id
	e.doc.setEditing("")
	return nil
}

// ToggleEdit closes the editor of id when it is open, otherwise opens it and
// closes any other.
func (e *Editor) ToggleEdit(id string) error {
	if err := e.require(id); err != nil {
		return err
	}
	if e.state == StateEditing && e.selected == id {
		e.toIdle()
		return nil
	}
	e.toEditing(id)
	return nil
}

// Edit opens the editor of id.
func (e *Editor) Edit(id string) error {
	if err := e.require(id); err != nil {
		return err
	}
	e.toEditing(id)
	return nil
}

// Done closes whatever is open.
func (e *Editor) Done() {
	e.toIdle()
}

// Form returns the editor form of the block being edited.
func (e *Editor) Form(reg *blocks.Registry, id string) (blocks.Form, error) {
	b, ok := e.doc.Block(id)
	if !ok {
		return blocks.Form{}, fmt.Errorf("form %s: %w", id, ErrBlockNotFound)
	}
	return reg.Editor(b.Type, b.Props), nil
}

// ApplyEdit merges a live edit into the block props. There is no commit or
// cancel step.
func (e *Editor) ApplyEdit(id string, partial blocks.Props) error {
	if err := e.doc.UpdateProps(id, partial); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

func (e *Editor) Append(typ string) Block {
	e.dirty = true
	return e.doc.Append(typ)
}

func (e *Editor) InsertAt(index int, typ string) Block {
	e.dirty = true
	return e.doc.InsertAt(index, typ)
}

// Drop inserts a block of typ at the position resolved from the pointer.
func (e *Editor) Drop(typ string, rects []Rect, pointerY float64) Block {
	return e.InsertAt(e.doc.DropIndex(rects, pointerY), typ)
}

func (e *Editor) MoveUp(id string) error {
	if err := e.doc.MoveUp(id); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

func (e *Editor) MoveDown(id string) error {
	if err := e.doc.MoveDown(id); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

func (e *Editor) Reorder(ids []string) error {
	if err := e.doc.Reorder(ids); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// Remove deletes a block and drops the selection if it pointed there.
func (e *Editor) Remove(id string) error {
	if err := e.doc.Remove(id); err != nil {
		return err
	}
	if e.selected == id {
		e.toIdle()
	}
	e.dirty = true
	return nil
}
