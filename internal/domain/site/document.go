package site

import (
	"fmt"

	"school-builder/internal/domain/blocks"

	"github.com/google/uuid"
)

// Document is the ordered block list of one page. Order is render order.
type Document struct {
	blocks []Block
	reg    *blocks.Registry
	newID  func() string
}

type DocumentOption func(*Document)

// WithIDFunc replaces the uuid generator. Ids are still checked for
// uniqueness within the document.
func WithIDFunc(fn func() string) DocumentOption {
	return func(d *Document) {
		if fn != nil {
			d.newID = fn
		}
	}
}

func NewDocument(reg *blocks.Registry, initial []Block, opts ...DocumentOption) *Document {
	d := &Document{
		blocks: cloneBlocks(initial, true),
		reg:    reg,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) Len() int { return len(d.blocks) }

// Blocks returns a deep copy of the list, editing flags included.
func (d *Document) Blocks() []Block {
	return cloneBlocks(d.blocks, true)
}

func (d *Document) Index(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) Block(id string) (Block, bool) {
	i := d.Index(id)
	if i < 0 {
		return Block{}, false
	}
	return d.blocks[i].Clone(), true
}

func (d *Document) freshID() string {
	for {
		id := d.newID()
		if id != "" && d.Index(id) < 0 {
			return id
		}
	}
}

func (d *Document) newBlock(typ string) Block {
	props := blocks.Props{}
	if d.reg != nil {
		props = d.reg.Defaults(typ)
	}
	return Block{ID: d.freshID(), Type: typ, Props: props}
}

// Append adds a new block of typ at the end.
func (d *Document) Append(typ string) Block {
	b := d.newBlock(typ)
	d.blocks = append(d.blocks, b)
	return b.Clone()
}

// InsertAt adds a new block of typ before position index. Out of range
// indexes are clamped.
func (d *Document) InsertAt(index int, typ string) Block {
	if index < 0 {
		index = 0
	}
	if index > len(d.blocks) {
		index = len(d.blocks)
	}
	b := d.newBlock(typ)
	d.blocks = append(d.blocks, Block{})
	copy(d.blocks[index+1:], d.blocks[index:])
	d.blocks[index] = b
	return b.Clone()
}

// MoveUp swaps the block with its predecessor. The first block stays put.
func (d *Document) MoveUp(id string) error {
	i := d.Index(id)
	if i < 0 {
		return fmt.Errorf("move up %s: %w", id, ErrBlockNotFound)
	}
	if i > 0 {
		d.blocks[i-1], d.blocks[i] = d.blocks[i], d.blocks[i-1]
	}
	return nil
}

// MoveDown swaps the block with its successor. The last block stays put.
func (d *Document) MoveDown(id string) error {
	i := d.Index(id)
	if i < 0 {
		return fmt.Errorf("move down %s: %w", id, ErrBlockNotFound)
	}
	if i < len(d.blocks)-1 {
		d.blocks[i], d.blocks[i+1] = d.blocks[i+1], d.blocks[i]
	}
	return nil
}

func (d *Document) Remove(id string) error {
	i := d.Index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrBlockNotFound)
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	return nil
}

// UpdateProps shallow-merges partial into the block's props.
func (d *Document) UpdateProps(id string, partial blocks.Props) error {
	i := d.Index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrBlockNotFound)
	}
	d.blocks[i].Props = d.blocks[i].Props.Merge(partial)
	return nil
}

// Reorder puts the blocks in the order of ids, which must be a permutation of
// the current ids.
func (d *Document) Reorder(ids []string) error {
	if len(ids) != len(d.blocks) {
		return ErrInvalidOrder
	}
	next := make([]Block, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		i := d.Index(id)
		if i < 0 || seen[id] {
			return ErrInvalidOrder
		}
		seen[id] = true
		next = append(next, d.blocks[i])
	}
	d.blocks = next
	return nil
}

// setEditing marks id as the only block with an open editor. An empty id
// closes every editor.
func (d *Document) setEditing(id string) {
	for i := range d.blocks {
		d.blocks[i].Editing = id != "" && d.blocks[i].ID == id
	}
}
