package site

import (
	"fmt"
	"testing"

	"school-builder/internal/domain/blocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []Block) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.ID
	}
	return out
}

func types(list []Block) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Type
	}
	return out
}

func TestAppendIDsAreUnique(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	reg := blocks.DefaultRegistry()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		b := doc.Append(reg.Types()[i%len(reg.Types())])
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
	assert.Equal(t, 200, doc.Len())
}

func TestAppendIDsAreUniqueWithCollidingGenerator(t *testing.T) {
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("block-%d", n/2) // every id is produced twice
	}
	doc := NewDocument(nil, nil, WithIDFunc(gen))
	for i := 0; i < 10; i++ {
		doc.Append(blocks.HeroBanner)
	}
	seen := map[string]bool{}
	for _, id := range ids(doc.Blocks()) {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestAppendUsesDefaults(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	b := doc.Append(blocks.HeroBanner)
	assert.Equal(t, "Welcome to Our School", b.Props.String("title"))
	assert.False(t, b.Editing)

	unknown := doc.Append("Countdown")
	assert.Empty(t, unknown.Props)
}

func TestMoveAtBoundariesIsNoop(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	first := doc.Append(blocks.HeroBanner)
	doc.Append(blocks.AboutSection)
	last := doc.Append(blocks.ContactForm)
	before := ids(doc.Blocks())

	require.NoError(t, doc.MoveUp(first.ID))
	assert.Equal(t, before, ids(doc.Blocks()))

	require.NoError(t, doc.MoveDown(last.ID))
	assert.Equal(t, before, ids(doc.Blocks()))
}

func TestMoveSwapsNeighbours(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	a := doc.Append(blocks.HeroBanner)
	b := doc.Append(blocks.AboutSection)
	c := doc.Append(blocks.ContactForm)

	require.NoError(t, doc.MoveDown(a.ID))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(doc.Blocks()))

	require.NoError(t, doc.MoveUp(c.ID))
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, ids(doc.Blocks()))
}

func TestMissingIDLeavesDocumentUntouched(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	doc.Append(blocks.HeroBanner)
	before := doc.Blocks()

	assert.ErrorIs(t, doc.MoveUp("nope"), ErrBlockNotFound)
	assert.ErrorIs(t, doc.MoveDown("nope"), ErrBlockNotFound)
	assert.ErrorIs(t, doc.Remove("nope"), ErrBlockNotFound)
	assert.ErrorIs(t, doc.UpdateProps("nope", blocks.Props{"a": 1}), ErrBlockNotFound)
	assert.Equal(t, before, doc.Blocks())
}

func TestUpdatePropsMerges(t *testing.T) {
	doc := NewDocument(nil, nil)
	b := doc.Append("Custom")
	require.NoError(t, doc.UpdateProps(b.ID, blocks.Props{"a": 1}))
	require.NoError(t, doc.UpdateProps(b.ID, blocks.Props{"b": 2}))

	got, ok := doc.Block(b.ID)
	require.True(t, ok)
	assert.Equal(t, blocks.Props{"a": 1, "b": 2}, got.Props)
}

func TestBlocksReturnsCopies(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	b := doc.Append(blocks.HeroBanner)

	list := doc.Blocks()
	list[0].Props["title"] = "mutated"

	got, _ := doc.Block(b.ID)
	assert.Equal(t, "Welcome to Our School", got.Props.String("title"))
}

func TestInsertAtClamps(t *testing.T) {
	doc := NewDocument(nil, nil)
	a := doc.Append("A")
	b := doc.InsertAt(-5, "B")
	c := doc.InsertAt(99, "C")
	d := doc.InsertAt(1, "D")
	assert.Equal(t, []string{b.ID, d.ID, a.ID, c.ID}, ids(doc.Blocks()))
}

func TestReorder(t *testing.T) {
	doc := NewDocument(nil, nil)
	a := doc.Append("A")
	b := doc.Append("B")
	c := doc.Append("C")

	require.NoError(t, doc.Reorder([]string{c.ID, a.ID, b.ID}))
	assert.Equal(t, []string{"C", "A", "B"}, types(doc.Blocks()))

	assert.ErrorIs(t, doc.Reorder([]string{a.ID, b.ID}), ErrInvalidOrder)
	assert.ErrorIs(t, doc.Reorder([]string{a.ID, a.ID, b.ID}), ErrInvalidOrder)
	assert.ErrorIs(t, doc.Reorder([]string{a.ID, b.ID, "x"}), ErrInvalidOrder)
	assert.Equal(t, []string{"C", "A", "B"}, types(doc.Blocks()))
}

// Walks through the hero/gallery scenario end to end.
func TestDocumentScenario(t *testing.T) {
	doc := NewDocument(blocks.DefaultRegistry(), nil)
	require.Equal(t, 0, doc.Len())

	hero := doc.Append(blocks.HeroBanner)
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, blocks.HeroBanner, hero.Type)
	assert.Equal(t, "Welcome to Our School", hero.Props.String("title"))

	require.NoError(t, doc.UpdateProps(hero.ID, blocks.Props{"title": "Visit Us"}))
	got, _ := doc.Block(hero.ID)
	assert.Equal(t, "Visit Us", got.Props.String("title"))

	gallery := doc.Append(blocks.PhotoGallery)
	assert.Equal(t, []string{blocks.HeroBanner, blocks.PhotoGallery}, types(doc.Blocks()))

	require.NoError(t, doc.MoveDown(hero.ID))
	assert.Equal(t, []string{blocks.PhotoGallery, blocks.HeroBanner}, types(doc.Blocks()))

	require.NoError(t, doc.Remove(gallery.ID))
	list := doc.Blocks()
	require.Len(t, list, 1)
	assert.Equal(t, hero.ID, list[0].ID)
	assert.Equal(t, "Visit Us", list[0].Props.String("title"))
}
