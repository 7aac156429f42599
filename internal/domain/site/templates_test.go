package site

import (
	"testing"
	"testing/fstest"

	"school-builder/internal/domain/blocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Classic School", list[0].Name)
	assert.Equal(t, "Modern Academy", list[1].Name)

	tpl, err := c.Get("classic")
	require.NoError(t, err)
	assert.Len(t, tpl.Pages, 3)

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestInstantiateLayersDefaults(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	tpl, err := c.Get("academy")
	require.NoError(t, err)

	reg := blocks.DefaultRegistry()
	pages := tpl.Instantiate(reg)
	require.Len(t, pages, 1)
	assert.Equal(t, "home", pages[0].Slug)

	hero := pages[0].Blocks[0]
	assert.NotEmpty(t, hero.ID)
	assert.Equal(t, "Admissions Are Open", hero.Props.String("title"))
	assert.Equal(t, "", hero.Props.String("backgroundImage"))
	assert.Equal(t, blocks.CoursePricing, pages[0].Blocks[1].Type)
	assert.Equal(t, reg.Defaults(blocks.CoursePricing), pages[0].Blocks[1].Props)

	again := tpl.Instantiate(reg)
	assert.NotEqual(t, hero.ID, again[0].Blocks[0].ID)
}

func TestParseCatalogErrors(t *testing.T) {
	dup := fstest.MapFS{
		"t/a.yaml": {Data: []byte("slug: same\nname: A\n")},
		"t/b.yaml": {Data: []byte("slug: same\nname: B\n")},
	}
	_, err := ParseCatalog(dup, "t/*.yaml")
	assert.ErrorContains(t, err, "duplicate slug")

	bad := fstest.MapFS{"t/a.yaml": {Data: []byte("pages: [")}}
	_, err = ParseCatalog(bad, "t/*.yaml")
	assert.Error(t, err)

	derived := fstest.MapFS{"t/a.yaml": {Data: []byte("name: Hill Top School\n")}}
	c, err := ParseCatalog(derived, "t/*.yaml")
	require.NoError(t, err)
	_, err = c.Get("hill-top-school")
	assert.NoError(t, err)
}
