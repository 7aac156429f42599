package siteapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"

	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// GET /builder/preview?page=Name
//
// Renders what was last saved, not the live workspace.
func (h *Handler) Preview(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	st, found, err := h.mgr.Saved(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nothing saved yet"})
		return
	}

	name := c.DefaultQuery("page", st.CurrentPage)
	page, ok := st.Page(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}
	nav := make([]site.NavLink, 0, len(st.Pages))
	for _, p := range st.Pages {
		nav = append(nav, site.NavLink{Name: p.Name, Href: "?page=" + url.QueryEscape(p.Name)})
	}
	h.servePage(c, "preview", site.RenderOptions{
		Title:    st.Name,
		Page:     page.Name,
		Settings: st.Settings,
		Nav:      nav,
		NoIndex:  true,
	}, page.Blocks)
}

// servePage renders through the page cache. The key hashes everything that
// goes into the output.
func (h *Handler) servePage(c *gin.Context, kind string, opts site.RenderOptions, list []site.Block) {
	raw, err := json.Marshal(struct {
		Kind   string
		Opts   site.RenderOptions
		Blocks []site.Block
	}{kind, opts, list})
	if err != nil {
		respondError(c, err)
		return
	}
	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])

	if out, ok := h.pages.Get(key); ok {
		c.Header("X-Cache", "hit")
		c.Data(http.StatusOK, "text/html; charset=utf-8", out)
		return
	}
	out, err := site.RenderPage(h.mgr.Registry(), list, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	h.pages.Add(key, out)
	c.Header("X-Cache", "miss")
	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
}
