package siteapi

import (
	"net/http"

	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// GET /sites/:slug and GET /sites/:slug/:page
func (h *Handler) GetPublishedSite(c *gin.Context) {
	slug := c.Param("slug")
	owner, ok := site.OwnerFromSlug(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	published, err := h.mgr.Published(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	if published == nil || site.SiteSlug(published.Name, owner) != slug || len(published.Pages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	page := published.Pages[0]
	if want := c.Param("page"); want != "" {
		found := false
		for _, p := range published.Pages {
			if p.Slug == want {
				page, found = p, true
				break
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
	}

	nav := make([]site.NavLink, 0, len(published.Pages))
	for i, p := range published.Pages {
		href := "/sites/" + slug
		if i > 0 {
			href += "/" + p.Slug
		}
		nav = append(nav, site.NavLink{Name: p.Name, Href: href})
	}
	h.servePage(c, "public:"+published.PublishedAt.String(), site.RenderOptions{
		Title:    published.Name,
		Page:     page.Name,
		Settings: published.Settings,
		Nav:      nav,
	}, page.Blocks)
}
