package siteapi

import (
	"net/http"

	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// POST /builder/save
func (h *Handler) SaveSite(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	if err := h.mgr.Save(c.Request.Context(), owner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Website saved successfully!"})
}

// POST /builder/publish
//
// Answers right away with publishing; the switch to published happens later.
// A publish already in progress is left alone.
func (h *Handler) PublishSite(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	started, err := h.mgr.Publish(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, PublishResponse{Started: started, Status: site.StatusPublishing})
}

// POST /builder/from-template/:slug
func (h *Handler) CopySiteFromTemplate(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	tpl, err := h.catalog.Get(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	force := c.Query("force") == "true"
	if err := h.mgr.ApplyTemplate(c.Request.Context(), owner, tpl, force); err != nil {
		respondError(c, err)
		return
	}
	h.mutate(c, http.StatusCreated, func(*site.Workspace) error { return nil })
}
