package siteapi

import (
	"net/http"

	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// POST /builder/pages
func (h *Handler) AddPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	h.mutate(c, http.StatusCreated, func(ws *site.Workspace) error { return ws.AddPage(req.Name) })
}

// PUT /builder/pages/current
func (h *Handler) SwitchPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.SwitchPage(req.Name) })
}

// DELETE /builder/pages/:name (page name or slug)
func (h *Handler) DeletePage(c *gin.Context) {
	name := c.Param("name")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.DeletePage(name) })
}

// GET /builder/settings
func (h *Handler) GetSettings(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	var resp SettingsResponse
	err := h.mgr.Do(c.Request.Context(), owner, func(ws *site.Workspace) error {
		resp = SettingsResponse{Settings: ws.Settings, Fonts: site.Fonts}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /builder/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings", "details": err.Error()})
		return
	}
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error {
		ws.UpdateSettings(site.Settings{
			PrimaryColor:   req.PrimaryColor,
			SecondaryColor: req.SecondaryColor,
			AccentColor:    req.AccentColor,
			Font:           req.Font,
			LogoURL:        req.LogoURL,
		})
		return nil
	})
}
