package siteapi

import (
	"fmt"
	"net/http"

	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// mutate runs fn on the caller's workspace and answers with the workspace
// view.
func (h *Handler) mutate(c *gin.Context, status int, fn func(ws *site.Workspace) error) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	var resp WorkspaceResponse
	err := h.mgr.Do(c.Request.Context(), owner, func(ws *site.Workspace) error {
		if err := fn(ws); err != nil {
			return err
		}
		resp = h.view(owner, ws)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}

// GET /builder
func (h *Handler) GetWorkspace(c *gin.Context) {
	h.mutate(c, http.StatusOK, func(*site.Workspace) error { return nil })
}

// PUT /builder/name
func (h *Handler) RenameSite(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error {
		ws.SetName(req.Name)
		return nil
	})
}

func (h *Handler) addBlock(c *gin.Context, typ string, insert func(ed *site.Editor) site.Block) {
	if !h.mgr.Registry().Has(typ) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown block type %q", typ)})
		return
	}
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	var resp BlockResponse
	err := h.mgr.Do(c.Request.Context(), owner, func(ws *site.Workspace) error {
		resp.Block = toBlockDTO(insert(ws.Editor()))
		resp.Workspace = h.view(owner, ws)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// POST /builder/blocks
func (h *Handler) AppendBlock(c *gin.Context) {
	var req AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	h.addBlock(c, req.Type, func(ed *site.Editor) site.Block { return ed.Append(req.Type) })
}

// POST /builder/blocks/drop
func (h *Handler) DropBlock(c *gin.Context) {
	var req DropBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	rects := make([]site.Rect, 0, len(req.Rects))
	for _, r := range req.Rects {
		rects = append(rects, site.Rect{ID: r.ID, Top: r.Top, Bottom: r.Bottom})
	}
	h.addBlock(c, req.Type, func(ed *site.Editor) site.Block { return ed.Drop(req.Type, rects, req.PointerY) })
}

// PUT /builder/blocks/:id/props
func (h *Handler) UpdateBlockProps(c *gin.Context) {
	var req UpdatePropsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error {
		return ws.Editor().ApplyEdit(id, req.Props)
	})
}

// PUT /builder/blocks/:id/fields/:name
func (h *Handler) UpdateBlockField(c *gin.Context) {
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	id, name := c.Param("id"), c.Param("name")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error {
		form, err := ws.Editor().Form(ws.Registry(), id)
		if err != nil {
			return err
		}
		partial, err := form.Change(name, req.Value)
		if err != nil {
			return err
		}
		return ws.Editor().ApplyEdit(id, partial)
	})
}

// GET /builder/blocks/:id/editor
func (h *Handler) GetBlockEditor(c *gin.Context) {
	owner, ok := mustOwner(c)
	if !ok {
		return
	}
	var form blocks.Form
	err := h.mgr.Do(c.Request.Context(), owner, func(ws *site.Workspace) error {
		var err error
		form, err = ws.Editor().Form(ws.Registry(), c.Param("id"))
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// POST /builder/blocks/:id/move-up
func (h *Handler) MoveBlockUp(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().MoveUp(id) })
}

// POST /builder/blocks/:id/move-down
func (h *Handler) MoveBlockDown(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().MoveDown(id) })
}

// PUT /builder/blocks/order
func (h *Handler) ReorderBlocks(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().Reorder(req.IDs) })
}

// DELETE /builder/blocks/:id
func (h *Handler) DeleteBlock(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().Remove(id) })
}

// POST /builder/blocks/:id/select
func (h *Handler) SelectBlock(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().Select(id) })
}

// POST /builder/blocks/:id/toggle-edit
func (h *Handler) ToggleEditBlock(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().ToggleEdit(id) })
}

// POST /builder/blocks/:id/edit
func (h *Handler) EditBlock(c *gin.Context) {
	id := c.Param("id")
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error { return ws.Editor().Edit(id) })
}

// POST /builder/editor/done
func (h *Handler) DoneEditing(c *gin.Context) {
	h.mutate(c, http.StatusOK, func(ws *site.Workspace) error {
		ws.Editor().Done()
		return nil
	})
}
