package orgapi

import (
	"errors"
	"net/http"
	"sync"

	"school-builder/internal/app/http/middleware"
	orgclient "school-builder/internal/infra/orgapi"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
)

const maxMirrors = 4096

// Handler proxies organization data to the remote API and keeps a mirror per
// owner and resource.
type Handler struct {
	client *orgclient.Client

	mu      sync.Mutex
	mirrors *lru.Cache[string, *orgclient.Mirror]
}

// NewHandler returns a handler answering 503 everywhere when client is nil.
func NewHandler(client *orgclient.Client) *Handler {
	mirrors, _ := lru.New[string, *orgclient.Mirror](maxMirrors)
	return &Handler{client: client, mirrors: mirrors}
}

// mirror resolves the caller's mirror for the :resource param, answering the
// request itself when that fails.
func (h *Handler) mirror(c *gin.Context) (*orgclient.Mirror, bool) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Organization API not configured"})
		return nil, false
	}
	res, ok := orgclient.ParseResource(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown resource"})
		return nil, false
	}
	owner := middleware.Owner(c)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	key := owner + "/" + string(res)
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.mirrors.Get(key)
	if !ok {
		m = orgclient.NewMirror(h.client, res)
		h.mirrors.Add(key, m)
	}
	return m, true
}

func respondError(c *gin.Context, err error) {
	var apiErr *orgclient.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Organization API unavailable"})
}

// GET /org/:resource
func (h *Handler) List(c *gin.Context) {
	m, ok := h.mirror(c)
	if !ok {
		return
	}
	items, err := m.Load(c.Request.Context(), c.GetString("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []orgclient.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// POST /org/:resource
func (h *Handler) Create(c *gin.Context) {
	var body orgclient.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	m, ok := h.mirror(c)
	if !ok {
		return
	}
	rec, err := m.Create(c.Request.Context(), c.GetString("token"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PUT /org/:resource/:id
func (h *Handler) Update(c *gin.Context) {
	var body orgclient.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	m, ok := h.mirror(c)
	if !ok {
		return
	}
	rec, err := m.Update(c.Request.Context(), c.GetString("token"), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /org/:resource/:id
func (h *Handler) Delete(c *gin.Context) {
	m, ok := h.mirror(c)
	if !ok {
		return
	}
	if err := m.Delete(c.Request.Context(), c.GetString("token"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /org/:resource/state
func (h *Handler) State(c *gin.Context) {
	m, ok := h.mirror(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m.State())
}
