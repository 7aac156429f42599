package siteapi

import (
	"errors"
	"log"
	"net/http"

	"school-builder/internal/app/builder"
	"school-builder/internal/app/http/middleware"
	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

func mustOwner(c *gin.Context) (string, bool) {
	owner := middleware.Owner(c)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return owner, true
}

// respondError maps domain errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, site.ErrBlockNotFound),
		errors.Is(err, site.ErrPageNotFound),
		errors.Is(err, site.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, site.ErrPageExists),
		errors.Is(err, site.ErrSiteNotEmpty):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, site.ErrLastPage),
		errors.Is(err, site.ErrInvalidPageName),
		errors.Is(err, site.ErrInvalidOrder),
		errors.Is(err, blocks.ErrNoEditor),
		errors.Is(err, blocks.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, builder.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server is shutting down"})
	default:
		log.Printf("[siteapi] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func blockDTOs(list []site.Block) []BlockDTO {
	out := make([]BlockDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toBlockDTO(b))
	}
	return out
}

func toBlockDTO(b site.Block) BlockDTO {
	props := b.Props
	if props == nil {
		props = map[string]any{}
	}
	return BlockDTO{ID: b.ID, Type: b.Type, Props: props, Editing: b.Editing}
}
