package siteapi

import (
	"net/http"

	"school-builder/internal/domain/site"

	"github.com/gin-gonic/gin"
)

// GET /registry
func (h *Handler) GetRegistry(c *gin.Context) {
	reg := h.mgr.Registry()
	out := GetRegistryResponse{Types: []BlockTypeDTO{}}
	for _, typ := range reg.Types() {
		def, ok := reg.Lookup(typ)
		if !ok {
			continue
		}
		out.Types = append(out.Types, BlockTypeDTO{
			Type:        def.Type,
			Description: def.Description,
			Defaults:    reg.Defaults(typ),
			Fields:      def.Fields,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /templates/site
func (h *Handler) ListSiteTemplates(c *gin.Context) {
	list := h.catalog.List()
	out := GetTemplatesResponse{Templates: make([]TemplateDTO, 0, len(list))}
	for _, t := range list {
		out.Templates = append(out.Templates, toTemplateDTO(t))
	}
	c.JSON(http.StatusOK, out)
}

// GET /templates/site/:slug
func (h *Handler) GetSiteTemplate(c *gin.Context) {
	tpl, err := h.catalog.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	resp := GetTemplateResponse{
		Template: toTemplateDTO(tpl),
		Pages:    make([]TemplatePageDTO, 0, len(tpl.Pages)),
	}
	for _, p := range tpl.Instantiate(h.mgr.Registry()) {
		resp.Pages = append(resp.Pages, TemplatePageDTO{
			Name:   p.Name,
			Slug:   p.Slug,
			Blocks: blockDTOs(p.Blocks),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toTemplateDTO(t site.Template) TemplateDTO {
	return TemplateDTO{Slug: t.Slug, Name: t.Name, Description: t.Description, PageCount: len(t.Pages)}
}
