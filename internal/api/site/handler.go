package siteapi

import (
	"school-builder/internal/app/builder"
	"school-builder/internal/domain/site"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Handler serves the builder, template and public site routes.
type Handler struct {
	mgr        *builder.Manager
	catalog    *site.Catalog
	pages      *lru.Cache[string, []byte]
	baseDomain string
}

// NewHandler caches up to cacheSize rendered pages.
func NewHandler(mgr *builder.Manager, catalog *site.Catalog, cacheSize int, baseDomain string) (*Handler, error) {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	pages, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Handler{mgr: mgr, catalog: catalog, pages: pages, baseDomain: baseDomain}, nil
}

// view must be called with the workspace lock held.
func (h *Handler) view(owner string, ws *site.Workspace) WorkspaceResponse {
	ed := ws.Editor()
	status, last := ws.Publisher().Status()
	slug := site.SiteSlug(ws.Name, owner)
	return WorkspaceResponse{
		Name:          ws.Name,
		Slug:          slug,
		PublicURL:     site.BuildPublicURL(slug, h.baseDomain),
		Pages:         ws.Pages(),
		CurrentPage:   ws.CurrentPage(),
		Blocks:        blockDTOs(ed.Blocks()),
		Editor:        EditorDTO{Variant: ed.Variant(), State: ed.State(), SelectedID: ed.SelectedID()},
		Dirty:         ws.Dirty(),
		Settings:      ws.Settings,
		Status:        status,
		LastPublished: last,
	}
}
