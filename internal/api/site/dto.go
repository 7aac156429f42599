package siteapi

import (
	"time"

	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"
)

type BlockDTO struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Props   blocks.Props `json:"props"`
	Editing bool         `json:"editing"`
}

type EditorDTO struct {
	Variant    site.Variant     `json:"variant"`
	State      site.EditorState `json:"state"`
	SelectedID string           `json:"selectedId,omitempty"`
}

type WorkspaceResponse struct {
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	PublicURL     string        `json:"publicUrl"`
	Pages         []string      `json:"pages"`
	CurrentPage   string        `json:"currentPage"`
	Blocks        []BlockDTO    `json:"blocks"`
	Editor        EditorDTO     `json:"editor"`
	Dirty         bool          `json:"dirty"`
	Settings      site.Settings `json:"settings"`
	Status        site.Status   `json:"publishStatus"`
	LastPublished *time.Time    `json:"lastPublished"`
}

type BlockResponse struct {
	Block     BlockDTO          `json:"block"`
	Workspace WorkspaceResponse `json:"workspace"`
}

type AddBlockRequest struct {
	Type string `json:"type" binding:"required"`
}

type RectDTO struct {
	ID     string  `json:"id" binding:"required"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type DropBlockRequest struct {
	Type     string    `json:"type" binding:"required"`
	PointerY float64   `json:"pointerY"`
	Rects    []RectDTO `json:"rects" binding:"dive"`
}

type UpdatePropsRequest struct {
	Props blocks.Props `json:"props" binding:"required"`
}

type UpdateFieldRequest struct {
	Value any `json:"value"`
}

type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type RenameRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type PageRequest struct {
	Name string `json:"name" binding:"required,max=60"`
}

type SettingsRequest struct {
	PrimaryColor   string `json:"primaryColor" binding:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor" binding:"omitempty,hexcolor"`
	AccentColor    string `json:"accentColor" binding:"omitempty,hexcolor"`
	Font           string `json:"font" binding:"omitempty,oneof=Inter Roboto Merriweather Lato 'Open Sans' 'Playfair Display'"`
	LogoURL        string `json:"logoUrl" binding:"omitempty,url"`
}

type SettingsResponse struct {
	Settings site.Settings `json:"settings"`
	Fonts    []string      `json:"fonts"`
}

type PublishResponse struct {
	Started bool        `json:"started"`
	Status  site.Status `json:"publishStatus"`
}

type BlockTypeDTO struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Defaults    blocks.Props   `json:"defaults"`
	Fields      []blocks.Field `json:"fields"`
}

type GetRegistryResponse struct {
	Types []BlockTypeDTO `json:"types"`
}

type TemplateDTO struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PageCount   int    `json:"pageCount"`
}

type TemplatePageDTO struct {
	Name   string     `json:"name"`
	Slug   string     `json:"slug"`
	Blocks []BlockDTO `json:"blocks"`
}

type GetTemplatesResponse struct {
	Templates []TemplateDTO `json:"templates"`
}

type GetTemplateResponse struct {
	Template TemplateDTO       `json:"template"`
	Pages    []TemplatePageDTO `json:"pages"`
}
