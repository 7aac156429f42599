package site

import "errors"

var (
	ErrBlockNotFound     = errors.New("block not found")
	ErrPageNotFound      = errors.New("page not found")
	ErrPageExists        = errors.New("page already exists")
	ErrInvalidPageName   = errors.New("invalid page name")
	ErrLastPage          = errors.New("cannot delete the last page")
	ErrInvalidOrder      = errors.New("order must list every block exactly once")
	ErrUnsupportedSchema = errors.New("unsupported saved state version")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrSiteNotEmpty      = errors.New("site already has content")
)
