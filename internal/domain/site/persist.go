package site

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SchemaVersion is written with every save. Editing flags are not part of the
// format.
const SchemaVersion = 1

// Keys of the per-owner key-value record.
const (
	KeyWebsiteName   = "websiteName"
	KeyComponents    = "components"
	KeyPublishStatus = "publishStatus"
	KeyLastPublished = "lastPublished"
	KeyPages         = "pages"
	KeyPageOrder     = "pageOrder"
	KeyCurrentPage   = "currentPage"
	KeySiteSettings  = "siteSettings"
	KeySchemaVersion = "schemaVersion"
	KeyPublishedSite = "publishedSite"
)

// Store is a per-owner key-value store. SetMany applies all values in one
// transaction, and an empty value removes its key. Concurrent writers are not
// coordinated: the last write wins.
type Store interface {
	GetAll(ctx context.Context, owner string) (map[string]string, error)
	SetMany(ctx context.Context, owner string, values map[string]string) error
}

// Shim mirrors workspace state into a Store and reads it back.
type Shim struct {
	store Store
}

func NewShim(store Store) *Shim {
	return &Shim{store: store}
}

// Save writes the whole state.
func (s *Shim) Save(ctx context.Context, owner string, st State) error {
	values := map[string]string{
		KeyWebsiteName:   st.Name,
		KeyCurrentPage:   st.CurrentPage,
		KeySchemaVersion: strconv.Itoa(SchemaVersion),
	}

	pages := make(map[string][]Block, len(st.Pages))
	order := make([]string, 0, len(st.Pages))
	for _, p := range st.Pages {
		pages[p.Name] = nonNil(p.Blocks)
		order = append(order, p.Name)
	}
	if err := putJSON(values, KeyPages, pages); err != nil {
		return err
	}
	if err := putJSON(values, KeyPageOrder, order); err != nil {
		return err
	}
	if err := putJSON(values, KeyComponents, nonNil(st.CurrentBlocks())); err != nil {
		return err
	}
	if err := putJSON(values, KeySiteSettings, st.Settings); err != nil {
		return err
	}
	return s.savePublish(ctx, owner, st.Status, st.LastPublished, st.Published, values)
}

// SavePublish writes only the publish keys, in one transaction.
func (s *Shim) SavePublish(ctx context.Context, owner string, status Status, last *time.Time, published *PublishedSite) error {
	return s.savePublish(ctx, owner, status, last, published, map[string]string{})
}

func (s *Shim) savePublish(ctx context.Context, owner string, status Status, last *time.Time, published *PublishedSite, values map[string]string) error {
	if status == "" || status == StatusPublishing {
		status = StatusDraft
	}
	values[KeyPublishStatus] = string(status)

	values[KeyLastPublished] = ""
	if last != nil {
		values[KeyLastPublished] = last.UTC().Format(time.RFC3339Nano)
	}
	values[KeyPublishedSite] = ""
	if published != nil {
		if err := putJSON(values, KeyPublishedSite, published); err != nil {
			return err
		}
	}

	if err := s.store.SetMany(ctx, owner, values); err != nil {
		return fmt.Errorf("save %s: %w", owner, err)
	}
	return nil
}

// Restore reads the state back. found is false when nothing was ever saved.
func (s *Shim) Restore(ctx context.Context, owner string) (st State, found bool, err error) {
	values, err := s.store.GetAll(ctx, owner)
	if err != nil {
		return State{}, false, fmt.Errorf("restore %s: %w", owner, err)
	}
	if len(values) == 0 {
		return State{}, false, nil
	}
	if v, ok := values[KeySchemaVersion]; ok && v != strconv.Itoa(SchemaVersion) {
		return State{}, true, fmt.Errorf("restore %s: version %q: %w", owner, v, ErrUnsupportedSchema)
	}

	st.Name = values[KeyWebsiteName]
	st.CurrentPage = values[KeyCurrentPage]
	st.Status = Status(values[KeyPublishStatus])
	if st.Status == "" || st.Status == StatusPublishing {
		st.Status = StatusDraft
	}
	if v := values[KeyLastPublished]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return State{}, true, fmt.Errorf("restore %s: %s: %w", owner, KeyLastPublished, err)
		}
		st.LastPublished = &t
	}
	if err := getJSON(values, KeySiteSettings, &st.Settings); err != nil {
		return State{}, true, fmt.Errorf("restore %s: %w", owner, err)
	}
	if values[KeyPublishedSite] != "" {
		st.Published = &PublishedSite{}
		if err := getJSON(values, KeyPublishedSite, st.Published); err != nil {
			return State{}, true, fmt.Errorf("restore %s: %w", owner, err)
		}
	}

	var pages map[string][]Block
	var order []string
	if err := getJSON(values, KeyPages, &pages); err != nil {
		return State{}, true, fmt.Errorf("restore %s: %w", owner, err)
	}
	if err := getJSON(values, KeyPageOrder, &order); err != nil {
		return State{}, true, fmt.Errorf("restore %s: %w", owner, err)
	}

	if pages == nil {
		// Single-page record: only components was written.
		var components []Block
		if err := getJSON(values, KeyComponents, &components); err != nil {
			return State{}, true, fmt.Errorf("restore %s: %w", owner, err)
		}
		st.Pages = []Page{{Name: DefaultPageName, Slug: MakeSlug(DefaultPageName), Blocks: components}}
		st.CurrentPage = DefaultPageName
		return st, true, nil
	}

	seen := make(map[string]bool, len(pages))
	for _, name := range order {
		if b, ok := pages[name]; ok && !seen[name] {
			st.Pages = append(st.Pages, Page{Name: name, Slug: MakeSlug(name), Blocks: b})
			seen[name] = true
		}
	}
	for name, b := range pages {
		if !seen[name] {
			st.Pages = append(st.Pages, Page{Name: name, Slug: MakeSlug(name), Blocks: b})
		}
	}
	return st, true, nil
}

// LoadPublished returns the published copy of an owner's site, or nil.
func (s *Shim) LoadPublished(ctx context.Context, owner string) (*PublishedSite, error) {
	values, err := s.store.GetAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load published %s: %w", owner, err)
	}
	if values[KeyPublishedSite] == "" {
		return nil, nil
	}
	var p PublishedSite
	if err := getJSON(values, KeyPublishedSite, &p); err != nil {
		return nil, fmt.Errorf("load published %s: %w", owner, err)
	}
	return &p, nil
}

func putJSON(values map[string]string, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	values[key] = string(b)
	return nil
}

func getJSON(values map[string]string, key string, v any) error {
	raw, ok := values[key]
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func nonNil(b []Block) []Block {
	if b == nil {
		return []Block{}
	}
	return b
}
