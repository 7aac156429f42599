package orgapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Resource is a collection exposed by the organization API.
type Resource string

const (
	Sites        Resource = "sites"
	Pages        Resource = "pages"
	Sections     Resource = "sections"
	Users        Resource = "users"
	Classrooms   Resource = "classrooms"
	Subjects     Resource = "subjects"
	Levels       Resource = "levels"
	Rooms        Resource = "rooms"
	Sessions     Resource = "sessions"
	Presences    Resource = "presences"
	StudyPeriods Resource = "study-periods"
	Courses      Resource = "courses"
	Boards       Resource = "boards"
	Lists        Resource = "lists"
	Cards        Resource = "cards"
	Orders       Resource = "orders"
	Products     Resource = "products"
)

var Resources = []Resource{
	Sites, Pages, Sections, Users, Classrooms, Subjects, Levels, Rooms,
	Sessions, Presences, StudyPeriods, Courses, Boards, Lists, Cards,
	Orders, Products,
}

func ParseResource(s string) (Resource, bool) {
	for _, r := range Resources {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Record is one JSON object of a collection.
type Record map[string]any

// ID returns the record id as a string. Numeric ids are formatted without
// a fraction.
func (r Record) ID() string {
	switch id := r["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	}
	return ""
}

// APIError is a non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("org api: %d %s", e.Status, e.Message)
}

// Client calls the organization API with the caller's bearer token. It does
// not retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) List(ctx context.Context, token string, res Resource) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, token, http.MethodGet, c.path(res, ""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, token string, res Resource, body Record) (Record, error) {
	var out Record
	if err := c.do(ctx, token, http.MethodPost, c.path(res, ""), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, token string, res Resource, id string, body Record) (Record, error) {
	var out Record
	if err := c.do(ctx, token, http.MethodPut, c.path(res, id), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, token string, res Resource, id string) error {
	return c.do(ctx, token, http.MethodDelete, c.path(res, id), nil, nil)
}

func (c *Client) path(res Resource, id string) string {
	p := c.baseURL + "/" + string(res) + "/"
	if id != "" {
		p += url.PathEscape(id) + "/"
	}
	return p
}

func (c *Client) do(ctx context.Context, token, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, u, err)
	}
	return nil
}

// errorMessage picks the detail out of a JSON error body when there is one.
func errorMessage(raw []byte, fallback string) string {
	var body map[string]any
	if json.Unmarshal(raw, &body) == nil {
		for _, k := range []string{"error", "detail", "message"} {
			if s, ok := body[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" && len(s) < 200 {
		return s
	}
	return fallback
}
