// Package joplinserver implements filedriver.Driver against a Joplin
// Server instance's HTTP API: session login, item CRUD under
// /api/items/root:/<path>:, cursor-paginated delta, and an optional lock
// table. Grounded in the wire shapes of the original Rust client this core
// was distilled from.
package joplinserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
)

// minAPIVersion is sent on every request via X-API-MIN-VERSION, matching
// the floor this core was built against.
const minAPIVersion = "2.6.0"

// Config holds the credentials and endpoint needed to talk to one Joplin
// Server instance.
type Config struct {
	Host     string
	Email    string
	Password string
}

// Client is a filedriver.Driver backed by a Joplin Server HTTP API.
type Client struct {
	host       string
	email      string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string

	sessionID string
}

// NewClient builds a Client. Call Login before any other operation.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger, userAgent string) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		host:       cfg.Host,
		email:      cfg.Email,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}
}

// sessionResponse is the body of POST /api/sessions.
type sessionResponse struct {
	ID string `json:"id"`
}

// Login exchanges email/password for a session token, stored on the
// client for subsequent requests via the X-API-AUTH header.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"email": c.email, "password": c.password})
	if err != nil {
		return fmt.Errorf("joplinserver: encoding login body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/sessions", bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp)
	}

	var sess sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return fmt.Errorf("joplinserver: decoding session response: %w", err)
	}

	c.sessionID = sess.ID
	c.logger.Info("joplinserver: logged in", "email", c.email)

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := c.host + path

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("joplinserver: building request: %w", err)
	}

	req.Header.Set("X-API-MIN-VERSION", minAPIVersion)

	if c.sessionID != "" {
		req.Header.Set("X-API-AUTH", c.sessionID)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("joplinserver: %s %s: %w", req.Method, req.URL.Path, err)
	}

	return resp, nil
}

// errorBody is the shape of a Joplin Server error response.
type errorBody struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

func classifyError(resp *http.Response) error {
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)

	var eb errorBody
	_ = json.Unmarshal(b, &eb)

	if eb.Code == "resyncRequired" {
		return filedriver.ErrResyncRequired
	}

	if resp.StatusCode == http.StatusNotFound {
		return filedriver.ErrNotExist
	}

	msg := eb.Error
	if msg == "" {
		msg = string(b)
	}

	return &filedriver.APIError{StatusCode: resp.StatusCode, Code: eb.Code, Message: msg}
}

// itemPath builds the /api/items/root:/<path>: URL segment for a given
// relative item path, optionally appended with /content.
func itemPath(relPath string, content bool) string {
	p := "/api/items/root:/" + url.PathEscape(relPath) + ":"
	if content {
		p += "/content"
	}

	return p
}

func (c *Client) Capabilities() filedriver.Capabilities {
	return filedriver.Capabilities{
		SupportsMultiPut:          true,
		SupportsAccurateTimestamp: false,
		SupportsLocks:             true,
	}
}

// itemMeta is the shape of an /api/items/... metadata response.
type itemMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UpdatedTime int64  `json:"updated_time"`
	Size        int64  `json:"size"`
	IsDir       bool   `json:"is_dir"`
}

func (c *Client) Stat(ctx context.Context, path string) (filedriver.Stat, error) {
	req, err := c.newRequest(ctx, http.MethodGet, itemPath(path, false), nil)
	if err != nil {
		return filedriver.Stat{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return filedriver.Stat{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return filedriver.Stat{}, classifyError(resp)
	}

	var meta itemMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return filedriver.Stat{}, fmt.Errorf("joplinserver: decoding stat response: %w", err)
	}

	return filedriver.Stat{
		Path:        path,
		UpdatedTime: time.UnixMilli(meta.UpdatedTime).UTC(),
		Size:        meta.Size,
		IsDir:       meta.IsDir,
	}, nil
}

func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	rc, err := c.GetFile(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("joplinserver: reading %s: %w", path, err)
	}

	return string(b), nil
}

func (c *Client) GetFile(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, itemPath(path, true), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp)
	}

	return resp.Body, nil
}

func (c *Client) PutText(ctx context.Context, path, text string) error {
	return c.PutFile(ctx, path, bytes.NewReader([]byte(text)), int64(len(text)))
}

func (c *Client) PutFile(ctx context.Context, path string, r io.Reader, size int64) error {
	req, err := c.newRequest(ctx, http.MethodPut, itemPath(path, true), r)
	if err != nil {
		return err
	}

	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp)
	}

	return nil
}

func (c *Client) PutMulti(ctx context.Context, items []filedriver.MultiPutItem) error {
	type batchItem struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}

	batch := make([]batchItem, 0, len(items))
	for _, it := range items {
		batch = append(batch, batchItem{Name: it.Path, Content: it.Text})
	}

	body, err := json.Marshal(map[string]any{"items": batch})
	if err != nil {
		return fmt.Errorf("joplinserver: encoding multi-put batch: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/batch_items", bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, itemPath(path, false), nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return classifyError(resp)
	}

	return nil
}

func (c *Client) Mkdir(ctx context.Context, path string) error {
	body, err := json.Marshal(map[string]any{"name": path, "is_dir": true})
	if err != nil {
		return fmt.Errorf("joplinserver: encoding mkdir body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, itemPath(path, false), bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp)
	}

	return nil
}

// childrenResponse is the shape of GET .../children.
type childrenResponse struct {
	Items   []itemMeta `json:"items"`
	HasMore bool       `json:"has_more"`
	Cursor  string     `json:"cursor"`
}

func (c *Client) List(ctx context.Context, path string) ([]filedriver.Stat, error) {
	var out []filedriver.Stat

	cursor := ""

	for {
		p := itemPath(path, false) + "/children"
		if cursor != "" {
			p += "?cursor=" + url.QueryEscape(cursor)
		}

		req, err := c.newRequest(ctx, http.MethodGet, p, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			err := classifyError(resp)
			return nil, err
		}

		var cr childrenResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&cr); decErr != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("joplinserver: decoding children response: %w", decErr)
		}

		resp.Body.Close()

		for _, it := range cr.Items {
			out = append(out, filedriver.Stat{
				Path:        it.Name,
				UpdatedTime: time.UnixMilli(it.UpdatedTime).UTC(),
				Size:        it.Size,
				IsDir:       it.IsDir,
			})
		}

		if !cr.HasMore {
			break
		}

		cursor = cr.Cursor
	}

	return out, nil
}

// deltaResponse is the shape of GET .../delta.
type deltaResponse struct {
	Items []struct {
		ItemID string   `json:"item_id"`
		Item   itemMeta `json:"item"`
		Type   int      `json:"type"` // 1 = created/updated, 2 = deleted
	} `json:"items"`
	HasMore bool   `json:"has_more"`
	Cursor  string `json:"cursor"`
}

const deltaItemTypeDeleted = 2

func (c *Client) Delta(ctx context.Context, cursor string) (filedriver.DeltaPage, error) {
	p := "/api/items/root:/:/delta"
	if cursor != "" {
		p += "?cursor=" + url.QueryEscape(cursor)
	}

	req, err := c.newRequest(ctx, http.MethodGet, p, nil)
	if err != nil {
		return filedriver.DeltaPage{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return filedriver.DeltaPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return filedriver.DeltaPage{}, classifyError(resp)
	}

	var dr deltaResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return filedriver.DeltaPage{}, fmt.Errorf("joplinserver: decoding delta response: %w", err)
	}

	page := filedriver.DeltaPage{Cursor: dr.Cursor, HasMore: dr.HasMore}

	for _, it := range dr.Items {
		di := filedriver.DeltaItem{Path: it.Item.Name, Deleted: it.Type == deltaItemTypeDeleted}
		if !di.Deleted {
			di.Stat = filedriver.Stat{
				Path:        it.Item.Name,
				UpdatedTime: time.UnixMilli(it.Item.UpdatedTime).UTC(),
				Size:        it.Item.Size,
				IsDir:       it.Item.IsDir,
			}
		}

		page.Items = append(page.Items, di)
	}

	return page, nil
}

func (c *Client) ClearRoot(ctx context.Context) error {
	return c.Delete(ctx, "")
}

func (c *Client) CheckConfig(ctx context.Context) error {
	return c.Login(ctx)
}

// lockPathSegment renders a lock the way the lock path segment expects:
// "<type>_<clientType>_<clientId>".
func lockPathSegment(l filedriver.Lock) string {
	return strconv.Itoa(int(l.Type)) + "_" + strconv.Itoa(int(l.ClientType)) + "_" + l.ClientID
}

func (c *Client) AcquireLock(ctx context.Context, l filedriver.Lock) error {
	body, err := json.Marshal(map[string]any{
		"type":        int(l.Type),
		"client_type": int(l.ClientType),
		"client_id":   l.ClientID,
	})
	if err != nil {
		return fmt.Errorf("joplinserver: encoding lock body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/locks", bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusLocked || resp.StatusCode == http.StatusConflict {
		return filedriver.ErrLockHeld
	}

	if resp.StatusCode != http.StatusOK {
		return classifyError(resp)
	}

	return nil
}

func (c *Client) ReleaseLock(ctx context.Context, l filedriver.Lock) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/locks/"+lockPathSegment(l), nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return classifyError(resp)
	}

	return nil
}

// locksResponse is the shape of GET /api/locks.
type locksResponse struct {
	Items []struct {
		Type        int    `json:"type"`
		ClientType  int    `json:"client_type"`
		ClientID    string `json:"client_id"`
		UpdatedTime int64  `json:"updated_time"`
	} `json:"items"`
}

func (c *Client) ListLocks(ctx context.Context) ([]filedriver.Lock, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/locks", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp)
	}

	var lr locksResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("joplinserver: decoding locks response: %w", err)
	}

	out := make([]filedriver.Lock, 0, len(lr.Items))
	for _, it := range lr.Items {
		out = append(out, filedriver.Lock{
			Type:        filedriver.LockType(it.Type),
			ClientType:  filedriver.ClientType(it.ClientType),
			ClientID:    it.ClientID,
			UpdatedTime: time.UnixMilli(it.UpdatedTime).UTC(),
		})
	}

	return out, nil
}

var _ filedriver.Driver = (*Client)(nil)
