package joplinserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/filedriver/joplinserver"
)

func TestLoginSetsSessionHeader(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/sessions" && r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "sess-123"})
		case r.URL.Path == "/api/items/root:/note.md:/content":
			gotAuth = r.Header.Get("X-API-AUTH")
			assert.Equal(t, "2.6.0", r.Header.Get("X-API-MIN-VERSION"))
			_, _ = w.Write([]byte("hello"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := joplinserver.NewClient(joplinserver.Config{Host: srv.URL, Email: "a@b.com", Password: "pw"}, nil, nil, "test/1.0")

	require.NoError(t, c.Login(context.Background()))

	text, err := c.GetText(context.Background(), "note.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "sess-123", gotAuth)
}

func TestGetTextNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c := joplinserver.NewClient(joplinserver.Config{Host: srv.URL}, nil, nil, "test/1.0")

	_, err := c.GetText(context.Background(), "missing.md")
	assert.ErrorIs(t, err, filedriver.ErrNotExist)
}

func TestDeltaResyncRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "resyncRequired", "error": "cursor too old"})
	}))
	defer srv.Close()

	c := joplinserver.NewClient(joplinserver.Config{Host: srv.URL}, nil, nil, "test/1.0")

	_, err := c.Delta(context.Background(), "stale-cursor")
	assert.ErrorIs(t, err, filedriver.ErrResyncRequired)
}

func TestPutTextSendsBody(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := joplinserver.NewClient(joplinserver.Config{Host: srv.URL}, nil, nil, "test/1.0")

	require.NoError(t, c.PutText(context.Background(), "note.md", "content here"))
	assert.Equal(t, "content here", gotBody)
}

func TestLockConflictReturnsErrLockHeld(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusLocked)
	}))
	defer srv.Close()

	c := joplinserver.NewClient(joplinserver.Config{Host: srv.URL}, nil, nil, "test/1.0")

	err := c.AcquireLock(context.Background(), filedriver.Lock{Type: filedriver.LockTypeSync, ClientType: filedriver.ClientTypeCLI, ClientID: "c1"})
	assert.ErrorIs(t, err, filedriver.ErrLockHeld)
}
