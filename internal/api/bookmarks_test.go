package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func (e *testEnv) createBookmark(t *testing.T, token, title, link string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/bookmarks", token, map[string]string{
		"title": title,
		"link":  link,
	})
	if status != http.StatusCreated {
		t.Fatalf("create bookmark returned %d: %v", status, body)
	}

	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("create bookmark response missing id: %v", body)
	}
	return id
}

func TestBookmarks_EmptyListIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	status, _ := env.do(t, http.MethodGet, "/bookmarks", access, nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestBookmarks_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	env.createBookmark(t, access, "Go blog", "https://go.dev/blog")
	env.createBookmark(t, access, "Go docs", "https://go.dev/doc")

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/bookmarks", nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := env.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var listed []map[string]any
	if err := json.Unmarshal(data, &listed); err != nil {
		t.Fatalf("decoding list: %v (%s)", err, data)
	}
	if len(listed) != 2 {
		t.Errorf("listed %d bookmarks, want 2", len(listed))
	}
}

func TestBookmarks_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"link": "https://x.com"}},
		{"missing link", map[string]string{"title": "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := env.do(t, http.MethodPost, "/bookmarks", access, tt.body)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestBookmarks_GetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")
	id := env.createBookmark(t, access, "old title", "https://old.com")

	status, body := env.do(t, http.MethodGet, "/bookmarks/"+id, access, nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d (%v)", status, body)
	}
	if body["title"] != "old title" {
		t.Errorf("title = %v", body["title"])
	}

	status, body = env.do(t, http.MethodPatch, "/bookmarks/"+id, access, map[string]string{
		"title": "new title",
	})
	if status != http.StatusOK {
		t.Fatalf("patch status = %d (%v)", status, body)
	}
	if body["title"] != "new title" {
		t.Errorf("title after patch = %v", body["title"])
	}
	if body["link"] != "https://old.com" {
		t.Errorf("link changed unexpectedly: %v", body["link"])
	}

	status, _ = env.do(t, http.MethodDelete, "/bookmarks/"+id, access, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", status)
	}

	status, _ = env.do(t, http.MethodGet, "/bookmarks/"+id, access, nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestBookmarks_OwnershipDenied(t *testing.T) {
	env := newTestEnv(t)
	ownerAccess, _ := env.signup(t, "owner@x.com", "hunter22")
	intruderAccess, _ := env.signup(t, "intruder@x.com", "hunter22")
	id := env.createBookmark(t, ownerAccess, "mine", "https://x.com")

	tests := []struct {
		name   string
		method string
		body   any
	}{
		{"get", http.MethodGet, nil},
		{"patch", http.MethodPatch, map[string]string{"title": "stolen"}},
		{"delete", http.MethodDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := env.do(t, tt.method, "/bookmarks/"+id, intruderAccess, tt.body)
			if status != http.StatusForbidden {
				t.Errorf("status = %d, want 403", status)
			}
		})
	}

	// The owner still sees the original bookmark.
	status, body := env.do(t, http.MethodGet, "/bookmarks/"+id, ownerAccess, nil)
	if status != http.StatusOK || body["title"] != "mine" {
		t.Errorf("owner get = %d %v", status, body)
	}
}

func TestBookmarks_MissingIDIsNotFoundForEveryone(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	// A missing bookmark is a 404 even for requests that could never own
	// it; 403 is reserved for bookmarks that exist.
	tests := []struct {
		name   string
		method string
		body   any
	}{
		{"get", http.MethodGet, nil},
		{"patch", http.MethodPatch, map[string]string{"title": "x"}},
		{"delete", http.MethodDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := env.do(t, tt.method, "/bookmarks/bmk-missing", access, tt.body)
			if status != http.StatusNotFound {
				t.Errorf("status = %d, want 404", status)
			}
		})
	}
}

func TestBookmarks_RequireAccessToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/bookmarks", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}
