package api

import (
	"context"
	"net/http"
	"testing"
)

func TestRequireAuth_HeaderMatrix(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty bearer", "Bearer "},
		{"bearer with spaces only", "Bearer    "},
		{"wrong scheme", "Basic " + access},
		{"token without scheme", access},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/users/me", nil)
			if err != nil {
				t.Fatalf("building request: %v", err)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := env.ts.Client().Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close() //nolint:errcheck // test cleanup

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestRequireAuth_RefreshTokenOnAccessRoute(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.signup(t, "a@x.com", "hunter22")

	status, _ := env.do(t, http.MethodGet, "/users/me", refresh, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	user, err := env.users.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	env.deleteUser(t, user.ID)

	// A cryptographically valid token whose subject vanished is still a 401.
	status, _ := env.do(t, http.MethodGet, "/users/me", access, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestHealthEndpoint_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if body["version"] != "test" {
		t.Errorf("version = %v, want test", body["version"])
	}
}
