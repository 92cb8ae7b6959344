package api

import (
	"net/http"
	"testing"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":     "a@x.com",
		"password":  "hunter22",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup status = %d", status)
	}
	access, _ := body["access_token"].(string)

	status, me := env.do(t, http.MethodGet, "/users/me", access, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%v)", status, me)
	}
	if me["email"] != "a@x.com" || me["first_name"] != "Ada" || me["last_name"] != "Lovelace" {
		t.Errorf("profile = %v", me)
	}

	// The hash never appears under any key.
	for key := range me {
		if key == "password_hash" || key == "PasswordHash" {
			t.Errorf("profile leaks %q", key)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	status, body := env.do(t, http.MethodPatch, "/users/me", access, map[string]string{
		"firstName": "Grace",
		"email":     "grace@x.com",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (%v)", status, body)
	}
	if body["email"] != "grace@x.com" || body["first_name"] != "Grace" {
		t.Errorf("updated profile = %v", body)
	}

	// The old email no longer logs in; the new one does.
	oldStatus, _ := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "hunter22",
	})
	if oldStatus != http.StatusForbidden {
		t.Errorf("login with old email = %d, want 403", oldStatus)
	}
	newStatus, _ := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "grace@x.com", "password": "hunter22",
	})
	if newStatus != http.StatusOK {
		t.Errorf("login with new email = %d, want 200", newStatus)
	}
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "taken@x.com", "hunter22")
	access, _ := env.signup(t, "a@x.com", "hunter22")

	status, _ := env.do(t, http.MethodPatch, "/users/me", access, map[string]string{
		"email": "taken@x.com",
	})
	if status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t, "a@x.com", "hunter22")

	status, _ := env.do(t, http.MethodPatch, "/users/me", access, map[string]string{
		"email": "not-an-email",
	})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}
