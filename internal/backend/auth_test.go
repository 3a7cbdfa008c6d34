package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInDecodesSession(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected grant type %q", r.URL.Query().Get("grant_type"))
		}
		_, _ = w.Write([]byte(`{
			"access_token": "token-1",
			"refresh_token": "refresh-1",
			"expires_at": 1893456000,
			"user": {"id": "user-1", "email": "a@example.com"}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	session, err := client.SignIn(context.Background(), "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "token-1" || session.UserID() != "user-1" {
		t.Fatalf("unexpected session %#v", session)
	}
}

func TestSignInRejectsTokenlessResponse(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	if _, err := client.SignIn(context.Background(), "a@example.com", "secret1"); err == nil {
		t.Fatalf("expected error for response without access token")
	}
}

func TestSignUpPendingConfirmationShape(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// Confirmation pending: the user comes back at the top level with no
		// tokens.
		_, _ = w.Write([]byte(`{"id": "user-1", "email": "a@example.com"}`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	session, err := client.SignUp(context.Background(), "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Active() {
		t.Fatalf("pending signup must not produce an active session: %#v", session)
	}
	if session.UserID() != "user-1" || session.Email() != "a@example.com" {
		t.Fatalf("unexpected pending user %#v", session.User)
	}
}

func TestSignUpAutoConfirmedShape(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"access_token": "token-1",
			"refresh_token": "refresh-1",
			"user": {"id": "user-1", "email": "a@example.com"}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	session, err := client.SignUp(context.Background(), "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Active() || session.UserID() != "user-1" {
		t.Fatalf("unexpected session %#v", session)
	}
}

func TestSignOutSendsAccessToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	if err := client.SignOut(context.Background(), "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("expected session token, got %q", gotAuth)
	}
}

func TestCurrentUserRejectsEmptyIdentity(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	if _, err := client.CurrentUser(context.Background(), "token-1"); err == nil {
		t.Fatalf("expected error for empty user")
	}
}
