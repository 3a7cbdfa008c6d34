package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSONSendsAnonKeyHeaders(t *testing.T) {
	t.Parallel()
	var gotAPIKey, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	var out map[string]any
	if err := client.doJSON(context.Background(), http.MethodGet, "/auth/v1/user", nil, requestOptions{}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAPIKey != "anon-key" {
		t.Fatalf("expected apikey header, got %q", gotAPIKey)
	}
	if gotAuth != "Bearer anon-key" {
		t.Fatalf("anonymous requests fall back to the anon key bearer, got %q", gotAuth)
	}
}

func TestDoJSONPrefersAccessToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	var out map[string]any
	err := client.doJSON(context.Background(), http.MethodGet, "/rest/v1/notes", nil, requestOptions{accessToken: "user-token"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer user-token" {
		t.Fatalf("expected user token bearer, got %q", gotAuth)
	}
}

func TestDecodeAPIErrorEnvelopes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "auth msg", body: `{"msg":"Invalid login credentials"}`, want: "Invalid login credentials"},
		{name: "auth error_description", body: `{"error_description":"refresh_token expired"}`, want: "refresh_token expired"},
		{name: "table message", body: `{"message":"new row violates row-level security policy"}`, want: "new row violates row-level security policy"},
		{name: "bare error", body: `{"error":"invalid_grant"}`, want: "invalid_grant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := New(server.URL, "anon-key")
			err := client.doJSON(context.Background(), http.MethodGet, "/", nil, requestOptions{}, nil)
			apiErr := AsAPIError(err)
			if apiErr == nil {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("unexpected status %d", apiErr.StatusCode)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, apiErr.Message)
			}
		})
	}
}

func TestDecodeAPIErrorFallsBackToStatus(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	err := client.doJSON(context.Background(), http.MethodGet, "/", nil, requestOptions{}, nil)
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatalf("expected a fallback message")
	}
}

func TestAsAPIErrorOnTransportError(t *testing.T) {
	t.Parallel()
	client := New("http://127.0.0.1:1", "anon-key")
	err := client.doJSON(context.Background(), http.MethodGet, "/", nil, requestOptions{}, nil)
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if AsAPIError(err) != nil {
		t.Fatalf("transport errors are not structured backend errors")
	}
}
