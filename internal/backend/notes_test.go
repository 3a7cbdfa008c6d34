package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListNotesQueriesNewestFirst(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/notes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("select") != "*" {
			t.Errorf("unexpected select %q", query.Get("select"))
		}
		if query.Get("order") != "created_at.desc" {
			t.Errorf("unexpected order %q", query.Get("order"))
		}
		_, _ = w.Write([]byte(`[{"id":"n1","title":"first"},{"id":"n2","title":"second"}]`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	notes, err := client.ListNotes(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n1" {
		t.Fatalf("unexpected notes %#v", notes)
	}
}

func TestListNotesEmptyResultIsNotNil(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	notes, err := client.ListNotes(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestCreateNoteSendsRowAndPrefer(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("unexpected Prefer %q", r.Header.Get("Prefer"))
		}
		body, _ := io.ReadAll(r.Body)
		var rows []map[string]string
		if err := json.Unmarshal(body, &rows); err != nil || len(rows) != 1 {
			t.Errorf("expected a single-row insert array, got %s", body)
		} else if rows[0]["title"] != "hello" || rows[0]["user_id"] != "user-1" {
			t.Errorf("unexpected row %#v", rows[0])
		}
		_, _ = w.Write([]byte(`[{"id":"n1","title":"hello","content":"world","user_id":"user-1"}]`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	note, err := client.CreateNote(context.Background(), "token-1", "hello", "world", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID != "n1" {
		t.Fatalf("unexpected note %#v", note)
	}
}

func TestUpdateNoteFiltersByID(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Query().Get("id") != "eq.n1" {
			t.Errorf("unexpected id filter %q", r.URL.Query().Get("id"))
		}
		_, _ = w.Write([]byte(`[{"id":"n1","title":"renamed"}]`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	note, err := client.UpdateNote(context.Background(), "token-1", "n1", "renamed", "body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Title != "renamed" {
		t.Fatalf("unexpected note %#v", note)
	}
}

func TestUpdateNoteEmptyRepresentationFails(t *testing.T) {
	t.Parallel()
	// Row-level security silently filters rows the user does not own, so an
	// empty representation means the update hit nothing.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	if _, err := client.UpdateNote(context.Background(), "token-1", "n1", "renamed", "body"); err == nil {
		t.Fatalf("expected error for empty update result")
	}
}

func TestDeleteNote(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Query().Get("id") != "eq.n1" {
			t.Errorf("unexpected id filter %q", r.URL.Query().Get("id"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL, "anon-key")
	if err := client.DeleteNote(context.Background(), "token-1", "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
