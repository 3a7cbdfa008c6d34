package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"notable/internal/types"
)

const notesPath = "/rest/v1/notes"

// preferRepresentation asks the table API to echo the written row back, so
// the caller gets the backend-assigned id and timestamps.
const preferRepresentation = "return=representation"

type noteInsert struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

type noteUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes fetches every note visible to the token's user, newest first.
// Row-level security scopes the result server-side; the client sends no
// user filter of its own.
func (c *Client) ListNotes(ctx context.Context, accessToken string) ([]*types.Note, error) {
	notes := []*types.Note{}
	path := notesPath + "?select=*&order=created_at.desc"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, requestOptions{accessToken: accessToken}, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, accessToken, title, content, userID string) (*types.Note, error) {
	var created []*types.Note
	body := []noteInsert{{Title: title, Content: content, UserID: userID}}
	opts := requestOptions{accessToken: accessToken, prefer: preferRepresentation}
	if err := c.doJSON(ctx, http.MethodPost, notesPath, body, opts, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("backend returned no created note")
	}
	return created[0], nil
}

func (c *Client) UpdateNote(ctx context.Context, accessToken, id, title, content string) (*types.Note, error) {
	var updated []*types.Note
	opts := requestOptions{accessToken: accessToken, prefer: preferRepresentation}
	if err := c.doJSON(ctx, http.MethodPatch, noteByIDPath(id), noteUpdate{Title: title, Content: content}, opts, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, errors.New("note not found or not yours")
	}
	return updated[0], nil
}

func (c *Client) DeleteNote(ctx context.Context, accessToken, id string) error {
	return c.doJSON(ctx, http.MethodDelete, noteByIDPath(id), nil, requestOptions{accessToken: accessToken}, nil)
}

func noteByIDPath(id string) string {
	return notesPath + "?id=eq." + url.QueryEscape(id)
}
