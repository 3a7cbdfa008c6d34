package app

import (
	"context"

	"notable/internal/backend"
	"notable/internal/session"
	"notable/internal/types"
)

type SessionAPI interface {
	Restore(ctx context.Context) (*types.Session, error)
	SignIn(ctx context.Context, email, password string) (*types.Session, error)
	SignUp(ctx context.Context, email, password, confirm string) (*types.Session, error)
	SignOut(ctx context.Context) error
	EnsureFresh(ctx context.Context) error
	CurrentUser(ctx context.Context) (*types.User, error)
	Subscribe() (<-chan session.Event, func())
	Email() string
}

type NotesAPI interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	CreateNote(ctx context.Context, title, content, userID string) (*types.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// ClientAPI binds the session manager and the backend client into the API
// surface the model consumes. Notes calls pick up whatever access token the
// manager currently holds.
type ClientAPI struct {
	manager *session.Manager
	backend *backend.Client
}

func NewClientAPI(manager *session.Manager, client *backend.Client) *ClientAPI {
	return &ClientAPI{manager: manager, backend: client}
}

func (a *ClientAPI) Restore(ctx context.Context) (*types.Session, error) {
	return a.manager.Restore(ctx)
}

func (a *ClientAPI) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	return a.manager.SignIn(ctx, email, password)
}

func (a *ClientAPI) SignUp(ctx context.Context, email, password, confirm string) (*types.Session, error) {
	return a.manager.SignUp(ctx, email, password, confirm)
}

func (a *ClientAPI) SignOut(ctx context.Context) error {
	return a.manager.SignOut(ctx)
}

func (a *ClientAPI) EnsureFresh(ctx context.Context) error {
	return a.manager.EnsureFresh(ctx)
}

func (a *ClientAPI) CurrentUser(ctx context.Context) (*types.User, error) {
	return a.manager.CurrentUser(ctx)
}

func (a *ClientAPI) Subscribe() (<-chan session.Event, func()) {
	return a.manager.Subscribe()
}

func (a *ClientAPI) Email() string {
	return a.manager.Email()
}

func (a *ClientAPI) ListNotes(ctx context.Context) ([]*types.Note, error) {
	return a.backend.ListNotes(ctx, a.manager.AccessToken())
}

func (a *ClientAPI) CreateNote(ctx context.Context, title, content, userID string) (*types.Note, error) {
	return a.backend.CreateNote(ctx, a.manager.AccessToken(), title, content, userID)
}

func (a *ClientAPI) UpdateNote(ctx context.Context, id, title, content string) (*types.Note, error) {
	return a.backend.UpdateNote(ctx, a.manager.AccessToken(), id, title, content)
}

func (a *ClientAPI) DeleteNote(ctx context.Context, id string) error {
	return a.backend.DeleteNote(ctx, a.manager.AccessToken(), id)
}
