package backend

import (
	"context"
	"errors"
	"net/http"

	"notable/internal/types"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SignUp registers a new account. When the project auto-confirms email
// addresses the response carries a full session; otherwise only the pending
// user, in which case the returned session is inactive.
func (c *Client) SignUp(ctx context.Context, email, password string) (*types.Session, error) {
	var resp struct {
		types.Session
		// Shape used when email confirmation is still pending: the user
		// object comes back at the top level with no tokens.
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/signup", credentialsRequest{Email: email, Password: password}, requestOptions{}, &resp)
	if err != nil {
		return nil, err
	}
	session := resp.Session
	if session.User == nil && resp.ID != "" {
		session.User = &types.User{ID: resp.ID, Email: resp.Email}
	}
	return &session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	var session types.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", credentialsRequest{Email: email, Password: password}, requestOptions{}, &session)
	if err != nil {
		return nil, err
	}
	if !session.Active() {
		return nil, errors.New("backend returned no access token")
	}
	return &session, nil
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*types.Session, error) {
	var session types.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", refreshRequest{RefreshToken: refreshToken}, requestOptions{}, &session)
	if err != nil {
		return nil, err
	}
	if !session.Active() {
		return nil, errors.New("backend returned no access token")
	}
	return &session, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, requestOptions{accessToken: accessToken}, nil)
}

// CurrentUser resolves the identity bound to the access token. Used per
// write rather than cached, so a revoked token fails here instead of acting
// on a stale identity.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*types.User, error) {
	var user types.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/v1/user", nil, requestOptions{accessToken: accessToken}, &user)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, errors.New("backend returned no user")
	}
	return &user, nil
}
