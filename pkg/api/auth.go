package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session token and user. A 401 here
// means bad credentials, not an expired session, so the global auth
// handler is bypassed.
func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var session Session
	err := c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &session, requestOpts{skipAuthHandler: true})
	return session, err
}

// Register creates an account and returns the initial session.
func (c *Client) Register(ctx context.Context, reg Registration) (Session, error) {
	var session Session
	err := c.sendJSON(ctx, http.MethodPost, "/auth/register", reg, &session, requestOpts{skipAuthHandler: true})
	return session, err
}

// Me returns the user the persisted token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.getJSON(ctx, "/auth/me", nil, &data)
	return data.User, err
}
