package api

import (
	"context"
	"net/http"
)

// UserStats fetches the caller's aggregate todo statistics.
func (c *Client) UserStats(ctx context.Context) (UserStats, error) {
	var stats UserStats
	err := c.getJSON(ctx, "/users/stats", nil, &stats)
	return stats, err
}

// UpdateProfile updates the caller's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.sendJSON(ctx, http.MethodPut, "/users/profile", update, &data, requestOpts{})
	return data.User, err
}

// UploadProfileImage posts an image file as multipart form data and
// returns the updated user.
func (c *Client) UploadProfileImage(ctx context.Context, imagePath string) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.sendMultipart(ctx, "/users/profile/image", nil, "image", imagePath, &data)
	return data.User, err
}

// ChangePassword replaces the caller's password.
func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/password", change, nil, requestOpts{})
}

// DeleteAccount permanently removes the caller's account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/account", nil, nil, "", nil, requestOpts{})
}
