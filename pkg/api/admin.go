package api

import (
	"context"
	"net/http"
)

// AdminDashboard fetches the system-wide aggregates. Admin only.
func (c *Client) AdminDashboard(ctx context.Context) (AdminDashboard, error) {
	var dash AdminDashboard
	err := c.getJSON(ctx, "/admin/dashboard", nil, &dash)
	return dash, err
}

// AdminReports fetches the per-user completion rollups. Admin only.
func (c *Client) AdminReports(ctx context.Context) (AdminReports, error) {
	var reports AdminReports
	err := c.getJSON(ctx, "/admin/reports", nil, &reports)
	return reports, err
}

// AdminUsers fetches one page of user accounts. Admin only.
func (c *Client) AdminUsers(ctx context.Context, params map[string]string) (UserPage, error) {
	var page UserPage
	err := c.getJSON(ctx, "/admin/users", params, &page)
	return page, err
}

// AdminUser fetches a single user with a page of their todos. Admin only.
func (c *Client) AdminUser(ctx context.Context, id string, params map[string]string) (UserDetail, error) {
	var detail UserDetail
	err := c.getJSON(ctx, "/admin/users/"+id, params, &detail)
	return detail, err
}

// AdminUpdateUser applies a partial update to a user account. Admin only.
func (c *Client) AdminUpdateUser(ctx context.Context, id string, update UserUpdate) (User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.sendJSON(ctx, http.MethodPut, "/admin/users/"+id, update, &data, requestOpts{})
	return data.User, err
}

// AdminAddUser creates a user account, optionally with a profile image,
// as multipart form data. Admin only.
func (c *Client) AdminAddUser(ctx context.Context, user NewUser) (User, error) {
	fields := map[string]string{
		"username": user.Username,
		"email":    user.Email,
		"password": user.Password,
		"role":     user.Role,
	}

	var data struct {
		User User `json:"user"`
	}
	err := c.sendMultipart(ctx, "/admin/users", fields, "image", user.ImagePath, &data)
	return data.User, err
}

// AdminTodos fetches one page of todos across all users. Takes the same
// filter params as ListTodos plus userId. Admin only.
func (c *Client) AdminTodos(ctx context.Context, params map[string]string) (TodoPage, error) {
	var page TodoPage
	err := c.getJSON(ctx, "/admin/todos", params, &page)
	return page, err
}
