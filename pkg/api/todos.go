package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListTodos fetches one page of the caller's todos. Params come from a
// state.Controller; empty values are dropped before the request.
func (c *Client) ListTodos(ctx context.Context, params map[string]string) (TodoPage, error) {
	var page TodoPage
	err := c.getJSON(ctx, "/todos", params, &page)
	return page, err
}

// GetTodo fetches a single todo by ID.
func (c *Client) GetTodo(ctx context.Context, id string) (Todo, error) {
	var data struct {
		Todo Todo `json:"todo"`
	}
	err := c.getJSON(ctx, "/todos/"+id, nil, &data)
	return data.Todo, err
}

// CreateTodo creates a todo and returns the server's copy.
func (c *Client) CreateTodo(ctx context.Context, input TodoInput) (Todo, error) {
	var data struct {
		Todo Todo `json:"todo"`
	}
	err := c.sendJSON(ctx, http.MethodPost, "/todos", input, &data, requestOpts{})
	return data.Todo, err
}

// UpdateTodo applies a partial update and returns the server's copy.
func (c *Client) UpdateTodo(ctx context.Context, id string, input TodoInput) (Todo, error) {
	var data struct {
		Todo Todo `json:"todo"`
	}
	err := c.sendJSON(ctx, http.MethodPut, "/todos/"+id, input, &data, requestOpts{})
	return data.Todo, err
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil, "", nil, requestOpts{})
}

// TodaysTodos fetches the todos due today.
func (c *Client) TodaysTodos(ctx context.Context) ([]Todo, error) {
	var data struct {
		Todos []Todo `json:"todos"`
	}
	err := c.getJSON(ctx, "/todos/today", nil, &data)
	return data.Todos, err
}

// OverdueTodos fetches the todos past their due date.
func (c *Client) OverdueTodos(ctx context.Context) ([]Todo, error) {
	var data struct {
		Todos []Todo `json:"todos"`
	}
	err := c.getJSON(ctx, "/todos/overdue", nil, &data)
	return data.Todos, err
}

// SearchTodos runs a free-text search.
func (c *Client) SearchTodos(ctx context.Context, q string) ([]Todo, error) {
	var data struct {
		Todos []Todo `json:"todos"`
	}
	err := c.getJSON(ctx, "/todos/search", map[string]string{"q": q}, &data)
	return data.Todos, err
}

// AssignTodo creates a todo on another user's behalf. Admin only.
func (c *Client) AssignTodo(ctx context.Context, a Assignment) (Todo, error) {
	if a.UserID == "" {
		return Todo{}, fmt.Errorf("assign todo: target user is required")
	}

	body := map[string]any{"userId": a.UserID}
	if a.TodoID != "" {
		body["todoId"] = a.TodoID
	}
	if a.Input != nil {
		if a.Input.Title != nil {
			body["title"] = *a.Input.Title
		}
		if a.Input.Description != nil {
			body["description"] = *a.Input.Description
		}
		if a.Input.Category != nil {
			body["category"] = *a.Input.Category
		}
		if a.Input.Priority != nil {
			body["priority"] = *a.Input.Priority
		}
		if a.Input.DueDate != nil {
			body["dueDate"] = *a.Input.DueDate
		}
	}

	var data struct {
		Todo Todo `json:"todo"`
	}
	err := c.sendJSON(ctx, http.MethodPost, "/todos/assign", body, &data, requestOpts{})
	return data.Todo, err
}
