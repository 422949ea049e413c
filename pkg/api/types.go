package api

import (
	"time"
)

// Todo statuses as the server reports them.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Statuses lists the valid todo statuses in kanban column order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// Categories lists the valid todo categories.
var Categories = []string{"Work", "Personal", "Health", "Education", "Shopping", "Other"}

// Priorities lists the valid todo priorities.
var Priorities = []string{"Low", "Medium", "High"}

// Todo represents a single todo item as returned by the server.
// The server is the source of truth; local copies are transient.
type Todo struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	User        *User      `json:"user,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Completed reports whether the todo is done. The status enum is the
// single representation; there is no stored completed flag.
func (t Todo) Completed() bool {
	return t.Status == StatusCompleted
}

// Overdue reports whether the todo is past its due date and not completed.
func (t Todo) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != StatusCompleted && now.After(*t.DueDate)
}

// TodoInput carries the writable fields for create and partial update
// requests. Nil pointers are omitted from the request body.
type TodoInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// User represents an account as returned by the server.
type User struct {
	ID           string     `json:"_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	ProfileImage string     `json:"profileImage,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Pagination is the server-computed paging metadata attached to list
// responses. The client never derives these values itself.
type Pagination struct {
	Total    int `json:"total"`
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
}

// TodoPage is one page of todos plus its paging metadata.
type TodoPage struct {
	Todos      []Todo     `json:"todos"`
	Pagination Pagination `json:"pagination"`
}

// UserPage is one page of users plus its paging metadata.
type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the writable profile fields.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Assignment is the admin task-assignment request body.
type Assignment struct {
	TodoID string `json:"todoId,omitempty"`
	UserID string `json:"userId"`
	Input  *TodoInput
}

// CountByKey is a server-computed breakdown, e.g. todos per status.
type CountByKey struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// UserStats is the per-user aggregate from /users/stats.
type UserStats struct {
	Total          int          `json:"total"`
	Completed      int          `json:"completed"`
	Pending        int          `json:"pending"`
	InProgress     int          `json:"inProgress"`
	Overdue        int          `json:"overdue"`
	DueToday       int          `json:"dueToday"`
	CompletionRate float64      `json:"completionRate"`
	ByPriority     []CountByKey `json:"byPriority"`
	ByCategory     []CountByKey `json:"byCategory"`
}

// AdminDashboard is the aggregate view from /admin/dashboard.
type AdminDashboard struct {
	TotalUsers     int          `json:"totalUsers"`
	ActiveUsers    int          `json:"activeUsers"`
	TotalTodos     int          `json:"totalTodos"`
	CompletedTodos int          `json:"completedTodos"`
	OverdueTodos   int          `json:"overdueTodos"`
	ByStatus       []CountByKey `json:"byStatus"`
	ByPriority     []CountByKey `json:"byPriority"`
	ByCategory     []CountByKey `json:"byCategory"`
	RecentTodos    []Todo       `json:"recentTodos"`
	RecentUsers    []User       `json:"recentUsers"`
}

// UserReport is one row of the per-user rollup in /admin/reports.
type UserReport struct {
	User           User    `json:"user"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}

// AdminReports is the response of /admin/reports.
type AdminReports struct {
	Users       []UserReport `json:"users"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// UserDetail is the response of /admin/users/:id, the user plus a page
// of their todos.
type UserDetail struct {
	User  User     `json:"user"`
	Todos TodoPage `json:"todos"`
}

// UserUpdate carries the admin-writable user fields.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// NewUser is the admin add-user form. ImagePath, when set, is attached
// as a multipart file field.
type NewUser struct {
	Username  string
	Email     string
	Password  string
	Role      string
	ImagePath string
}
