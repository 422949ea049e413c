package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/pkg/api"
	"taskdeck/pkg/state"
)

// rebuildTodoRows refreshes the list table from the in-memory todos.
// Called after every fetch and after every optimistic apply/rollback so
// the table always mirrors the list.
func (m *Model) rebuildTodoRows() {
	rows := make([]table.Row, 0, len(m.todos))
	now := time.Now()

	for _, todo := range m.todos {
		check := "[ ]"
		if todo.Completed() {
			check = "[x]"
		}

		due := formatDue(todo.DueDate)
		if todo.Overdue(now) {
			due = due + " !"
		}

		rows = append(rows, table.Row{
			check,
			truncate(todo.Title, 32),
			todo.Category,
			todo.Priority,
			todo.Status,
			due,
		})
	}

	m.table.SetRows(rows)
}

// rebuildUserRows refreshes the admin users table.
func (m *Model) rebuildUserRows() {
	rows := make([]table.Row, 0, len(m.adminUsers))

	for _, user := range m.adminUsers {
		active := "active"
		if !user.IsActive {
			active = "inactive"
		}

		lastLogin := "never"
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.Format("2006-01-02")
		}

		rows = append(rows, table.Row{
			truncate(user.Username, 18),
			truncate(user.Email, 28),
			user.Role,
			active,
			lastLogin,
		})
	}

	m.adminUserTable.SetRows(rows)
}

// rebuildAdminTodoRows refreshes the admin all-todos table.
func (m *Model) rebuildAdminTodoRows() {
	rows := make([]table.Row, 0, len(m.adminTodos))

	for _, todo := range m.adminTodos {
		owner := ""
		if todo.User != nil {
			owner = todo.User.Username
		}

		rows = append(rows, table.Row{
			truncate(todo.Title, 28),
			truncate(owner, 14),
			todo.Priority,
			todo.Status,
			formatDue(todo.DueDate),
		})
	}

	m.adminTodoTable.SetRows(rows)
}

// selectedTodo returns the todo under the list cursor.
func (m *Model) selectedTodo() *api.Todo {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.todos) {
		return nil
	}
	return &m.todos[idx]
}

// boardColumns splits the board todos into kanban columns, one per
// status, preserving fetch order within each column.
func (m *Model) boardColumns() [][]api.Todo {
	columns := make([][]api.Todo, len(api.Statuses))
	for _, todo := range m.boardTodos {
		for i, status := range api.Statuses {
			if todo.Status == status {
				columns[i] = append(columns[i], todo)
				break
			}
		}
	}
	return columns
}

// selectedCard returns the board card under the cursor.
func (m *Model) selectedCard() *api.Todo {
	columns := m.boardColumns()
	if m.boardColumn < 0 || m.boardColumn >= len(columns) {
		return nil
	}
	col := columns[m.boardColumn]
	if m.boardRow < 0 || m.boardRow >= len(col) {
		return nil
	}
	// Index back into boardTodos so mutations hit the owned slice.
	id := col[m.boardRow].ID
	for i := range m.boardTodos {
		if m.boardTodos[i].ID == id {
			return &m.boardTodos[i]
		}
	}
	return nil
}

// clampBoardCursor keeps the board cursor inside the current columns.
func (m *Model) clampBoardCursor() {
	columns := m.boardColumns()
	if m.boardColumn >= len(columns) {
		m.boardColumn = len(columns) - 1
	}
	if m.boardColumn < 0 {
		m.boardColumn = 0
	}
	if n := len(columns[m.boardColumn]); m.boardRow >= n {
		m.boardRow = n - 1
	}
	if m.boardRow < 0 {
		m.boardRow = 0
	}
}

// nextStatus returns the status one kanban column to the right, or ""
// when already at the last column.
func nextStatus(status string) string {
	for i, s := range api.Statuses {
		if s == status && i+1 < len(api.Statuses) {
			return api.Statuses[i+1]
		}
	}
	return ""
}

// prevStatus returns the status one kanban column to the left, or ""
// when already at the first column.
func prevStatus(status string) string {
	for i, s := range api.Statuses {
		if s == status && i > 0 {
			return api.Statuses[i-1]
		}
	}
	return ""
}

// toggleTarget maps the checkbox gesture onto the status enum: done
// items reopen as pending, everything else completes.
func toggleTarget(todo api.Todo) string {
	if todo.Completed() {
		return api.StatusPending
	}
	return api.StatusCompleted
}

func (m Model) statusColor(status string) string {
	switch status {
	case api.StatusInProgress:
		return m.styles.InProgressColor
	case api.StatusCompleted:
		return m.styles.CompletedColor
	default:
		return m.styles.PendingColor
	}
}

func (m Model) priorityColor(priority string) string {
	switch priority {
	case "High":
		return m.styles.HighPriorityColor
	case "Medium":
		return m.styles.MediumPriorityColor
	default:
		return m.styles.LowPriorityColor
	}
}

// toastView renders the active notifications, newest last.
func (m Model) toastView() string {
	toasts := m.toasts.Active(state.DefaultToastTTL)
	if len(toasts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, toast := range toasts {
		color := m.styles.SuccessColor
		prefix := "✓"
		if toast.Level == state.LevelError {
			color = m.styles.ErrorColor
			prefix = "✗"
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(color)).
			Render(fmt.Sprintf("%s %s", prefix, toast.Text)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// barChart renders a horizontal bar per count, scaled to maxWidth.
func (m Model) barChart(counts []api.CountByKey, maxWidth int) string {
	if len(counts) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render("no data")
	}

	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	if max == 0 {
		max = 1
	}

	var sb strings.Builder
	for _, c := range counts {
		width := c.Count * maxWidth / max
		if width == 0 && c.Count > 0 {
			width = 1
		}
		bar := strings.Repeat("█", width)
		sb.WriteString(fmt.Sprintf("%-12s %s %d\n",
			truncate(c.Key, 12),
			lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Render(bar),
			c.Count))
	}
	return sb.String()
}

// pageInfo renders "page X of Y (N items)" from server metadata.
func pageInfo(p api.Pagination) string {
	if p.Total == 0 || p.PageSize == 0 {
		return ""
	}
	last := (p.Total + p.PageSize - 1) / p.PageSize
	return fmt.Sprintf("page %d of %d (%d items)", p.Current, last, p.Total)
}

func formatDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format("2006-01-02")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
