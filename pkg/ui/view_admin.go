package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// adminView renders the admin console with its tab bar.
func (m Model) adminView() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("Admin Console"))
	sb.WriteString("\n\n")
	sb.WriteString(m.adminTabBar())
	sb.WriteString("\n\n")

	switch m.adminTab {
	case AdminUsersTab:
		sb.WriteString(m.adminUsersView())
	case AdminTodosTab:
		sb.WriteString(m.adminTodosView())
	case AdminAssignTab:
		sb.WriteString(m.adminAssignView())
	case AdminReportsTab:
		sb.WriteString(m.adminReportsView())
	default:
		sb.WriteString(m.adminOverviewView())
	}

	return sb.String()
}

func (m Model) adminTabBar() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor)).
		Padding(0, 1)

	tabs := make([]string, 0, 5)
	for _, tab := range []AdminTab{AdminDashboardTab, AdminUsersTab, AdminTodosTab, AdminAssignTab, AdminReportsTab} {
		if tab == m.adminTab {
			tabs = append(tabs, active.Render(tab.String()))
		} else {
			tabs = append(tabs, inactive.Render(tab.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) adminOverviewView() string {
	var sb strings.Builder

	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Bold(true)
	dash := m.adminDashboard

	sb.WriteString(fmt.Sprintf("%s %s (%s active)   %s %s (%s done, %s overdue)\n\n",
		normal.Render("Users:"), accent.Render(fmt.Sprintf("%d", dash.TotalUsers)),
		fmt.Sprintf("%d", dash.ActiveUsers),
		normal.Render("Todos:"), accent.Render(fmt.Sprintf("%d", dash.TotalTodos)),
		fmt.Sprintf("%d", dash.CompletedTodos),
		fmt.Sprintf("%d", dash.OverdueTodos)))

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("By status"))
	sb.WriteString("\n")
	sb.WriteString(m.barChart(dash.ByStatus, 24))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("By priority"))
	sb.WriteString("\n")
	sb.WriteString(m.barChart(dash.ByPriority, 24))
	sb.WriteString("\n")

	if len(dash.RecentTodos) > 0 {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent todos"))
		sb.WriteString("\n")
		for _, todo := range dash.RecentTodos {
			owner := ""
			if todo.User != nil {
				owner = " (" + todo.User.Username + ")"
			}
			sb.WriteString(fmt.Sprintf("- %s%s\n", truncate(todo.Title, 40), owner))
		}
		sb.WriteString("\n")
	}

	if len(dash.RecentUsers) > 0 {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent users"))
		sb.WriteString("\n")
		for _, user := range dash.RecentUsers {
			sb.WriteString(fmt.Sprintf("- %s <%s>\n", user.Username, user.Email))
		}
	}

	return sb.String()
}

func (m Model) adminUsersView() string {
	var sb strings.Builder

	if m.mode == AddMode || m.mode == EditMode {
		if m.mode == AddMode {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Add User"))
		} else {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Edit User"))
		}
		sb.WriteString("\n\n")

		labels := []string{"Username", "Email", "Password", "Role (user/admin)", "Profile image path"}
		for i, label := range labels {
			if m.mode == EditMode && (i == 2 || i == 4) {
				continue
			}
			sb.WriteString(label + ":\n")
			sb.WriteString(m.userInputs[i].View())
			sb.WriteString("\n\n")
		}
		return sb.String()
	}

	sb.WriteString(m.adminUserTable.View())
	sb.WriteString("\n")

	f := m.adminUsersCtrl.Filters()
	parts := []string{}
	if f.Role != "" {
		parts = append(parts, "role: "+f.Role)
	}
	if f.IsActive != "" {
		parts = append(parts, "active: "+f.IsActive)
	}
	if info := pageInfo(m.adminUsersCtrl.Pagination()); info != "" {
		parts = append(parts, info)
	}
	if len(parts) > 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render(strings.Join(parts, " | ")))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) adminTodosView() string {
	var sb strings.Builder

	sb.WriteString(m.adminTodoTable.View())
	sb.WriteString("\n")

	f := m.adminTodosCtrl.Filters()
	parts := []string{}
	if f.UserID != "" {
		parts = append(parts, "filtered to one user (esc clears)")
	}
	if f.Status != "" {
		parts = append(parts, "status: "+f.Status)
	}
	if f.Category != "" {
		parts = append(parts, "category: "+f.Category)
	}
	if f.Priority != "" {
		parts = append(parts, "priority: "+f.Priority)
	}
	if info := pageInfo(m.adminTodosCtrl.Pagination()); info != "" {
		parts = append(parts, info)
	}
	if len(parts) > 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render(strings.Join(parts, " | ")))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) adminAssignView() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Assign Task"))
	sb.WriteString("\n\n")

	if len(m.adminUsers) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render("No users loaded yet."))
		sb.WriteString("\n")
		return sb.String()
	}

	idx := m.assignUserIdx
	if idx >= len(m.adminUsers) {
		idx = len(m.adminUsers) - 1
	}
	target := m.adminUsers[idx]

	sb.WriteString(fmt.Sprintf("Assign to: %s %s\n\n",
		lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.AccentColor)).
			Bold(true).
			Render(target.Username),
		lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render(fmt.Sprintf("(%d/%d, ←→ to change)", idx+1, len(m.adminUsers)))))

	labels := []string{"Title", "Description", "Priority", "Due Date (YYYY-MM-DD)"}
	for i, label := range labels {
		sb.WriteString(label + ":\n")
		sb.WriteString(m.assignInputs[i].View())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func (m Model) adminReportsView() string {
	var sb strings.Builder

	if len(m.adminReports.Users) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render("No report data."))
		sb.WriteString("\n")
		return sb.String()
	}

	header := fmt.Sprintf("%-18s %6s %6s %8s %6s", "User", "Total", "Done", "Overdue", "Rate")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	sb.WriteString("\n")

	for _, row := range m.adminReports.Users {
		sb.WriteString(fmt.Sprintf("%-18s %6d %6d %8d %5.0f%%\n",
			truncate(row.User.Username, 18),
			row.Total, row.Completed, row.Overdue, row.CompletionRate))
	}

	if !m.adminReports.GeneratedAt.IsZero() {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render("generated " + m.adminReports.GeneratedAt.Format("2006-01-02 15:04")))
		sb.WriteString("\n")
	}

	return sb.String()
}

// adminHelpActions contributes tab-specific hints to the help bar.
func (m Model) adminHelpActions(addAction func(k, desc string)) {
	switch m.adminTab {
	case AdminUsersTab:
		addAction("a/e", "add/edit")
		addAction("t", "toggle active")
		addAction("f/c", "role/active filter")
		addAction("enter", "user's todos")
	case AdminTodosTab:
		addAction("f/c/p", "filters")
		addAction("←→", "page")
	case AdminAssignTab:
		addAction("←→", "pick user")
		addAction("enter", "assign")
	}
}
