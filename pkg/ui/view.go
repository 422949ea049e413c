package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/pkg/api"
)

// View renders the UI based on the current screen and mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.screen {
	case AuthScreen:
		sb.WriteString(m.authView())

	case DashboardScreen:
		sb.WriteString(m.dashboardView())

	case TodosScreen:
		sb.WriteString(m.todosView())

	case BoardScreen:
		sb.WriteString(m.boardView())

	case ProfileScreen:
		sb.WriteString(m.profileView())

	case AdminScreen:
		sb.WriteString(m.adminView())
	}

	if m.mode == HelpViewMode {
		return m.helpView()
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if toasts := m.toastView(); toasts != "" {
		sb.WriteString("\n")
		sb.WriteString(toasts)
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// titleBar renders the accent-colored screen header.
func (m Model) titleBar(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1).
		Render(" " + text + " ")
}

func (m Model) authView() string {
	var sb strings.Builder

	if m.registering {
		sb.WriteString(m.titleBar("Taskdeck - Register"))
	} else {
		sb.WriteString(m.titleBar("Taskdeck - Login"))
	}
	sb.WriteString("\n\n")

	sb.WriteString("Username:\n")
	sb.WriteString(m.authInputs[authFieldUsername].View())
	sb.WriteString("\n\n")

	if m.registering {
		sb.WriteString("Email:\n")
		sb.WriteString(m.authInputs[authFieldEmail].View())
		sb.WriteString("\n\n")
	}

	sb.WriteString("Password:\n")
	sb.WriteString(m.authInputs[authFieldPassword].View())
	sb.WriteString("\n")

	if m.authBusy {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" contacting server...")
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) dashboardView() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar(fmt.Sprintf("Dashboard - %s", m.user.Username)))
	sb.WriteString("\n\n")

	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Bold(true)

	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		normal.Render("Total:"), accent.Render(fmt.Sprintf("%d", m.stats.Total)),
		normal.Render("Completed:"), accent.Render(fmt.Sprintf("%d", m.stats.Completed)),
		normal.Render("Overdue:"), accent.Render(fmt.Sprintf("%d", m.stats.Overdue)),
		normal.Render("Due today:"), accent.Render(fmt.Sprintf("%d", m.stats.DueToday))))

	sb.WriteString(fmt.Sprintf("%s %s\n\n",
		normal.Render("Completion rate:"),
		accent.Render(fmt.Sprintf("%.0f%%", m.stats.CompletionRate))))

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("By priority"))
	sb.WriteString("\n")
	sb.WriteString(m.barChart(m.stats.ByPriority, 24))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("By category"))
	sb.WriteString("\n")
	sb.WriteString(m.barChart(m.stats.ByCategory, 24))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Due today"))
	sb.WriteString("\n")
	if len(m.todayTodos) == 0 {
		sb.WriteString(normal.Render("nothing due today"))
		sb.WriteString("\n")
	}
	for _, todo := range m.todayTodos {
		check := "[ ]"
		if todo.Completed() {
			check = "[x]"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", check, truncate(todo.Title, 50)))
	}

	return sb.String()
}

func (m Model) todosView() string {
	var sb strings.Builder

	switch m.mode {
	case AddMode:
		sb.WriteString(m.titleBar("Add New Task"))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderTodoForm())
		return sb.String()

	case EditMode:
		sb.WriteString(m.titleBar("Edit Task"))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderTodoForm())
		return sb.String()

	case DeleteConfirmMode:
		sb.WriteString(m.titleBar("Delete Task"))
		sb.WriteString("\n\n")
		if m.editingTodo != nil {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", m.editingTodo.Title))
			sb.WriteString(fmt.Sprintf("Description: %s\n", m.editingTodo.Description))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}
		return sb.String()

	case SearchMode:
		sb.WriteString(m.titleBar("Search Tasks"))
		sb.WriteString("\n\n")
		sb.WriteString("Enter search term to find tasks:")
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())
		return sb.String()
	}

	sb.WriteString(m.titleBar("Taskdeck - Todo List"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" loading...\n\n")
	}

	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	// Status line: bucket, filters and server-side paging.
	f := m.todosCtrl.Filters()
	parts := []string{fmt.Sprintf("bucket: %s", m.bucket)}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", f.Search))
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
	if f.SortBy != "" {
		order := f.SortOrder
		if order == "" {
			order = "asc"
		}
		parts = append(parts, fmt.Sprintf("sorted by %s (%s)", f.SortBy, order))
	}
	if info := pageInfo(m.todosCtrl.Pagination()); info != "" {
		parts = append(parts, info)
	}

	sb.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor)).
		Render("Showing " + strings.Join(parts, " | ")))
	sb.WriteString("\n")

	return sb.String()
}

// renderTodoForm renders the input form for adding/editing tasks
func (m Model) renderTodoForm() string {
	var sb strings.Builder

	labels := []string{"Title", "Description", "Category", "Priority", "Due Date (YYYY-MM-DD)"}
	for i, label := range labels {
		sb.WriteString(label + ":\n")
		sb.WriteString(m.todoInputs[i].View())
		if i < len(labels)-1 {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

func (m Model) boardView() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("Taskdeck - Board"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" loading...\n\n")
	}

	columns := m.boardColumns()
	rendered := make([]string, 0, len(columns))
	now := time.Now()

	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(api.Statuses) - 4; w > 16 && w < colWidth {
			colWidth = w
		}
	}

	for i, status := range api.Statuses {
		var col strings.Builder

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.statusColor(status))).
			Render(fmt.Sprintf("%s (%d)", status, len(columns[i])))
		col.WriteString(header)
		col.WriteString("\n\n")

		for j, todo := range columns[i] {
			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(m.styles.BorderColor)).
				Width(colWidth).
				Padding(0, 1)

			if i == m.boardColumn && j == m.boardRow {
				cardStyle = cardStyle.BorderForeground(lipgloss.Color(m.styles.AccentColor))
			}

			priority := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.priorityColor(todo.Priority))).
				Render(todo.Priority)

			due := formatDue(todo.DueDate)
			if todo.Overdue(now) {
				due = lipgloss.NewStyle().
					Foreground(lipgloss.Color(m.styles.OverdueColor)).
					Render(due + " !")
			}

			card := fmt.Sprintf("%s\n%s  %s", truncate(todo.Title, colWidth-2), priority, due)
			col.WriteString(cardStyle.Render(card))
			col.WriteString("\n")
		}

		columnStyle := lipgloss.NewStyle().Width(colWidth + 4)
		if i == m.boardColumn {
			columnStyle = columnStyle.Bold(true)
		}
		rendered = append(rendered, columnStyle.Render(col.String()))
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) profileView() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar("Profile"))
	sb.WriteString("\n\n")

	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor))
	sb.WriteString(normal.Render(fmt.Sprintf("Logged in as %s (%s)", m.user.Username, m.user.Role)))
	sb.WriteString("\n")
	if m.user.ProfileImage != "" {
		sb.WriteString(normal.Render("Profile image: " + m.user.ProfileImage))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sections := []string{
		"Username", "Email",
		"Current password", "New password",
		"Profile image path",
	}
	for i, label := range sections {
		sb.WriteString(label + ":\n")
		sb.WriteString(m.profileInputs[i].View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(normal.Render("Enter submits the focused section: profile fields, password pair, or image upload."))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) helpView() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))

	addCommand := func(binding key.Binding) {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			descStyle.Render(binding.Help().Desc),
			keyStyle.Render(binding.Help().Key)))
	}

	addCommand(m.keyMap.QuitApp)
	addCommand(m.keyMap.ShowHelp)
	addCommand(m.keyMap.GoDashboard)
	addCommand(m.keyMap.GoTodos)
	addCommand(m.keyMap.GoBoard)
	addCommand(m.keyMap.GoProfile)
	addCommand(m.keyMap.GoAdmin)
	addCommand(m.keyMap.Refresh)
	addCommand(m.keyMap.Logout)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Todo List"))
	sb.WriteString("\n\n")
	addCommand(m.keyMap.ToggleStatus)
	addCommand(m.keyMap.AdvanceStatus)
	addCommand(m.keyMap.AddTask)
	addCommand(m.keyMap.EditTask)
	addCommand(m.keyMap.DeleteTask)
	addCommand(m.keyMap.SearchTasks)
	addCommand(m.keyMap.CycleBucket)
	addCommand(m.keyMap.CycleStatusFilter)
	addCommand(m.keyMap.CycleCategoryFilter)
	addCommand(m.keyMap.CyclePriorityFilter)
	addCommand(m.keyMap.ToggleSortBy)
	addCommand(m.keyMap.ToggleSortOrder)
	addCommand(m.keyMap.NextPage)
	addCommand(m.keyMap.PrevPage)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Board"))
	sb.WriteString("\n\n")
	addCommand(m.keyMap.ColumnLeft)
	addCommand(m.keyMap.ColumnRight)
	addCommand(m.keyMap.MoveCardLeft)
	addCommand(m.keyMap.MoveCardRight)

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Admin"))
	sb.WriteString("\n\n")
	addCommand(m.keyMap.AdminNextTab)
	addCommand(m.keyMap.AddUser)
	addCommand(m.keyMap.ToggleUserActive)

	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}

	if m.screen == AuthScreen {
		addAction("tab", "next field")
		addAction("enter", "submit")
		if m.registering {
			addAction("ctrl+r", "login instead")
		} else {
			addAction("ctrl+r", "register instead")
		}
		addAction("ctrl+c", "quit")
		return strings.Join(actions, separator)
	}

	switch m.mode {
	case NormalMode:
		switch m.screen {
		case TodosScreen:
			addAction("space", "toggle")
			addAction("a/e/d", "add/edit/del")
			addAction("b", "bucket")
			addAction("f/c/p", "filters")
			addAction("←→", "page")
			addAction("/", "search")
		case BoardScreen:
			addAction("h/l", "column")
			addAction("↑↓", "card")
			addAction("shift+←→", "move card")
		case AdminScreen:
			addAction("tab", "next tab")
			m.adminHelpActions(addAction)
		}
		addAction("1-5", "screens")
		addAction("r", "refresh")
		addAction("ctrl+b", "help")
		addAction("q", "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "search")
		addAction("esc", "cancel")

	case HelpViewMode:
		addAction("ctrl+b/esc", "back")
		addAction("q", "quit")
	}

	return strings.Join(actions, separator)
}
