package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/pkg/api"
)

// updateAdminMsg handles responses for the admin console.
func (m Model) updateAdminMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adminDashboardMsg:
		if msg.err != nil {
			m.toasts.Error("Failed to load admin dashboard")
			return m, nil
		}
		m.adminDashboard = msg.dash
		return m, nil

	case adminReportsMsg:
		if msg.err != nil {
			m.toasts.Error("Failed to load reports")
			return m, nil
		}
		m.adminReports = msg.reports
		return m, nil

	case adminUsersMsg:
		if !m.adminUsersCtrl.Accept(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Error("Failed to load users")
			return m, nil
		}
		m.adminUsersCtrl.Apply(msg.gen, msg.page.Pagination)
		m.adminUsers = msg.page.Users
		m.rebuildUserRows()
		return m, nil

	case adminTodosMsg:
		if !m.adminTodosCtrl.Accept(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Error("Failed to load todos")
			return m, nil
		}
		m.adminTodosCtrl.Apply(msg.gen, msg.page.Pagination)
		m.adminTodos = msg.page.Todos
		m.rebuildAdminTodoRows()
		return m, nil

	case userSavedMsg:
		if msg.err != nil {
			m.toasts.Error(errorText(msg.err, "Failed to save user"))
			return m, nil
		}
		if msg.created {
			m.toasts.Success("User created")
		} else {
			m.toasts.Success("User updated")
		}
		m.mode = NormalMode
		m.editingUser = nil
		for i := range m.userInputs {
			m.userInputs[i].Reset()
		}
		m.userInputs[3].SetValue("user")
		return m, m.fetchAdminUsers()

	case todoAssignedMsg:
		if msg.err != nil {
			m.toasts.Error(errorText(msg.err, "Failed to assign task"))
			return m, nil
		}
		m.toasts.Success("Task assigned")
		m.mode = NormalMode
		for i := range m.assignInputs {
			m.assignInputs[i].Reset()
		}
		m.assignInputs[2].SetValue("Medium")
		return m, nil
	}

	return m, nil
}

// refreshAdmin re-fetches the active admin tab.
func (m *Model) refreshAdmin() tea.Cmd {
	switch m.adminTab {
	case AdminUsersTab:
		return m.fetchAdminUsers()
	case AdminTodosTab:
		return m.fetchAdminTodos()
	case AdminAssignTab:
		return m.fetchAdminUsers()
	case AdminReportsTab:
		return m.fetchAdminReports()
	default:
		return m.fetchAdminDashboard()
	}
}

func (m Model) updateAdminKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.mode == AddMode || m.mode == EditMode {
		return m.updateAdminFormKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.AdminNextTab):
		m.adminTab = (m.adminTab + 1) % 5
		return m, m.refreshAdmin()

	case key.Matches(msg, m.keyMap.AssignTask):
		m.adminTab = AdminAssignTab
		m.assignActive = 0
		focusInput(m.assignInputs, m.assignActive)
		return m, m.fetchAdminUsers()
	}

	switch m.adminTab {
	case AdminUsersTab:
		switch {
		case key.Matches(msg, m.keyMap.AddUser):
			m.mode = AddMode
			m.editingUser = nil
			m.userActive = 0
			focusInput(m.userInputs, m.userActive)
			return m, nil

		case key.Matches(msg, m.keyMap.EditTask):
			if user := m.selectedUser(); user != nil {
				m.mode = EditMode
				m.editingUser = user
				m.userActive = 0
				m.userInputs[0].SetValue(user.Username)
				m.userInputs[1].SetValue(user.Email)
				m.userInputs[2].Reset()
				m.userInputs[3].SetValue(user.Role)
				m.userInputs[4].Reset()
				focusInput(m.userInputs, m.userActive)
			}
			return m, nil

		case key.Matches(msg, m.keyMap.ToggleUserActive):
			if user := m.selectedUser(); user != nil {
				active := !user.IsActive
				return m, m.saveUser(user.ID, api.UserUpdate{IsActive: &active})
			}
			return m, nil

		case key.Matches(msg, m.keyMap.CycleStatusFilter):
			roles := []string{"user", "admin"}
			m.adminUsersCtrl.SetRole(cycleValue(m.adminUsersCtrl.Filters().Role, roles))
			return m, m.fetchAdminUsers()

		case key.Matches(msg, m.keyMap.CycleCategoryFilter):
			states := []string{"true", "false"}
			m.adminUsersCtrl.SetIsActive(cycleValue(m.adminUsersCtrl.Filters().IsActive, states))
			return m, m.fetchAdminUsers()

		case key.Matches(msg, m.keyMap.NextPage):
			m.adminUsersCtrl.NextPage()
			return m, m.fetchAdminUsers()

		case key.Matches(msg, m.keyMap.PrevPage):
			m.adminUsersCtrl.PrevPage()
			return m, m.fetchAdminUsers()

		case msg.String() == "enter":
			// Jump to the all-todos tab filtered to this user.
			if user := m.selectedUser(); user != nil {
				m.adminTab = AdminTodosTab
				m.adminTodosCtrl.SetUserID(user.ID)
				return m, m.fetchAdminTodos()
			}
			return m, nil
		}

		m.adminUserTable, cmd = m.adminUserTable.Update(msg)
		return m, cmd

	case AdminTodosTab:
		switch {
		case key.Matches(msg, m.keyMap.CycleStatusFilter):
			m.adminTodosCtrl.SetStatus(cycleValue(m.adminTodosCtrl.Filters().Status, api.Statuses))
			return m, m.fetchAdminTodos()

		case key.Matches(msg, m.keyMap.CycleCategoryFilter):
			m.adminTodosCtrl.SetCategory(cycleValue(m.adminTodosCtrl.Filters().Category, api.Categories))
			return m, m.fetchAdminTodos()

		case key.Matches(msg, m.keyMap.CyclePriorityFilter):
			m.adminTodosCtrl.SetPriority(cycleValue(m.adminTodosCtrl.Filters().Priority, api.Priorities))
			return m, m.fetchAdminTodos()

		case msg.String() == "esc":
			// Clear the user filter set from the users tab.
			m.adminTodosCtrl.SetUserID("")
			return m, m.fetchAdminTodos()

		case key.Matches(msg, m.keyMap.NextPage):
			m.adminTodosCtrl.NextPage()
			return m, m.fetchAdminTodos()

		case key.Matches(msg, m.keyMap.PrevPage):
			m.adminTodosCtrl.PrevPage()
			return m, m.fetchAdminTodos()
		}

		m.adminTodoTable, cmd = m.adminTodoTable.Update(msg)
		return m, cmd

	case AdminAssignTab:
		switch msg.String() {
		case "left":
			if m.assignUserIdx > 0 {
				m.assignUserIdx--
			}
			return m, nil

		case "right":
			if m.assignUserIdx < len(m.adminUsers)-1 {
				m.assignUserIdx++
			}
			return m, nil

		case "tab":
			m.assignActive = (m.assignActive + 1) % len(m.assignInputs)
			focusInput(m.assignInputs, m.assignActive)
			return m, nil

		case "shift+tab":
			m.assignActive = (m.assignActive + len(m.assignInputs) - 1) % len(m.assignInputs)
			focusInput(m.assignInputs, m.assignActive)
			return m, nil

		case "enter":
			return m.submitAssignment()
		}

		m.assignInputs[m.assignActive], cmd = m.assignInputs[m.assignActive].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateAdminFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.editingUser = nil
		return m, nil

	case "tab":
		m.userActive = (m.userActive + 1) % len(m.userInputs)
		focusInput(m.userInputs, m.userActive)
		return m, nil

	case "shift+tab":
		m.userActive = (m.userActive + len(m.userInputs) - 1) % len(m.userInputs)
		focusInput(m.userInputs, m.userActive)
		return m, nil

	case "enter":
		if m.userActive == len(m.userInputs)-1 {
			return m.submitUserForm()
		}
		m.userActive = (m.userActive + 1) % len(m.userInputs)
		focusInput(m.userInputs, m.userActive)
		return m, nil
	}

	m.userInputs[m.userActive], cmd = m.userInputs[m.userActive].Update(msg)
	return m, cmd
}

func (m Model) submitUserForm() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.userInputs[0].Value())
	email := strings.TrimSpace(m.userInputs[1].Value())
	password := m.userInputs[2].Value()
	role := strings.TrimSpace(m.userInputs[3].Value())
	imagePath := strings.TrimSpace(m.userInputs[4].Value())

	if m.mode == AddMode {
		if username == "" || email == "" || password == "" {
			m.toasts.Error("Username, email and password are required")
			return m, nil
		}
		return m, m.addUser(api.NewUser{
			Username:  username,
			Email:     email,
			Password:  password,
			Role:      role,
			ImagePath: imagePath,
		})
	}

	if m.editingUser == nil {
		m.mode = NormalMode
		return m, nil
	}

	update := api.UserUpdate{}
	if username != "" && username != m.editingUser.Username {
		update.Username = &username
	}
	if email != "" && email != m.editingUser.Email {
		update.Email = &email
	}
	if role != "" && role != m.editingUser.Role {
		update.Role = &role
	}
	if update.Username == nil && update.Email == nil && update.Role == nil {
		m.toasts.Error("Nothing to update")
		return m, nil
	}
	return m, m.saveUser(m.editingUser.ID, update)
}

func (m Model) submitAssignment() (tea.Model, tea.Cmd) {
	if len(m.adminUsers) == 0 {
		m.toasts.Error("Load users first")
		return m, nil
	}
	target := m.adminUsers[m.assignUserIdx]

	title := strings.TrimSpace(m.assignInputs[0].Value())
	if title == "" {
		m.toasts.Error("Title is required")
		return m, nil
	}
	desc := strings.TrimSpace(m.assignInputs[1].Value())
	priority := strings.TrimSpace(m.assignInputs[2].Value())

	due, ok := parseDueDate(m.assignInputs[3].Value())
	if !ok {
		m.toasts.Error("Invalid due date: use YYYY-MM-DD")
		return m, nil
	}

	input := &api.TodoInput{Title: &title, DueDate: due}
	if desc != "" {
		input.Description = &desc
	}
	if priority != "" {
		input.Priority = &priority
	}

	return m, m.assignTodo(api.Assignment{UserID: target.ID, Input: input})
}

// selectedUser returns the user under the admin table cursor.
func (m *Model) selectedUser() *api.User {
	idx := m.adminUserTable.Cursor()
	if idx < 0 || idx >= len(m.adminUsers) {
		return nil
	}
	return &m.adminUsers[idx]
}
