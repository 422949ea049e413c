package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/pkg/api"
	"taskdeck/pkg/state"
	"taskdeck/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height - 10)
		m.adminUserTable.SetWidth(msg.Width - 4)
		m.adminUserTable.SetHeight(msg.Height - 12)
		m.adminTodoTable.SetWidth(msg.Width - 4)
		m.adminTodoTable.SetHeight(msg.Height - 12)
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case AuthExpiredMsg:
		// The client has already cleared the token; drop the session
		// and fall back to the login screen.
		m.authed = false
		m.user = api.User{}
		m.screen = AuthScreen
		m.mode = NormalMode
		m.authBusy = false
		m.toasts.Error("Session expired, please log in again")
		return m, nil

	case sessionMsg:
		return m.handleSession(msg)

	case meMsg:
		if msg.err != nil {
			// Resuming with a stale token; 401s arrive separately as
			// AuthExpiredMsg, anything else is just reported.
			if !api.IsAuthError(msg.err) {
				m.toasts.Error("Could not restore session")
			}
			return m, nil
		}
		m.user = msg.user
		m.authed = true
		m.screen = DashboardScreen
		return m, m.fetchDashboard()

	case todosLoadedMsg:
		m.loading = false
		if !m.todosCtrl.Accept(msg.gen) {
			utils.Log("ui: dropping stale todos response (gen %d)", msg.gen)
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Error("Failed to load todos")
			return m, nil
		}
		if msg.paginated {
			m.todosCtrl.Apply(msg.gen, msg.pagination)
		}
		m.todos = msg.todos
		m.rebuildTodoRows()
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if !m.boardCtrl.Accept(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			m.toasts.Error("Failed to load board")
			return m, nil
		}
		m.boardTodos = msg.todos
		m.clampBoardCursor()
		return m, nil

	case mutationMsg:
		// The item may appear in both the list and the board; the
		// dispatcher reconciles every list that holds it.
		m.mutator.Resolve(msg.res, m.todos, m.boardTodos)
		m.rebuildTodoRows()
		m.clampBoardCursor()
		return m, nil

	case todoSavedMsg:
		if msg.err != nil {
			// Form state is kept so the user can correct and resubmit.
			m.toasts.Error(errorText(msg.err, "Failed to save todo"))
			return m, nil
		}
		if msg.created {
			m.toasts.Success("Todo created")
		} else {
			m.toasts.Success("Todo updated")
		}
		m.mode = NormalMode
		m.editingTodo = nil
		m.resetTodoInputs()
		return m, m.refreshActive()

	case todoDeletedMsg:
		if msg.err != nil {
			m.toasts.Error("Failed to delete todo")
			return m, nil
		}
		m.toasts.Success("Todo deleted")
		return m, m.refreshActive()

	case statsMsg:
		if msg.err != nil {
			m.toasts.Error("Failed to load stats")
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case todayMsg:
		if msg.err != nil {
			m.toasts.Error("Failed to load today's todos")
			return m, nil
		}
		m.todayTodos = msg.todos
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.toasts.Error(errorText(msg.err, "Failed to update profile"))
			return m, nil
		}
		m.user = msg.user
		m.toasts.Success("Profile updated")
		return m, nil

	case passwordChangedMsg:
		if msg.err != nil {
			m.toasts.Error(errorText(msg.err, "Failed to change password"))
			return m, nil
		}
		m.profileInputs[2].Reset()
		m.profileInputs[3].Reset()
		m.toasts.Success("Password changed")
		return m, nil

	case imageUploadedMsg:
		if msg.err != nil {
			m.toasts.Error(errorText(msg.err, "Failed to upload image"))
			return m, nil
		}
		m.user = msg.user
		m.toasts.Success("Profile image uploaded")
		return m, nil

	case adminDashboardMsg, adminReportsMsg, adminUsersMsg, adminTodosMsg, userSavedMsg, todoAssignedMsg:
		return m.updateAdminMsg(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	if msg.err != nil {
		if msg.registered {
			m.toasts.Error(errorText(msg.err, "Registration failed"))
		} else {
			m.toasts.Error(errorText(msg.err, "Login failed"))
		}
		return m, nil
	}

	if err := m.tokens.Save(msg.session.Token); err != nil {
		m.toasts.Error("Could not persist session")
	}

	m.user = msg.session.User
	m.authed = true
	m.screen = DashboardScreen
	if msg.registered {
		m.toasts.Success("Registration successful")
	} else {
		m.toasts.Success("Login successful")
	}

	for i := range m.authInputs {
		m.authInputs[i].Reset()
	}

	return m, m.fetchDashboard()
}

// handleKey routes key presses to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == AuthScreen {
		return m.updateAuthKeys(msg)
	}

	// Global bindings apply outside form modes.
	if m.mode == NormalMode {
		switch {
		case key.Matches(msg, m.keyMap.QuitApp):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.ShowHelp):
			m.mode = HelpViewMode
			return m, nil

		case key.Matches(msg, m.keyMap.Logout):
			if err := m.tokens.Clear(); err != nil {
				utils.Log("ui: clearing token failed: %v", err)
			}
			m.authed = false
			m.user = api.User{}
			m.screen = AuthScreen
			m.toasts.Success("Logged out")
			return m, nil

		case key.Matches(msg, m.keyMap.GoDashboard):
			m.screen = DashboardScreen
			return m, m.fetchDashboard()

		case key.Matches(msg, m.keyMap.GoTodos):
			m.screen = TodosScreen
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.GoBoard):
			m.screen = BoardScreen
			m.loading = true
			return m, m.fetchBoard()

		case key.Matches(msg, m.keyMap.GoProfile):
			m.screen = ProfileScreen
			m.profileInputs[0].SetValue(m.user.Username)
			m.profileInputs[1].SetValue(m.user.Email)
			return m, nil

		case key.Matches(msg, m.keyMap.GoAdmin):
			if !m.user.IsAdmin() {
				m.toasts.Error("Admin access required")
				return m, nil
			}
			m.screen = AdminScreen
			m.adminTab = AdminDashboardTab
			return m, m.fetchAdminDashboard()

		case key.Matches(msg, m.keyMap.Refresh):
			return m, m.refreshActive()
		}
	}

	if m.mode == HelpViewMode {
		switch msg.String() {
		case "esc", "ctrl+b":
			m.mode = NormalMode
		}
		return m, nil
	}

	switch m.screen {
	case TodosScreen:
		return m.updateTodosKeys(msg)
	case BoardScreen:
		return m.updateBoardKeys(msg)
	case ProfileScreen:
		return m.updateProfileKeys(msg)
	case AdminScreen:
		return m.updateAdminKeys(msg)
	}

	return m, nil
}

// refreshActive re-fetches the data behind the current screen.
func (m *Model) refreshActive() tea.Cmd {
	switch m.screen {
	case DashboardScreen:
		return m.fetchDashboard()
	case TodosScreen:
		m.loading = true
		return m.fetchTodos()
	case BoardScreen:
		m.loading = true
		return m.fetchBoard()
	case AdminScreen:
		return m.refreshAdmin()
	}
	return nil
}

func (m Model) updateAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+r":
		// Switch between login and register forms.
		m.registering = !m.registering
		m.authActive = authFieldUsername
		focusInput(m.authInputs, m.authActive)
		return m, nil

	case "tab", "shift+tab":
		m.authActive = m.nextAuthField(msg.String() == "shift+tab")
		focusInput(m.authInputs, m.authActive)
		return m, nil

	case "enter":
		if m.authActive != authFieldPassword {
			m.authActive = m.nextAuthField(false)
			focusInput(m.authInputs, m.authActive)
			return m, nil
		}
		return m.submitAuth()
	}

	m.authInputs[m.authActive], cmd = m.authInputs[m.authActive].Update(msg)
	return m, cmd
}

// nextAuthField cycles the auth form focus, skipping email on the
// login form.
func (m Model) nextAuthField(backwards bool) int {
	step := 1
	if backwards {
		step = authFieldCount - 1
	}
	next := (m.authActive + step) % authFieldCount
	if !m.registering && next == authFieldEmail {
		next = (next + step) % authFieldCount
	}
	return next
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}

	username := strings.TrimSpace(m.authInputs[authFieldUsername].Value())
	email := strings.TrimSpace(m.authInputs[authFieldEmail].Value())
	password := m.authInputs[authFieldPassword].Value()

	if username == "" || password == "" {
		m.toasts.Error("Username and password are required")
		return m, nil
	}

	m.authBusy = true
	if m.registering {
		if email == "" {
			m.authBusy = false
			m.toasts.Error("Email is required")
			return m, nil
		}
		return m, m.register(api.Registration{Username: username, Email: email, Password: password})
	}
	return m, m.login(api.Credentials{Username: username, Password: password})
}

func (m Model) updateTodosKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch m.mode {
	case NormalMode:
		switch {
		case key.Matches(msg, m.keyMap.ToggleStatus):
			if todo := m.selectedTodo(); todo != nil {
				if mut, ok := m.mutator.SetStatus(m.todos, todo.ID, toggleTarget(*todo)); ok {
					m.rebuildTodoRows()
					return m, m.runMutation(mut)
				}
			}

		case key.Matches(msg, m.keyMap.AdvanceStatus):
			if todo := m.selectedTodo(); todo != nil {
				if next := nextStatus(todo.Status); next != "" {
					if mut, ok := m.mutator.SetStatus(m.todos, todo.ID, next); ok {
						m.rebuildTodoRows()
						return m, m.runMutation(mut)
					}
				}
			}

		case key.Matches(msg, m.keyMap.AddTask):
			m.mode = AddMode
			m.editingTodo = nil
			m.resetTodoInputs()
			return m, nil

		case key.Matches(msg, m.keyMap.EditTask):
			if todo := m.selectedTodo(); todo != nil {
				m.mode = EditMode
				m.editingTodo = todo
				m.resetTodoInputs()
				m.todoInputs[todoFieldTitle].SetValue(todo.Title)
				m.todoInputs[todoFieldDescription].SetValue(todo.Description)
				m.todoInputs[todoFieldCategory].SetValue(todo.Category)
				m.todoInputs[todoFieldPriority].SetValue(todo.Priority)
				if todo.DueDate != nil {
					m.todoInputs[todoFieldDueDate].SetValue(todo.DueDate.Format("2006-01-02"))
				}
			}
			return m, nil

		case key.Matches(msg, m.keyMap.DeleteTask):
			if todo := m.selectedTodo(); todo != nil {
				m.mode = DeleteConfirmMode
				m.editingTodo = todo
			}
			return m, nil

		case key.Matches(msg, m.keyMap.SearchTasks):
			m.mode = SearchMode
			m.searchInput.Focus()
			m.searchInput.SetValue("")
			return m, nil

		case key.Matches(msg, m.keyMap.CycleBucket):
			m.bucket = (m.bucket + 1) % 4
			// The completed bucket rides the list endpoint with a
			// status filter; the dedicated endpoints ignore filters.
			if m.bucket == CompletedBucket {
				m.todosCtrl.SetStatus(api.StatusCompleted)
			} else {
				m.todosCtrl.SetStatus("")
			}
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.CycleStatusFilter):
			m.todosCtrl.SetStatus(cycleValue(m.todosCtrl.Filters().Status, api.Statuses))
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.CycleCategoryFilter):
			m.todosCtrl.SetCategory(cycleValue(m.todosCtrl.Filters().Category, api.Categories))
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.CyclePriorityFilter):
			m.todosCtrl.SetPriority(cycleValue(m.todosCtrl.Filters().Priority, api.Priorities))
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.ToggleSortBy):
			f := m.todosCtrl.Filters()
			sortKeys := []string{state.SortByDueDate, state.SortByCreatedAt, state.SortByPriority, state.SortByTitle}
			m.todosCtrl.SetSort(cycleValue(f.SortBy, sortKeys), f.SortOrder)
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.ToggleSortOrder):
			f := m.todosCtrl.Filters()
			order := state.SortAsc
			if f.SortOrder == state.SortAsc {
				order = state.SortDesc
			}
			m.todosCtrl.SetSort(f.SortBy, order)
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.NextPage):
			m.todosCtrl.NextPage()
			m.loading = true
			return m, m.fetchTodos()

		case key.Matches(msg, m.keyMap.PrevPage):
			m.todosCtrl.PrevPage()
			m.loading = true
			return m, m.fetchTodos()
		}

		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)

	case AddMode, EditMode:
		switch msg.String() {
		case "esc":
			m.mode = NormalMode
			m.resetTodoInputs()
			m.editingTodo = nil
			return m, nil

		case "tab":
			m.todoActive = (m.todoActive + 1) % todoFieldCount
			focusInput(m.todoInputs, m.todoActive)
			return m, nil

		case "shift+tab":
			m.todoActive = (m.todoActive + todoFieldCount - 1) % todoFieldCount
			focusInput(m.todoInputs, m.todoActive)
			return m, nil

		case "enter":
			if m.todoActive == todoFieldDueDate {
				return m.submitTodoForm()
			}
			m.todoActive = (m.todoActive + 1) % todoFieldCount
			focusInput(m.todoInputs, m.todoActive)
			return m, nil
		}

		m.todoInputs[m.todoActive], cmd = m.todoInputs[m.todoActive].Update(msg)
		cmds = append(cmds, cmd)

	case SearchMode:
		switch msg.String() {
		case "esc":
			m.mode = NormalMode
			m.todosCtrl.SetSearch("")
			m.loading = true
			return m, m.fetchTodos()

		case "enter":
			term := strings.TrimSpace(m.searchInput.Value())
			m.mode = NormalMode
			m.todosCtrl.SetSearch(term)
			m.loading = true
			utils.Log("ui: searching for %q", term)
			return m, m.fetchTodos()
		}

		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)

	case DeleteConfirmMode:
		switch msg.String() {
		case "y", "Y":
			var deleteCmd tea.Cmd
			if m.editingTodo != nil {
				deleteCmd = m.deleteTodo(m.editingTodo.ID)
			}
			m.mode = NormalMode
			m.editingTodo = nil
			return m, deleteCmd

		case "n", "N", "esc":
			m.mode = NormalMode
			m.editingTodo = nil
			return m, nil
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) submitTodoForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.todoInputs[todoFieldTitle].Value())
	if title == "" {
		m.toasts.Error("Title is required")
		return m, nil
	}

	desc := strings.TrimSpace(m.todoInputs[todoFieldDescription].Value())
	category := strings.TrimSpace(m.todoInputs[todoFieldCategory].Value())
	priority := strings.TrimSpace(m.todoInputs[todoFieldPriority].Value())

	due, ok := parseDueDate(m.todoInputs[todoFieldDueDate].Value())
	if !ok {
		m.toasts.Error("Invalid due date: use YYYY-MM-DD")
		return m, nil
	}

	input := api.TodoInput{
		Title:    &title,
		Category: &category,
		Priority: &priority,
		DueDate:  due,
	}
	if desc != "" {
		input.Description = &desc
	}

	id := ""
	if m.editingTodo != nil {
		id = m.editingTodo.ID
	}
	return m, m.saveTodo(id, input)
}

func (m Model) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.ColumnLeft):
		if m.boardColumn > 0 {
			m.boardColumn--
			m.boardRow = 0
		}

	case key.Matches(msg, m.keyMap.ColumnRight):
		if m.boardColumn < len(api.Statuses)-1 {
			m.boardColumn++
			m.boardRow = 0
		}

	case msg.String() == "up", msg.String() == "k":
		if m.boardRow > 0 {
			m.boardRow--
		}

	case msg.String() == "down", msg.String() == "j":
		m.boardRow++
		m.clampBoardCursor()

	case key.Matches(msg, m.keyMap.MoveCardLeft):
		if card := m.selectedCard(); card != nil {
			if prev := prevStatus(card.Status); prev != "" {
				if mut, ok := m.mutator.SetStatus(m.boardTodos, card.ID, prev); ok {
					m.boardColumn--
					m.boardRow = 0
					m.clampBoardCursor()
					return m, m.runMutation(mut)
				}
			}
		}

	case key.Matches(msg, m.keyMap.MoveCardRight):
		if card := m.selectedCard(); card != nil {
			if next := nextStatus(card.Status); next != "" {
				if mut, ok := m.mutator.SetStatus(m.boardTodos, card.ID, next); ok {
					m.boardColumn++
					m.boardRow = 0
					m.clampBoardCursor()
					return m, m.runMutation(mut)
				}
			}
		}
	}

	return m, nil
}

func (m Model) updateProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab":
		m.profileActive = (m.profileActive + 1) % len(m.profileInputs)
		focusInput(m.profileInputs, m.profileActive)
		return m, nil

	case "shift+tab":
		m.profileActive = (m.profileActive + len(m.profileInputs) - 1) % len(m.profileInputs)
		focusInput(m.profileInputs, m.profileActive)
		return m, nil

	case "enter":
		return m.submitProfile()
	}

	m.profileInputs[m.profileActive], cmd = m.profileInputs[m.profileActive].Update(msg)
	return m, cmd
}

// submitProfile dispatches whichever profile action the focused field
// belongs to: profile fields, password pair, or image upload.
func (m Model) submitProfile() (tea.Model, tea.Cmd) {
	switch m.profileActive {
	case 0, 1:
		username := strings.TrimSpace(m.profileInputs[0].Value())
		email := strings.TrimSpace(m.profileInputs[1].Value())
		update := api.ProfileUpdate{}
		if username != "" && username != m.user.Username {
			update.Username = &username
		}
		if email != "" && email != m.user.Email {
			update.Email = &email
		}
		if update.Username == nil && update.Email == nil {
			m.toasts.Error("Nothing to update")
			return m, nil
		}
		return m, m.saveProfile(update)

	case 2, 3:
		current := m.profileInputs[2].Value()
		next := m.profileInputs[3].Value()
		if current == "" || next == "" {
			m.toasts.Error("Both passwords are required")
			return m, nil
		}
		return m, m.changePassword(api.PasswordChange{CurrentPassword: current, NewPassword: next})

	default:
		path := strings.TrimSpace(m.profileInputs[4].Value())
		if path == "" {
			m.toasts.Error("Image path is required")
			return m, nil
		}
		return m, m.uploadImage(path)
	}
}

// cycleValue steps through "" -> values[0] -> ... -> "" again.
func cycleValue(current string, values []string) string {
	if current == "" {
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i+1 < len(values) {
				return values[i+1]
			}
			return ""
		}
	}
	return ""
}

// errorText prefers the server's message over a generic fallback.
func errorText(err error, fallback string) string {
	if apiErr, ok := err.(*api.Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
