package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/pkg/api"
	"taskdeck/pkg/auth"
	"taskdeck/pkg/config"
	"taskdeck/pkg/keymaps"
	"taskdeck/pkg/state"
)

// Screen identifies the active top-level view.
type Screen int

const (
	AuthScreen Screen = iota
	DashboardScreen
	TodosScreen
	BoardScreen
	ProfileScreen
	AdminScreen
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode
	HelpViewMode
)

// Bucket selects which todo collection the list screen shows.
type Bucket int

const (
	AllBucket Bucket = iota
	TodayBucket
	CompletedBucket
	OverdueBucket
)

func (b Bucket) String() string {
	switch b {
	case TodayBucket:
		return "today"
	case CompletedBucket:
		return "completed"
	case OverdueBucket:
		return "overdue"
	default:
		return "all"
	}
}

// AdminTab selects the active admin console view.
type AdminTab int

const (
	AdminDashboardTab AdminTab = iota
	AdminUsersTab
	AdminTodosTab
	AdminAssignTab
	AdminReportsTab
)

func (t AdminTab) String() string {
	switch t {
	case AdminUsersTab:
		return "Users"
	case AdminTodosTab:
		return "All Todos"
	case AdminAssignTab:
		return "Assign"
	case AdminReportsTab:
		return "Reports"
	default:
		return "Overview"
	}
}

// Form field indexes for the todo add/edit form.
const (
	todoFieldTitle = iota
	todoFieldDescription
	todoFieldCategory
	todoFieldPriority
	todoFieldDueDate
	todoFieldCount
)

// Form field indexes for the auth forms.
const (
	authFieldUsername = iota
	authFieldEmail
	authFieldPassword
	authFieldCount
)

// Model represents the application state
type Model struct {
	client  *api.Client
	tokens  *auth.Store
	config  config.Config
	styles  config.Styles
	keyMap  keymaps.KeyMap
	toasts  *state.Queue
	mutator *state.Dispatcher

	width, height int
	err           error

	screen Screen
	mode   InputMode

	// Session state
	user   api.User
	authed bool

	// Auth screen state
	registering bool
	authInputs  []textinput.Model
	authActive  int
	authBusy    bool

	// Todos screen state
	todos     []api.Todo
	todosCtrl *state.Controller
	bucket    Bucket
	table     table.Model
	loading   bool
	spinner   spinner.Model

	// Todo form state
	todoInputs  []textinput.Model
	todoActive  int
	editingTodo *api.Todo

	// Search state
	searchInput textinput.Model

	// Board screen state
	boardTodos  []api.Todo
	boardCtrl   *state.Controller
	boardColumn int
	boardRow    int

	// Dashboard screen state
	stats      api.UserStats
	todayTodos []api.Todo

	// Profile screen state
	profileInputs []textinput.Model
	profileActive int

	// Admin screen state
	adminTab       AdminTab
	adminDashboard api.AdminDashboard
	adminReports   api.AdminReports
	adminUsers     []api.User
	adminUsersCtrl *state.Controller
	adminUserTable table.Model
	adminTodos     []api.Todo
	adminTodosCtrl *state.Controller
	adminTodoTable table.Model
	editingUser    *api.User
	userInputs     []textinput.Model
	userActive     int
	assignInputs   []textinput.Model
	assignActive   int
	assignUserIdx  int
}

// NewModel creates a new UI model with the provided configuration. The
// token store decides the initial screen: with a persisted token the
// app tries to resume the session, otherwise it starts at login.
func NewModel(client *api.Client, tokens *auth.Store, cfg config.Config, styles config.Styles) Model {
	t := newTodoTable(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentColor))

	searchInput := textinput.New()
	searchInput.Placeholder = "Search tasks"
	searchInput.Width = 40

	m := Model{
		client:         client,
		tokens:         tokens,
		config:         cfg,
		styles:         styles,
		keyMap:         keymaps.BuildKeyMap(cfg.KeyMap),
		toasts:         state.NewQueue(),
		screen:         AuthScreen,
		mode:           NormalMode,
		table:          t,
		spinner:        sp,
		searchInput:    searchInput,
		todosCtrl:      state.NewController(state.DefaultPageSize),
		boardCtrl:      state.NewController(100),
		adminUsersCtrl: state.NewController(state.DefaultPageSize),
		adminTodosCtrl: state.NewController(state.DefaultPageSize),
		adminUserTable: newUserTable(styles),
		adminTodoTable: newAdminTodoTable(styles),
	}

	m.mutator = state.NewDispatcher(client.UpdateTodo, m.toasts)

	m.authInputs = newAuthInputs()
	m.todoInputs = newTodoInputs()
	m.profileInputs = newProfileInputs()
	m.userInputs = newUserInputs()
	m.assignInputs = newAssignInputs()

	return m
}

// Init resumes a persisted session if a token is present.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.tokens.Token() != "" {
		cmds = append(cmds, m.fetchMe())
	}
	return tea.Batch(cmds...)
}

func newAuthInputs() []textinput.Model {
	inputs := make([]textinput.Model, authFieldCount)

	inputs[authFieldUsername] = textinput.New()
	inputs[authFieldUsername].Placeholder = "Username"
	inputs[authFieldUsername].Width = 40
	inputs[authFieldUsername].Focus()

	inputs[authFieldEmail] = textinput.New()
	inputs[authFieldEmail].Placeholder = "Email"
	inputs[authFieldEmail].Width = 40

	inputs[authFieldPassword] = textinput.New()
	inputs[authFieldPassword].Placeholder = "Password"
	inputs[authFieldPassword].Width = 40
	inputs[authFieldPassword].EchoMode = textinput.EchoPassword
	inputs[authFieldPassword].EchoCharacter = '•'

	return inputs
}

func newTodoInputs() []textinput.Model {
	inputs := make([]textinput.Model, todoFieldCount)

	inputs[todoFieldTitle] = textinput.New()
	inputs[todoFieldTitle].Placeholder = "Title"
	inputs[todoFieldTitle].Width = 40
	inputs[todoFieldTitle].Focus()

	inputs[todoFieldDescription] = textinput.New()
	inputs[todoFieldDescription].Placeholder = "Description (optional)"
	inputs[todoFieldDescription].Width = 40

	inputs[todoFieldCategory] = textinput.New()
	inputs[todoFieldCategory].Placeholder = "Category (Work/Personal/Health/Education/Shopping/Other)"
	inputs[todoFieldCategory].Width = 40
	inputs[todoFieldCategory].SetValue("Other")

	inputs[todoFieldPriority] = textinput.New()
	inputs[todoFieldPriority].Placeholder = "Priority (Low/Medium/High)"
	inputs[todoFieldPriority].Width = 40
	inputs[todoFieldPriority].SetValue("Medium")

	inputs[todoFieldDueDate] = textinput.New()
	inputs[todoFieldDueDate].Placeholder = "Due Date (YYYY-MM-DD, optional)"
	inputs[todoFieldDueDate].Width = 40

	return inputs
}

func newProfileInputs() []textinput.Model {
	inputs := make([]textinput.Model, 5)

	labels := []string{
		"Username",
		"Email",
		"Current password",
		"New password",
		"Profile image path",
	}
	for i, label := range labels {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = label
		inputs[i].Width = 40
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '•'
	inputs[3].EchoMode = textinput.EchoPassword
	inputs[3].EchoCharacter = '•'
	inputs[0].Focus()

	return inputs
}

func newUserInputs() []textinput.Model {
	inputs := make([]textinput.Model, 5)

	labels := []string{
		"Username",
		"Email",
		"Password",
		"Role (user/admin)",
		"Profile image path (optional)",
	}
	for i, label := range labels {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = label
		inputs[i].Width = 40
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '•'
	inputs[3].SetValue("user")
	inputs[0].Focus()

	return inputs
}

func newAssignInputs() []textinput.Model {
	inputs := make([]textinput.Model, 4)

	labels := []string{
		"Title",
		"Description (optional)",
		"Priority (Low/Medium/High)",
		"Due Date (YYYY-MM-DD, optional)",
	}
	for i, label := range labels {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = label
		inputs[i].Width = 40
	}
	inputs[2].SetValue("Medium")
	inputs[0].Focus()

	return inputs
}

func newTodoTable(styles config.Styles) table.Model {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 10},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Due", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(styles))
	return t
}

func newUserTable(styles config.Styles) table.Model {
	columns := []table.Column{
		{Title: "Username", Width: 18},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 7},
		{Title: "Active", Width: 8},
		{Title: "Last Login", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(styles))
	return t
}

func newAdminTodoTable(styles config.Styles) table.Model {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Owner", Width: 14},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Due", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(styles))
	return t
}

func tableStyles(styles config.Styles) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	return s
}

// resetTodoInputs clears the add/edit form
func (m *Model) resetTodoInputs() {
	for i := range m.todoInputs {
		m.todoInputs[i].Reset()
		m.todoInputs[i].Blur()
	}
	m.todoInputs[todoFieldCategory].SetValue("Other")
	m.todoInputs[todoFieldPriority].SetValue("Medium")
	m.todoActive = todoFieldTitle
	m.todoInputs[todoFieldTitle].Focus()
}

// focusInput moves form focus to the given index in a slice of inputs.
func focusInput(inputs []textinput.Model, active int) {
	for i := range inputs {
		if i == active {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}
