package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/pkg/api"
	"taskdeck/pkg/state"
)

// AuthExpiredMsg is delivered when any API call gets a 401. main wires
// the client's OnAuthExpired callback to send it, so the logout is a
// dispatched event rather than a hidden side effect.
type AuthExpiredMsg struct{}

type sessionMsg struct {
	session    api.Session
	registered bool
	err        error
}

type meMsg struct {
	user api.User
	err  error
}

type todosLoadedMsg struct {
	gen        uint64
	todos      []api.Todo
	pagination api.Pagination
	paginated  bool
	err        error
}

type boardLoadedMsg struct {
	gen   uint64
	todos []api.Todo
	err   error
}

type mutationMsg struct {
	res state.Result
}

type todoSavedMsg struct {
	todo    api.Todo
	created bool
	err     error
}

type todoDeletedMsg struct {
	id  string
	err error
}

type statsMsg struct {
	stats api.UserStats
	err   error
}

type todayMsg struct {
	todos []api.Todo
	err   error
}

type profileSavedMsg struct {
	user api.User
	err  error
}

type passwordChangedMsg struct {
	err error
}

type imageUploadedMsg struct {
	user api.User
	err  error
}

type adminDashboardMsg struct {
	dash api.AdminDashboard
	err  error
}

type adminReportsMsg struct {
	reports api.AdminReports
	err     error
}

type adminUsersMsg struct {
	gen  uint64
	page api.UserPage
	err  error
}

type adminTodosMsg struct {
	gen  uint64
	page api.TodoPage
	err  error
}

type userSavedMsg struct {
	user    api.User
	created bool
	err     error
}

type todoAssignedMsg struct {
	todo api.Todo
	err  error
}

func (m Model) login(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		session, err := m.client.Login(context.Background(), creds)
		return sessionMsg{session: session, err: err}
	}
}

func (m Model) register(reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		session, err := m.client.Register(context.Background(), reg)
		return sessionMsg{session: session, registered: true, err: err}
	}
}

func (m Model) fetchMe() tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.Me(context.Background())
		return meMsg{user: user, err: err}
	}
}

// fetchTodos loads the current bucket. The all and completed buckets go
// through the paginated list endpoint; today and overdue have dedicated
// endpoints without paging. Every fetch carries its generation so a
// superseded response can be discarded on arrival.
func (m *Model) fetchTodos() tea.Cmd {
	bucket := m.bucket
	client := m.client

	gen, params := m.todosCtrl.Begin()

	return func() tea.Msg {
		ctx := context.Background()

		switch bucket {
		case TodayBucket:
			todos, err := client.TodaysTodos(ctx)
			return todosLoadedMsg{gen: gen, todos: todos, err: err}
		case OverdueBucket:
			todos, err := client.OverdueTodos(ctx)
			return todosLoadedMsg{gen: gen, todos: todos, err: err}
		default:
			page, err := client.ListTodos(ctx, params)
			return todosLoadedMsg{
				gen:        gen,
				todos:      page.Todos,
				pagination: page.Pagination,
				paginated:  true,
				err:        err,
			}
		}
	}
}

func (m *Model) fetchBoard() tea.Cmd {
	gen, params := m.boardCtrl.Begin()
	client := m.client

	return func() tea.Msg {
		page, err := client.ListTodos(context.Background(), params)
		return boardLoadedMsg{gen: gen, todos: page.Todos, err: err}
	}
}

func (m Model) runMutation(mut state.Mutation) tea.Cmd {
	mutator := m.mutator
	return func() tea.Msg {
		return mutationMsg{res: mutator.Execute(context.Background(), mut)}
	}
}

func (m Model) saveTodo(id string, input api.TodoInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if id == "" {
			todo, err := client.CreateTodo(ctx, input)
			return todoSavedMsg{todo: todo, created: true, err: err}
		}
		todo, err := client.UpdateTodo(ctx, id, input)
		return todoSavedMsg{todo: todo, err: err}
	}
}

func (m Model) deleteTodo(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{id: id, err: err}
	}
}

func (m Model) fetchDashboard() tea.Cmd {
	client := m.client
	stats := func() tea.Msg {
		s, err := client.UserStats(context.Background())
		return statsMsg{stats: s, err: err}
	}
	today := func() tea.Msg {
		todos, err := client.TodaysTodos(context.Background())
		return todayMsg{todos: todos, err: err}
	}
	return tea.Batch(stats, today)
}

func (m Model) searchTodos(q string) tea.Cmd {
	client := m.client
	gen, _ := m.todosCtrl.Begin()
	return func() tea.Msg {
		todos, err := client.SearchTodos(context.Background(), q)
		return todosLoadedMsg{gen: gen, todos: todos, err: err}
	}
}

func (m Model) saveProfile(update api.ProfileUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), update)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m Model) changePassword(change api.PasswordChange) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return passwordChangedMsg{err: client.ChangePassword(context.Background(), change)}
	}
}

func (m Model) uploadImage(path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.UploadProfileImage(context.Background(), path)
		return imageUploadedMsg{user: user, err: err}
	}
}

func (m Model) fetchAdminDashboard() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		dash, err := client.AdminDashboard(context.Background())
		return adminDashboardMsg{dash: dash, err: err}
	}
}

func (m Model) fetchAdminReports() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reports, err := client.AdminReports(context.Background())
		return adminReportsMsg{reports: reports, err: err}
	}
}

func (m *Model) fetchAdminUsers() tea.Cmd {
	gen, params := m.adminUsersCtrl.Begin()
	client := m.client
	return func() tea.Msg {
		page, err := client.AdminUsers(context.Background(), params)
		return adminUsersMsg{gen: gen, page: page, err: err}
	}
}

func (m *Model) fetchAdminTodos() tea.Cmd {
	gen, params := m.adminTodosCtrl.Begin()
	client := m.client
	return func() tea.Msg {
		page, err := client.AdminTodos(context.Background(), params)
		return adminTodosMsg{gen: gen, page: page, err: err}
	}
}

func (m Model) saveUser(id string, update api.UserUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.AdminUpdateUser(context.Background(), id, update)
		return userSavedMsg{user: user, err: err}
	}
}

func (m Model) addUser(user api.NewUser) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		created, err := client.AdminAddUser(context.Background(), user)
		return userSavedMsg{user: created, created: true, err: err}
	}
}

func (m Model) assignTodo(a api.Assignment) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		todo, err := client.AssignTodo(context.Background(), a)
		return todoAssignedMsg{todo: todo, err: err}
	}
}

// parseDueDate parses the optional form date field.
func parseDueDate(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	return &t, true
}
