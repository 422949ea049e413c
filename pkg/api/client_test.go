package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decodeJSONBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// fakeTokens is an in-memory TokenSource.
type fakeTokens struct {
	token   string
	cleared int
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Clear() error {
	f.token = ""
	f.cleared++
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return New(cfg)
}

func TestBearerTokenIsAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"todos":[]}}`))
	}, Config{Tokens: &fakeTokens{token: "tok123"}})

	_, err := client.ListTodos(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"todos":[]}}`))
	}, Config{Tokens: &fakeTokens{}})

	_, err := client.ListTodos(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestEmptyQueryValuesAreOmitted(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":{"todos":[]}}`))
	}, Config{})

	_, err := client.ListTodos(context.Background(), map[string]string{
		"page":   "1",
		"limit":  "10",
		"status": "",
		"search": "",
	})
	require.NoError(t, err)
	require.Equal(t, "limit=10&page=1", gotQuery)
}

func TestUnauthorizedClearsTokenAndFiresCallbackOnce(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	var fired int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"jwt expired"}`))
	}, Config{Tokens: tokens, OnAuthExpired: func() { fired++ }})

	_, err := client.ListTodos(context.Background(), nil)

	require.Error(t, err)
	require.True(t, IsAuthError(err))
	require.Empty(t, tokens.token)
	require.Equal(t, 1, tokens.cleared)
	require.Equal(t, 1, fired)
}

func TestLoginFailureDoesNotTriggerGlobalLogout(t *testing.T) {
	tokens := &fakeTokens{token: "existing"}
	var fired int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}, Config{Tokens: tokens, OnAuthExpired: func() { fired++ }})

	_, err := client.Login(context.Background(), Credentials{Username: "u", Password: "bad"})

	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid credentials", apiErr.Message)

	// Bad credentials are an ordinary error, not session expiry.
	require.Equal(t, "existing", tokens.token)
	require.Zero(t, fired)
}

func TestEnvelopeDataIsDecoded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/todos", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"todos": [{"_id":"t1","title":"write report","status":"pending","category":"Work","priority":"High"}],
				"pagination": {"total": 21, "current": 2, "pageSize": 10}
			}
		}`))
	}, Config{})

	page, err := client.ListTodos(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, page.Todos, 1)
	require.Equal(t, "t1", page.Todos[0].ID)
	require.Equal(t, "write report", page.Todos[0].Title)
	if diff := cmp.Diff(Pagination{Total: 21, Current: 2, PageSize: 10}, page.Pagination); diff != "" {
		t.Fatalf("pagination mismatch (-want +got):\n%s", diff)
	}
}

func TestServerErrorMessageIsSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Title is required"}`))
	}, Config{})

	_, err := client.CreateTodo(context.Background(), TodoInput{})

	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Contains(t, apiErr.Error(), "Title is required")
}

func TestNonJSONErrorBodyIsTolerated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}, Config{})

	_, err := client.ListTodos(context.Background(), nil)

	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestAssignTodoRequiresTarget(t *testing.T) {
	client := New(Config{})
	_, err := client.AssignTodo(context.Background(), Assignment{})
	require.Error(t, err)
}

func TestAssignTodoBodyShape(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/todos/assign", r.URL.Path)
		require.NoError(t, decodeJSONBody(r, &gotBody))
		w.Write([]byte(`{"success":true,"data":{"todo":{"_id":"t9"}}}`))
	}, Config{})

	title := "prepare slides"
	priority := "High"
	todo, err := client.AssignTodo(context.Background(), Assignment{
		UserID: "u7",
		Input:  &TodoInput{Title: &title, Priority: &priority},
	})
	require.NoError(t, err)
	require.Equal(t, "t9", todo.ID)

	require.Equal(t, "u7", gotBody["userId"])
	require.Equal(t, "prepare slides", gotBody["title"])
	require.Equal(t, "High", gotBody["priority"])
	require.NotContains(t, gotBody, "description")
}

func TestGetTodoDecodesNestedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/todos/t3", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"todo":{"_id":"t3","title":"call dentist"}}}`))
	}, Config{})

	todo, err := client.GetTodo(context.Background(), "t3")
	require.NoError(t, err)
	require.Equal(t, "call dentist", todo.Title)
}

func TestAdminUserReturnsUserWithTodos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users/u5", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"user": {"_id":"u5","username":"pat"},
				"todos": {
					"todos": [{"_id":"t1","title":"one"}],
					"pagination": {"total": 1, "current": 1, "pageSize": 10}
				}
			}
		}`))
	}, Config{})

	detail, err := client.AdminUser(context.Background(), "u5", nil)
	require.NoError(t, err)
	require.Equal(t, "pat", detail.User.Username)
	require.Len(t, detail.Todos.Todos, 1)
	require.Equal(t, 1, detail.Todos.Pagination.Total)
}

func TestDeleteAccountIssuesDelete(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"message":"account deleted"}`))
	}, Config{Tokens: &fakeTokens{token: "tok"}})

	require.NoError(t, client.DeleteAccount(context.Background()))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/users/account", gotPath)
}

func TestUploadProfileImageSendsMultipart(t *testing.T) {
	imagePath := writeTempFile(t, "avatar.png", []byte("pngbytes"))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "avatar.png", header.Filename)
		w.Write([]byte(`{"success":true,"data":{"user":{"_id":"u1","profileImage":"/uploads/avatar.png"}}}`))
	}, Config{})

	user, err := client.UploadProfileImage(context.Background(), imagePath)
	require.NoError(t, err)
	require.Equal(t, "/uploads/avatar.png", user.ProfileImage)
}

func TestAdminAddUserSendsFieldsAndFile(t *testing.T) {
	imagePath := writeTempFile(t, "pic.jpg", []byte("jpg"))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "newbie", r.FormValue("username"))
		require.Equal(t, "n@example.com", r.FormValue("email"))
		require.Equal(t, "user", r.FormValue("role"))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)
		w.Write([]byte(`{"success":true,"data":{"user":{"_id":"u2","username":"newbie"}}}`))
	}, Config{})

	user, err := client.AdminAddUser(context.Background(), NewUser{
		Username:  "newbie",
		Email:     "n@example.com",
		Password:  "secret",
		Role:      "user",
		ImagePath: imagePath,
	})
	require.NoError(t, err)
	require.Equal(t, "newbie", user.Username)
}
