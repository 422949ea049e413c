package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"taskdeck/pkg/api"
)

// notifyRecorder captures notifications for assertions.
type notifyRecorder struct {
	successes []string
	errors    []string
}

func (r *notifyRecorder) Success(text string) { r.successes = append(r.successes, text) }
func (r *notifyRecorder) Error(text string)   { r.errors = append(r.errors, text) }

func testTodos() []api.Todo {
	return []api.Todo{
		{ID: "a", Title: "first", Status: api.StatusPending},
		{ID: "b", Title: "second", Status: api.StatusInProgress},
		{ID: "c", Title: "third", Status: api.StatusCompleted},
	}
}

func TestSetStatusAppliesLocallyBeforeNetwork(t *testing.T) {
	var called bool
	update := func(ctx context.Context, id string, input api.TodoInput) (api.Todo, error) {
		called = true
		return api.Todo{}, nil
	}
	d := NewDispatcher(update, &notifyRecorder{})
	todos := testTodos()

	mut, ok := d.SetStatus(todos, "a", api.StatusCompleted)

	require.True(t, ok)
	require.Equal(t, Mutation{ID: "a", Status: api.StatusCompleted}, mut)
	require.Equal(t, api.StatusCompleted, todos[0].Status)
	require.False(t, called, "local apply must not touch the network")
	require.True(t, d.InFlight("a"))
}

func TestSetStatusRefusesUnknownAndUnchanged(t *testing.T) {
	d := NewDispatcher(nil, &notifyRecorder{})
	todos := testTodos()

	_, ok := d.SetStatus(todos, "missing", api.StatusCompleted)
	require.False(t, ok)

	_, ok = d.SetStatus(todos, "c", api.StatusCompleted)
	require.False(t, ok)
	require.Equal(t, testTodos(), todos)
}

func TestSecondGestureOnBusyItemIsIgnored(t *testing.T) {
	d := NewDispatcher(nil, &notifyRecorder{})
	todos := testTodos()

	_, ok := d.SetStatus(todos, "a", api.StatusInProgress)
	require.True(t, ok)

	_, ok = d.SetStatus(todos, "a", api.StatusCompleted)
	require.False(t, ok)
	require.Equal(t, api.StatusInProgress, todos[0].Status)

	// Other items are still free.
	_, ok = d.SetStatus(todos, "b", api.StatusCompleted)
	require.True(t, ok)
}

func TestResolveFailureRestoresPreImageExactly(t *testing.T) {
	rec := &notifyRecorder{}
	d := NewDispatcher(nil, rec)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	todos := testTodos()
	todos[0].DueDate = &due
	pre := todos[0]

	mut, ok := d.SetStatus(todos, "a", api.StatusCompleted)
	require.True(t, ok)

	d.Resolve(Result{ID: mut.ID, Err: errors.New("boom")}, todos)

	if diff := cmp.Diff(pre, todos[0]); diff != "" {
		t.Fatalf("pre-image not restored (-want +got):\n%s", diff)
	}
	require.Equal(t, "second", todos[1].Title)
	require.Len(t, rec.errors, 1)
	require.Empty(t, rec.successes)
	require.False(t, d.InFlight("a"))
}

func TestResolveSuccessKeepsServerCopy(t *testing.T) {
	rec := &notifyRecorder{}
	d := NewDispatcher(nil, rec)
	todos := testTodos()

	mut, ok := d.SetStatus(todos, "a", api.StatusCompleted)
	require.True(t, ok)

	// The server normalizes fields the prediction can't know.
	updated := todos[0]
	updated.UpdatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	d.Resolve(Result{ID: mut.ID, Updated: updated}, todos)

	require.Equal(t, updated, todos[0])
	require.Len(t, rec.successes, 1)
	require.Empty(t, rec.errors)
	require.False(t, d.InFlight("a"))
}

func TestResolveEmitsExactlyOneNotification(t *testing.T) {
	rec := &notifyRecorder{}
	d := NewDispatcher(nil, rec)
	todos := testTodos()

	mut, _ := d.SetStatus(todos, "a", api.StatusCompleted)
	d.Resolve(Result{ID: mut.ID, Updated: todos[0]}, todos)

	// A duplicate result for the same mutation is ignored.
	d.Resolve(Result{ID: mut.ID, Updated: todos[0]}, todos)

	require.Len(t, rec.successes, 1)
	require.Empty(t, rec.errors)
}

func TestResolveReconcilesEveryListHoldingTheItem(t *testing.T) {
	rec := &notifyRecorder{}
	d := NewDispatcher(nil, rec)

	list := testTodos()
	board := testTodos()
	pre := list[0]

	mut, ok := d.SetStatus(board, "a", api.StatusCompleted)
	require.True(t, ok)
	list[0].Status = api.StatusCompleted

	d.Resolve(Result{ID: mut.ID, Err: errors.New("boom")}, list, board)

	require.Equal(t, pre, list[0])
	require.Equal(t, pre, board[0])
	require.Len(t, rec.errors, 1)
}

func TestExecuteSendsOnlyTheStatus(t *testing.T) {
	var gotID string
	var gotInput api.TodoInput
	update := func(ctx context.Context, id string, input api.TodoInput) (api.Todo, error) {
		gotID = id
		gotInput = input
		return api.Todo{ID: id, Status: *input.Status}, nil
	}
	d := NewDispatcher(update, &notifyRecorder{})

	res := d.Execute(context.Background(), Mutation{ID: "a", Status: api.StatusInProgress})

	require.NoError(t, res.Err)
	require.Equal(t, "a", gotID)
	require.NotNil(t, gotInput.Status)
	require.Equal(t, api.StatusInProgress, *gotInput.Status)
	require.Nil(t, gotInput.Title)
	require.Equal(t, api.StatusInProgress, res.Updated.Status)
}
