package state

import (
	"context"
	"fmt"

	"taskdeck/pkg/api"
	"taskdeck/pkg/utils"
)

// Updater performs the status-change API call. In the app it wraps
// api.Client.UpdateTodo; tests substitute a fake.
type Updater func(ctx context.Context, id string, input api.TodoInput) (api.Todo, error)

// Mutation is a dispatched status change awaiting its server response.
// The UI runs Execute inside a tea.Cmd and feeds the Result back into
// Resolve on the update loop.
type Mutation struct {
	ID     string
	Status string
}

// Result is the outcome of a mutation's API call.
type Result struct {
	ID      string
	Updated api.Todo
	Err     error
}

// Dispatcher applies status-changing gestures optimistically: the local
// list is updated before the network call goes out, and rolled back to
// the captured pre-image if the call fails. Consistency is per item;
// independent items are never touched.
type Dispatcher struct {
	update Updater
	notify Notifier

	// pre-images of in-flight mutations, keyed by todo ID. An entry
	// here also blocks a second gesture on the same item until the
	// first resolves.
	inflight map[string]api.Todo
}

// NewDispatcher creates a dispatcher. Both collaborators are required.
func NewDispatcher(update Updater, notify Notifier) *Dispatcher {
	return &Dispatcher{
		update:   update,
		notify:   notify,
		inflight: make(map[string]api.Todo),
	}
}

// InFlight reports whether a mutation for the given item is unresolved.
func (d *Dispatcher) InFlight(id string) bool {
	_, ok := d.inflight[id]
	return ok
}

// SetStatus applies newStatus to the matching item in todos and returns
// the mutation to execute. It returns ok == false, leaving the list
// untouched, when the item is unknown, already has that status, or has
// a mutation in flight.
func (d *Dispatcher) SetStatus(todos []api.Todo, id, newStatus string) (Mutation, bool) {
	if _, busy := d.inflight[id]; busy {
		utils.Log("dispatch: %s busy, gesture ignored", id)
		return Mutation{}, false
	}

	idx := indexOf(todos, id)
	if idx < 0 {
		return Mutation{}, false
	}
	if todos[idx].Status == newStatus {
		return Mutation{}, false
	}

	// Capture the pre-image, then write the prediction locally before
	// any network traffic so the UI reflects the change immediately.
	d.inflight[id] = todos[idx]
	todos[idx].Status = newStatus

	utils.Log("dispatch: %s -> %s", id, newStatus)
	return Mutation{ID: id, Status: newStatus}, true
}

// Execute performs the API call for a dispatched mutation. It blocks,
// so the UI runs it off the update loop.
func (d *Dispatcher) Execute(ctx context.Context, m Mutation) Result {
	status := m.Status
	updated, err := d.update(ctx, m.ID, api.TodoInput{Status: &status})
	return Result{ID: m.ID, Updated: updated, Err: err}
}

// Resolve reconciles the local lists against the call's outcome. On
// success the server's copy replaces the prediction (the server may
// normalize fields such as updatedAt); on failure the pre-image is
// restored exactly, for that item only. Either way exactly one
// notification is emitted. A result with no matching in-flight entry is
// ignored. The item is reconciled in every list that contains it, so
// callers can pass all views of the same data.
func (d *Dispatcher) Resolve(res Result, lists ...[]api.Todo) {
	pre, ok := d.inflight[res.ID]
	if !ok {
		return
	}
	delete(d.inflight, res.ID)

	if res.Err != nil {
		for _, todos := range lists {
			if idx := indexOf(todos, res.ID); idx >= 0 {
				todos[idx] = pre
			}
		}
		utils.Log("dispatch: %s failed, rolled back: %v", res.ID, res.Err)
		d.notify.Error(fmt.Sprintf("Update failed: %v", res.Err))
		return
	}

	if res.Updated.ID == res.ID {
		for _, todos := range lists {
			if idx := indexOf(todos, res.ID); idx >= 0 {
				todos[idx] = res.Updated
			}
		}
	}
	d.notify.Success("Task updated")
}

func indexOf(todos []api.Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}
