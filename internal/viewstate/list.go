package viewstate

import (
	"context"
	"sync"

	"example.com/activitytrack/internal/client"
	"example.com/activitytrack/internal/domain"
)

// ListState holds the displayed collection and its load status.
type ListState struct {
	Items   []domain.Activity
	Loading bool
	Error   string
}

// ListAction is a tagged list state transition.
type ListAction interface{ isListAction() }

// LoadStart marks a load in flight and clears any stale error.
type LoadStart struct{}

// LoadSuccess replaces the items with a fresh server snapshot.
type LoadSuccess struct{ Items []domain.Activity }

// LoadError records a failed load.
type LoadError struct{ Message string }

// OptimisticToggle flips one record's done flag ahead of server confirmation.
type OptimisticToggle struct {
	ID   string
	Done bool
}

// OptimisticDelete removes one record ahead of server confirmation.
type OptimisticDelete struct{ ID string }

// RollbackItems restores a previously captured snapshot wholesale.
type RollbackItems struct{ Items []domain.Activity }

func (LoadStart) isListAction()        {}
func (LoadSuccess) isListAction()      {}
func (LoadError) isListAction()        {}
func (OptimisticToggle) isListAction() {}
func (OptimisticDelete) isListAction() {}
func (RollbackItems) isListAction()    {}

// ReduceList returns the next list state. Items are copied on mutation so a
// snapshot taken before an optimistic action stays valid for rollback.
func ReduceList(state ListState, action ListAction) ListState {
	switch a := action.(type) {
	case LoadStart:
		state.Loading = true
		state.Error = ""
		return state
	case LoadSuccess:
		return ListState{Items: a.Items}
	case LoadError:
		state.Loading = false
		state.Error = a.Message
		return state
	case OptimisticToggle:
		items := make([]domain.Activity, len(state.Items))
		copy(items, state.Items)
		for i := range items {
			if items[i].ID == a.ID {
				items[i].Done = a.Done
			}
		}
		state.Items = items
		return state
	case OptimisticDelete:
		items := make([]domain.Activity, 0, len(state.Items))
		for _, item := range state.Items {
			if item.ID != a.ID {
				items = append(items, item)
			}
		}
		state.Items = items
		return state
	case RollbackItems:
		state.Items = a.Items
		return state
	}
	return state
}

// ListController drives the list against the API: loads supersede each other
// and mutations apply optimistically with a wholesale snapshot rollback on
// failure. The rollback restores the items as they were when the mutation
// started, so two overlapping optimistic mutations can clobber each other's
// snapshot; that mirrors the accepted limitation of the contract.
type ListController struct {
	mu     sync.Mutex
	api    *client.Client
	state  ListState
	cancel context.CancelFunc
}

// NewListController constructs a ListController.
func NewListController(api *client.Client) *ListController {
	return &ListController{api: api}
}

// State returns a snapshot of the current list state.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the collection. A newer Load cancels any in-flight one; the
// canceled load's outcome is discarded, never surfaced as an error.
func (c *ListController) Load(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = ReduceList(c.state, LoadStart{})
	c.mu.Unlock()

	items, err := c.api.List(loadCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if loadCtx.Err() != nil {
		// Superseded by a newer load.
		return
	}
	if err != nil {
		c.state = ReduceList(c.state, LoadError{Message: errorMessage(err)})
		return
	}
	c.state = ReduceList(c.state, LoadSuccess{Items: items})
}

// ToggleDone flips a record's done flag locally, then confirms it with the
// server. On failure the pre-mutation snapshot is restored and the error
// surfaced.
func (c *ListController) ToggleDone(ctx context.Context, id string, done bool) {
	c.mu.Lock()
	prev := c.state.Items
	c.state = ReduceList(c.state, OptimisticToggle{ID: id, Done: done})
	c.mu.Unlock()

	_, err := c.api.Update(ctx, id, client.Patch{Done: &done})
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ReduceList(c.state, RollbackItems{Items: prev})
	c.state.Error = errorMessage(err)
}

// Remove deletes a record locally, then confirms it with the server. On
// failure the pre-mutation snapshot is restored and the error surfaced.
func (c *ListController) Remove(ctx context.Context, id string) {
	c.mu.Lock()
	prev := c.state.Items
	c.state = ReduceList(c.state, OptimisticDelete{ID: id})
	c.mu.Unlock()

	err := c.api.Delete(ctx, id)
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ReduceList(c.state, RollbackItems{Items: prev})
	c.state.Error = errorMessage(err)
}
