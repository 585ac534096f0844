// Package viewstate models client-side UI state as explicit actions applied
// by pure reducers. Controllers layer the API client on top: they dispatch
// actions, run the network calls and reconcile optimistic mutations, so the
// state itself never depends on how a request turns out mid-flight.
package viewstate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"example.com/activitytrack/internal/client"
)

// FormState holds the create-form fields and submission flags.
type FormState struct {
	Title   string
	Date    string
	Notes   string
	Loading bool
	Error   string
	Success bool
}

// FormField names an editable form field.
type FormField string

const (
	FormFieldTitle FormField = "title"
	FormFieldDate  FormField = "date"
	FormFieldNotes FormField = "notes"
)

// FormAction is a tagged form state transition.
type FormAction interface{ isFormAction() }

// SetField edits a single field and clears any stale error/success flag.
type SetField struct {
	Field FormField
	Value string
}

// SubmitStart marks a submission in flight.
type SubmitStart struct{}

// SubmitSuccess clears the fields and raises the success flag.
type SubmitSuccess struct{}

// SubmitError records a failed submission.
type SubmitError struct{ Message string }

// ResetAfterSuccess lowers the success flag without touching the fields.
type ResetAfterSuccess struct{}

func (SetField) isFormAction()          {}
func (SubmitStart) isFormAction()       {}
func (SubmitSuccess) isFormAction()     {}
func (SubmitError) isFormAction()       {}
func (ResetAfterSuccess) isFormAction() {}

// ReduceForm returns the next form state. Unknown actions leave the state
// unchanged.
func ReduceForm(state FormState, action FormAction) FormState {
	switch a := action.(type) {
	case SetField:
		switch a.Field {
		case FormFieldTitle:
			state.Title = a.Value
		case FormFieldDate:
			state.Date = a.Value
		case FormFieldNotes:
			state.Notes = a.Value
		}
		state.Error = ""
		state.Success = false
		return state
	case SubmitStart:
		state.Loading = true
		state.Error = ""
		state.Success = false
		return state
	case SubmitSuccess:
		return FormState{Success: true}
	case SubmitError:
		state.Loading = false
		state.Error = a.Message
		state.Success = false
		return state
	case ResetAfterSuccess:
		state.Success = false
		return state
	}
	return state
}

// FormController drives the create flow against the API.
type FormController struct {
	mu    sync.Mutex
	api   *client.Client
	state FormState
}

// NewFormController constructs a FormController.
func NewFormController(api *client.Client) *FormController {
	return &FormController{api: api}
}

// State returns a snapshot of the current form state.
func (c *FormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField edits one field.
func (c *FormController) SetField(field FormField, value string) {
	c.dispatch(SetField{Field: field, Value: value})
}

// ResetSuccess lowers the success flag, e.g. when a confirmation banner has
// finished showing.
func (c *FormController) ResetSuccess() {
	c.dispatch(ResetAfterSuccess{})
}

// Submit validates the form locally, then creates the activity. Outcomes
// land in the state: success clears the fields, failure records a message.
func (c *FormController) Submit(ctx context.Context) {
	c.mu.Lock()
	title := strings.TrimSpace(c.state.Title)
	if title == "" {
		c.state = ReduceForm(c.state, SubmitError{Message: "title is required"})
		c.mu.Unlock()
		return
	}

	input := client.NewActivity{
		Title: title,
		Notes: strings.TrimSpace(c.state.Notes),
	}
	if date := strings.TrimSpace(c.state.Date); date != "" {
		input.Date = &date
	}
	c.state = ReduceForm(c.state, SubmitStart{})
	c.mu.Unlock()

	_, err := c.api.Create(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = ReduceForm(c.state, SubmitError{Message: errorMessage(err)})
		return
	}
	c.state = ReduceForm(c.state, SubmitSuccess{})
}

func (c *FormController) dispatch(action FormAction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ReduceForm(c.state, action)
}

// errorMessage maps a typed API error to a user-facing string, with a
// generic fallback for anything unrecognized.
func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed, try again"
}
