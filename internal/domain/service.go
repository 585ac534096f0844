// Package domain defines the business logic for activity records.
package domain

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/activitytrack/internal/observability"
)

const dateLayout = "2006-01-02"

// Store persists the full ordered collection of activities as a single
// replaceable document.
type Store interface {
	ReadAll(ctx context.Context) ([]Activity, error)
	WriteAll(ctx context.Context, items []Activity) error
}

// Service implements the activity operations over a Store. Every mutation is
// a read-modify-write over the whole collection; mu serializes them so
// concurrent requests cannot lose each other's writes.
type Service struct {
	mu    sync.Mutex
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput captures the payload for Create. Done is not accepted: new
// activities always start not-done.
type CreateInput struct {
	Title string
	Date  *string
	Notes string
}

// Create validates the input, assigns a fresh id and appends the activity to
// the collection. The title must be non-empty after trimming.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Activity, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}

	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	activity := Activity{
		ID:    uuid.NewString(),
		Title: title,
		Date:  date,
		Notes: input.Notes,
		Done:  false,
	}

	items = append(items, activity)
	if err := s.store.WriteAll(ctx, items); err != nil {
		return nil, err
	}
	observability.RecordPersisted(len(items))

	return &activity, nil
}

// List returns the full collection in persisted order.
func (s *Service) List(ctx context.Context) ([]Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Activity{}
	}
	return items, nil
}

// Update merges the patch over the existing record. Fields absent from the
// patch are preserved; a supplied title must remain non-empty so the
// creation-time invariant holds for the record's whole lifetime.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Activity, error) {
	var title string
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "required"}
		}
	}

	var date *string
	if patch.DateSet {
		normalized, err := normalizeDate(patch.Date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		items[idx].Title = title
	}
	if patch.DateSet {
		items[idx].Date = date
	}
	if patch.Notes != nil {
		items[idx].Notes = *patch.Notes
	}
	if patch.Done != nil {
		items[idx].Done = *patch.Done
	}

	if err := s.store.WriteAll(ctx, items); err != nil {
		return nil, err
	}
	observability.RecordPersisted(len(items))

	updated := items[idx]
	return &updated, nil
}

// Delete removes the record with the given id. Deleting an id that does not
// exist succeeds without touching the collection: id acts as a filter
// predicate, so delete is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.ReadAll(ctx)
	if err != nil {
		return err
	}

	filtered := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == len(items) {
		return nil
	}

	if err := s.store.WriteAll(ctx, filtered); err != nil {
		return err
	}
	observability.RecordPersisted(len(filtered))
	return nil
}

// normalizeDate treats nil and blank as "no date" and enforces the YYYY-MM-DD
// layout otherwise.
func normalizeDate(date *string) (*string, error) {
	if date == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*date)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must use YYYY-MM-DD"}
	}
	return &trimmed, nil
}
