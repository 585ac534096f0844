package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	items    []Activity
	readErr  error
	writeErr error
	writes   int
}

func (s *stubStore) ReadAll(ctx context.Context) ([]Activity, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([]Activity, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *stubStore) WriteAll(ctx context.Context, items []Activity) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.items = make([]Activity, len(items))
	copy(s.items, items)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateAssignsDefaultsAndFreshIDs(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st)

	first, err := svc.Create(context.Background(), CreateInput{Title: "  Run  ", Date: ptr("2024-01-01")})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "Run", first.Title)
	require.Equal(t, "2024-01-01", *first.Date)
	require.Equal(t, "", first.Notes)
	require.False(t, first.Done)

	second, err := svc.Create(context.Background(), CreateInput{Title: "Swim"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Nil(t, second.Date)

	require.Len(t, st.items, 2)
	require.Equal(t, "Run", st.items[0].Title)
	require.Equal(t, "Swim", st.items[1].Title)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		st := &stubStore{}
		svc := NewService(st)

		_, err := svc.Create(context.Background(), CreateInput{Title: title})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "title", verr.Field)
		require.Zero(t, st.writes, "rejected create must not touch the collection")
	}
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st)

	_, err := svc.Create(context.Background(), CreateInput{Title: "Run", Date: ptr("01/02/2024")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "date", verr.Field)
	require.Zero(t, st.writes)
}

func TestCreateTreatsBlankDateAsAbsent(t *testing.T) {
	svc := NewService(&stubStore{})

	created, err := svc.Create(context.Background(), CreateInput{Title: "Run", Date: ptr("  ")})
	require.NoError(t, err)
	require.Nil(t, created.Date)
}

func TestCreateDoesNotPersistOnWriteFailure(t *testing.T) {
	st := &stubStore{writeErr: errors.New("disk full")}
	svc := NewService(st)

	_, err := svc.Create(context.Background(), CreateInput{Title: "Run"})
	require.Error(t, err)
	require.Empty(t, st.items)
}

func TestListReturnsPersistedOrder(t *testing.T) {
	st := &stubStore{items: []Activity{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "c", Title: "third"},
	}}
	svc := NewService(st)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestListNeverReturnsNil(t *testing.T) {
	svc := NewService(&stubStore{})

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	st := &stubStore{items: []Activity{
		{ID: "a", Title: "Run", Date: ptr("2024-01-01"), Notes: "5k", Done: false},
		{ID: "b", Title: "Swim", Notes: ""},
	}}
	svc := NewService(st)

	updated, err := svc.Update(context.Background(), "a", Patch{Done: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, "a", updated.ID)
	require.Equal(t, "Run", updated.Title)
	require.Equal(t, "2024-01-01", *updated.Date)
	require.Equal(t, "5k", updated.Notes)
	require.True(t, updated.Done)

	require.Equal(t, "Swim", st.items[1].Title, "other records stay untouched")
}

func TestUpdateClearsDateWhenSetToNil(t *testing.T) {
	st := &stubStore{items: []Activity{{ID: "a", Title: "Run", Date: ptr("2024-01-01")}}}
	svc := NewService(st)

	updated, err := svc.Update(context.Background(), "a", Patch{DateSet: true})
	require.NoError(t, err)
	require.Nil(t, updated.Date)
}

func TestUpdateUnknownIDFailsWithoutWriting(t *testing.T) {
	st := &stubStore{items: []Activity{{ID: "a", Title: "Run"}}}
	svc := NewService(st)

	_, err := svc.Update(context.Background(), "missing", Patch{Done: ptr(true)})
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, st.writes)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	st := &stubStore{items: []Activity{{ID: "a", Title: "Run"}}}
	svc := NewService(st)

	_, err := svc.Update(context.Background(), "a", Patch{Title: ptr("   ")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Run", st.items[0].Title)
	require.Zero(t, st.writes)
}

func TestDeleteRemovesExactlyTheMatchingRecord(t *testing.T) {
	st := &stubStore{items: []Activity{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
		{ID: "c", Title: "third"},
	}}
	svc := NewService(st)

	require.NoError(t, svc.Delete(context.Background(), "b"))
	require.Len(t, st.items, 2)
	require.Equal(t, "a", st.items[0].ID)
	require.Equal(t, "c", st.items[1].ID)
}

func TestDeleteUnknownIDIsIdempotent(t *testing.T) {
	st := &stubStore{items: []Activity{{ID: "a", Title: "Run"}}}
	svc := NewService(st)

	require.NoError(t, svc.Delete(context.Background(), "missing"))
	require.Len(t, st.items, 1)
	require.Zero(t, st.writes, "no-op delete must not rewrite the collection")
}
