package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/activitytrack/internal/api"
	"example.com/activitytrack/internal/domain"
	"example.com/activitytrack/internal/store"
)

func ptr[T any](v T) *T { return &v }

// newTestServer runs the real handler stack over an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := api.NewHandler(domain.NewService(store.NewMemory()))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCRUD(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	created, err := c.Create(ctx, NewActivity{Title: "Run", Date: ptr("2024-01-01"), Notes: "5k"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Done)

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, created.ID, items[0].ID)

	updated, err := c.Update(ctx, created.ID, Patch{Done: ptr(true)})
	require.NoError(t, err)
	require.True(t, updated.Done)
	require.Equal(t, "Run", updated.Title)
	require.Equal(t, "2024-01-01", *updated.Date)

	require.NoError(t, c.Delete(ctx, created.ID))

	items, err = c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClientListNeverReturnsNil(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestClientDecodesValidationDetail(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Create(context.Background(), NewActivity{Title: "   "})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "title required", apiErr.Message)
}

func TestClientDecodesNotFound(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Update(context.Background(), "missing", Patch{Done: ptr(true)})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "activity not found", apiErr.Message)
}

func TestClientFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL)

	_, err := c.List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	require.Equal(t, "request failed", apiErr.Message)
}

func TestClientSurfacesCancellationAsContextError(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr), "cancellation must stay distinct from API errors")
}

func TestClientClearsDateWithEmptyString(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	created, err := c.Create(ctx, NewActivity{Title: "Run", Date: ptr("2024-01-01")})
	require.NoError(t, err)

	updated, err := c.Update(ctx, created.ID, Patch{Date: ptr("")})
	require.NoError(t, err)
	require.Nil(t, updated.Date)
}
