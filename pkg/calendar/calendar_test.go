package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventMissingMatchesErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	provider := NewRESTProvider(srv.URL)
	_, err := provider.GetEvent(context.Background(), "token", "ev-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteEventGoneMatchesErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	provider := NewRESTProvider(srv.URL)
	err := provider.DeleteEvent(context.Background(), "token", "ev-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestErrNotFoundSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("mirror cleanup: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestDeleteEventServerErrorIsNotErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := NewRESTProvider(srv.URL)
	err := provider.DeleteEvent(context.Background(), "token", "ev-1")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
