package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPEmitter_PostsNotification(t *testing.T) {
	var got notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL)
	err := e.Emit(context.Background(), "u1", "Payment required", "Pay 2400 to proceed", "payment-required", "/payments/p1")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, "payment-required", got.Type)
}

func TestHTTPEmitter_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL)
	require.Error(t, e.Emit(context.Background(), "u1", "t", "m", "x", ""))
}

type failingNotifier struct{}

func (failingNotifier) Emit(context.Context, string, string, string, string, string) error {
	return errors.New("smtp on fire")
}

func TestBestEffort_SwallowsFailures(t *testing.T) {
	b := NewBestEffort(failingNotifier{})
	require.NoError(t, b.Emit(context.Background(), "u1", "t", "m", "x", ""))
}
