package syncx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinashem/dukabook/internal/logging"
	"github.com/tinashem/dukabook/internal/models"
)

func testEntry() *models.OutboxEntry {
	return &models.OutboxEntry{
		ID:        1,
		TableName: models.TableProducts,
		RecordID:  "p-1",
		Action:    models.ActionUpdate,
		Payload:   json.RawMessage(`{"id":"p-1"}`),
	}
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestRemote(handler http.HandlerFunc) (*HTTPRemote, *httptest.Server) {
	srv := httptest.NewServer(handler)
	r := NewHTTPRemote(srv.URL, logging.NewTextLogger(io.Discard, slog.LevelError))
	return r, srv
}

func TestHTTPRemote_Accepted(t *testing.T) {
	var got pushRequest
	var auth string
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()
	r.SetToken(signedToken(t, time.Hour))

	result, err := r.Push(context.Background(), testEntry(), true)
	require.NoError(t, err)
	assert.Equal(t, PushAccepted, result.Status)
	assert.Equal(t, "p-1", got.RecordID)
	assert.True(t, got.Force)
	assert.Contains(t, auth, "Bearer ")
}

func TestHTTPRemote_ConflictCarriesRemoteVersion(t *testing.T) {
	remoteUpdated := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(RemoteRecord{
			UpdatedAt: remoteUpdated,
			Payload:   json.RawMessage(`{"id":"p-1","name":"other"}`),
		})
	})
	defer srv.Close()
	r.SetToken(signedToken(t, time.Hour))

	result, err := r.Push(context.Background(), testEntry(), false)
	require.NoError(t, err)
	assert.Equal(t, PushConflict, result.Status)
	require.NotNil(t, result.Remote)
	assert.Equal(t, remoteUpdated, result.Remote.UpdatedAt)
	assert.False(t, result.Remote.Deleted)
}

func TestHTTPRemote_ExpiredTokenNeverHitsNetwork(t *testing.T) {
	calls := 0
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()
	r.SetToken(signedToken(t, -time.Minute))

	_, err := r.Push(context.Background(), testEntry(), false)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Zero(t, calls)
}

func TestHTTPRemote_MissingToken(t *testing.T) {
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	_, err := r.Push(context.Background(), testEntry(), false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPRemote_Unauthorized(t *testing.T) {
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()
	r.SetToken(signedToken(t, time.Hour))

	_, err := r.Push(context.Background(), testEntry(), false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPRemote_ServerErrorMessage(t *testing.T) {
	r, srv := newTestRemote(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"shard unavailable"}`))
	})
	defer srv.Close()
	r.SetToken(signedToken(t, time.Hour))

	_, err := r.Push(context.Background(), testEntry(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shard unavailable")
}
