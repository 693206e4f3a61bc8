package filehost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_journal/internal/platform/config"
)

func newTestUploadThing(t *testing.T, handler http.HandlerFunc) *UploadThing {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewUploadThing(config.UploadThing{
		APIKey:  "sk_test_123",
		BaseURL: server.URL + "/",
		Timeout: 5 * time.Second,
	})
}

func TestUploadThing_DeleteFiles_Success(t *testing.T) {
	t.Parallel()

	ut := newTestUploadThing(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v6/deleteFiles", r.URL.Path)
		assert.Equal(t, "sk_test_123", r.Header.Get("X-Uploadthing-Api-Key"))

		var body deleteFilesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"abc123", "def456"}, body.FileKeys)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"deletedCount":2}`))
	})

	err := ut.DeleteFiles(context.Background(), "abc123", "def456")

	assert.NoError(t, err)
}

func TestUploadThing_DeleteFiles_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		errText string
	}{
		{name: "api error with message", status: http.StatusUnauthorized, body: `{"error":"Invalid API key"}`, errText: "Invalid API key"},
		{name: "server error without body", status: http.StatusInternalServerError, body: ``, errText: "http 500"},
		{name: "not acknowledged", status: http.StatusOK, body: `{"success":false,"deletedCount":0}`, errText: "not acknowledged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ut := newTestUploadThing(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := ut.DeleteFiles(context.Background(), "abc123")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestUploadThing_DeleteFiles_NoKeys(t *testing.T) {
	t.Parallel()

	called := false
	ut := newTestUploadThing(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	assert.NoError(t, ut.DeleteFiles(context.Background()))
	assert.False(t, called)
}

func TestUploadThing_DeleteFiles_ContextCanceled(t *testing.T) {
	t.Parallel()

	ut := newTestUploadThing(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ut.DeleteFiles(ctx, "abc123")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoop_DeleteFiles(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Noop{}.DeleteFiles(context.Background(), "abc"))
}
