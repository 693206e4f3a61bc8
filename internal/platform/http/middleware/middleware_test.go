package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"trading_journal/internal/platform/logger"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func newTestRouter(log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(log), Logging(log))
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	r.OPTIONS("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generates id when absent"},
		{name: "propagates caller id", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, logs := newObservedLogger()
			r := newTestRouter(log)
			r.GET("/handled", func(c *gin.Context) {
				log.InfoContext(c.Request.Context(), "handled")
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/handled", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			require.NotEmpty(t, got)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.Len(t, got, 36)
			}

			handled := logs.FilterMessage("handled").All()
			require.Len(t, handled, 1)
			assert.Equal(t, got, handled[0].ContextMap()["request_id"])
		})
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		wantLevel zapcore.Level
		wantCode  int
	}{
		{name: "success logs info", path: "/ok", wantLevel: zapcore.InfoLevel, wantCode: http.StatusOK},
		{name: "client error logs warn", path: "/missing", wantLevel: zapcore.WarnLevel, wantCode: http.StatusNotFound},
		{name: "server error logs error", path: "/boom", wantLevel: zapcore.ErrorLevel, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, logs := newObservedLogger()
			r := newTestRouter(log)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-42")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, "request completed", entry.Message)
			assert.Equal(t, tt.wantLevel, entry.Level)

			ctx := entry.ContextMap()
			assert.Equal(t, tt.path, ctx["path"])
			assert.Equal(t, int64(tt.wantCode), ctx["status"])
			assert.Equal(t, "req-42", ctx["request_id"])
		})
	}
}

func TestLogging_SkipsOptions(t *testing.T) {
	t.Parallel()

	log, logs := newObservedLogger()
	r := newTestRouter(log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ok", nil))

	assert.Equal(t, 0, logs.Len())
}
