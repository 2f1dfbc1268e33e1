package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerPassesFlushThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Logger)
	r.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("chunk"))
		f, ok := w.(http.Flusher)
		require.True(t, ok)
		f.Flush()
	})
	r.Get("/controller", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("chunk"))
		assert.NoError(t, http.NewResponseController(w).Flush())
	})

	for _, path := range []string{"/stream", "/controller"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.True(t, rec.Flushed)
			assert.Equal(t, "chunk", rec.Body.String())
		})
	}
}

func TestLoggerCapturesStatusAndBytes(t *testing.T) {
	var seen *wrappedWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*wrappedWriter)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pot", nil))

	require.NotNil(t, seen)
	assert.Equal(t, http.StatusTeapot, seen.statusCode)
	assert.Equal(t, int64(len("short and stout")), seen.written)
	assert.Equal(t, http.ResponseWriter(rec), seen.Unwrap())
}
