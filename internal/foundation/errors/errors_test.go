package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docsite.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "docsite.yaml", file)
	})

	t.Run("Error string includes cause", func(t *testing.T) {
		err := WrapError(fmt.Errorf("disk full"), CategoryFileSystem, "write manifest").Build()
		assert.Equal(t, "[filesystem:error] write manifest: disk full", err.Error())
	})

	t.Run("Classification survives wrapping", func(t *testing.T) {
		inner := ManifestError("alias collision").Build()
		wrapped := fmt.Errorf("build: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.True(t, HasCategory(wrapped, CategoryManifest))
		assert.Equal(t, SeverityFatal, GetSeverity(wrapped))
		assert.True(t, stderrors.Is(wrapped, ManifestError("alias collision").Build()))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := stderrors.New("plain")
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		base := NotFoundError("document not found").Build()
		derived := base.WithContext("slug", "docs/setup")

		_, ok := base.Context().Get("slug")
		assert.False(t, ok)
		slug, _ := derived.Context().GetString("slug")
		assert.Equal(t, "docs/setup", slug)
	})

	t.Run("Retry semantics", func(t *testing.T) {
		assert.True(t, FileSystemError("read").Build().CanRetry())
		assert.False(t, ConfigError("bad").Build().CanRetry())
		assert.False(t, ValidationError("bad").Build().CanRetry())
		assert.True(t, ManifestError("bad").Build().IsFatal())
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"plain", stderrors.New("boom"), 1},
		{"validation", ValidationError("bad slug").Build(), 2},
		{"not found", NotFoundError("missing").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"manifest", ManifestError("collision").Build(), 11},
		{"filesystem", FileSystemError("read").Build(), 11},
		{"internal", InternalError("oops").Build(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, adapter.ExitCodeFor(tt.err))
		})
	}

	var out bytes.Buffer
	code := adapter.Report(&out, ConfigError("content root missing").Build())
	assert.Equal(t, 7, code)
	assert.Contains(t, out.String(), "content root missing")
}

func TestHTTPErrorAdapter(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewHTTPErrorAdapter(slog.New(slog.NewJSONHandler(&logs, nil)))

	assert.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	assert.Equal(t, http.StatusNotFound, adapter.StatusCodeFor(NotFoundError("x").Build()))
	assert.Equal(t, http.StatusBadRequest, adapter.StatusCodeFor(ValidationError("x").Build()))
	assert.Equal(t, http.StatusServiceUnavailable, adapter.StatusCodeFor(ManifestError("x").Build()))
	assert.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(stderrors.New("x")))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing", nil)
	adapter.WriteErrorResponse(rec, req, NotFoundError("document not found").WithContext("slug", "missing").Build())

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "document not found", payload.Error)
	assert.Equal(t, "not_found", payload.Code)
	assert.Equal(t, "missing", payload.Details["slug"])

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/documents/missing", entry["path"])
}
