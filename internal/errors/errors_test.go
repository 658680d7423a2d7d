package errors_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/character-api/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "character not found")

	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "character not found", err.Message)
	assert.Equal(t, "NOT_FOUND: character not found", err.Error())
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := errors.Conflict("version mismatch")
	wrapped := errors.Wrap(inner, "failed to update character")

	assert.Equal(t, errors.CodeConflict, wrapped.Code)
	assert.True(t, errors.IsConflict(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to update character")
	assert.Contains(t, wrapped.Error(), "version mismatch")
}

func TestWrap_PlainError(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to load character")

	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.True(t, errors.IsInternal(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestWithMeta(t *testing.T) {
	err := errors.PrerequisiteNotMet("multiclass requirements not met").
		WithMeta("class", "phb:fighter").
		WithMeta("requirement", "str 13 or dex 13")

	require.NotNil(t, err.Meta)
	assert.Equal(t, "phb:fighter", err.Meta["class"])
	assert.Equal(t, "str 13 or dex 13", err.Meta["requirement"])
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeNotSupported, errors.GetCode(errors.NotSupported("undo not supported")))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
}

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeInvalidSelection, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeConflict, http.StatusConflict},
		{errors.CodeFailedPrecondition, http.StatusUnprocessableEntity},
		{errors.CodePrerequisiteNotMet, http.StatusUnprocessableEntity},
		{errors.CodeNotSupported, http.StatusMethodNotAllowed},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestWriteHTTP_StructuredError(t *testing.T) {
	rec := httptest.NewRecorder()
	errors.WriteHTTP(rec, errors.NotFoundf("character %s not found", "char_123"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	assert.Contains(t, rec.Body.String(), "char_123")
}

func TestWriteHTTP_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	errors.WriteHTTP(rec, fmt.Errorf("redis: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}
