package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-admin/internal/shared/storage"
)

func TestKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindBadRequest.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindBadRequest, KindOf(fmt.Errorf("wrap: %w", BadRequest("y"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestFromWrite(t *testing.T) {
	assert.NoError(t, FromWrite(nil, "Pokemon"))

	dup := &storage.DuplicateKeyError{Key: "name", Value: "pikachu"}
	err := FromWrite(fmt.Errorf("insert: %w", dup), "Pokemon")
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindConflict, e.Kind)
	assert.Equal(t, `Pokemon exists in db {"name":"pikachu"}`, e.Message)
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	err = FromWrite(&storage.DuplicateKeyError{Key: "no", Value: 25}, "Pokemon")
	require.True(t, errors.As(err, &e))
	assert.Equal(t, `Pokemon exists in db {"no":25}`, e.Message)

	err = FromWrite(errors.New("connection reset"), "Pokemon")
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindInternal, e.Kind)
	assert.NotContains(t, e.Message, "connection reset")
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", NotFound("Pokemon with id, name or no %q not found", "x"), 404, `Pokemon with id, name or no "x" not found`},
		{"conflict", Conflict("dup"), 409, "dup"},
		{"plain error hides detail", errors.New("db down"), 500, "internal server error"},
		{"internal keeps message", Internal(errors.New("db down"), "can't write"), 500, "can't write"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Write(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}
