package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/reward"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrRoundNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", model.ErrRoundNotFound), http.StatusNotFound},
		{model.ErrNotRoundOwner, http.StatusForbidden},
		{model.ErrRoundFinished, http.StatusConflict},
		{model.ErrRoundNotFinished, http.StatusConflict},
		{model.ErrAlreadyClaimed, http.StatusConflict},
		{model.ErrInvalidPosition, http.StatusBadRequest},
		{model.ErrInvalidAddress, http.StatusBadRequest},
		{model.ErrAddressRequired, http.StatusBadRequest},
		{model.ErrCategoryNotFound, http.StatusNotFound},
		{model.ErrCategoriesEmpty, http.StatusServiceUnavailable},
		{model.ErrGeneratorMissing, http.StatusNotImplemented},
		{fmt.Errorf("category x: %w", model.ErrInvalidWord), http.StatusUnprocessableEntity},
		{model.ErrPlacementFailed, http.StatusInternalServerError},
		{reward.ErrRejected, http.StatusBadGateway},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{auth.ErrUsernameExists, http.StatusConflict},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, Status(tt.err), tt.err.Error())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, model.ErrNotRoundOwner)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeNotRoundOwner, body.Error.Code)
}
