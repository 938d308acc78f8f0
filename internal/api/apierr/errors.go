package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/reward"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPosition    = "INVALID_POSITION"
	CodeInvalidAddress     = "INVALID_ADDRESS"
	CodeAddressRequired    = "ADDRESS_REQUIRED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	CodeNoCategories       = "NO_CATEGORIES"
	CodeInvalidCategory    = "INVALID_CATEGORY"
	CodeGenerationDisabled = "GENERATION_DISABLED"
	CodePlacementFailed    = "PLACEMENT_FAILED"
	CodeRoundNotFound      = "ROUND_NOT_FOUND"
	CodeNotRoundOwner      = "NOT_ROUND_OWNER"
	CodeRoundFinished      = "ROUND_FINISHED"
	CodeRoundInProgress    = "ROUND_IN_PROGRESS"
	CodeAlreadyClaimed     = "ALREADY_CLAIMED"
	CodeRewardRejected     = "REWARD_REJECTED"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Players
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidAddress):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAddress, "Address must be 0x followed by 40 hex digits"}}
	case errors.Is(err, model.ErrAddressRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeAddressRequired, "An account address is required"}}

	// Categories
	case errors.Is(err, model.ErrCategoryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCategoryNotFound, "Category not found"}}
	case errors.Is(err, model.ErrCategoriesEmpty):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeNoCategories, "No categories are loaded"}}
	case errors.Is(err, model.ErrGeneratorMissing):
		return &httpError{http.StatusNotImplemented, APIError{CodeGenerationDisabled, "Category generation is not configured"}}
	case errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrNoWords),
		errors.Is(err, model.ErrInvalidWord),
		errors.Is(err, model.ErrWordTooLong):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidCategory, err.Error()}}
	case errors.Is(err, model.ErrPlacementFailed):
		return &httpError{http.StatusInternalServerError, APIError{CodePlacementFailed, "Could not build a grid for this category"}}

	// Rounds
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrNotRoundOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotRoundOwner, "Round belongs to another player"}}
	case errors.Is(err, model.ErrRoundFinished):
		return &httpError{http.StatusConflict, APIError{CodeRoundFinished, "Round is already finished"}}
	case errors.Is(err, model.ErrRoundNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeRoundInProgress, "Round is still in progress"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position is outside the grid"}}
	case errors.Is(err, model.ErrAlreadyClaimed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyClaimed, "Round reward already claimed"}}
	case errors.Is(err, reward.ErrRejected):
		return &httpError{http.StatusBadGateway, APIError{CodeRewardRejected, "Reward service rejected the claim"}}

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidUsername):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Username and password are required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
