package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordhunt/internal/api/request"
	"github.com/mcoot/wordhunt/internal/api/response"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/category"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categories category.ServiceInterface
	maxWordLen int
}

// NewCategoryHandler creates a new category handler. Generated words
// longer than maxWordLen are dropped so they always fit the grid.
func NewCategoryHandler(categories category.ServiceInterface, maxWordLen int) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		maxWordLen: maxWordLen,
	}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.categories.List()
	resp := make([]response.Category, len(all))
	for i, c := range all {
		resp[i] = response.CategoryFromModel(c, false)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.CategoryID(mux.Vars(r)["id"])

	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CategoryFromModel(c, true))
}

// Generate handles POST /api/v1/categories/generate
func (h *CategoryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateCategoryRequest
	if err := decode(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		WriteError(w, NewInvalidRequestError("theme is required"))
		return
	}

	c, err := h.categories.Generate(r.Context(), theme, h.maxWordLen)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CategoryFromModel(c, true))
}
