package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordhunt/internal/api/middleware"
	"github.com/mcoot/wordhunt/internal/api/request"
	"github.com/mcoot/wordhunt/internal/api/response"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/round"
	"github.com/mcoot/wordhunt/internal/sse"
)

// RoundHandler handles round endpoints
type RoundHandler struct {
	controller *round.Controller
	hubManager *sse.HubManager
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(controller *round.Controller, hubManager *sse.HubManager) *RoundHandler {
	return &RoundHandler{
		controller: controller,
		hubManager: hubManager,
	}
}

func roundID(r *http.Request) model.RoundID {
	return model.RoundID(mux.Vars(r)["id"])
}

// Start handles POST /api/v1/rounds
func (h *RoundHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.StartRoundRequest
	if err := decode(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}

	rd, err := h.controller.StartRound(r.Context(), player.ID, model.CategoryID(req.CategoryID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromModel(rd))
}

// Get handles GET /api/v1/rounds/{id}
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rd, err := h.controller.GetRound(r.Context(), roundID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	if rd.PlayerID != player.ID {
		WriteError(w, model.ErrNotRoundOwner)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(rd))
}

// Abandon handles DELETE /api/v1/rounds/{id}
func (h *RoundHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rd, err := h.controller.AbandonRound(r.Context(), roundID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(rd))
}

// Press handles POST /api/v1/rounds/{id}/press
func (h *RoundHandler) Press(w http.ResponseWriter, r *http.Request) {
	h.cellIntent(w, r, h.controller.Press)
}

// Extend handles POST /api/v1/rounds/{id}/extend
func (h *RoundHandler) Extend(w http.ResponseWriter, r *http.Request) {
	h.cellIntent(w, r, h.controller.Extend)
}

// Release handles POST /api/v1/rounds/{id}/release
func (h *RoundHandler) Release(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	res, err := h.controller.Release(r.Context(), roundID(r), player.ID)
	writeResult(w, res, err)
}

// Abort handles POST /api/v1/rounds/{id}/abort
func (h *RoundHandler) Abort(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	res, err := h.controller.Abort(r.Context(), roundID(r), player.ID)
	writeResult(w, res, err)
}

type cellFunc func(ctx context.Context, roundID model.RoundID, playerID model.PlayerID, pos model.Position) (*round.Result, error)

func (h *RoundHandler) cellIntent(w http.ResponseWriter, r *http.Request, apply cellFunc) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CellRequest
	if err := decode(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		WriteError(w, NewInvalidRequestError("row and col are required"))
		return
	}

	pos := model.Position{Row: *req.Row, Col: *req.Col}
	res, err := apply(r.Context(), roundID(r), player.ID, pos)
	writeResult(w, res, err)
}

func writeResult(w http.ResponseWriter, res *round.Result, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SelectionResultFromResult(res))
}

// Claim handles POST /api/v1/rounds/{id}/claim
func (h *RoundHandler) Claim(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.ClaimRequest
	if err := decode(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}
	address := req.Address
	if address == "" {
		address = player.Address
	}

	claim, err := h.controller.ClaimReward(r.Context(), roundID(r), player.ID, address)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Claim{
		Points:  claim.Points,
		Balance: claim.Balance,
		Address: address,
	})
}

// Events handles GET /api/v1/rounds/{id}/events
func (h *RoundHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := roundID(r)

	rd, err := h.controller.GetRound(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if rd.PlayerID != player.ID {
		WriteError(w, model.ErrNotRoundOwner)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, player.ID)
}
