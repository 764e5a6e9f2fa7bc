package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkrella/matchroom/internal/api/middleware"
	"github.com/mkrella/matchroom/internal/api/request"
	"github.com/mkrella/matchroom/internal/api/response"
	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/services/room"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	roomController *room.Controller
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default room size
		req = request.CreateRoomRequest{}
	}

	created, err := h.roomController.Create(r.Context(), user, req.MaxPlayers)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created, user.ID))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomController.Get(r.Context(), code, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found, user.ID))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	joined, err := h.roomController.Join(r.Context(), code, user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined, user.ID))
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.StartMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for a nil initial state
		req = request.StartMatchRequest{}
	}

	started, err := h.roomController.Start(r.Context(), code, user.ID, req.State)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(started, user.ID))
}

// UpdateState handles POST /api/v1/rooms/{code}/state
func (h *RoomHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.UpdateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.roomController.UpdateState(r.Context(), code, user.ID, req.State, model.UserID(req.ReportWinnerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateStateResponse{
		OK:       true,
		Revision: updated.Revision,
	})
}
