package request

import "encoding/json"

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	MaxPlayers int `json:"maxPlayers,omitempty"`
}

// StartMatchRequest is the request body for starting a match
type StartMatchRequest struct {
	State json.RawMessage `json:"state,omitempty"`
}

// UpdateStateRequest is the request body for pushing a new match state
type UpdateStateRequest struct {
	State          json.RawMessage `json:"state"`
	ReportWinnerID string          `json:"reportWinnerId,omitempty"`
}
