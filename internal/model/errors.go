package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Room errors
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full or already started")
	ErrNotHost            = errors.New("caller is not the room host")
	ErrNotInRoom          = errors.New("caller is not seated in the room")
	ErrInvalidPlayerCount = errors.New("player count out of range to start")
)
