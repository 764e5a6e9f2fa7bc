package model

import (
	"encoding/json"
	"time"
)

// RoomCode is the short human-shareable identifier for joining rooms
type RoomCode string

// Seat capacity bounds. MaxPlayers values outside this range are clamped
// at creation.
const (
	MinRoomPlayers = 2
	MaxRoomPlayers = 4
)

// ClampPlayerCount forces a requested capacity into the allowed range
func ClampPlayerCount(n int) int {
	if n < MinRoomPlayers {
		return MinRoomPlayers
	}
	if n > MaxRoomPlayers {
		return MaxRoomPlayers
	}
	return n
}

// Seat represents a user's membership in a room
type Seat struct {
	ID        UserID
	Username  string
	Connected bool // set true on join and on any authenticated touch; never cleared
}

// Room represents a match session grouping 2-4 users under one host.
// A room recycles between matches rather than terminating: reporting a
// winner returns it to the open state ready for another start.
type Room struct {
	Code       RoomCode
	HostID     UserID // immutable after creation
	Players    []Seat // join order, never contains duplicate user IDs
	MaxPlayers int    // fixed at creation, within [MinRoomPlayers, MaxRoomPlayers]
	Started    bool
	Locked     bool            // reserved, no lifecycle transition touches it
	State      json.RawMessage // opaque client-owned payload, never interpreted
	Revision   int64           // +1 per accepted mutation, never resets
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GetSeat returns the seat for the given user, or nil if they are not seated
func (r *Room) GetSeat(userID UserID) *Seat {
	for i := range r.Players {
		if r.Players[i].ID == userID {
			return &r.Players[i]
		}
	}
	return nil
}

// IsHost reports whether the given user is the room's host
func (r *Room) IsHost(userID UserID) bool {
	return r.HostID == userID
}

// SeatUsernames returns the usernames of all seated players in join order
func (r *Room) SeatUsernames() []string {
	names := make([]string, len(r.Players))
	for i, seat := range r.Players {
		names[i] = seat.Username
	}
	return names
}

// Clone returns a deep copy safe to hand to callers
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	out.Players = make([]Seat, len(r.Players))
	copy(out.Players, r.Players)
	out.State = CloneState(r.State)
	return &out
}

// CloneState copies an opaque state payload. A nil payload stays nil.
func CloneState(state json.RawMessage) json.RawMessage {
	if state == nil {
		return nil
	}
	out := make(json.RawMessage, len(state))
	copy(out, state)
	return out
}
