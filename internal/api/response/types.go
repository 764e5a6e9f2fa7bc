package response

import (
	"encoding/json"
	"time"

	"github.com/mkrella/matchroom/internal/model"
)

// VersusRecord represents a head-to-head record against one opponent
type VersusRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// User represents a user in API responses
type User struct {
	ID       string                  `json:"id"`
	Username string                  `json:"username"`
	Wins     int                     `json:"wins"`
	Losses   int                     `json:"losses"`
	VS       map[string]VersusRecord `json:"vs,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	var vs map[string]VersusRecord
	if len(u.Stats.VS) > 0 {
		vs = make(map[string]VersusRecord, len(u.Stats.VS))
		for opponent, record := range u.Stats.VS {
			vs[opponent] = VersusRecord{Wins: record.Wins, Losses: record.Losses}
		}
	}
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Wins:     u.Stats.Wins,
		Losses:   u.Stats.Losses,
		VS:       vs,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Seat represents an occupied seat in a room
type Seat struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Connected bool   `json:"connected"`
}

// Room represents a room in API responses. Internal fields like the
// seat capacity stay server-side; clients only ever see this shape.
// State is passed through untouched; the server never interprets it.
type Room struct {
	ID         string          `json:"id"`
	HostID     string          `json:"hostId"`
	Players    []Seat          `json:"players"`
	Started    bool            `json:"started"`
	Locked     bool            `json:"locked"`
	Revision   int64           `json:"revision"`
	State      json.RawMessage `json:"state"`
	YouAreHost bool            `json:"youAreHost"`
}

// RoomFromModel converts a model.Room to a response Room.
// YouAreHost is computed for the calling user, never stored.
func RoomFromModel(r *model.Room, callerID model.UserID) Room {
	players := make([]Seat, len(r.Players))
	for i, seat := range r.Players {
		players[i] = Seat{
			ID:        string(seat.ID),
			Username:  seat.Username,
			Connected: seat.Connected,
		}
	}

	return Room{
		ID:         string(r.Code),
		HostID:     string(r.HostID),
		Players:    players,
		Started:    r.Started,
		Locked:     r.Locked,
		Revision:   r.Revision,
		State:      model.CloneState(r.State),
		YouAreHost: r.HostID == callerID,
	}
}

// UpdateStateResponse acknowledges a state write
type UpdateStateResponse struct {
	OK       bool  `json:"ok"`
	Revision int64 `json:"revision"`
}

// MatchRecord represents a completed match in API responses
type MatchRecord struct {
	ID       string    `json:"id"`
	RoomCode string    `json:"roomCode"`
	Players  []string  `json:"players"`
	Winner   string    `json:"winner"`
	PlayedAt time.Time `json:"playedAt"`
}

// MatchRecordFromModel converts a model.MatchRecord
func MatchRecordFromModel(m *model.MatchRecord) MatchRecord {
	players := make([]string, len(m.Players))
	copy(players, m.Players)
	return MatchRecord{
		ID:       string(m.ID),
		RoomCode: string(m.RoomCode),
		Players:  players,
		Winner:   m.Winner,
		PlayedAt: m.PlayedAt,
	}
}

// LeaderboardEntry represents one row of the leaderboard
type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// LeaderboardEntryFromModel converts a model.User to a leaderboard row
func LeaderboardEntryFromModel(u *model.User) LeaderboardEntry {
	return LeaderboardEntry{
		Username: u.Username,
		Wins:     u.Stats.Wins,
		Losses:   u.Stats.Losses,
	}
}
