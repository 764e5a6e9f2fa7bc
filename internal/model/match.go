package model

import "time"

// MatchID uniquely identifies a completed match record
type MatchID string

// MatchRecord is an immutable history entry appended once per concluded
// match
type MatchRecord struct {
	ID       MatchID
	RoomCode RoomCode
	Players  []string // usernames seated when the match concluded
	Winner   string   // winner's username
	PlayedAt time.Time
}

// Clone returns a deep copy of the record
func (m *MatchRecord) Clone() *MatchRecord {
	if m == nil {
		return nil
	}
	out := *m
	out.Players = make([]string, len(m.Players))
	copy(out.Players, m.Players)
	return &out
}
