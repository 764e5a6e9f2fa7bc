package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account and its accumulated match statistics
type User struct {
	ID        UserID
	Username  string // display name, unique case-insensitively
	Stats     Stats
	CreatedAt time.Time
}

// Clone returns a deep copy safe to hand to callers
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Stats = u.Stats.Clone()
	return &out
}

// Stats holds a user's overall and per-opponent win/loss tallies.
// Only the stats service mutates these.
type Stats struct {
	Wins   int
	Losses int
	VS     map[string]*VersusRecord // keyed by opponent username at record time
}

// VersusRecord is a win/loss tally against a single opponent
type VersusRecord struct {
	Wins   int
	Losses int
}

// Versus returns the record against the named opponent, allocating it on
// first use
func (s *Stats) Versus(opponent string) *VersusRecord {
	if s.VS == nil {
		s.VS = make(map[string]*VersusRecord)
	}
	rec, ok := s.VS[opponent]
	if !ok {
		rec = &VersusRecord{}
		s.VS[opponent] = rec
	}
	return rec
}

// Clone returns a deep copy of the stats
func (s Stats) Clone() Stats {
	out := s
	if s.VS != nil {
		out.VS = make(map[string]*VersusRecord, len(s.VS))
		for opponent, rec := range s.VS {
			cp := *rec
			out.VS[opponent] = &cp
		}
	}
	return out
}

// Credential holds a user's login material
// Stored separately from the User record so password hashes never travel
// with public profile reads
type Credential struct {
	UserID       UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Clone returns a copy of the credential
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// Session maps an opaque bearer token to a user.
// Sessions never expire and are never revoked.
type Session struct {
	Token     string
	UserID    UserID
	CreatedAt time.Time
}

// Clone returns a copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
