package storage

import (
	"context"

	"github.com/mkrella/matchroom/internal/model"
)

// Storage defines the interface for the in-memory authority state.
// Implementations must return deep copies so callers can never alias
// live records.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Credential operations. Username lookups are case-insensitive.
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Match history operations
	AppendMatch(ctx context.Context, record *model.MatchRecord) error
	ListMatches(ctx context.Context) ([]*model.MatchRecord, error)

	// Snapshot dumps everything the store holds; Restore replaces the
	// store's contents wholesale. Used at startup and after mutations to
	// mirror the authority state into a durable sink.
	Snapshot(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context, snap *Snapshot) error
}

// Snapshot is a full copy of the authority state, rewritten to the
// persistence sink after every accepted mutation
type Snapshot struct {
	Users       map[model.UserID]*model.User
	Credentials map[string]*model.Credential // keyed by lowercase username
	Sessions    map[string]*model.Session    // keyed by token
	Rooms       map[model.RoomCode]*model.Room
	History     []*model.MatchRecord
}

// NewSnapshot returns an empty snapshot with all containers allocated
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:       make(map[model.UserID]*model.User),
		Credentials: make(map[string]*model.Credential),
		Sessions:    make(map[string]*model.Session),
		Rooms:       make(map[model.RoomCode]*model.Room),
	}
}
