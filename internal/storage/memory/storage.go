package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/storage"
)

// Storage is the in-memory implementation of the storage interface.
// Every read and write goes through a deep copy, so no caller ever holds
// a reference into the live maps.
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	credentials map[string]*model.Credential // keyed by lowercase username
	sessions    map[string]*model.Session
	rooms       map[model.RoomCode]*model.Room
	history     []*model.MatchRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		credentials: make(map[string]*model.Credential),
		sessions:    make(map[string]*model.Session),
		rooms:       make(map[model.RoomCode]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.Clone())
	}
	return users, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[strings.ToLower(cred.Username)] = cred.Clone()
	return nil
}

func (s *Storage) GetCredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[strings.ToLower(username)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cred.Clone(), nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Match history operations

func (s *Storage) AppendMatch(ctx context.Context, record *model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, record.Clone())
	return nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.MatchRecord, 0, len(s.history))
	for _, record := range s.history {
		records = append(records, record.Clone())
	}
	return records, nil
}

// Snapshot operations

func (s *Storage) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := storage.NewSnapshot()
	for id, user := range s.users {
		snap.Users[id] = user.Clone()
	}
	for username, cred := range s.credentials {
		snap.Credentials[username] = cred.Clone()
	}
	for token, session := range s.sessions {
		snap.Sessions[token] = session.Clone()
	}
	for code, room := range s.rooms {
		snap.Rooms[code] = room.Clone()
	}
	snap.History = make([]*model.MatchRecord, 0, len(s.history))
	for _, record := range s.history {
		snap.History = append(snap.History, record.Clone())
	}
	return snap, nil
}

func (s *Storage) Restore(ctx context.Context, snap *storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[model.UserID]*model.User, len(snap.Users))
	for id, user := range snap.Users {
		s.users[id] = user.Clone()
	}
	s.credentials = make(map[string]*model.Credential, len(snap.Credentials))
	for username, cred := range snap.Credentials {
		s.credentials[strings.ToLower(username)] = cred.Clone()
	}
	s.sessions = make(map[string]*model.Session, len(snap.Sessions))
	for token, session := range snap.Sessions {
		s.sessions[token] = session.Clone()
	}
	s.rooms = make(map[model.RoomCode]*model.Room, len(snap.Rooms))
	for code, room := range snap.Rooms {
		s.rooms[code] = room.Clone()
	}
	s.history = make([]*model.MatchRecord, 0, len(snap.History))
	for _, record := range snap.History {
		s.history = append(s.history, record.Clone())
	}
	return nil
}
