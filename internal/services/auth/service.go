package auth

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkrella/matchroom/internal/dependencies/clock"
	"github.com/mkrella/matchroom/internal/dependencies/random"
	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/snapshot"
	"github.com/mkrella/matchroom/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session token")
	ErrUsernameExists     = errors.New("username already exists")
)

// Service handles account registration, login, and token resolution.
// Sessions are durable records in the store, carried through snapshots,
// and never expire.
type Service struct {
	storage   storage.Storage
	persister *snapshot.Persister
	clock     clock.Clock
	random    random.Random

	// mu serializes the username check in Register against the
	// credential write; concurrent registrations of the same name
	// must not both pass the check
	mu sync.Mutex
}

// New creates a new auth service
func New(
	storage storage.Storage,
	persister *snapshot.Persister,
	clock clock.Clock,
	random random.Random,
) *Service {
	return &Service{
		storage:   storage,
		persister: persister,
		clock:     clock,
		random:    random,
	}
}

// Register creates a new account and an initial session for it.
// Usernames are unique case-insensitively.
func (s *Service) Register(ctx context.Context, username, password string) (*model.Session, *model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check if username exists
	_, err := s.storage.GetCredentialByUsername(ctx, username)
	if err == nil {
		return nil, nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, nil, err
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:        model.UserID(s.random.Token("u_")),
		Username:  username,
		CreatedAt: now,
	}
	cred := &model.Credential{
		UserID:       user.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, nil, err
	}
	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.persister.Persist(ctx); err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// Login verifies credentials and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, *model.User, error) {
	cred, err := s.storage.GetCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, cred.UserID)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.persister.Persist(ctx); err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// ValidateToken resolves a bearer token to its user
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Session points at a user that no longer resolves
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return user, nil
}

// createSession mints and stores a new session for the user
func (s *Service) createSession(ctx context.Context, userID model.UserID) (*model.Session, error) {
	session := &model.Session{
		Token:     s.random.Token("tok_"),
		UserID:    userID,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
