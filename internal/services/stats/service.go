package stats

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mkrella/matchroom/internal/dependencies/clock"
	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/storage"
)

// Service aggregates concluded matches into durable per-user win/loss
// records and the match history
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	// mu serializes user read-modify-write; matches concluding in
	// different rooms at the same time may share players
	mu sync.Mutex
}

// New creates a new StatsService
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// RecordResult applies a concluded match to every seated player's stats
// and appends one match history entry. Scoring is everyone-vs-everyone:
// the winner beats every other seated player, and every loser loses to
// every other seated player, not just to the winner.
func (s *Service) RecordResult(ctx context.Context, room *model.Room, winnerID model.UserID) error {
	winnerSeat := room.GetSeat(winnerID)
	if winnerSeat == nil {
		return model.ErrNotInRoom
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range room.Players {
		user, err := s.storage.GetUser(ctx, seat.ID)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				// Seat without a user record; skip it rather than fail the match
				continue
			}
			return err
		}

		won := seat.ID == winnerID
		if won {
			user.Stats.Wins++
		} else {
			user.Stats.Losses++
		}

		for _, opponent := range room.Players {
			if opponent.ID == seat.ID {
				continue
			}
			record := user.Stats.Versus(opponent.Username)
			if won {
				record.Wins++
			} else {
				record.Losses++
			}
		}

		if err := s.storage.SaveUser(ctx, user); err != nil {
			return err
		}
	}

	match := &model.MatchRecord{
		ID:       model.MatchID(uuid.NewString()),
		RoomCode: room.Code,
		Players:  room.SeatUsernames(),
		Winner:   winnerSeat.Username,
		PlayedAt: s.clock.Now(),
	}
	return s.storage.AppendMatch(ctx, match)
}

// History returns recorded matches, most recent first
func (s *Service) History(ctx context.Context) ([]*model.MatchRecord, error) {
	records, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	// Stored oldest first; present newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Leaderboard returns all users ranked by wins descending, breaking ties
// by fewer losses and then username
func (s *Service) Leaderboard(ctx context.Context) ([]*model.User, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Stats.Wins != users[j].Stats.Wins {
			return users[i].Stats.Wins > users[j].Stats.Wins
		}
		if users[i].Stats.Losses != users[j].Stats.Losses {
			return users[i].Stats.Losses < users[j].Stats.Losses
		}
		return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
	})
	return users, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	RecordResult(ctx context.Context, room *model.Room, winnerID model.UserID) error
	History(ctx context.Context) ([]*model.MatchRecord, error)
	Leaderboard(ctx context.Context) ([]*model.User, error)
}

var _ ServiceInterface = (*Service)(nil)
