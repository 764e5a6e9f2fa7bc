package room

import (
	"context"
	"encoding/json"

	"github.com/mkrella/matchroom/internal/dependencies/clock"
	"github.com/mkrella/matchroom/internal/dependencies/random"
	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/services/stats"
	"github.com/mkrella/matchroom/internal/snapshot"
	"github.com/mkrella/matchroom/internal/storage"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6
	// CodeAlphabet is the characters used in room codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller owns the room lifecycle: creation, joins, starts, state
// updates, and the handoff to the stats service when a winner is
// reported. Every accepted mutation bumps the room revision by exactly
// one and synchronously mirrors the store to the persistence sink.
type Controller struct {
	storage   storage.Storage
	stats     *stats.Service
	persister *snapshot.Persister
	clock     clock.Clock
	random    random.Random

	locks *roomLocks
}

// NewController creates a new RoomController
func NewController(
	storage storage.Storage,
	stats *stats.Service,
	persister *snapshot.Persister,
	clock clock.Clock,
	random random.Random,
) *Controller {
	return &Controller{
		storage:   storage,
		stats:     stats,
		persister: persister,
		clock:     clock,
		random:    random,
		locks:     newRoomLocks(),
	}
}

// Create makes a new room with the given user as host holding the first
// seat. The requested capacity is clamped into the allowed range.
func (c *Controller) Create(ctx context.Context, host *model.User, maxPlayers int) (*model.Room, error) {
	now := c.clock.Now()

	// Generate unique room code
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:   code,
		HostID: host.ID,
		Players: []model.Seat{
			{ID: host.ID, Username: host.Username, Connected: true},
		},
		MaxPlayers: model.ClampPlayerCount(maxPlayers),
		Started:    false,
		Revision:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.saveAndPersist(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Get returns the room, marking the caller's seat connected if they hold
// one. Reading never bumps the revision.
func (c *Controller) Get(ctx context.Context, code model.RoomCode, callerID model.UserID) (*model.Room, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	seat := room.GetSeat(callerID)
	if seat == nil || seat.Connected {
		return room, nil
	}

	seat.Connected = true
	room.UpdatedAt = c.clock.Now()

	if err := c.saveAndPersist(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Join seats the user in the room. Joining a room the user is already
// seated in is a reconnect: it marks the seat connected and still counts
// as an accepted mutation, but never duplicates the seat.
func (c *Controller) Join(ctx context.Context, code model.RoomCode, user *model.User) (*model.Room, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if seat := room.GetSeat(user.ID); seat != nil {
		seat.Connected = true
	} else {
		if room.Started || len(room.Players) >= room.MaxPlayers {
			return nil, model.ErrRoomFull
		}
		room.Players = append(room.Players, model.Seat{
			ID:        user.ID,
			Username:  user.Username,
			Connected: true,
		})
	}

	room.Revision++
	room.UpdatedAt = c.clock.Now()

	if err := c.saveAndPersist(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Start begins a match with the current seats. Only the host may start,
// and the seated count must be within the allowed range. Starting a room
// that is already running is accepted and simply overwrites the state.
func (c *Controller) Start(ctx context.Context, code model.RoomCode, callerID model.UserID, initialState json.RawMessage) (*model.Room, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if !room.IsHost(callerID) {
		return nil, model.ErrNotHost
	}
	if len(room.Players) < model.MinRoomPlayers || len(room.Players) > model.MaxRoomPlayers {
		return nil, model.ErrInvalidPlayerCount
	}

	if seat := room.GetSeat(callerID); seat != nil {
		seat.Connected = true
	}
	room.Started = true
	room.State = model.CloneState(initialState)
	room.Revision++
	room.UpdatedAt = c.clock.Now()

	if err := c.saveAndPersist(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// UpdateState replaces the room state (last write wins) and bumps the
// revision. When a winner is reported while a match is running and the
// winner holds a seat, the match concludes: stats apply, one history
// entry is appended, and the room returns to open for the next start.
// Winner reports against a room with no running match are ignored; the
// state replacement and revision bump still happen.
func (c *Controller) UpdateState(ctx context.Context, code model.RoomCode, callerID model.UserID, newState json.RawMessage, winnerID model.UserID) (*model.Room, error) {
	unlock := c.locks.acquire(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	seat := room.GetSeat(callerID)
	if seat == nil {
		return nil, model.ErrNotInRoom
	}
	seat.Connected = true

	room.State = model.CloneState(newState)
	room.Revision++

	if winnerID != "" && room.Started && room.GetSeat(winnerID) != nil {
		if err := c.stats.RecordResult(ctx, room, winnerID); err != nil {
			return nil, err
		}
		room.Started = false
	}

	room.UpdatedAt = c.clock.Now()

	if err := c.saveAndPersist(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// saveAndPersist writes the room back and mirrors the store to the sink.
// The sink write is on the request's critical path; its failure fails
// the request while the in-memory mutation stands.
func (c *Controller) saveAndPersist(ctx context.Context, room *model.Room) error {
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}
	return c.persister.Persist(ctx)
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, host *model.User, maxPlayers int) (*model.Room, error)
	Get(ctx context.Context, code model.RoomCode, callerID model.UserID) (*model.Room, error)
	Join(ctx context.Context, code model.RoomCode, user *model.User) (*model.Room, error)
	Start(ctx context.Context, code model.RoomCode, callerID model.UserID, initialState json.RawMessage) (*model.Room, error)
	UpdateState(ctx context.Context, code model.RoomCode, callerID model.UserID, newState json.RawMessage, winnerID model.UserID) (*model.Room, error)
}

var _ ControllerInterface = (*Controller)(nil)
