package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkrella/matchroom/internal/dependencies/clock"
	"github.com/mkrella/matchroom/internal/dependencies/random"
	"github.com/mkrella/matchroom/internal/services/auth"
	"github.com/mkrella/matchroom/internal/services/room"
	"github.com/mkrella/matchroom/internal/services/stats"
	"github.com/mkrella/matchroom/internal/snapshot"
	"github.com/mkrella/matchroom/internal/storage"
	"github.com/mkrella/matchroom/internal/storage/memory"
)

// Snapshot sink type constants
const (
	SnapshotTypeNone  = "none"
	SnapshotTypeFile  = "file"
	SnapshotTypeRedis = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Durability
	Sink      snapshot.Sink
	Persister *snapshot.Persister

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	StatsService   *stats.Service
	RoomController *room.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// SnapshotType selects the snapshot sink ("none", "file" or "redis")
	// If empty, defaults to "none"
	SnapshotType string
	// SnapshotPath is the snapshot file location (required if SnapshotType is "file")
	SnapshotPath string
	// RedisConfig holds Redis connection settings (required if SnapshotType is "redis")
	RedisConfig *snapshot.RedisConfig
}

// New creates a new application with all dependencies wired.
// If the configured sink holds a snapshot, the store is restored from it;
// otherwise the app starts empty.
func New(cfg Config) (*App, error) {
	snapshotType := cfg.SnapshotType
	if snapshotType == "" {
		snapshotType = SnapshotTypeNone
	}

	var sink snapshot.Sink
	switch snapshotType {
	case SnapshotTypeNone:
		sink = snapshot.NewNopSink()
	case SnapshotTypeFile:
		if cfg.SnapshotPath == "" {
			return nil, errors.New("SnapshotPath required when SnapshotType is file")
		}
		sink = snapshot.NewFileSink(cfg.SnapshotPath)
	case SnapshotTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SnapshotType is redis")
		}
		redisSink, err := snapshot.NewRedisSink(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		sink = redisSink
	default:
		return nil, errors.New("invalid SnapshotType: must be 'none', 'file' or 'redis'")
	}

	store := memory.New()

	// Boot-time restore
	ctx := context.Background()
	snap, err := sink.Load(ctx)
	switch {
	case err == nil:
		if err := store.Restore(ctx, snap); err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	case errors.Is(err, snapshot.ErrNoSnapshot):
		// Fresh start
	default:
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	return newWithDependencies(store, sink, clock.New(), random.New()), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, sink snapshot.Sink, clk clock.Clock, rnd random.Random) *App {
	persister := snapshot.NewPersister(store, sink)

	statsService := stats.New(store, clk)
	authService := auth.New(store, persister, clk, rnd)
	roomController := room.NewController(store, statsService, persister, clk, rnd)

	return &App{
		Storage:        store,
		Sink:           sink,
		Persister:      persister,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		StatsService:   statsService,
		RoomController: roomController,
	}
}

// Flush writes a final snapshot, used on shutdown
func (a *App) Flush(ctx context.Context) error {
	return a.Persister.Persist(ctx)
}

// Close releases the snapshot sink
func (a *App) Close() error {
	return a.Sink.Close()
}
