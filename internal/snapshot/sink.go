// Package snapshot mirrors the in-memory authority state to durable
// storage. The whole state is rewritten on every accepted mutation, so a
// sink only ever needs to hold the latest full snapshot.
package snapshot

import (
	"context"
	"errors"

	"github.com/mkrella/matchroom/internal/storage"
)

// ErrNoSnapshot is returned by Load when the sink holds no snapshot yet
var ErrNoSnapshot = errors.New("no snapshot present")

// Sink writes and reads full-state snapshots
type Sink interface {
	// Write replaces the sink's contents with the given snapshot
	Write(ctx context.Context, snap *storage.Snapshot) error

	// Load reads the most recent snapshot, or ErrNoSnapshot if none exists
	Load(ctx context.Context) (*storage.Snapshot, error)

	// Close releases any resources held by the sink
	Close() error
}
