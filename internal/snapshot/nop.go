package snapshot

import (
	"context"

	"github.com/mkrella/matchroom/internal/storage"
)

// NopSink discards snapshots. Used when durability is disabled and in
// tests that don't care about persistence.
type NopSink struct{}

// NewNopSink creates a sink that discards everything
func NewNopSink() *NopSink {
	return &NopSink{}
}

// Ensure NopSink implements the interface
var _ Sink = (*NopSink)(nil)

// Write discards the snapshot
func (s *NopSink) Write(ctx context.Context, snap *storage.Snapshot) error {
	return nil
}

// Load always reports an absent snapshot
func (s *NopSink) Load(ctx context.Context) (*storage.Snapshot, error) {
	return nil, ErrNoSnapshot
}

// Close is a no-op
func (s *NopSink) Close() error {
	return nil
}
