package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/natefinch/atomic"

	"github.com/mkrella/matchroom/internal/storage"
)

// FileSink stores snapshots as a single JSON file. Writes go through an
// atomic rename so a crash mid-write never leaves a truncated snapshot.
type FileSink struct {
	path string
}

// NewFileSink creates a file sink writing to the given path
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Ensure FileSink implements the interface
var _ Sink = (*FileSink)(nil)

// Write marshals the snapshot and atomically replaces the file
func (s *FileSink) Write(ctx context.Context, snap *storage.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return atomic.WriteFile(s.path, bytes.NewReader(data))
}

// Load reads the snapshot file, or ErrNoSnapshot if it does not exist
func (s *FileSink) Load(ctx context.Context) (*storage.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	var snap storage.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Close is a no-op for file sinks
func (s *FileSink) Close() error {
	return nil
}
