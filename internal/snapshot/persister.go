package snapshot

import (
	"context"
	"sync"

	"github.com/mkrella/matchroom/internal/storage"
)

// Persister captures the current store state and writes it to a sink.
// Callers invoke Persist synchronously after every accepted mutation, so
// a sink failure surfaces on the request that caused it.
type Persister struct {
	// mu serializes capture+write so a slower earlier snapshot can never
	// land over a newer one
	mu    sync.Mutex
	store storage.Storage
	sink  Sink
}

// NewPersister creates a persister mirroring the given store into the sink
func NewPersister(store storage.Storage, sink Sink) *Persister {
	return &Persister{store: store, sink: sink}
}

// Persist snapshots the store and writes the result to the sink
func (p *Persister) Persist(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap, err := p.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	return p.sink.Write(ctx, snap)
}
