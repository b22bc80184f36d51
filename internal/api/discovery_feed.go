package api

import (
	"sync"

	"github.com/latticeforge/discovery/internal/discovery"
)

// discoveryFeed is the server's in-memory list of every discovery
// document a completed run has produced, newest last. It backs both
// GET /v1/discoveries and the documents pushed over the websocket hub.
type discoveryFeed struct {
	mu   sync.RWMutex
	docs []*discovery.Document
}

func newDiscoveryFeed() *discoveryFeed {
	return &discoveryFeed{}
}

func (f *discoveryFeed) add(d *discovery.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, d)
}

func (f *discoveryFeed) list() []*discovery.Document {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*discovery.Document, len(f.docs))
	copy(out, f.docs)
	return out
}
