package reconcile

import (
	"context"
	"sync"
)

// coverCache coordinates cover fetches per album directory: the first track
// to need a directory's cover performs the network call while concurrent
// siblings wait for its result. Misses and fetch failures are cached too, so
// a directory is fetched at most once per run.
type coverCache struct {
	mu      sync.Mutex
	entries map[string]*coverEntry
	written map[string]bool
}

type coverEntry struct {
	done chan struct{}
	data []byte
	err  error
}

func newCoverCache() *coverCache {
	return &coverCache{
		entries: make(map[string]*coverEntry),
		written: make(map[string]bool),
	}
}

// claimWrite grants the cover.jpg write for a directory to exactly one
// caller per run, so sibling tracks never race on the same file.
func (c *coverCache) claimWrite(dir string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.written[dir] {
		return false
	}
	c.written[dir] = true
	return true
}

// releaseWrite returns a directory's claim after a failed write, so a
// sibling track can still land cover.jpg from the cached bytes.
func (c *coverCache) releaseWrite(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.written, dir)
}

// get returns the directory's cover, invoking fetch at most once across all
// callers. Waiters unblock on cancellation without disturbing the fetch.
func (c *coverCache) get(ctx context.Context, dir string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if entry, ok := c.entries[dir]; ok {
		c.mu.Unlock()
		select {
		case <-entry.done:
			return entry.data, entry.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	entry := &coverEntry{done: make(chan struct{})}
	c.entries[dir] = entry
	c.mu.Unlock()

	entry.data, entry.err = fetch()
	close(entry.done)
	return entry.data, entry.err
}

// peek reports a completed result without triggering a fetch. Failed and
// negative fetches both report nil data; ok means the directory is settled
// for this run.
func (c *coverCache) peek(dir string) ([]byte, bool) {
	c.mu.Lock()
	entry, ok := c.entries[dir]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-entry.done:
		return entry.data, true
	default:
		return nil, false
	}
}
