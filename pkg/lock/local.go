package lock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker is an in-process keyed mutex. Entries are dropped once nobody
// holds or waits for them, so the map does not grow with every name seen.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*entry)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *LocalLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size is used by tests.
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
