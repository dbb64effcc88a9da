// Package lock provides keyed exclusive sections.
//
// Callers that need several keys must always acquire them in the same order
// (movie before room) so two callers can never wait on each other.
package lock

import (
	"context"
	"fmt"
)

// Locker grants exclusive access to a key until the returned unlock is called.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func MovieKey(name string) string { return "movie:" + name }
func RoomKey(name string) string  { return "room:" + name }

// LockAll acquires keys in the given order. On failure every key already
// held is released before returning.
func LockAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, key := range keys {
		unlock, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
