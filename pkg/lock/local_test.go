package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerExcludes(t *testing.T) {
	l := NewLocalLocker()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), RoomKey("A"))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, l.size())
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	l := NewLocalLocker()
	unlockA, err := l.Lock(context.Background(), RoomKey("A"))
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, RoomKey("B"))
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), MovieKey("X"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, MovieKey("X"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // idempotent
	assert.Equal(t, 0, l.size())
}

func TestLockAllReleasesOnFailure(t *testing.T) {
	l := NewLocalLocker()
	held, err := l.Lock(context.Background(), RoomKey("A"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = LockAll(ctx, l, MovieKey("M"), RoomKey("A"))
	require.Error(t, err)

	// movie:M must have been released.
	unlock, err := l.Lock(context.Background(), MovieKey("M"))
	require.NoError(t, err)
	unlock()
	held()
}
