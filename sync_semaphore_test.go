package zeni

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCond_SignalWakesWaiter(t *testing.T) {
	m := NewMutex()
	c := NewCond()
	ready := false

	done := make(chan error, 1)
	go func() {
		l, err := Acquire(m)
		if err != nil {
			done <- err
			return
		}
		for !ready {
			if err := c.Wait(l); err != nil {
				done <- err
				return
			}
		}
		done <- l.Release()
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, m.Do(func() error {
		ready = true
		c.Signal()
		return nil
	}))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken")
	}
}

func TestCond_BroadcastWakesAll(t *testing.T) {
	m := NewMutex()
	c := NewCond()
	released := false
	var woke atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := Acquire(m)
			if err != nil {
				return
			}
			defer l.Release()
			for !released {
				if c.Wait(l) != nil {
					return
				}
			}
			woke.Add(1)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, m.Do(func() error {
		released = true
		c.Broadcast()
		return nil
	}))
	wg.Wait()
	assert.EqualValues(t, 4, woke.Load())
}

func TestCond_WaitTimeoutExpires(t *testing.T) {
	m := NewMutex()
	c := NewCond()
	l, err := Acquire(m)
	require.NoError(t, err)
	defer l.Release()

	start := time.Now()
	err = c.WaitTimeout(l, 30*time.Millisecond)
	assert.ErrorIs(t, err, ErrCVWaitTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
	assert.Empty(t, c.waiters)
}

func TestCond_WaitWithoutLockFails(t *testing.T) {
	c := NewCond()
	assert.ErrorIs(t, c.Wait(nil), ErrCVWait)

	m := NewMutex()
	l, err := Acquire(m)
	require.NoError(t, err)
	require.NoError(t, l.Release())
	assert.ErrorIs(t, c.Wait(l), ErrCVWait)
}

func TestSemaphore_DownBlocksUntilUp(t *testing.T) {
	s := NewSemaphore(0)
	assert.EqualValues(t, 0, s.Count())

	var passed atomic.Int32
	for i := 0; i < 2; i++ {
		go func() {
			if s.Down() == nil {
				passed.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 0, passed.Load())

	require.NoError(t, s.Up())
	require.Eventually(t, func() bool { return passed.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 1, passed.Load(), "a single Up must release a single Down")
	assert.EqualValues(t, 0, s.Count())

	require.NoError(t, s.Up())
	require.Eventually(t, func() bool { return passed.Load() == 2 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 0, s.Count())
}

func TestSemaphore_DownTimeout(t *testing.T) {
	s := NewSemaphore(0)
	start := time.Now()
	err := s.DownTimeout(50 * time.Millisecond)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrCVWaitTimeout)
	assert.GreaterOrEqual(t, elapsed, 45*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
	assert.EqualValues(t, 0, s.Count())
}

func TestSemaphore_DownTimeoutSucceedsWhenUpped(t *testing.T) {
	s := NewSemaphore(0)
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = s.Up()
	}()
	require.NoError(t, s.DownTimeout(time.Second))
	assert.EqualValues(t, 0, s.Count())
}

func TestSemaphore_HoldReleases(t *testing.T) {
	s := NewSemaphore(1)
	h, err := s.Hold()
	require.NoError(t, err)
	assert.EqualValues(t, 0, s.Count())
	require.NoError(t, h.Release())
	require.NoError(t, h.Release())
	assert.EqualValues(t, 1, s.Count())
}
