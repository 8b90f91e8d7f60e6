// sync_semaphore.go - Counting semaphore built on Mutex and Cond

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package zeni

import (
	"errors"
	"time"
)

// Semaphore is a counting semaphore assembled from a Mutex and a Cond.
type Semaphore struct {
	mutex    *Mutex
	positive *Cond
	count    uint
}

func NewSemaphore(count uint) *Semaphore {
	return &Semaphore{
		mutex:    NewMutex(),
		positive: NewCond(),
		count:    count,
	}
}

// Down blocks while the count is zero, then decrements it.
func (s *Semaphore) Down() (err error) {
	l, err := Acquire(s.mutex)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := l.Release(); err == nil {
			err = rerr
		}
	}()

	for s.count < 1 {
		if err := s.positive.Wait(l); err != nil {
			return err
		}
	}
	s.count--
	return nil
}

// DownTimeout is Down bounded by d overall. It fails with ErrCVWaitTimeout
// when no Up arrives in time and leaves the count untouched.
func (s *Semaphore) DownTimeout(d time.Duration) (err error) {
	deadline := time.Now().Add(d)

	l, err := Acquire(s.mutex)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := l.Release(); err == nil {
			err = rerr
		}
	}()

	for s.count < 1 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrCVWaitTimeout
		}
		err := s.positive.WaitTimeout(l, remaining)
		if errors.Is(err, ErrCVWaitTimeout) && s.count >= 1 {
			break
		}
		if err != nil {
			return err
		}
	}
	s.count--
	return nil
}

// Up increments the count and wakes one waiter.
func (s *Semaphore) Up() error {
	return s.mutex.Do(func() error {
		s.count++
		s.positive.Signal()
		return nil
	})
}

// Count is a locked snapshot of the current count.
func (s *Semaphore) Count() uint {
	var n uint
	_ = s.mutex.Do(func() error {
		n = s.count
		return nil
	})
	return n
}

// SemaphoreHold is a successful Down that Release gives back.
type SemaphoreHold struct {
	s    *Semaphore
	held bool
}

// Hold performs Down and returns a guard whose Release performs Up.
func (s *Semaphore) Hold() (*SemaphoreHold, error) {
	if err := s.Down(); err != nil {
		return nil, err
	}
	return &SemaphoreHold{s: s, held: true}, nil
}

func (h *SemaphoreHold) Release() error {
	if h == nil || !h.held {
		return nil
	}
	h.held = false
	return h.s.Up()
}
