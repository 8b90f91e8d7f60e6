// sync_mutex.go - Non-recursive mutex with scoped locking for Zeni Engine

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

// Mutex is a non-recursive mutual-exclusion lock. Unlike sync.Mutex,
// misuse is reported: unlocking a mutex that is not held returns
// ErrMutexUnlock instead of crashing the process, and (unless built with
// zeni_release) relocking from the owning goroutine panics with a
// *LockAssertion rather than deadlocking.
//
// A Mutex must be created with NewMutex.
type Mutex struct {
	impl  chan struct{} // one slot: full while locked
	owner ownerRecord   // debug-only ownership bookkeeping
}

func NewMutex() *Mutex {
	return &Mutex{impl: make(chan struct{}, 1)}
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() error {
	if m == nil || m.impl == nil {
		return ErrMutexLock
	}
	m.owner.assertNotHeld()
	m.impl <- struct{}{}
	m.owner.claim()
	return nil
}

// Unlock releases the mutex. The caller must be the goroutine that locked it.
func (m *Mutex) Unlock() error {
	if m == nil || m.impl == nil {
		return ErrMutexUnlock
	}
	m.owner.release()
	select {
	case <-m.impl:
		return nil
	default:
		return ErrMutexUnlock
	}
}

// Do runs fn with the mutex held and releases it on every exit path,
// panics included.
func (m *Mutex) Do(fn func() error) (err error) {
	l, err := Acquire(m)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := l.Release(); err == nil {
			err = rerr
		}
	}()
	return fn()
}

// lockImpl and unlockImpl touch only the underlying lock; Cond uses them
// around its blocking wait and maintains the owner record itself.
func (m *Mutex) lockImpl() {
	m.impl <- struct{}{}
}

func (m *Mutex) unlockImpl() {
	<-m.impl
}

// Lock is a held Mutex. Release it with defer right after Acquire.
type Lock struct {
	m    *Mutex
	held bool
}

// Acquire locks m and returns the scoped handle that unlocks it.
func Acquire(m *Mutex) (*Lock, error) {
	if err := m.Lock(); err != nil {
		return nil, err
	}
	return &Lock{m: m, held: true}, nil
}

// Release unlocks the mutex. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || !l.held {
		return nil
	}
	l.held = false
	return l.m.Unlock()
}

// Mutex returns the mutex this lock holds.
func (l *Lock) Mutex() *Mutex {
	return l.m
}
