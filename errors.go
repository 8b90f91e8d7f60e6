// errors.go - Error kinds shared by every Zeni Engine subsystem

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
	"fmt"
)

// Operational failures. Callers test for these with errors.Is.
var (
	ErrZeroGamestate       = errors.New("zeni: no active gamestate")
	ErrMutexLock           = errors.New("zeni: mutex lock failed")
	ErrMutexUnlock         = errors.New("zeni: mutex unlock failed")
	ErrCVWait              = errors.New("zeni: condition variable wait failed")
	ErrCVWaitTimeout       = errors.New("zeni: condition variable wait timed out")
	ErrSingularMatrix      = errors.New("zeni: matrix is singular")
	ErrNotImplemented      = errors.New("zeni: not implemented")
	ErrVideoInit           = errors.New("zeni: video failed to initialize")
	ErrJoystickInit        = errors.New("zeni: joysticks failed to initialize")
	ErrSoundInit           = errors.New("zeni: sound failed to initialize")
	ErrTextureNotFound     = errors.New("zeni: texture not found")
	ErrWorldStackUnderflow = errors.New("zeni: world matrix stack underflow")
	ErrAlreadyInitialized  = errors.New("zeni: already initialized")
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// DispatchAbort is the panic value raised when a Video operation is
// forwarded while no backend is selected. It is a programming error, never
// an operational failure, so it is not returned as an error.
type DispatchAbort struct {
	Operation string
	Mode      VideoMode
}

func (a *DispatchAbort) Error() string {
	return fmt.Sprintf("zeni: %s dispatched with video mode %s", a.Operation, a.Mode)
}

// LockAssertion is the panic value raised by the debug ownership layer of
// Mutex when a goroutine relocks a mutex it holds or unlocks one it does
// not hold.
type LockAssertion struct {
	Operation string
	Owner     uint64
	Caller    uint64
}

func (a *LockAssertion) Error() string {
	return fmt.Sprintf("zeni: mutex %s assertion: owner goroutine %d, caller goroutine %d", a.Operation, a.Owner, a.Caller)
}
