//go:build !zeni_release

// sync_mutex_debug.go - Mutex with owner tracking for development builds

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
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

func init() {
	compiledFeatures = append(compiledFeatures, "mutex:debug")
}

// ownerRecord remembers which goroutine holds a Mutex. It is guarded by
// its own short-held self lock and exists only to catch relocking and
// foreign unlocking; it never makes the Mutex recursive.
type ownerRecord struct {
	self   sync.Mutex
	thread uint64
}

func (o *ownerRecord) assertNotHeld() {
	caller := goroutineID()
	o.self.Lock()
	owner := o.thread
	o.self.Unlock()
	if owner == caller {
		panic(&LockAssertion{Operation: "lock", Owner: owner, Caller: caller})
	}
}

func (o *ownerRecord) claim() {
	caller := goroutineID()
	o.self.Lock()
	o.thread = caller
	o.self.Unlock()
}

func (o *ownerRecord) release() {
	caller := goroutineID()
	o.self.Lock()
	owner := o.thread
	if owner == caller {
		o.thread = 0
	}
	o.self.Unlock()
	if owner != caller {
		panic(&LockAssertion{Operation: "unlock", Owner: owner, Caller: caller})
	}
}

// clear and restore bracket a condition variable wait, during which the
// underlying lock is handed to other goroutines.
func (o *ownerRecord) clear() {
	o.self.Lock()
	o.thread = 0
	o.self.Unlock()
}

func (o *ownerRecord) restore() {
	o.claim()
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the id out of the first line of the current stack
// ("goroutine 42 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(line, ' '); i > 0 {
		line = line[:i]
	}
	id, err := strconv.ParseUint(string(line), 10, 64)
	if err != nil {
		panic("zeni: cannot parse goroutine id: " + err.Error())
	}
	return id
}
