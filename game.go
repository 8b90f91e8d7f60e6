// game.go - Game-state stack driving the event, logic and render loop

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
	"time"
)

// Gamestate is one screen or mode of the application. Only the state on
// top of the Game stack receives calls.
type Gamestate interface {
	OnEvent(ev Event) error
	PerformLogic() error
	Render() error
}

// StateLifecycle is implemented by states that want to know when they
// enter or leave the stack.
type StateLifecycle interface {
	OnPush(g *Game)
	OnPop(g *Game)
}

// Game is a stack of Gamestates. The stack itself is safe for concurrent
// use; each dispatch runs outside the lock against the top captured at
// entry, so a state may push or pop from inside its own callbacks.
type Game struct {
	mu     *Mutex
	states []Gamestate

	now        func() time.Time
	fps        int
	frames     int
	frameStart time.Time
}

func NewGame() *Game {
	return &Game{mu: NewMutex(), now: time.Now}
}

func (g *Game) PushState(s Gamestate) {
	_ = g.mu.Do(func() error {
		g.states = append(g.states, s)
		return nil
	})
	if l, ok := s.(StateLifecycle); ok {
		l.OnPush(g)
	}
}

// PopState removes and returns the top state.
func (g *Game) PopState() (Gamestate, error) {
	var s Gamestate
	err := g.mu.Do(func() error {
		n := len(g.states)
		if n == 0 {
			return ErrZeroGamestate
		}
		s = g.states[n-1]
		g.states[n-1] = nil
		g.states = g.states[:n-1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if l, ok := s.(StateLifecycle); ok {
		l.OnPop(g)
	}
	return s, nil
}

func (g *Game) CurrentState() (Gamestate, error) {
	var s Gamestate
	err := g.mu.Do(func() error {
		if len(g.states) == 0 {
			return ErrZeroGamestate
		}
		s = g.states[len(g.states)-1]
		return nil
	})
	return s, err
}

func (g *Game) Size() int {
	var n int
	_ = g.mu.Do(func() error {
		n = len(g.states)
		return nil
	})
	return n
}

func (g *Game) OnEvent(ev Event) error {
	s, err := g.CurrentState()
	if err != nil {
		return err
	}
	return s.OnEvent(ev)
}

func (g *Game) PerformLogic() error {
	s, err := g.CurrentState()
	if err != nil {
		return err
	}
	return s.PerformLogic()
}

// Render draws the top state and counts the frame. The frame is counted
// even when the state reports an error, but not when the stack is empty.
func (g *Game) Render() error {
	s, err := g.CurrentState()
	if err != nil {
		return err
	}
	err = s.Render()
	g.countFrame()
	return err
}

// FPS is the frame rate measured over the last complete second.
func (g *Game) FPS() int {
	var fps int
	_ = g.mu.Do(func() error {
		fps = g.fps
		return nil
	})
	return fps
}

func (g *Game) countFrame() {
	now := g.now()
	_ = g.mu.Do(func() error {
		if g.frameStart.IsZero() {
			g.frameStart = now
			return nil
		}
		g.frames++
		if elapsed := now.Sub(g.frameStart); elapsed >= time.Second {
			g.fps = int(float64(g.frames)*float64(time.Second)/float64(elapsed) + 0.5)
			g.frames = 0
			g.frameStart = now
		}
		return nil
	})
}
