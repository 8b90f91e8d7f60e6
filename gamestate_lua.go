// gamestate_lua.go - Gamestate whose callbacks are written in Lua

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
	"strings"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// ScriptState runs a Lua script as a Gamestate. The script may define the
// globals on_event(ev), perform_logic(), render(), on_push() and on_pop();
// missing ones are skipped. A global table named zeni gives the script
// access to the engine:
//
//	zeni.set_clear_color(r, g, b [, a])
//	zeni.set_color(r, g, b [, a])
//	zeni.draw_rect(x1, y1, x2, y2 [, r, g, b, a])
//	zeni.pop_state()
//	zeni.fps()
//	zeni.log(msg)
//
// The Lua VM is not safe for concurrent use; drive the state from the
// render goroutine only.
type ScriptState struct {
	name  string
	L     *lua.LState
	game  *Game
	video *Video
}

// NewScriptState compiles and runs source once so it can define its
// callbacks. name labels errors and log records.
func NewScriptState(name, source string, game *Game, video *Video) (*ScriptState, error) {
	s := newScriptState(name, game, video)
	if err := s.L.DoString(source); err != nil {
		s.L.Close()
		return nil, errors.Wrapf(err, "script %s", name)
	}
	return s, nil
}

// LoadScriptState is NewScriptState for a file on disk.
func LoadScriptState(path string, game *Game, video *Video) (*ScriptState, error) {
	s := newScriptState(path, game, video)
	if err := s.L.DoFile(path); err != nil {
		s.L.Close()
		return nil, errors.Wrapf(err, "script %s", path)
	}
	return s, nil
}

func newScriptState(name string, game *Game, video *Video) *ScriptState {
	s := &ScriptState{
		name:  name,
		L:     lua.NewState(),
		game:  game,
		video: video,
	}
	s.L.SetGlobal("zeni", s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"set_clear_color": s.luaSetClearColor,
		"set_color":       s.luaSetColor,
		"draw_rect":       s.luaDrawRect,
		"pop_state":       s.luaPopState,
		"fps":             s.luaFPS,
		"log":             s.luaLog,
	}))
	return s
}

func (s *ScriptState) Close() {
	s.L.Close()
}

func (s *ScriptState) OnEvent(ev Event) error {
	return s.call("on_event", s.eventTable(ev))
}

func (s *ScriptState) PerformLogic() error { return s.call("perform_logic") }
func (s *ScriptState) Render() error       { return s.call("render") }

func (s *ScriptState) OnPush(*Game) {
	if err := s.call("on_push"); err != nil {
		Logger().Warn("script on_push failed", "script", s.name, "err", err)
	}
}

func (s *ScriptState) OnPop(*Game) {
	if err := s.call("on_pop"); err != nil {
		Logger().Warn("script on_pop failed", "script", s.name, "err", err)
	}
}

// call invokes the named global if the script defined it.
func (s *ScriptState) call(fn string, args ...lua.LValue) error {
	f, ok := s.L.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return nil
	}
	if err := s.L.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, args...); err != nil {
		return errors.Wrapf(err, "script %s: %s", s.name, fn)
	}
	return nil
}

func (s *ScriptState) eventTable(ev Event) *lua.LTable {
	t := s.L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type.String()))
	switch ev.Type {
	case EventKeyDown, EventKeyUp:
		t.RawSetString("key", lua.LString(ev.Key.String()))
	case EventTextInput:
		t.RawSetString("text", lua.LString(ev.Text))
	case EventMouseMotion, EventMouseWheel, EventMouseButtonDown, EventMouseButtonUp:
		t.RawSetString("x", lua.LNumber(ev.X))
		t.RawSetString("y", lua.LNumber(ev.Y))
		t.RawSetString("button", lua.LNumber(ev.Button))
	case EventJoyAxisMotion, EventJoyButtonDown, EventJoyButtonUp, EventJoyDeviceAdded, EventJoyDeviceRemoved:
		t.RawSetString("joystick", lua.LNumber(ev.Joystick))
		t.RawSetString("axis", lua.LNumber(ev.Axis))
		t.RawSetString("button", lua.LNumber(ev.Button))
		t.RawSetString("value", lua.LNumber(ev.Value))
	}
	return t
}

// checkColor reads r, g, b and an optional a starting at stack index n.
func checkColor(L *lua.LState, n int) Color {
	return Color{
		R: float32(L.CheckNumber(n)),
		G: float32(L.CheckNumber(n + 1)),
		B: float32(L.CheckNumber(n + 2)),
		A: float32(L.OptNumber(n+3, 1)),
	}
}

func (s *ScriptState) luaSetClearColor(L *lua.LState) int {
	s.video.SetClearColor(checkColor(L, 1))
	return 0
}

func (s *ScriptState) luaSetColor(L *lua.LState) int {
	s.video.SetColor(checkColor(L, 1))
	return 0
}

func (s *ScriptState) luaDrawRect(L *lua.LState) int {
	tl := Point2f{float32(L.CheckNumber(1)), float32(L.CheckNumber(2))}
	br := Point2f{float32(L.CheckNumber(3)), float32(L.CheckNumber(4))}
	c := ColorWhite
	if L.GetTop() >= 7 {
		c = checkColor(L, 5)
	}
	q := NewRect2D(tl, br, c)
	q.Video = s.video
	if err := s.video.Render(q); err != nil {
		L.RaiseError("draw_rect: %v", err)
	}
	return 0
}

func (s *ScriptState) luaPopState(L *lua.LState) int {
	if _, err := s.game.PopState(); err != nil {
		L.RaiseError("pop_state: %v", err)
	}
	return 0
}

func (s *ScriptState) luaFPS(L *lua.LState) int {
	L.Push(lua.LNumber(s.game.FPS()))
	return 1
}

func (s *ScriptState) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.Get(i).String())
	}
	Logger().Info(strings.Join(parts, " "), "script", s.name)
	return 0
}
