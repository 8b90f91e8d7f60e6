package zeni

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func scriptVideo(t *testing.T) (*Video, *fakeGL, *fakeD3D) {
	t.Helper()
	v := NewVideo(NewTextures())
	gl, dx := newFakeGL(Point2i{320, 240}), newFakeD3D(Point2i{320, 240})
	require.NoError(t, v.Init(testVideoConfig("auto"), &fakeSurface{}, gl, dx))
	t.Cleanup(func() { _ = v.Uninit() })
	return v, gl, dx
}

const demoScript = `
logic = 0
last_key = ""
last_text = ""

function on_event(ev)
  if ev.type == "KeyDown" then last_key = ev.key end
  if ev.type == "TextInput" then last_text = ev.text end
end

function perform_logic()
  logic = logic + 1
  if logic == 3 then zeni.pop_state() end
end

function render()
  zeni.set_clear_color(0.25, 0.5, 0.75)
  zeni.set_color(1, 0, 0, 0.5)
  zeni.log("frame", zeni.fps())
end
`

func TestScriptState_Callbacks(t *testing.T) {
	v, _, _ := scriptVideo(t)
	g := NewGame()
	s, err := NewScriptState("demo", demoScript, g, v)
	require.NoError(t, err)
	defer s.Close()
	g.PushState(s)

	require.NoError(t, g.OnEvent(Event{Type: EventKeyDown, Key: KeyQ}))
	require.NoError(t, g.OnEvent(Event{Type: EventTextInput, Text: "héllo"}))
	assert.Equal(t, lua.LString("Q"), s.L.GetGlobal("last_key"))
	assert.Equal(t, lua.LString("héllo"), s.L.GetGlobal("last_text"))

	require.NoError(t, g.Render())
	assert.Equal(t, Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, v.ClearColor())
	assert.Equal(t, Color{R: 1, G: 0, B: 0, A: 0.5}, v.Color())

	require.NoError(t, g.PerformLogic())
	require.NoError(t, g.PerformLogic())
	assert.Equal(t, 1, g.Size())
	require.NoError(t, g.PerformLogic())
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, lua.LNumber(3), s.L.GetGlobal("logic"))
}

func TestScriptState_MissingCallbacksAreSkipped(t *testing.T) {
	v, _, _ := scriptVideo(t)
	s, err := NewScriptState("empty", "", NewGame(), v)
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.OnEvent(Event{Type: EventQuit}))
	assert.NoError(t, s.PerformLogic())
	assert.NoError(t, s.Render())
}

func TestScriptState_Errors(t *testing.T) {
	v, _, _ := scriptVideo(t)
	_, err := NewScriptState("broken", "function (", NewGame(), v)
	assert.Error(t, err)

	g := NewGame()
	s, err := NewScriptState("raise", `function perform_logic() error("nope") end
function render() zeni.pop_state() end`, g, v)
	require.NoError(t, err)
	defer s.Close()

	err = s.PerformLogic()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "perform_logic")

	// Popping an empty stack surfaces as a script error.
	err = s.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrZeroGamestate.Error())
}

func TestScriptState_DrawRect(t *testing.T) {
	v, gl, dx := scriptVideo(t)
	s, err := NewScriptState("rect", `function render()
  zeni.draw_rect(10, 10, 50, 30, 0, 1, 0, 1)
end`, NewGame(), v)
	require.NoError(t, err)
	defer s.Close()

	v.Set2D()
	require.NoError(t, v.BeginRender())
	require.NoError(t, s.Render())
	require.NoError(t, v.EndRender())

	switch v.Mode() {
	case VideoGL:
		assert.Equal(t, 2, gl.sink.triangles)
	case VideoDX9:
		assert.Equal(t, 2, dx.sink.triangles)
	}
}

func TestScriptState_LifecycleHooks(t *testing.T) {
	v, _, _ := scriptVideo(t)
	g := NewGame()
	s, err := NewScriptState("life", `pushed = 0
popped = 0
function on_push() pushed = pushed + 1 end
function on_pop() popped = popped + 1 end`, g, v)
	require.NoError(t, err)
	defer s.Close()

	g.PushState(s)
	_, err = g.PopState()
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), s.L.GetGlobal("pushed"))
	assert.Equal(t, lua.LNumber(1), s.L.GetGlobal("popped"))
}

func TestLoadScriptState(t *testing.T) {
	v, _, _ := scriptVideo(t)
	path := filepath.Join(t.TempDir(), "state.lua")
	require.NoError(t, os.WriteFile(path, []byte("ready = true"), 0o644))

	s, err := LoadScriptState(path, NewGame(), v)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, lua.LTrue, s.L.GetGlobal("ready"))

	_, err = LoadScriptState(filepath.Join(t.TempDir(), "missing.lua"), NewGame(), v)
	assert.Error(t, err)
}
