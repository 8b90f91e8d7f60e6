package zeni

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform hands out fake devices and replays queued input.
type fakePlatform struct {
	gl      *fakeGL
	dx      *fakeD3D
	surface *fakeSurface
	openErr error
	input   []Event
	forgot  []*Texture
}

func newFakePlatform() *fakePlatform {
	size := Point2i{320, 240}
	return &fakePlatform{gl: newFakeGL(size), dx: newFakeD3D(size), surface: &fakeSurface{size: size}}
}

func (p *fakePlatform) open(VideoConfig) (DisplaySurface, GLDevice, D3DDevice, error) {
	if p.openErr != nil {
		return nil, nil, nil, p.openErr
	}
	return p.surface, p.gl, p.dx, nil
}

func (p *fakePlatform) events(dst []Event) []Event {
	dst = append(dst, p.input...)
	p.input = p.input[:0]
	return dst
}

func (p *fakePlatform) forget(t *Texture) { p.forgot = append(p.forgot, t) }

func testAppConfig() Config {
	cfg := DefaultConfig()
	cfg.Video = testVideoConfig("auto")
	return cfg
}

func newTestApp(t *testing.T, cfg Config) (*App, *fakePlatform, *fakeGamepads, *fakeOutput) {
	t.Helper()
	p := newFakePlatform()
	pads := newFakeGamepads()
	out := &fakeOutput{}
	a := newApp(cfg, p, newJoysticks(pads))
	a.sound.newOutput = func(int, time.Duration, *Sound) (audioOutput, error) { return out, nil }
	return a, p, pads, out
}

func TestApp_InitAndUninit(t *testing.T) {
	a, p, _, out := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	assert.True(t, a.Video().IsInitialized())
	assert.True(t, a.Sound().IsInitialized())
	assert.True(t, out.IsStarted())
	assert.True(t, a.Joysticks().IsEnabled())
	assert.Equal(t, "Zenilib Application", p.surface.title)
	assert.ErrorIs(t, a.Init(), ErrAlreadyInitialized)

	s := &lifecycleState{}
	a.Game().PushState(s)
	a.Uninit()
	assert.Equal(t, 1, s.pops)
	assert.False(t, a.Video().IsInitialized())
	assert.False(t, a.Sound().IsInitialized())
	assert.True(t, out.closed)
	assert.False(t, a.Joysticks().IsEnabled())
	assert.Equal(t, 1, p.surface.closes)

	// A second Uninit is a no-op.
	a.Uninit()
	assert.Equal(t, 1, p.surface.closes)
}

func TestApp_InitFailuresUnwind(t *testing.T) {
	a, p, _, _ := newTestApp(t, testAppConfig())
	p.openErr = errors.New("no display")
	err := a.Init()
	assert.ErrorIs(t, err, ErrVideoInit)
	assert.Contains(t, err.Error(), "no display")

	// Sound failing takes video back down.
	a, p, _, _ = newTestApp(t, testAppConfig())
	a.sound.newOutput = func(int, time.Duration, *Sound) (audioOutput, error) {
		return nil, errors.New("no audio device")
	}
	assert.ErrorIs(t, a.Init(), ErrSoundInit)
	assert.False(t, a.Video().IsInitialized())
	assert.Equal(t, 1, p.surface.closes)

	cfg := testAppConfig()
	cfg.Video.Width = 0
	a, _, _, _ = newTestApp(t, cfg)
	assert.Error(t, a.Init())
	assert.False(t, a.Video().IsInitialized())
}

func TestApp_JoysticksDisabledByConfig(t *testing.T) {
	cfg := testAppConfig()
	cfg.Joysticks.Enabled = false
	a, _, pads, _ := newTestApp(t, cfg)
	pads.plug(1, pad("pad", 1, 1))
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	a.Game().PushState(&recordingState{})
	require.NoError(t, a.step())
	assert.Equal(t, 0, a.Joysticks().Count())
}

func TestApp_StepDispatchesInputThenLogic(t *testing.T) {
	a, p, pads, _ := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	pads.plug(4, pad("pad", 1, 2))
	s := &recordingState{}
	a.Game().PushState(s)
	p.input = append(p.input, Event{Type: EventKeyDown, Key: KeySpace})
	a.PostEvent(Event{Type: EventTextInput, Text: "x"})

	require.NoError(t, a.step())
	assert.Equal(t, []Event{
		{Type: EventKeyDown, Key: KeySpace},
		{Type: EventTextInput, Text: "x"},
		{Type: EventJoyDeviceAdded, Joystick: 0},
	}, s.events)
	assert.Equal(t, 1, s.logic)

	require.NoError(t, a.frame())
	assert.Equal(t, 1, s.renders)
}

func TestApp_StepStopsOnQuitOrEmptyStack(t *testing.T) {
	a, _, _, _ := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	assert.ErrorIs(t, a.step(), errQuit)

	s := &recordingState{}
	a.Game().PushState(s)
	a.PostEvent(Event{Type: EventQuit})
	assert.ErrorIs(t, a.step(), errQuit)
	// The state still sees the Quit event but no more logic runs.
	assert.Equal(t, []Event{{Type: EventQuit}}, s.events)
	assert.Equal(t, 0, s.logic)

	// A state that pops itself ends the loop after its logic.
	b, _, _, _ := newTestApp(t, testAppConfig())
	require.NoError(t, b.Init())
	t.Cleanup(b.Uninit)
	last := &recordingState{}
	last.onLogic = func() { _, _ = b.Game().PopState() }
	b.Game().PushState(last)
	assert.ErrorIs(t, b.step(), errQuit)
}

func TestApp_StepReportsStateErrors(t *testing.T) {
	a, _, _, _ := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	boom := errors.New("boom")
	a.Game().PushState(&recordingState{renderErr: boom})
	require.NoError(t, a.step())
	assert.ErrorIs(t, a.frame(), boom)
}

func TestApp_ApplyConfigReappliesMappings(t *testing.T) {
	a, _, pads, _ := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)

	cfg := a.Config()
	cfg.Joysticks.Mappings = []string{"guid,Pad,a:b0,"}
	cfg.Audio.MasterGain = 0.5
	cfg.Log.Level = "debug"
	require.NoError(t, a.ApplyConfig(cfg))
	assert.Equal(t, []string{"guid,Pad,a:b0,"}, pads.mappings)
	assert.Equal(t, float32(0.5), a.Sound().MasterGain())
	assert.Equal(t, "debug", a.Config().Log.Level)
	assert.Equal(t, "DEBUG", LogLevel().Level().String())
	LogLevel().Set(0)

	cfg.Audio.MasterGain = -1
	assert.Error(t, a.ApplyConfig(cfg))
}

func TestApp_ReloadAppliedOnNextStep(t *testing.T) {
	a, _, _, _ := newTestApp(t, testAppConfig())
	require.NoError(t, a.Init())
	t.Cleanup(a.Uninit)
	a.Game().PushState(&recordingState{})

	cfg := a.Config()
	cfg.Audio.MasterGain = 0.25
	a.reloads <- cfg
	assert.Equal(t, float32(1), a.Sound().MasterGain())
	require.NoError(t, a.step())
	assert.Equal(t, float32(0.25), a.Sound().MasterGain())
}

func TestApp_UnloadTexture(t *testing.T) {
	a, p, _, _ := newTestApp(t, testAppConfig())
	path := writePNG(t, t.TempDir(), "t.png", 2, 2)
	tex, err := a.Textures().Load("t", path, false, false)
	require.NoError(t, err)

	require.NoError(t, a.UnloadTexture("t"))
	assert.Equal(t, []*Texture{tex}, p.forgot)
	assert.ErrorIs(t, a.UnloadTexture("t"), ErrTextureNotFound)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
