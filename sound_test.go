package zeni

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	started bool
	closed  bool
}

func (f *fakeOutput) Start()          { f.started = true }
func (f *fakeOutput) Stop()           { f.started = false }
func (f *fakeOutput) Close()          { f.closed = true; f.started = false }
func (f *fakeOutput) IsStarted() bool { return f.started }

func testSound(rate int) (*Sound, *fakeOutput) {
	out := &fakeOutput{}
	s := NewSound(AudioConfig{SampleRate: rate, BufferSizeMS: 20, MasterGain: 1})
	s.newOutput = func(int, time.Duration, *Sound) (audioOutput, error) { return out, nil }
	return s, out
}

func constBuffer(t *testing.T, v float32, frames, rate int) *SoundBuffer {
	t.Helper()
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = v
	}
	b, err := NewSoundBuffer(samples, 1, rate)
	require.NoError(t, err)
	return b
}

func TestSound_InitLifecycle(t *testing.T) {
	s, out := testSound(100)
	require.NoError(t, s.Init())
	assert.True(t, s.IsInitialized())
	assert.ErrorIs(t, s.Init(), ErrAlreadyInitialized)

	s.Start()
	assert.True(t, out.IsStarted())

	src := s.Play(constBuffer(t, 0.5, 10, 100), Point3f{})
	s.Uninit()
	assert.True(t, out.closed)
	assert.False(t, s.IsInitialized())
	assert.True(t, src.IsStopped())
	assert.Equal(t, 0, s.SourceCount())
}

func TestSound_InitErrors(t *testing.T) {
	s, _ := testSound(0)
	assert.ErrorIs(t, s.Init(), ErrSoundInit)

	s, _ = testSound(44100)
	s.newOutput = func(int, time.Duration, *Sound) (audioOutput, error) {
		return nil, errors.New("no device")
	}
	err := s.Init()
	assert.ErrorIs(t, err, ErrSoundInit)
	assert.Contains(t, err.Error(), "no device")
}

func TestSoundBuffer_Validation(t *testing.T) {
	_, err := NewSoundBuffer(make([]float32, 3), 2, 44100)
	assert.ErrorIs(t, err, ErrSoundInit)
	_, err = NewSoundBuffer(nil, 3, 44100)
	assert.ErrorIs(t, err, ErrSoundInit)
	_, err = NewSoundBuffer(nil, 1, 0)
	assert.ErrorIs(t, err, ErrSoundInit)

	b := HelloWorldBuffer(8000)
	assert.Equal(t, 1, b.Channels())
	assert.Equal(t, 4000, b.Frames())
	d, err := b.Duration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestSoundBuffer_LoadsInBackground(t *testing.T) {
	release := make(chan struct{})
	b := LoadSoundBuffer(func() ([]float32, int, int, error) {
		<-release
		return []float32{0.1, 0.2, 0.3, 0.4}, 2, 100, nil
	})
	assert.False(t, b.isReady())

	// The mixer skips a source whose buffer is still decoding.
	src := NewSoundSource(b)
	src.Play()
	dst := make([]float32, 4)
	src.mixInto(dst, 100, listener{left: Vector3f{0, 1, 0}}, 1)
	assert.Equal(t, []float32{0, 0, 0, 0}, dst)
	assert.True(t, src.IsPlaying())

	close(release)
	assert.Equal(t, 2, b.Frames())
	assert.True(t, b.isReady())

	failed := LoadSoundBuffer(func() ([]float32, int, int, error) {
		return nil, 0, 0, errors.New("corrupt")
	})
	_, err := failed.Samples()
	assert.EqualError(t, err, "corrupt")
	assert.Equal(t, 0, failed.Channels())
}

func TestAttenuation_Clamped(t *testing.T) {
	assert.Equal(t, float32(1), attenuation(0, 10, 100, 1))
	assert.Equal(t, float32(1), attenuation(10, 10, 100, 1))
	assert.InDelta(t, 0.5, attenuation(20, 10, 100, 1), 1e-6)
	// Beyond far the gain stops falling.
	assert.InDelta(t, 0.1, attenuation(100, 10, 100, 1), 1e-6)
	assert.InDelta(t, 0.1, attenuation(5000, 10, 100, 1), 1e-6)
	// No rolloff means no attenuation.
	assert.Equal(t, float32(1), attenuation(50, 10, 100, 0))
}

func TestSound_MixPlaysToEndAndStops(t *testing.T) {
	s, _ := testSound(100)
	src := s.Play(constBuffer(t, 0.5, 3, 100), Point3f{})

	dst := make([]float32, 10)
	s.Mix(dst)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0, 0, 0, 0}, dst)
	assert.True(t, src.IsStopped())
	assert.Equal(t, time.Duration(0), src.Time())
}

func TestSound_MixLoops(t *testing.T) {
	s, _ := testSound(100)
	b, err := NewSoundBuffer([]float32{0.1, 0.2}, 1, 100)
	require.NoError(t, err)
	src := NewSoundSource(b)
	src.SetLooping(true)
	s.AddSource(src)
	s.AddSource(src)
	assert.Equal(t, 1, s.SourceCount())
	src.Play()

	dst := make([]float32, 10)
	s.Mix(dst)
	want := []float32{0.1, 0.1, 0.2, 0.2, 0.1, 0.1, 0.2, 0.2, 0.1, 0.1}
	assert.InDeltaSlice(t, want, dst, 1e-6)
	assert.True(t, src.IsPlaying())
}

func TestSound_PitchResamples(t *testing.T) {
	s, _ := testSound(100)
	b, err := NewSoundBuffer([]float32{0.1, 0.2, 0.3, 0.4}, 1, 100)
	require.NoError(t, err)
	src := s.Play(b, Point3f{})
	src.SetPitch(2)
	src.SetPitch(-1)
	assert.Equal(t, float32(2), src.Pitch())

	dst := make([]float32, 4)
	s.Mix(dst)
	assert.InDeltaSlice(t, []float32{0.1, 0.1, 0.3, 0.3}, dst, 1e-6)
}

func TestSound_PansByListenerOrientation(t *testing.T) {
	s, _ := testSound(100)
	// Facing +X with +Z up puts +Y on the listener's left.
	src := s.Play(constBuffer(t, 0.5, 100, 100), Point3f{Y: 5})

	dst := make([]float32, 2)
	s.Mix(dst)
	assert.InDelta(t, 0.5, dst[0], 1e-6)
	assert.InDelta(t, 0, dst[1], 1e-6)

	// Turning around swaps the channels.
	s.SetListener(Point3f{}, Vector3f{}, Vector3f{-1, 0, 0}, Vector3f{0, 0, 1})
	s.Mix(dst)
	assert.InDelta(t, 0, dst[0], 1e-6)
	assert.InDelta(t, 0.5, dst[1], 1e-6)

	src.SetPosition(Point3f{X: 5})
	s.Mix(dst)
	assert.InDelta(t, 0.5, dst[0], 1e-6)
	assert.InDelta(t, 0.5, dst[1], 1e-6)
}

func TestSound_GainAndClip(t *testing.T) {
	s, _ := testSound(100)
	a := s.Play(constBuffer(t, 0.8, 10, 100), Point3f{})
	s.Play(constBuffer(t, 0.8, 10, 100), Point3f{})

	dst := make([]float32, 2)
	s.Mix(dst)
	assert.Equal(t, []float32{1, 1}, dst)

	s.SetMasterGain(0.25)
	a.SetGain(0)
	s.Mix(dst)
	assert.InDeltaSlice(t, []float32{0.2, 0.2}, dst, 1e-6)

	s.SetMasterGain(-3)
	assert.Equal(t, float32(0), s.MasterGain())
}

func TestSound_PauseAndSeek(t *testing.T) {
	s, _ := testSound(100)
	b, err := NewSoundBuffer([]float32{0.1, 0.2, 0.3, 0.4}, 1, 100)
	require.NoError(t, err)
	src := s.Play(b, Point3f{})

	dst := make([]float32, 2)
	s.Mix(dst)
	src.Pause()
	s.Mix(dst)
	assert.Equal(t, []float32{0, 0}, dst)
	assert.Equal(t, 10*time.Millisecond, src.Time())

	src.SetTime(30 * time.Millisecond)
	src.Play()
	s.Mix(dst)
	assert.InDeltaSlice(t, []float32{0.4, 0.4}, dst, 1e-6)

	s.RemoveSource(src)
	assert.Equal(t, 0, s.SourceCount())
}

func TestSound_ReadEncodesFloat32LE(t *testing.T) {
	s, _ := testSound(100)
	s.Play(constBuffer(t, 0.25, 10, 100), Point3f{})

	p := make([]byte, 19)
	n, err := s.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	for i := 0; i < n; i += 4 {
		assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(p[i:])))
	}
}
