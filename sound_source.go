// sound_source.go - Positional playback of a SoundBuffer

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

	"github.com/chewxy/math32"
)

type SourceState int

const (
	SourceStopped SourceState = iota
	SourcePlaying
	SourcePaused
)

// Default distance model parameters of a new source.
const (
	DefaultNearClamp = 10
	DefaultFarClamp  = 1000
	DefaultRolloff   = 1
)

// SoundSource plays one buffer at a position in the world. All methods are
// safe for concurrent use; the mixer reads sources from the audio
// goroutine while the game loop changes them.
type SoundSource struct {
	mu *Mutex

	buffer   *SoundBuffer
	pitch    float32
	gain     float32
	position Point3f
	velocity Vector3f
	looping  bool

	nearClamp float32
	farClamp  float32
	rolloff   float32

	state  SourceState
	cursor float64 // in buffer frames
}

func NewSoundSource(buf *SoundBuffer) *SoundSource {
	return &SoundSource{
		mu:        NewMutex(),
		buffer:    buf,
		pitch:     1,
		gain:      1,
		nearClamp: DefaultNearClamp,
		farClamp:  DefaultFarClamp,
		rolloff:   DefaultRolloff,
	}
}

// locked runs fn under the source lock.
func (s *SoundSource) locked(fn func()) {
	_ = s.mu.Do(func() error {
		fn()
		return nil
	})
}

// SetBuffer swaps the buffer and rewinds.
func (s *SoundSource) SetBuffer(buf *SoundBuffer) {
	s.locked(func() {
		s.buffer = buf
		s.cursor = 0
	})
}

func (s *SoundSource) Buffer() (b *SoundBuffer) {
	s.locked(func() { b = s.buffer })
	return b
}

// SetPitch scales playback speed; non-positive values are ignored.
func (s *SoundSource) SetPitch(p float32) {
	if p <= 0 {
		return
	}
	s.locked(func() { s.pitch = p })
}

func (s *SoundSource) SetGain(g float32)        { s.locked(func() { s.gain = math32.Max(g, 0) }) }
func (s *SoundSource) SetPosition(p Point3f)    { s.locked(func() { s.position = p }) }
func (s *SoundSource) SetVelocity(v Vector3f)   { s.locked(func() { s.velocity = v }) }
func (s *SoundSource) SetLooping(on bool)       { s.locked(func() { s.looping = on }) }
func (s *SoundSource) SetRolloff(r float32)     { s.locked(func() { s.rolloff = math32.Max(r, 0) }) }
func (s *SoundSource) Pitch() (p float32)       { s.locked(func() { p = s.pitch }); return p }
func (s *SoundSource) Gain() (g float32)        { s.locked(func() { g = s.gain }); return g }
func (s *SoundSource) Position() (p Point3f)    { s.locked(func() { p = s.position }); return p }
func (s *SoundSource) Velocity() (v Vector3f)   { s.locked(func() { v = s.velocity }); return v }
func (s *SoundSource) IsLooping() (on bool)     { s.locked(func() { on = s.looping }); return on }
func (s *SoundSource) NearClamp() (d float32)   { s.locked(func() { d = s.nearClamp }); return d }
func (s *SoundSource) FarClamp() (d float32)    { s.locked(func() { d = s.farClamp }); return d }
func (s *SoundSource) Rolloff() (r float32)     { s.locked(func() { r = s.rolloff }); return r }
func (s *SoundSource) State() (st SourceState)  { s.locked(func() { st = s.state }); return st }
func (s *SoundSource) IsPlaying() bool          { return s.State() == SourcePlaying }
func (s *SoundSource) IsPaused() bool           { return s.State() == SourcePaused }
func (s *SoundSource) IsStopped() bool          { return s.State() == SourceStopped }

// SetClamps sets the distances inside which the source plays at full gain
// and beyond which it gets no quieter. far is raised to near if smaller.
func (s *SoundSource) SetClamps(near, far float32) {
	near = math32.Max(near, 0)
	far = math32.Max(far, near)
	s.locked(func() {
		s.nearClamp, s.farClamp = near, far
	})
}

// SetTime seeks to d from the start of the buffer.
func (s *SoundSource) SetTime(d time.Duration) {
	rate := s.Buffer().SampleRate()
	s.locked(func() {
		s.cursor = max(0, float64(d)*float64(rate)/float64(time.Second))
	})
}

// Time is the playback position from the start of the buffer.
func (s *SoundSource) Time() time.Duration {
	rate := s.Buffer().SampleRate()
	if rate == 0 {
		return 0
	}
	var cursor float64
	s.locked(func() { cursor = s.cursor })
	return time.Duration(cursor * float64(time.Second) / float64(rate))
}

// Play starts from the beginning when stopped and resumes when paused.
func (s *SoundSource) Play() {
	s.locked(func() {
		if s.state == SourceStopped {
			s.cursor = 0
		}
		s.state = SourcePlaying
	})
}

func (s *SoundSource) Pause() {
	s.locked(func() {
		if s.state == SourcePlaying {
			s.state = SourcePaused
		}
	})
}

func (s *SoundSource) Stop() {
	s.locked(func() {
		s.state = SourceStopped
		s.cursor = 0
	})
}

// attenuation is the inverse distance clamped model: full gain inside
// near, rolling off as near/(near+rolloff*(d-near)) until far.
func attenuation(dist, near, far, rolloff float32) float32 {
	d := math32.Min(math32.Max(dist, near), far)
	den := near + rolloff*(d-near)
	if den <= 0 {
		return 1
	}
	return near / den
}

// listener is the mixer's view of the listener for one block.
type listener struct {
	position Point3f
	left     Vector3f
}

// mixInto adds this source's next len(dst)/2 stereo frames to dst at the
// output rate. A source that runs off the end of a non-looping buffer
// stops.
func (s *SoundSource) mixInto(dst []float32, rate int, l listener, master float32) {
	_ = s.mu.Do(func() error {
		if s.state != SourcePlaying || s.buffer == nil || !s.buffer.isReady() {
			return nil
		}
		samples, err := s.buffer.Samples()
		if err != nil || len(samples) == 0 {
			s.state = SourceStopped
			return nil
		}
		ch := s.buffer.Channels()
		frames := float64(len(samples) / ch)

		rel := s.position.Vec3().Sub(l.position.Vec3())
		dist := rel.Len()
		g := s.gain * master * attenuation(dist, s.nearClamp, s.farClamp, s.rolloff)
		// Balance law: a centred source plays at g on both sides, a source
		// hard left silences the right channel.
		var pan float32
		if dist > 0 {
			pan = rel.Normalize().Dot(l.left)
		}
		gl := g * math32.Min(1, 1+pan)
		gr := g * math32.Min(1, 1-pan)

		step := float64(s.pitch) * float64(s.buffer.SampleRate()) / float64(rate)
		for i := 0; i+1 < len(dst); i += 2 {
			if s.cursor >= frames {
				if !s.looping {
					s.state = SourceStopped
					s.cursor = 0
					return nil
				}
				s.cursor -= frames
			}
			f := int(s.cursor)
			left := samples[f*ch]
			right := left
			if ch == 2 {
				right = samples[f*ch+1]
			}
			dst[i] += left * gl
			dst[i+1] += right * gr
			s.cursor += step
		}
		return nil
	})
}
