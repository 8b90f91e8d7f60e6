// sound.go - Listener, source registry and stereo mixer

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
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/chewxy/math32"
)

// audioOutput plays what a Sound mixes. Implementations pull from the
// io.Reader they were created with on their own goroutine.
type audioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// Sound mixes every registered SoundSource into interleaved stereo float32
// frames. It implements io.Reader so an audio output can pull from it
// directly.
type Sound struct {
	mu  *Mutex
	cfg AudioConfig

	position Point3f
	velocity Vector3f
	forward  Vector3f
	up       Vector3f
	master   float32

	sources []*SoundSource
	mixBuf  []float32
	output  audioOutput

	// newOutput opens the platform output; tests replace it.
	newOutput func(sampleRate int, buffer time.Duration, s *Sound) (audioOutput, error)
}

func NewSound(cfg AudioConfig) *Sound {
	return &Sound{
		mu:        NewMutex(),
		cfg:       cfg,
		forward:   cameraForward,
		up:        cameraUp,
		master:    cfg.MasterGain,
		newOutput: openAudioOutput,
	}
}

// Init opens the audio output and starts playback.
func (s *Sound) Init() error {
	return s.mu.Do(func() error {
		if s.output != nil {
			return ErrAlreadyInitialized
		}
		if s.cfg.SampleRate <= 0 {
			return fmt.Errorf("%w: sample rate %d", ErrSoundInit, s.cfg.SampleRate)
		}
		buf := time.Duration(s.cfg.BufferSizeMS) * time.Millisecond
		out, err := s.newOutput(s.cfg.SampleRate, buf, s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSoundInit, err)
		}
		s.output = out
		Logger().Info("audio ready", "sample_rate", s.cfg.SampleRate, "buffer", buf)
		return nil
	})
}

// Start begins pulling audio. It is separate from Init so the output
// lock is not held while the player spins up.
func (s *Sound) Start() {
	if out := s.currentOutput(); out != nil {
		out.Start()
	}
}

func (s *Sound) currentOutput() audioOutput {
	var out audioOutput
	_ = s.mu.Do(func() error {
		out = s.output
		return nil
	})
	return out
}

// Uninit stops every source and closes the output.
func (s *Sound) Uninit() {
	var out audioOutput
	var sources []*SoundSource
	_ = s.mu.Do(func() error {
		out, s.output = s.output, nil
		sources, s.sources = s.sources, nil
		return nil
	})
	if out != nil {
		out.Close()
	}
	for _, src := range sources {
		src.Stop()
	}
}

func (s *Sound) IsInitialized() bool {
	return s.currentOutput() != nil
}

func (s *Sound) SampleRate() int { return s.cfg.SampleRate }

// SetListener places the listener. forward and up need not be unit length
// but must not be parallel.
func (s *Sound) SetListener(position Point3f, velocity, forward, up Vector3f) {
	_ = s.mu.Do(func() error {
		s.position, s.velocity = position, velocity
		s.forward, s.up = forward.Normalize(), up.Normalize()
		return nil
	})
}

func (s *Sound) SetListenerPosition(p Point3f) {
	_ = s.mu.Do(func() error {
		s.position = p
		return nil
	})
}

func (s *Sound) ListenerPosition() Point3f {
	var p Point3f
	_ = s.mu.Do(func() error {
		p = s.position
		return nil
	})
	return p
}

func (s *Sound) ListenerVelocity() Vector3f {
	var v Vector3f
	_ = s.mu.Do(func() error {
		v = s.velocity
		return nil
	})
	return v
}

// ListenerOrientation returns the forward and up vectors.
func (s *Sound) ListenerOrientation() (forward, up Vector3f) {
	_ = s.mu.Do(func() error {
		forward, up = s.forward, s.up
		return nil
	})
	return forward, up
}

func (s *Sound) SetMasterGain(g float32) {
	_ = s.mu.Do(func() error {
		s.master = math32.Max(g, 0)
		return nil
	})
}

func (s *Sound) MasterGain() float32 {
	var g float32
	_ = s.mu.Do(func() error {
		g = s.master
		return nil
	})
	return g
}

// AddSource registers src with the mixer. Adding a source twice is a no-op.
func (s *Sound) AddSource(src *SoundSource) {
	_ = s.mu.Do(func() error {
		for _, have := range s.sources {
			if have == src {
				return nil
			}
		}
		s.sources = append(s.sources, src)
		return nil
	})
}

func (s *Sound) RemoveSource(src *SoundSource) {
	_ = s.mu.Do(func() error {
		for i, have := range s.sources {
			if have == src {
				s.sources = append(s.sources[:i], s.sources[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Play is a shortcut that registers a new source for buf and starts it.
func (s *Sound) Play(buf *SoundBuffer, position Point3f) *SoundSource {
	src := NewSoundSource(buf)
	src.SetPosition(position)
	s.AddSource(src)
	src.Play()
	return src
}

func (s *Sound) SourceCount() int {
	var n int
	_ = s.mu.Do(func() error {
		n = len(s.sources)
		return nil
	})
	return n
}

// Mix fills dst with interleaved stereo frames, clipped to [-1,1].
func (s *Sound) Mix(dst []float32) {
	clear(dst)
	_ = s.mu.Do(func() error {
		l := listener{position: s.position, left: s.up.Cross(s.forward)}
		for _, src := range s.sources {
			src.mixInto(dst, s.cfg.SampleRate, l, s.master)
		}
		return nil
	})
	for i, v := range dst {
		dst[i] = math32.Max(-1, math32.Min(1, v))
	}
}

// Read mixes len(p)/8 stereo frames as little-endian float32.
func (s *Sound) Read(p []byte) (int, error) {
	n := len(p) / 4 &^ 1
	if cap(s.mixBuf) < n {
		s.mixBuf = make([]float32, n)
	}
	buf := s.mixBuf[:n]
	s.Mix(buf)
	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}
