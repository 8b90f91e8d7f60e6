// sound_buffer.go - PCM sample storage shared by sound sources

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
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
)

// SoundLoader produces interleaved float32 samples in [-1,1].
type SoundLoader func() (samples []float32, channels, sampleRate int, err error)

// SoundBuffer holds decoded audio. A buffer created by LoadSoundBuffer
// decodes in the background; the first call that needs the samples waits
// for it.
type SoundBuffer struct {
	samples    []float32
	channels   int
	sampleRate int

	ready  *Semaphore
	done   atomic.Bool
	finish sync.Once
	err    error
}

func NewSoundBuffer(samples []float32, channels, sampleRate int) (*SoundBuffer, error) {
	if err := checkSoundFormat(len(samples), channels, sampleRate); err != nil {
		return nil, err
	}
	b := &SoundBuffer{samples: samples, channels: channels, sampleRate: sampleRate}
	b.finish.Do(func() {})
	b.done.Store(true)
	return b, nil
}

// LoadSoundBuffer starts loader on its own goroutine and returns at once.
func LoadSoundBuffer(loader SoundLoader) *SoundBuffer {
	b := &SoundBuffer{ready: NewSemaphore(0)}
	go func() {
		samples, channels, rate, err := loader()
		if err == nil {
			err = checkSoundFormat(len(samples), channels, rate)
		}
		b.samples, b.channels, b.sampleRate, b.err = samples, channels, rate, err
		b.done.Store(true)
		if err := b.ready.Up(); err != nil {
			Logger().Error("sound buffer ready signal lost", "err", err)
		}
	}()
	return b
}

func checkSoundFormat(n, channels, sampleRate int) error {
	switch {
	case channels < 1 || channels > 2:
		return fmt.Errorf("%w: %d channels", ErrSoundInit, channels)
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrSoundInit, sampleRate)
	case n%channels != 0:
		return fmt.Errorf("%w: %d samples do not fill %d channels", ErrSoundInit, n, channels)
	}
	return nil
}

// isReady reports whether a background load has finished, successfully or
// not, without blocking.
func (b *SoundBuffer) isReady() bool {
	return b.done.Load()
}

// wait blocks until a background load has finished.
func (b *SoundBuffer) wait() error {
	b.finish.Do(func() {
		if err := b.ready.Down(); err != nil {
			b.err = err
		}
	})
	return b.err
}

// Samples returns the interleaved samples. The slice must not be modified.
func (b *SoundBuffer) Samples() ([]float32, error) {
	if err := b.wait(); err != nil {
		return nil, err
	}
	return b.samples, nil
}

func (b *SoundBuffer) Channels() int {
	if b.wait() != nil {
		return 0
	}
	return b.channels
}

func (b *SoundBuffer) SampleRate() int {
	if b.wait() != nil {
		return 0
	}
	return b.sampleRate
}

// Frames is the number of samples per channel.
func (b *SoundBuffer) Frames() int {
	if b.wait() != nil {
		return 0
	}
	return len(b.samples) / b.channels
}

func (b *SoundBuffer) Duration() (time.Duration, error) {
	if err := b.wait(); err != nil {
		return 0, err
	}
	return time.Duration(len(b.samples)/b.channels) * time.Second / time.Duration(b.sampleRate), nil
}

// HelloWorldBuffer is a short two-note mono chime used when no sound file
// is at hand. sampleRate must be positive.
func HelloWorldBuffer(sampleRate int) *SoundBuffer {
	const noteLen = 0.25
	notes := [...]float32{523.25, 783.99} // C5, G5
	per := int(noteLen * float32(sampleRate))
	samples := make([]float32, 0, per*len(notes))
	for _, f := range notes {
		for i := 0; i < per; i++ {
			t := float32(i) / float32(sampleRate)
			env := math32.Exp(-6 * t / noteLen)
			samples = append(samples, 0.5*env*math32.Sin(2*math32.Pi*f*t))
		}
	}
	b, err := NewSoundBuffer(samples, 1, sampleRate)
	if err != nil {
		panic(err)
	}
	return b
}
