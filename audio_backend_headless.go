//go:build headless

// audio_backend_headless.go - Audio output that drains the mixer in real time

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
	"io"
	"sync"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

// HeadlessPlayer reads from its source at the playback rate and discards
// the result, so sources advance and finish as they would on a device.
type HeadlessPlayer struct {
	src     io.Reader
	chunk   int
	period  time.Duration
	mutex   sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

func NewHeadlessPlayer(sampleRate int, bufferSize time.Duration, src io.Reader) *HeadlessPlayer {
	if bufferSize <= 0 {
		bufferSize = 20 * time.Millisecond
	}
	frames := int(int64(sampleRate) * int64(bufferSize) / int64(time.Second))
	return &HeadlessPlayer{src: src, chunk: max(frames, 1) * 8, period: bufferSize}
}

func openAudioOutput(sampleRate int, buffer time.Duration, s *Sound) (audioOutput, error) {
	return NewHeadlessPlayer(sampleRate, buffer, s), nil
}

func (hp *HeadlessPlayer) Start() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if hp.started {
		return
	}
	hp.started = true
	hp.stop = make(chan struct{})
	hp.done = make(chan struct{})
	go hp.run(hp.stop, hp.done)
}

func (hp *HeadlessPlayer) run(stop, done chan struct{}) {
	defer close(done)
	buf := make([]byte, hp.chunk)
	t := time.NewTicker(hp.period)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if _, err := hp.src.Read(buf); err != nil {
				Logger().Warn("headless audio read failed", "err", err)
				return
			}
		}
	}
}

func (hp *HeadlessPlayer) Stop() {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	if !hp.started {
		return
	}
	close(hp.stop)
	<-hp.done
	hp.started = false
}

func (hp *HeadlessPlayer) Close() {
	hp.Stop()
}

func (hp *HeadlessPlayer) IsStarted() bool {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()
	return hp.started
}
