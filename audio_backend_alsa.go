//go:build zeni_alsa && linux && !headless

// audio_backend_alsa.go - ALSA audio output for the sound mixer

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

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int latencyUS) {
    return snd_pcm_set_params(handle, SND_PCM_FORMAT_FLOAT_LE,
        SND_PCM_ACCESS_RW_INTERLEAVED, 2, rate, 1, latencyUS);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    int n = snd_pcm_writei(handle, buffer, frames);
    if (n == -EPIPE) {
        snd_pcm_prepare(handle);
        n = snd_pcm_writei(handle, buffer, frames);
    }
    return n;
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drop(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"time"
	"unsafe"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:alsa")
}

// ALSAPlayer writes the mixer's stereo float32 frames to the default ALSA
// device. snd_pcm_writei blocks, which paces the pump goroutine.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	mixer   *Sound
	samples []float32
	started bool
	mutex   sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

func NewALSAPlayer(sampleRate int, bufferSize time.Duration, mixer *Sound) (*ALSAPlayer, error) {
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	var err C.int
	handle := C.openPCM(device, &err)
	if err < 0 {
		return nil, fmt.Errorf("open PCM device: %s", C.GoString(C.snd_strerror(err)))
	}
	if bufferSize <= 0 {
		bufferSize = 20 * time.Millisecond
	}
	if err = C.setupPCM(handle, C.uint(sampleRate), C.uint(bufferSize.Microseconds())); err < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("setup PCM: %s", C.GoString(C.snd_strerror(err)))
	}

	// Write in quarter-buffer periods.
	frames := max(int(int64(sampleRate)*int64(bufferSize)/int64(time.Second))/4, 64)
	return &ALSAPlayer{
		handle:  handle,
		mixer:   mixer,
		samples: make([]float32, frames*2),
	}, nil
}

func openAudioOutput(sampleRate int, buffer time.Duration, s *Sound) (audioOutput, error) {
	return NewALSAPlayer(sampleRate, buffer, s)
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}

func (ap *ALSAPlayer) Start() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started || ap.handle == nil {
		return
	}
	ap.started = true
	ap.stop = make(chan struct{})
	ap.done = make(chan struct{})
	go ap.pump(ap.stop, ap.done)
}

func (ap *ALSAPlayer) pump(stop, done chan struct{}) {
	defer close(done)
	frames := C.int(len(ap.samples) / 2)
	for {
		select {
		case <-stop:
			return
		default:
		}
		ap.mixer.Mix(ap.samples)
		if n := C.writePCM(ap.handle, (*C.float)(unsafe.Pointer(&ap.samples[0])), frames); n < 0 {
			Logger().Error("alsa write failed", "err", C.GoString(C.snd_strerror(n)))
			return
		}
	}
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started {
		close(ap.stop)
		<-ap.done
		ap.started = false
	}
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}
