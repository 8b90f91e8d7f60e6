// app.go - Application context owning every engine subsystem

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
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// platform opens the window and devices of one build flavour and reports
// its input. The ebiten build and the headless build each provide one.
type platform interface {
	open(cfg VideoConfig) (DisplaySurface, GLDevice, D3DDevice, error)
	events(dst []Event) []Event
	// forget releases whatever the platform cached for an unloaded texture.
	forget(t *Texture)
}

// errQuit ends Run without reporting a failure.
var errQuit = errors.New("zeni: quit")

// App owns the subsystems that the engine would otherwise keep as
// process-wide singletons. Construct it with NewApp, Init it, push a
// gamestate and Run it.
type App struct {
	cfg       Config
	platform  platform
	textures  *Textures
	video     *Video
	game      *Game
	sound     *Sound
	joysticks *Joysticks

	// Which subsystems Init brought up, for a partial teardown.
	videoUp bool
	soundUp bool
	joyUp   bool

	events  []Event
	quit    bool
	reloads chan Config

	postMu *Mutex
	posted []Event
}

func NewApp(cfg Config) *App {
	return newApp(cfg, newPlatform(), NewJoysticks())
}

func newApp(cfg Config, p platform, joy *Joysticks) *App {
	textures := NewTextures()
	return &App{
		cfg:       cfg,
		platform:  p,
		textures:  textures,
		video:     NewVideo(textures),
		game:      NewGame(),
		sound:     NewSound(cfg.Audio),
		joysticks: joy,
		reloads:   make(chan Config, 1),
		postMu:    NewMutex(),
	}
}

func (a *App) Config() Config        { return a.cfg }
func (a *App) Textures() *Textures   { return a.textures }
func (a *App) Video() *Video         { return a.video }
func (a *App) Game() *Game           { return a.game }
func (a *App) Sound() *Sound         { return a.sound }
func (a *App) Joysticks() *Joysticks { return a.joysticks }

// Init brings the subsystems up in order: textures, video, sound,
// joysticks. If one fails, those already up are torn down again.
// Joystick failures are logged and leave the app without joysticks.
func (a *App) Init() error {
	if a.videoUp {
		return ErrAlreadyInitialized
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	surface, gl, dx9, err := a.platform.open(a.cfg.Video)
	if err != nil {
		return &VideoError{Operation: "init", Details: "opening display", Err: errors.Join(ErrVideoInit, err)}
	}
	if err := a.video.Init(a.cfg.Video, surface, gl, dx9); err != nil {
		if surface != nil {
			_ = surface.Close()
		}
		return err
	}
	a.videoUp = true

	if err := a.sound.Init(); err != nil {
		a.Uninit()
		return err
	}
	a.sound.Start()
	a.soundUp = true

	if a.cfg.Joysticks.Enabled {
		if err := a.joysticks.Init(a.cfg.Joysticks.Mappings); err != nil {
			Logger().Warn("running without joysticks", "err", err)
		} else {
			a.joyUp = true
		}
	}
	return nil
}

// Uninit tears down in reverse order of Init. Gamestates still on the
// stack are popped so their OnPop hooks run.
func (a *App) Uninit() {
	for a.game.Size() > 0 {
		if _, err := a.game.PopState(); err != nil {
			break
		}
	}
	if a.joyUp {
		a.joysticks.Uninit()
		a.joyUp = false
	}
	if a.soundUp {
		a.sound.Uninit()
		a.soundUp = false
	}
	if a.videoUp {
		if err := a.video.Uninit(); err != nil {
			Logger().Warn("video teardown failed", "err", err)
		}
		a.videoUp = false
	}
}

// UnloadTexture drops a texture from the registry and from the display.
func (a *App) UnloadTexture(name string) error {
	tex, err := a.textures.Get(name)
	if err != nil {
		return err
	}
	if err := a.textures.Unload(name); err != nil {
		return err
	}
	a.platform.forget(tex)
	return nil
}

// ApplyConfig takes over the runtime-adjustable parts of cfg: master gain,
// log level and joystick mappings. Video settings need a restart.
func (a *App) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.sound.SetMasterGain(cfg.Audio.MasterGain)
	if a.joyUp {
		if err := a.joysticks.Reinit(cfg.Joysticks.Mappings); err != nil {
			a.joyUp = false
			return fmt.Errorf("reapply joystick mappings: %w", err)
		}
	}
	if level, err := cfg.Log.SlogLevel(); err == nil {
		logLevel.Set(level)
	}
	a.cfg.Audio, a.cfg.Joysticks, a.cfg.Log = cfg.Audio, cfg.Joysticks, cfg.Log
	Logger().Info("config applied", "mappings", len(cfg.Joysticks.Mappings))
	return nil
}

// WatchConfig reloads path whenever it changes on disk until ctx is done.
// Reloaded configs are applied by the game loop at the start of its next
// tick; invalid edits are logged and skipped.
func (a *App) WatchConfig(ctx context.Context, path string) error {
	return WatchConfig(ctx, path, func(cfg Config, err error) {
		if err != nil {
			Logger().Warn("config reload rejected", "path", path, "err", err)
			return
		}
		// Keep only the newest pending config.
		for {
			select {
			case a.reloads <- cfg:
				return
			default:
			}
			select {
			case <-a.reloads:
			default:
			}
		}
	})
}

// PostEvent queues ev for the next tick, after that tick's device input.
// It is safe to call from any goroutine.
func (a *App) PostEvent(ev Event) {
	_ = a.postMu.Do(func() error {
		a.posted = append(a.posted, ev)
		return nil
	})
}

// step runs one logic tick: it gathers input, hands every event to the
// current gamestate, then runs its logic. It returns errQuit once a Quit
// event arrived or the stack is empty.
func (a *App) step() error {
	select {
	case cfg := <-a.reloads:
		if err := a.ApplyConfig(cfg); err != nil {
			Logger().Warn("config reload failed", "err", err)
		}
	default:
	}

	a.events = a.platform.events(a.events[:0])
	_ = a.postMu.Do(func() error {
		a.events = append(a.events, a.posted...)
		a.posted = a.posted[:0]
		return nil
	})
	if a.joyUp {
		if err := a.joysticks.Poll(); err != nil {
			Logger().Warn("joystick poll failed", "err", err)
		}
		a.events = a.joysticks.Events(a.events)
	}

	for _, ev := range a.events {
		if ev.Type == EventQuit {
			a.quit = true
		}
		if a.game.Size() == 0 {
			break
		}
		if err := a.game.OnEvent(ev); err != nil {
			return err
		}
	}
	if a.quit || a.game.Size() == 0 {
		return errQuit
	}
	if err := a.game.PerformLogic(); err != nil {
		return err
	}
	if a.game.Size() == 0 {
		return errQuit
	}
	return nil
}

// frame renders the current gamestate between BeginRender and EndRender.
func (a *App) frame() error {
	if err := a.video.BeginRender(); err != nil {
		return err
	}
	renderErr := a.game.Render()
	if err := a.video.EndRender(); err != nil {
		return errors.Join(renderErr, err)
	}
	return renderErr
}

var logLevel = new(slog.LevelVar)

// LogLevel is the level ApplyConfig adjusts. Pass it as the Level of the
// handler given to SetLogger to make log.level take effect at runtime.
func LogLevel() *slog.LevelVar { return logLevel }
