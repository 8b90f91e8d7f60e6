// main.go - Command-line entry point for the engine demo

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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	zeni "github.com/intuitionamiga/zeniengine"
	"golang.org/x/term"
)

func main() {
	var (
		configPath string
		api        string
		script     string
		logLevel   string
		features   bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "Config file (default: config/zenilib.yaml then ~/.config/zenilib/zenilib.yaml)")
	flagSet.StringVar(&api, "api", "", "Video API: gl, dx9 or auto (overrides the config)")
	flagSet.StringVar(&script, "script", "", "Lua gamestate to run instead of the built-in demo")
	flagSet.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides the config)")
	flagSet.BoolVar(&features, "features", false, "Print version and compiled features, then exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: zenidemo [-config file] [-api gl|dx9|auto] [-script state.lua] [-log-level level] [-features]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if features {
		zeni.PrintFeatures(os.Stdout)
		return
	}

	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	cfg, err := zeni.LoadConfig(paths...)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if api != "" {
		cfg.Video.API = api
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()
	zeni.LogLevel().Set(level)
	zeni.SetLogger(slog.New(newLogHandler(cfg.Log.Format, os.Stderr)))

	if err := run(cfg, configPath, script); err != nil {
		zeni.Logger().Error("zenidemo failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogHandler picks text for a terminal and JSON otherwise, unless
// format names one explicitly.
func newLogHandler(format string, w *os.File) slog.Handler {
	opts := &slog.HandlerOptions{Level: zeni.LogLevel()}
	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "text":
		return slog.NewTextHandler(w, opts)
	}
	if term.IsTerminal(int(w.Fd())) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func run(cfg zeni.Config, configPath, script string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := zeni.NewApp(cfg)
	if err := app.Init(); err != nil {
		return err
	}
	// Uninit pops the script state, so the VM outlives it.
	var closeScript func()
	defer func() {
		app.Uninit()
		if closeScript != nil {
			closeScript()
		}
	}()

	if configPath != "" {
		go func() {
			if err := app.WatchConfig(ctx, configPath); err != nil {
				zeni.Logger().Warn("config watch stopped", "err", err)
			}
		}()
	}

	var state zeni.Gamestate = newDemoState(app)
	if script != "" {
		s, err := zeni.LoadScriptState(script, app.Game(), app.Video())
		if err != nil {
			return err
		}
		closeScript = s.Close
		state = s
	}
	app.Game().PushState(state)

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
