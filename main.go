package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/pokedex/internal/app"
	"github.com/atomicstack/pokedex/internal/config"
	"github.com/atomicstack/pokedex/internal/logging"
	"github.com/atomicstack/pokedex/internal/logging/events"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("stdout is not a terminal; the browser needs an interactive terminal")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	out := probeTerminal(int(os.Stdout.Fd()))
	events.App.Start(startupTracePayload(runtimeCfg, out))

	if err := requireTerminal(out); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminal describes the descriptor the browser renders to.
type terminal struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probeTerminal(fd int) terminal {
	if fd < 0 || !term.IsTerminal(fd) {
		return terminal{}
	}
	t := terminal{IsTerminal: true}
	if width, height, err := term.GetSize(fd); err == nil {
		t.Width, t.Height = width, height
	} else {
		t.Error = err.Error()
	}
	return t
}

func requireTerminal(t terminal) error {
	if !t.IsTerminal {
		return errNotTerminal
	}
	return nil
}

// viewport reports the dimensions the first frame is laid out in. Configured
// dimensions win; the rest follow the terminal.
func viewport(cfg app.Config, t terminal) (width, height int) {
	width, height = cfg.Width, cfg.Height
	if width <= 0 {
		width = t.Width
	}
	if height <= 0 {
		height = t.Height
	}
	return width, height
}

// startupTracePayload bundles the options and terminal the session starts with.
func startupTracePayload(cfg config.Config, t terminal) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	width, height := viewport(cfg.App, t)
	payload := map[string]interface{}{
		"argv":      cfg.Args,
		"flags":     flags,
		"source":    dataSource(cfg.App),
		"pageSize":  cfg.App.PageSize,
		"hardLimit": cfg.App.HardLimit,
		"terminal":  t,
		"viewport":  map[string]int{"width": width, "height": height},
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

// dataSource names where entities will come from.
func dataSource(cfg app.Config) string {
	if cfg.Preview {
		return "preview"
	}
	return cfg.BaseURL
}
