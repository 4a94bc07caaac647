package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/topicwall/internal/app"
	"github.com/atomicstack/topicwall/internal/config"
	"github.com/atomicstack/topicwall/internal/logging"
	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/toolbar"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	defer logging.Close()

	screen := probeTerminal(os.Stdout.Fd())
	events.App.Start(startupTracePayload(runtimeCfg, screen))
	if !screen.Interactive {
		fmt.Fprintln(os.Stderr, "Error: topicwall must run in a terminal")
		logging.Close()
		os.Exit(2)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

// terminal describes the screen the wall will draw on.
type terminal struct {
	Interactive bool   `json:"interactive"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Error       string `json:"error,omitempty"`
}

func probeTerminal(fd uintptr) terminal {
	var t terminal
	if !term.IsTerminal(int(fd)) {
		return t
	}
	t.Interactive = true
	w, h, err := term.GetSize(int(fd))
	if err != nil {
		t.Error = err.Error()
		return t
	}
	t.Width, t.Height = w, h
	return t
}

// subscription is the wall's resolved starting point.
type subscription struct {
	Topic    string `json:"topic"`
	Sort     string `json:"sort"`
	ClientID string `json:"clientId"`
	Endpoint string `json:"endpoint,omitempty"`
	Feed     string `json:"feed,omitempty"`
}

func startupTracePayload(cfg config.Config, screen terminal) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	viewport := map[string]int{"width": cfg.App.Width, "height": cfg.App.Height}
	if viewport["width"] == 0 {
		viewport["width"] = screen.Width
	}
	if viewport["height"] == 0 {
		viewport["height"] = screen.Height
	}

	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
		"subscription": subscription{
			Topic:    toolbar.InitialValue(cfg.App.URI, cfg.App.DefaultTopic),
			Sort:     cfg.App.Policy.String(),
			ClientID: cfg.App.ClientID,
			Endpoint: cfg.App.URI,
			Feed:     cfg.App.FeedPath,
		},
		"terminal": screen,
		"viewport": viewport,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	return payload
}
