package main

import (
	"os"
	"testing"

	"github.com/atomicstack/topicwall/internal/app"
	"github.com/atomicstack/topicwall/internal/config"
	"github.com/atomicstack/topicwall/internal/topics"
)

func TestProbeTerminalRejectsRegularFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()

	screen := probeTerminal(f.Fd())
	if screen.Interactive || screen.Width != 0 || screen.Height != 0 {
		t.Fatalf("expected non-interactive probe for a file, got %+v", screen)
	}
}

func TestStartupTracePayloadResolvesSubscription(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Policy:       topics.Chronological,
			DefaultTopic: "home/#",
			URI:          "ws://broker:9001/mqtt#sensors/+",
			ClientID:     "topicwall-test",
			FeedPath:     "feed.jsonl",
			Height:       30,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		File:    "topicwall.toml",
		Flags:   map[string]string{"sort": "chronological", "footer": "true"},
		Args:    []string{"--sort", "chronological"},
	}

	payload := startupTracePayload(cfg, terminal{Interactive: true, Width: 120, Height: 40})

	sub, ok := payload["subscription"].(subscription)
	if !ok {
		t.Fatalf("expected subscription in payload")
	}
	if sub.Topic != "sensors/+" {
		t.Fatalf("expected topic from the uri fragment, got %q", sub.Topic)
	}
	if sub.Sort != "chronological" || sub.ClientID != "topicwall-test" || sub.Feed != "feed.jsonl" {
		t.Fatalf("unexpected subscription %+v", sub)
	}

	viewport, ok := payload["viewport"].(map[string]int)
	if !ok {
		t.Fatalf("expected viewport in payload")
	}
	if viewport["width"] != 120 || viewport["height"] != 30 {
		t.Fatalf("expected terminal width and configured height, got %v", viewport)
	}

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["sort"] != "chronological" || flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if payload["configFile"] != "topicwall.toml" {
		t.Fatalf("expected config file, got %v", payload["configFile"])
	}
}

func TestStartupTracePayloadFallsBackToDefaultTopic(t *testing.T) {
	payload := startupTracePayload(config.Config{App: app.Config{DefaultTopic: "home/#"}}, terminal{})
	if sub := payload["subscription"].(subscription); sub.Topic != "home/#" {
		t.Fatalf("expected default topic, got %q", sub.Topic)
	}
	if _, ok := payload["configFile"]; ok {
		t.Fatalf("expected no config file entry")
	}
}
