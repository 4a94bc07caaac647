package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/backend"
	"github.com/atomicstack/topicwall/internal/logging"
	"github.com/atomicstack/topicwall/internal/toolbar"
	"github.com/atomicstack/topicwall/internal/topics"
	"github.com/atomicstack/topicwall/internal/transport"
	"github.com/atomicstack/topicwall/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Width        int
	Height       int
	ShowFooter   bool
	ShowCounter  bool
	Policy       topics.Policy
	DefaultTopic string
	URI          string
	ClientID     string
	FeedPath     string
}

// Run bootstraps and executes the Bubble Tea program. It returns the
// model's fatal error when the wall stopped on one.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := transport.NewBus()
	defer bus.Close()

	watcher, err := backend.NewWatcher(bus.Subscriber(), bus.Publisher())
	if err != nil {
		return errors.Wrap(err, "start watcher")
	}
	defer watcher.Stop()

	var wg sync.WaitGroup
	if cfg.FeedPath != "" {
		topic := toolbar.InitialValue(cfg.URI, cfg.DefaultTopic)
		feed, err := transport.NewFeed(ctx, bus, cfg.FeedPath, cfg.URI, cfg.ClientID, topic)
		if err != nil {
			return errors.Wrap(err, "start feed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := feed.Run(ctx); err != nil {
				logging.Error(errors.Wrap(err, "feed"))
			}
		}()
	}

	model := ui.NewModel(ui.Options{
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		ShowCounter:  cfg.ShowCounter,
		Policy:       cfg.Policy,
		URI:          cfg.URI,
		DefaultTopic: cfg.DefaultTopic,
		Backend:      watcher,
		Resubscriber: watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()

	cancel()
	watcher.Stop()
	wg.Wait()

	if fatal := model.Err(); fatal != nil {
		return fatal
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
