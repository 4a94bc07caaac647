package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/logging"
	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/status"
)

// Client is a message source publishing onto the bus until ctx is done.
type Client interface {
	Run(ctx context.Context) error
}

// DefaultRetryInterval spaces reconnect attempts.
const DefaultRetryInterval = 2 * time.Second

var errFeedGone = errors.New("feed file removed")

// Feed is a development transport that tails a JSON-lines file of message
// events. On (re)subscribe it replays the file, then follows appended lines.
type Feed struct {
	Path          string
	URI           string
	ClientID      string
	Topic         string
	RetryInterval time.Duration

	Pub  message.Publisher
	Subs <-chan *message.Message

	attempts int
	filter   string
}

var _ Client = (*Feed)(nil)

// NewFeed subscribes to subscription requests on bus and returns a feed
// ready to Run.
func NewFeed(ctx context.Context, bus *Bus, path, uri, clientID, topic string) (*Feed, error) {
	subs, err := bus.Subscribe(ctx, TopicSubscribe)
	if err != nil {
		return nil, err
	}
	return &Feed{
		Path:          path,
		URI:           uri,
		ClientID:      clientID,
		Topic:         topic,
		RetryInterval: DefaultRetryInterval,
		Pub:           bus.Publisher(),
		Subs:          subs,
	}, nil
}

// Run connects to the feed file and keeps reconnecting until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	if f.Path == "" {
		return errors.New("missing feed path")
	}
	if f.Pub == nil {
		return errors.New("missing Publisher")
	}
	f.filter = f.Topic
	if err := f.publishState(status.Connecting); err != nil {
		return err
	}

	throttle := newThrottle(f.RetryInterval)
	for {
		if throttle.wait(ctx) != nil {
			return nil
		}
		f.pollSubscriptions()
		if f.attempts > 0 {
			if err := f.publishState(status.Reconnecting); err != nil {
				return err
			}
		}
		err := f.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		logging.Error(errors.Wrap(err, "feed session"))
		f.attempts++
		if err := f.publishState(status.Error); err != nil {
			return err
		}
	}
}

// pollSubscriptions applies queued subscription requests without blocking.
func (f *Feed) pollSubscriptions() {
	for {
		select {
		case msg, ok := <-f.Subs:
			if !ok {
				f.Subs = nil
				return
			}
			f.applySubscription(msg)
		default:
			return
		}
	}
}

func (f *Feed) applySubscription(msg *message.Message) bool {
	req, err := DecodeSubscribe(msg)
	msg.Ack()
	if err != nil {
		logging.Error(err)
		return false
	}
	f.filter = req.Value
	return true
}

func (f *Feed) session(ctx context.Context) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return errors.Wrap(err, "open feed")
	}
	defer file.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()
	// Watch the directory so removal and re-creation are both seen.
	if err := watcher.Add(filepath.Dir(f.Path)); err != nil {
		return errors.Wrap(err, "watch feed directory")
	}

	f.attempts = 0
	if err := f.publishState(status.Connected); err != nil {
		return err
	}

	r := &lineReader{r: bufio.NewReader(file)}
	if err := f.drain(r); err != nil {
		return err
	}

	target := filepath.Clean(f.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-f.Subs:
			if !ok {
				f.Subs = nil
				continue
			}
			if !f.applySubscription(msg) {
				continue
			}
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				return errors.Wrap(err, "rewind feed")
			}
			r = &lineReader{r: bufio.NewReader(file)}
			if err := f.drain(r); err != nil {
				return err
			}
		case evt, ok := <-watcher.Events:
			if !ok {
				return errFeedGone
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
				return errFeedGone
			}
			if evt.Has(fsnotify.Write) {
				if err := f.drain(r); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errFeedGone
			}
			return errors.Wrap(err, "watch feed")
		}
	}
}

// drain publishes every complete line available from r.
func (f *Feed) drain(r *lineReader) error {
	for {
		line, ok, err := r.next()
		if err != nil {
			return errors.Wrap(err, "read feed")
		}
		if !ok {
			return nil
		}
		evt, err := ParseLine(line)
		if err != nil {
			events.Backend.Decode(f.Path, err)
			logging.Error(err)
			continue
		}
		if evt == nil || !MatchTopic(f.filter, evt.Topic) {
			continue
		}
		if err := Publish(f.Pub, TopicMessages, evt); err != nil {
			return err
		}
	}
}

func (f *Feed) publishState(s status.State) error {
	return Publish(f.Pub, TopicState, StateEvent{
		State:             s,
		ReconnectAttempts: f.attempts,
		ClientID:          f.ClientID,
		EndpointURI:       f.URI,
	})
}

// ParseLine decodes one feed line. Blank lines and "//" comments yield nil.
func ParseLine(line string) (*MessageEvent, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") {
		return nil, nil
	}
	var evt MessageEvent
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		return nil, errors.Wrap(err, "parse feed line")
	}
	if evt.Topic == "" {
		return nil, errors.New("feed line without topic")
	}
	return &evt, nil
}

// lineReader yields complete lines, holding back a trailing partial line
// until its newline arrives.
type lineReader struct {
	r       *bufio.Reader
	partial strings.Builder
}

func (l *lineReader) next() (string, bool, error) {
	chunk, err := l.r.ReadString('\n')
	l.partial.WriteString(chunk)
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	line := l.partial.String()
	l.partial.Reset()
	return strings.TrimRight(line, "\r\n"), true, nil
}
