// Package transport connects the wall to a message source. Sources publish
// onto an in-process watermill bus; the UI side consumes it through the
// backend watcher.
package transport

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/logging"
)

// Bus is the in-process pub/sub shared by the transport and the UI.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus returns a bus whose Publish waits for subscribers to ack, so each
// topic is delivered in publish order.
func NewBus() *Bus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, logging.Watermill())
	return &Bus{pubsub: pubsub}
}

func (b *Bus) Publisher() message.Publisher   { return b.pubsub }
func (b *Bus) Subscriber() message.Subscriber { return b.pubsub }

// Subscribe returns the message channel for topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, errors.Wrapf(err, "subscribe %s", topic)
	}
	return ch, nil
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Publish encodes v and publishes it on topic.
func Publish(pub message.Publisher, topic string, v interface{}) error {
	msg, err := Encode(v)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return errors.Wrapf(err, "publish %s", topic)
	}
	return nil
}

// RequestSubscribe asks the transport to resubscribe to filter.
func RequestSubscribe(pub message.Publisher, filter string) error {
	return Publish(pub, TopicSubscribe, SubscribeRequest{Event: EventTopicChanged, Value: filter})
}
