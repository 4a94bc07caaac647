package transport

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/status"
)

// MessageEvent is one delivered message.
type MessageEvent struct {
	Topic    string `json:"topic"`
	Payload  string `json:"payload"`
	Retained bool   `json:"retained"`
	QoS      int    `json:"qos"`
}

// StateEvent is a connection state report.
type StateEvent = status.Event

// SubscribeRequest asks the transport to switch to a new topic filter.
type SubscribeRequest struct {
	Event string `json:"event"`
	Value string `json:"value"`
}

// Encode marshals v into a new message with a fresh UUID.
func Encode(v interface{}) (*message.Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode event")
	}
	return message.NewMessage(watermill.NewUUID(), b), nil
}

// DecodeMessage parses a TopicMessages payload.
func DecodeMessage(msg *message.Message) (MessageEvent, error) {
	var evt MessageEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, errors.Wrap(err, "decode message event")
	}
	if evt.Topic == "" {
		return evt, errors.New("message event without topic")
	}
	return evt, nil
}

// DecodeState parses a TopicState payload. Known state names are
// normalised; an unknown one is passed through for the status view to
// reject.
func DecodeState(msg *message.Message) (StateEvent, error) {
	var evt StateEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, errors.Wrap(err, "decode state event")
	}
	if s, err := status.ParseState(string(evt.State)); err == nil {
		evt.State = s
	}
	return evt, nil
}

// DecodeSubscribe parses a TopicSubscribe payload.
func DecodeSubscribe(msg *message.Message) (SubscribeRequest, error) {
	var req SubscribeRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return req, errors.Wrap(err, "decode subscribe request")
	}
	if req.Event != EventTopicChanged {
		return req, errors.Errorf("unexpected subscribe event %q", req.Event)
	}
	return req, nil
}
