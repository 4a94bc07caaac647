package events

import "github.com/atomicstack/topicwall/internal/logging"

type StatusTracer struct{}

var Status = StatusTracer{}

func (StatusTracer) Change(state, label string, attempts int) {
	logging.Trace("status.change", map[string]interface{}{"state": state, "label": label, "attempts": attempts})
}

func (StatusTracer) Meta(clientID, uri string) {
	logging.Trace("status.meta", map[string]interface{}{"clientId": clientID, "uri": uri})
}
