package events

import "github.com/atomicstack/topicwall/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type BackendTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Backend = BackendTracer{}
)

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Clear(entries int) {
	logging.Trace("ui.clear", map[string]interface{}{"entries": entries})
}

func (FilterTracer) Open() {
	logging.Trace("filter.open", nil)
}

func (FilterTracer) Change(query string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (BackendTracer) Decode(topic string, err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.decode", map[string]interface{}{"topic": topic, "error": err.Error()})
}

func (BackendTracer) Done() {
	logging.Trace("backend.done", nil)
}
