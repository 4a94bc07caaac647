package events

import "github.com/atomicstack/topicwall/internal/logging"

type ToolbarTracer struct{}

type toolbarReason string

const (
	ToolbarReasonEscape    toolbarReason = "escape"
	ToolbarReasonUnchanged toolbarReason = "unchanged"
)

var Toolbar = ToolbarTracer{}

func (ToolbarTracer) Focus(value string) {
	logging.Trace("toolbar.focus", map[string]interface{}{"value": value})
}

func (ToolbarTracer) Commit(value string) {
	logging.Trace("toolbar.commit", map[string]interface{}{"value": value})
}

func (ToolbarTracer) Revert(value string, reason toolbarReason) {
	logging.Trace("toolbar.revert", map[string]interface{}{"value": value, "reason": string(reason)})
}

func (ToolbarTracer) Set(value string) {
	logging.Trace("toolbar.set", map[string]interface{}{"value": value})
}
