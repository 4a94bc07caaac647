package events

import "github.com/atomicstack/topicwall/internal/logging"

type NoticeTracer struct{}

type NoticeReason string

const (
	NoticeReasonExplicit NoticeReason = "explicit"
	NoticeReasonExpired  NoticeReason = "expired"
)

var Notice = NoticeTracer{}

func (NoticeTracer) Create(id int, kind, message string, persistent bool) {
	logging.Trace("notice.create", map[string]interface{}{
		"id":         id,
		"kind":       kind,
		"message":    message,
		"persistent": persistent,
	})
}

func (NoticeTracer) Message(id int, message string) {
	logging.Trace("notice.message", map[string]interface{}{"id": id, "message": message})
}

func (NoticeTracer) Dismiss(id int, reason NoticeReason) {
	logging.Trace("notice.dismiss", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (NoticeTracer) Removed(id int) {
	logging.Trace("notice.removed", map[string]interface{}{"id": id})
}
