package events

import "github.com/atomicstack/topicwall/internal/logging"

type TopicTracer struct{}

var Topic = TopicTracer{}

func (TopicTracer) Create(key, policy string, index int) {
	logging.Trace("topic.create", map[string]interface{}{"topic": key, "policy": policy, "index": index})
}

func (TopicTracer) Update(key string, counter int, retained bool, qos int) {
	logging.Trace("topic.update", map[string]interface{}{
		"topic":    key,
		"counter":  counter,
		"retained": retained,
		"qos":      qos,
	})
}

func (TopicTracer) Reset(entries int) {
	logging.Trace("topic.reset", map[string]interface{}{"entries": entries})
}

func (TopicTracer) Policy(from, to string) {
	logging.Trace("topic.policy", map[string]interface{}{"from": from, "to": to})
}

func (TopicTracer) Stale(key, filter string) {
	logging.Trace("topic.stale", map[string]interface{}{"topic": key, "filter": filter})
}
