package transport

// Bus topics.
const (
	TopicMessages  = "wall.messages"
	TopicState     = "wall.state"
	TopicSubscribe = "wall.subscribe"
)

// EventTopicChanged names a subscription request on TopicSubscribe.
const EventTopicChanged = "topicChanged"
