package transport

import "strings"

// MatchTopic reports whether topic matches the MQTT filter. "+" matches one
// level and a trailing "#" matches the rest, including the parent level.
func MatchTopic(filter, topic string) bool {
	if filter == "" {
		return false
	}
	if filter == "#" {
		return !strings.HasPrefix(topic, "$")
	}
	f := strings.Split(filter, "/")
	t := strings.Split(topic, "/")
	if strings.HasPrefix(topic, "$") && (f[0] == "+" || f[0] == "#") {
		return false
	}
	for i, level := range f {
		if level == "#" {
			return i == len(f)-1
		}
		if i >= len(t) {
			return false
		}
		if level != "+" && level != t[i] {
			return false
		}
	}
	return len(f) == len(t)
}
