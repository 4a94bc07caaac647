package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTraceSkippedWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()
	SetTraceEnabled(false)

	Trace("topic.create", map[string]interface{}{"topic": "a/b"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTraceWritesEventAndPayload(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()
	SetTraceEnabled(true)
	defer SetTraceEnabled(false)

	Trace("topic.create", map[string]interface{}{"topic": "a/b"})

	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
		Time    string                 `json:"time"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry.Event != "topic.create" {
		t.Fatalf("expected event topic.create, got %q", entry.Event)
	}
	if entry.Payload["topic"] != "a/b" {
		t.Fatalf("expected payload topic a/b, got %v", entry.Payload["topic"])
	}
	if entry.Time == "" {
		t.Fatalf("expected timestamp")
	}
}

func TestErrorAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	Error(errors.New("boom"))
	Error(nil)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single entry, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"error":"boom"`) {
		t.Fatalf("expected error field, got %q", lines[0])
	}
}
