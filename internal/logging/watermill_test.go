package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
)

func TestWatermillAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()
	SetTraceEnabled(false)

	logger := Watermill().With(watermill.LogFields{"topic": "wall.messages"})
	logger.Info("subscribed", nil)
	logger.Debug("sending", watermill.LogFields{"uuid": "x"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output with trace disabled, got %q", buf.String())
	}

	logger.Error("publish failed", errors.New("closed"), nil)
	if !strings.Contains(buf.String(), "publish failed: closed") {
		t.Fatalf("expected wrapped error entry, got %q", buf.String())
	}

	buf.Reset()
	SetTraceEnabled(true)
	defer SetTraceEnabled(false)
	logger.Info("subscribed", watermill.LogFields{"uuid": "abc"})
	out := buf.String()
	for _, want := range []string{`"event":"watermill.info"`, `"topic":"wall.messages"`, `"uuid":"abc"`, `"msg":"subscribed"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %q", want, out)
		}
	}
}
