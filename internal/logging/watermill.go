package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/pkg/errors"
)

// Watermill adapts the shared log to watermill's logger interface. Errors
// are always written; other levels only as trace entries.
func Watermill() watermill.LoggerAdapter {
	return watermillAdapter{}
}

type watermillAdapter struct {
	fields watermill.LogFields
}

func (a watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	if err == nil {
		err = errors.New(msg)
	} else {
		err = errors.Wrap(err, msg)
	}
	Error(err)
}

func (a watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.trace("info", msg, fields)
}

func (a watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.trace("debug", msg, fields)
}

func (a watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.trace("trace", msg, fields)
}

func (a watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillAdapter{fields: a.fields.Add(fields)}
}

func (a watermillAdapter) trace(level, msg string, fields watermill.LogFields) {
	if !TraceEnabled() {
		return
	}
	payload := map[string]interface{}{"msg": msg}
	for k, v := range a.fields.Add(fields) {
		payload[k] = v
	}
	Trace("watermill."+level, payload)
}
