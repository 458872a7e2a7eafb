package log

import (
	"testing"
	"time"
)

func TestMultiLoggerCallsAll(t *testing.T) {
	l1, l2 := &captureLogger{}, &captureLogger{}
	var fromFunc []Event

	multi := NewMultiLogger(l1, nil, l2, LoggerFunc(func(e Event) { fromFunc = append(fromFunc, e) }))
	if multi.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (nil skipped)", multi.Len())
	}

	multi.Log(Event{Timestamp: time.Now(), ConnectionID: "conn-123"})

	for i, l := range []*captureLogger{l1, l2} {
		if len(l.events) != 1 || l.events[0].ConnectionID != "conn-123" {
			t.Errorf("logger %d: got %v", i, l.events)
		}
	}
	if len(fromFunc) != 1 {
		t.Errorf("LoggerFunc got %d events", len(fromFunc))
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
	NoopLogger{}.Log(Event{})
}
