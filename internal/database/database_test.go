package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) PingContext(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReadyRetriesUntilUp(t *testing.T) {
	p := &flakyPinger{failures: 2}

	if err := waitReady(context.Background(), p, time.Second, time.Millisecond); err != nil {
		t.Fatalf("waitReady: %v", err)
	}
	if p.calls != 3 {
		t.Fatalf("expected 3 pings, got %d", p.calls)
	}
}

func TestWaitReadyGivesUpAtDeadline(t *testing.T) {
	p := &flakyPinger{failures: 1 << 30}

	err := waitReady(context.Background(), p, 20*time.Millisecond, 5*time.Millisecond)
	if err == nil {
		t.Fatalf("expected error once the deadline passes")
	}
	if p.calls < 2 {
		t.Fatalf("expected at least one retry, got %d pings", p.calls)
	}
}

func TestWaitReadyStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &flakyPinger{failures: 1 << 30}

	err := waitReady(ctx, p, time.Minute, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected a single ping before giving up, got %d", p.calls)
	}
}
