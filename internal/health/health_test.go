package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                         { return f.name }
func (f *fakeChecker) IsHealthy() bool                      { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(context.Context, time.Duration) {}

func TestService_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "store"}
	b := &fakeChecker{name: "other"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewService(zerolog.Nop(), a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	if !svc.WaitUntilHealthy(ctx, time.Second) {
		t.Fatalf("service never became healthy")
	}

	b.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
	if got := svc.Components(); got["store"] != true || got["other"] != false {
		t.Fatalf("components = %v", got)
	}

	b.healthy.Store(1)
	waitTrue(t, svc.IsHealthy)
}

func TestService_WaitUntilHealthyTimesOut(t *testing.T) {
	down := &fakeChecker{name: "store"}
	svc := NewService(zerolog.Nop(), down)
	if svc.WaitUntilHealthy(context.Background(), 100*time.Millisecond) {
		t.Fatalf("expected timeout")
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
