package audit

import (
	"context"
	"testing"
	"time"
)

type chanRecorder struct {
	got chan string
}

func (r *chanRecorder) Record(ctx context.Context, userID, action, ip, metadata string) {
	r.got <- action
}

func TestAsync_DeliversInBackground(t *testing.T) {
	inner := &chanRecorder{got: make(chan string, 1)}
	a := NewAsync(inner)

	a.Record(context.Background(), "user-1", "login_success", "10.0.0.1", "")

	select {
	case action := <-inner.got:
		if action != "login_success" {
			t.Errorf("action = %q, want login_success", action)
		}
	case <-time.After(time.Second):
		t.Fatal("async record never reached the inner recorder")
	}
}

func TestAsync_NilInner(t *testing.T) {
	a := NewAsync(nil)
	// Must not panic.
	a.Record(context.Background(), "user-1", "logout", "", "")
}

func TestAsync_SurvivesCancelledRequestContext(t *testing.T) {
	inner := &chanRecorder{got: make(chan string, 1)}
	a := NewAsync(inner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Record(ctx, "user-1", "logout", "", "")

	select {
	case <-inner.got:
	case <-time.After(time.Second):
		t.Fatal("record should proceed even when the request context is cancelled")
	}
}
