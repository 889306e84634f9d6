package audit

import (
	"context"
	"time"
)

// recordTimeout is the max time allowed for a single async record.
const recordTimeout = 5 * time.Second

// Async wraps a Recorder so Record returns immediately and the write happens
// in a goroutine. Use from request handlers; the insert must never add
// latency to login or logout. The goroutine uses context.Background() with
// recordTimeout so request cancellation does not abort an in-flight write.
type Async struct {
	inner Recorder
}

// NewAsync returns an Async wrapping inner. inner may be nil; then every
// record is a no-op.
func NewAsync(inner Recorder) *Async {
	return &Async{inner: inner}
}

// Record writes the event in the background.
func (a *Async) Record(ctx context.Context, userID, action, ip, metadata string) {
	if a.inner == nil {
		return
	}
	go func() {
		recordCtx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		a.inner.Record(recordCtx, userID, action, ip, metadata)
	}()
}
