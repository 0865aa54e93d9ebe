// Package notify delivers admin notifications. Delivery is best-effort: the
// caller never sees a sink failure.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const KindProviderPending = "provider.pending"

type Notification struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ProviderID uint      `json:"provider_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// New stamps a notification with a fresh ID and creation time.
func New(kind, title, content string, providerID uint) Notification {
	return Notification{
		ID:         uuid.New(),
		Kind:       kind,
		Title:      title,
		Content:    content,
		ProviderID: providerID,
		CreatedAt:  time.Now().UTC(),
	}
}

type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the structured log. Used when no broker is
// configured.
type LogSink struct{}

func (LogSink) Notify(_ context.Context, n Notification) error {
	slog.Info("admin notification",
		"notification_id", n.ID.String(),
		"kind", n.Kind,
		"title", n.Title,
		"provider_id", n.ProviderID,
	)
	return nil
}

// Async runs each delivery in its own goroutine with a timeout and logs
// failures. Notify always returns nil.
type Async struct {
	sink    Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(sink Sink, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{sink: sink, timeout: timeout}
}

func (a *Async) Notify(_ context.Context, n Notification) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification sink panicked", "notification_id", n.ID.String(), "panic", r)
			}
		}()

		// Detached from the request so delivery outlives the response.
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.sink.Notify(ctx, n); err != nil {
			slog.Warn("notification delivery failed",
				"notification_id", n.ID.String(),
				"kind", n.Kind,
				"error", err,
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish. Called at shutdown.
func (a *Async) Wait() {
	a.wg.Wait()
}
