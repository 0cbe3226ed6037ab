package notifier

import (
	"context"
	"log"
)

// Sender delivers one subject+body message to the configured recipient.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// LogNotifier only logs messages. It stands in for mail when no credentials
// are configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Send(_ context.Context, subject, body string) error {
	log.Printf("[INFO] mail disabled, would send %q: %s", subject, body)
	return nil
}
