package alerts

import "context"

// Notifier delivers plain-text warnings to an external channel.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers a message. Implementations must be safe for concurrent use.
	Send(ctx context.Context, message string) error
}
