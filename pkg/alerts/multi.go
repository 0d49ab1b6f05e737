package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Multi delivers each message to every wrapped notifier. A failing
// notifier does not stop delivery to the rest; all errors are joined.
type Multi struct {
	notifiers []Notifier
}

// NewMulti wraps the given notifiers.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Name() string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

func (m *Multi) Send(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of wrapped notifiers.
func (m *Multi) Len() int { return len(m.notifiers) }
