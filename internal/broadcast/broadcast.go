// Package broadcast tells running processes that environment variables
// changed.
package broadcast

import "time"

// DefaultTimeout bounds the broadcast so a hung window cannot stall a save.
const DefaultTimeout = 2 * time.Second

// Notifier sends the "Environment" settings-changed signal. It is advisory:
// failures and timeouts are not reported.
type Notifier interface {
	NotifyEnvironmentChanged(timeout time.Duration)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(timeout time.Duration)

func (f NotifierFunc) NotifyEnvironmentChanged(timeout time.Duration) { f(timeout) }

// Counter records broadcasts instead of sending them.
type Counter struct {
	Calls    int
	Timeouts []time.Duration
}

func (c *Counter) NotifyEnvironmentChanged(timeout time.Duration) {
	c.Calls++
	c.Timeouts = append(c.Timeouts, timeout)
}
