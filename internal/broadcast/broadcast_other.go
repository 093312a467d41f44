//go:build !windows

package broadcast

import "time"

type system struct{}

// NewSystem returns a Notifier that does nothing: there are no windows to
// notify outside Windows.
func NewSystem() Notifier {
	return system{}
}

func (system) NotifyEnvironmentChanged(time.Duration) {}
