//go:build !windows

package elevate

import "pathedit/internal/errors"

// System reports no elevation and cannot relaunch outside Windows.
type System struct{}

// NewSystem returns the Elevator for the running process.
func NewSystem() Elevator {
	return System{}
}

func (System) IsElevated() bool { return false }

func (System) Relaunch([]string) error {
	return errors.Wrap(errors.New(errors.ErrUnsupported, "elevation requires Windows"), errors.ErrLaunch, "relaunch elevated")
}
