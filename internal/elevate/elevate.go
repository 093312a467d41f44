// Package elevate detects administrator rights and relaunches the current
// executable elevated.
package elevate

import (
	"strings"

	"pathedit/internal/errors"
)

// Elevator queries and requests administrator rights.
type Elevator interface {
	// IsElevated reports whether the current process runs elevated.
	IsElevated() bool
	// Relaunch starts the current executable elevated with args. A nil error
	// means the request was dispatched; the caller must then exit.
	Relaunch(args []string) error
}

// Verb is the ShellExecute verb that triggers the elevation prompt.
const Verb = "runas"

// LaunchStatus interprets the value ShellExecuteW returns. Values above 32
// mean the launch was dispatched; anything else is a LAUNCH error whose
// "status" detail holds that return value.
func LaunchStatus(ret uintptr) error {
	if ret > 32 {
		return nil
	}
	return errors.Newf(errors.ErrLaunch, "ShellExecuteW failed with code %d", ret).
		WithDetail("status", int(ret))
}

// QuoteArg wraps arg in double quotes, escaping embedded quotes, when it
// contains a space or a quote. Other arguments are returned unchanged.
func QuoteArg(arg string) string {
	if !strings.ContainsAny(arg, ` "`) {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// JoinArgs quotes each argument and joins them with spaces.
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteArg(a)
	}
	return strings.Join(quoted, " ")
}

// Static is an Elevator with a fixed privilege level that records relaunch
// requests instead of starting a process.
type Static struct {
	Elevated  bool
	LaunchErr error
	Launched  [][]string
}

func (s *Static) IsElevated() bool { return s.Elevated }

func (s *Static) Relaunch(args []string) error {
	if s.LaunchErr != nil {
		return s.LaunchErr
	}
	s.Launched = append(s.Launched, append([]string(nil), args...))
	return nil
}
