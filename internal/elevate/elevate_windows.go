//go:build windows

package elevate

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"pathedit/internal/errors"
	"pathedit/internal/logging"
)

var (
	shell32           = windows.NewLazySystemDLL("shell32.dll")
	procShellExecuteW = shell32.NewProc("ShellExecuteW")
)

// System uses the process token and ShellExecute.
type System struct{}

// NewSystem returns the Elevator for the running process.
func NewSystem() Elevator {
	return System{}
}

func (System) IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// Relaunch asks the shell to start the current executable with the "runas"
// verb. A declined prompt and a failed dispatch are both reported through
// LaunchStatus.
func (System) Relaunch(args []string) error {
	logger := logging.GetLogger("elevate")

	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, errors.ErrLaunch, "locate current executable")
	}
	params := JoinArgs(args)
	logger.Info().Str("exe", exe).Str("args", params).Msg("Relaunching elevated")

	verb, err := windows.UTF16PtrFromString(Verb)
	if err != nil {
		return errors.Wrap(err, errors.ErrLaunch, "encode verb")
	}
	file, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return errors.Wrap(err, errors.ErrLaunch, "encode executable path")
	}
	var pparams *uint16
	if params != "" {
		if pparams, err = windows.UTF16PtrFromString(params); err != nil {
			return errors.Wrap(err, errors.ErrLaunch, "encode arguments")
		}
	}

	ret, _, callErr := procShellExecuteW.Call(
		0,
		uintptr(unsafe.Pointer(verb)),
		uintptr(unsafe.Pointer(file)),
		uintptr(unsafe.Pointer(pparams)),
		0,
		uintptr(windows.SW_SHOW),
	)
	if err := LaunchStatus(ret); err != nil {
		logger.Error().Err(callErr).Uint64("status", uint64(ret)).Msg("Elevated relaunch failed")
		return err
	}
	return nil
}
