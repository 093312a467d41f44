//go:build windows

package broadcast

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"pathedit/internal/logging"
)

const (
	hwndBroadcast   = 0xFFFF
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeout = user32.NewProc("SendMessageTimeoutW")
)

type system struct{}

// NewSystem returns the Notifier that broadcasts WM_SETTINGCHANGE to all
// top-level windows.
func NewSystem() Notifier {
	return system{}
}

func (system) NotifyEnvironmentChanged(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	env, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	var result uintptr
	r, _, callErr := procSendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(smtoAbortIfHung),
		uintptr(timeout.Milliseconds()),
		uintptr(unsafe.Pointer(&result)),
	)
	logger := logging.GetLogger("broadcast")
	if r == 0 {
		logger.Debug().Err(callErr).Msg("WM_SETTINGCHANGE broadcast did not complete")
		return
	}
	logger.Debug().Dur("timeout", timeout).Msg("Broadcast WM_SETTINGCHANGE Environment")
}
