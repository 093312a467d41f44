//go:build windows

package registry

import (
	stderrors "errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"pathedit/internal/errors"
)

var (
	advapi32          = windows.NewLazySystemDLL("advapi32.dll")
	procRegSetValueEx = advapi32.NewProc("RegSetValueExW")
)

// Windows is the Backend for the live registry.
type Windows struct{}

// NewSystemBackend returns the live registry backend.
func NewSystemBackend() Backend {
	return Windows{}
}

func rootKey(h Hive) registry.Key {
	if h == LocalMachine {
		return registry.LOCAL_MACHINE
	}
	return registry.CURRENT_USER
}

// ReadValue returns the raw bytes and type of the value, whatever its type.
func (Windows) ReadValue(loc Location) ([]byte, uint32, error) {
	k, err := registry.OpenKey(rootKey(loc.Hive), loc.Subkey, registry.QUERY_VALUE)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.ErrRegistryOpen, "open %s", loc)
	}
	defer k.Close()

	n, valtype, err := k.GetValue(loc.ValueName, nil)
	if err != nil {
		if stderrors.Is(err, registry.ErrNotExist) {
			return nil, 0, ErrValueNotFound
		}
		return nil, 0, err
	}
	// The value can grow between the size query and the read.
	for {
		buf := make([]byte, n)
		n, valtype, err = k.GetValue(loc.ValueName, buf)
		if err == nil {
			return buf[:n], valtype, nil
		}
		if !stderrors.Is(err, registry.ErrShortBuffer) {
			if stderrors.Is(err, registry.ErrNotExist) {
				return nil, 0, ErrValueNotFound
			}
			return nil, 0, err
		}
	}
}

// WriteValue sets the raw bytes with the given type in one RegSetValueEx call.
func (Windows) WriteValue(loc Location, data []byte, valtype uint32) error {
	k, err := registry.OpenKey(rootKey(loc.Hive), loc.Subkey, registry.SET_VALUE)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRegistryOpen, "open %s for write", loc)
	}
	defer k.Close()

	name, err := windows.UTF16PtrFromString(loc.ValueName)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRegistryWrite, "set %s", loc)
	}
	var pdata *byte
	if len(data) > 0 {
		pdata = &data[0]
	}
	r, _, _ := procRegSetValueEx.Call(
		uintptr(k),
		uintptr(unsafe.Pointer(name)),
		0,
		uintptr(valtype),
		uintptr(unsafe.Pointer(pdata)),
		uintptr(len(data)),
	)
	if r != 0 {
		return errors.Wrapf(syscall.Errno(r), errors.ErrRegistryWrite, "set %s", loc)
	}
	return nil
}
