//go:build !windows

package registry

import (
	"pathedit/internal/errors"
)

type unsupported struct{}

// NewSystemBackend returns a backend that fails every call: the Windows
// registry does not exist on this platform.
func NewSystemBackend() Backend {
	return unsupported{}
}

func (unsupported) ReadValue(loc Location) ([]byte, uint32, error) {
	return nil, 0, errors.Newf(errors.ErrUnsupported, "%s: the Windows registry is not available on this platform", loc)
}

func (unsupported) WriteValue(loc Location, _ []byte, _ uint32) error {
	return errors.Newf(errors.ErrUnsupported, "%s: the Windows registry is not available on this platform", loc)
}
