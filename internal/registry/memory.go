package registry

import (
	"pathedit/internal/errors"
	"pathedit/internal/model"
)

// MemoryValue is one stored value of the Memory backend.
type MemoryValue struct {
	Data []byte
	Type uint32
}

// Memory is an in-process Backend. Locations listed in Locked cannot be
// opened for write, which mimics an unelevated process writing HKLM.
type Memory struct {
	Values map[Location]MemoryValue
	Locked map[Location]bool
	// FailWrites makes every set call fail after the key is opened.
	FailWrites error
	// Writes counts successful WriteValue calls per location.
	Writes map[Location]int
}

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{
		Values: map[Location]MemoryValue{},
		Locked: map[Location]bool{},
		Writes: map[Location]int{},
	}
}

// Seed copies the current PATH values of every scope from another gateway,
// so edits saved against the copy never reach the source.
func (m *Memory) Seed(from *Gateway) {
	for _, scope := range model.Scopes {
		loc := LocationFor(scope)
		data, valtype, err := from.backend.ReadValue(loc)
		if err != nil {
			continue
		}
		m.Values[loc] = MemoryValue{Data: append([]byte(nil), data...), Type: valtype}
	}
}

func (m *Memory) ReadValue(loc Location) ([]byte, uint32, error) {
	v, ok := m.Values[loc]
	if !ok {
		return nil, 0, ErrValueNotFound
	}
	return append([]byte(nil), v.Data...), v.Type, nil
}

func (m *Memory) WriteValue(loc Location, data []byte, valtype uint32) error {
	if m.Locked[loc] {
		return errors.Newf(errors.ErrRegistryOpen, "open %s for write: Access is denied.", loc)
	}
	if m.FailWrites != nil {
		return errors.Wrapf(m.FailWrites, errors.ErrRegistryWrite, "set %s", loc)
	}
	m.Values[loc] = MemoryValue{Data: append([]byte(nil), data...), Type: valtype}
	m.Writes[loc]++
	return nil
}
