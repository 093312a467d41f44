// Package registry reads and writes the raw PATH values of the User and
// System environment keys.
package registry

import (
	stderrors "errors"

	"github.com/rs/zerolog"

	"pathedit/internal/errors"
	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/pathlist"
)

// Hive is a predefined registry root key.
type Hive int

const (
	CurrentUser Hive = iota
	LocalMachine
)

func (h Hive) String() string {
	if h == LocalMachine {
		return "HKLM"
	}
	return "HKCU"
}

const (
	UserSubkey   = `Environment`
	SystemSubkey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	ValueName    = "Path"
)

// Location addresses one registry value.
type Location struct {
	Hive      Hive
	Subkey    string
	ValueName string
}

func (l Location) String() string {
	return l.Hive.String() + `\` + l.Subkey + `\` + l.ValueName
}

// LocationFor returns where the PATH value of scope lives.
func LocationFor(scope model.Scope) Location {
	if scope == model.ScopeSystem {
		return Location{Hive: LocalMachine, Subkey: SystemSubkey, ValueName: ValueName}
	}
	return Location{Hive: CurrentUser, Subkey: UserSubkey, ValueName: ValueName}
}

// ErrValueNotFound is returned by backends when the key opens but the value
// is not set.
var ErrValueNotFound = stderrors.New("registry value not found")

// Backend performs raw value access. Open failures must be reported as
// errors.ErrRegistryOpen and set failures as errors.ErrRegistryWrite.
type Backend interface {
	ReadValue(loc Location) (data []byte, valtype uint32, err error)
	WriteValue(loc Location, data []byte, valtype uint32) error
}

// Gateway binds scopes to their registry locations and converts between
// raw value data and PATH text.
type Gateway struct {
	backend Backend
	logger  zerolog.Logger
}

// NewGateway wraps a backend.
func NewGateway(backend Backend) *Gateway {
	return &Gateway{
		backend: backend,
		logger:  logging.GetLogger("registry"),
	}
}

// Read returns the PATH text and value type of scope. A key that cannot be
// opened or a value that is not set reads as ("", Plain): a missing PATH is
// a valid empty state.
func (g *Gateway) Read(scope model.Scope) (string, model.ValueEncoding) {
	loc := LocationFor(scope)
	data, valtype, err := g.backend.ReadValue(loc)
	if err != nil {
		g.logger.Debug().Err(err).Str("location", loc.String()).Msg("PATH value unavailable, treating as empty")
		return "", model.EncodingPlain
	}

	text := pathlist.Decode(data)
	g.logger.Debug().
		Str("location", loc.String()).
		Int("bytes", len(data)).
		Stringer("type", model.ValueEncoding(valtype)).
		Msg("Read PATH value")
	return text, model.ValueEncoding(valtype)
}

// Snapshot reads scope as a list, for read-only consumers.
func (g *Gateway) Snapshot(scope model.Scope) pathlist.Snapshot {
	raw, enc := g.Read(scope)
	return pathlist.Snapshot{Scope: scope, Entries: pathlist.Split(raw), Encoding: enc}
}

// Write stores text as the PATH value of scope using encoding. The value is
// set with a single call; failures are returned, never retried.
func (g *Gateway) Write(scope model.Scope, text string, encoding model.ValueEncoding) error {
	loc := LocationFor(scope)
	data := pathlist.Encode(text)
	if err := g.backend.WriteValue(loc, data, uint32(encoding)); err != nil {
		g.logger.Error().Err(err).Str("location", loc.String()).Msg("Failed to write PATH value")
		if errors.GetCode(err) == errors.ErrUnknown {
			return errors.Wrapf(err, errors.ErrRegistryWrite, "write %s", loc)
		}
		return err
	}
	g.logger.Info().
		Str("location", loc.String()).
		Int("bytes", len(data)).
		Stringer("type", encoding).
		Msg("Wrote PATH value")
	return nil
}
