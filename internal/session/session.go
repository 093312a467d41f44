// Package session holds the editable User and System PATH lists and carries
// out the operator's intents against them.
package session

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"pathedit/internal/broadcast"
	"pathedit/internal/elevate"
	"pathedit/internal/errors"
	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/pathlist"
	"pathedit/internal/registry"
)

// StatusReady is the status text of a freshly loaded session.
const StatusReady = "Ready"

// Options wires a Session to its collaborators. Zero values fall back to the
// live system adapters.
type Options struct {
	Gateway          *registry.Gateway
	Elevator         elevate.Elevator
	Notifier         broadcast.Notifier
	BroadcastTimeout time.Duration
	// Args are forwarded to the elevated instance by RestartElevated.
	Args []string
	// Lookup resolves %NAME% tokens; nil uses the process environment.
	Lookup pathlist.LookupFunc
	// Setenv updates the process environment after a save.
	Setenv func(key, value string) error
}

// Session owns one Store per scope. It is driven from a single goroutine.
type Session struct {
	gateway  *registry.Gateway
	elevator elevate.Elevator
	notifier broadcast.Notifier
	timeout  time.Duration
	args     []string
	lookup   pathlist.LookupFunc
	setenv   func(key, value string) error

	elevated bool
	stores   map[model.Scope]*pathlist.Store
	status   string
	logger   zerolog.Logger
}

// New loads both scopes from the registry. Absent values load as empty lists.
func New(opts Options) *Session {
	s := &Session{
		gateway:  opts.Gateway,
		elevator: opts.Elevator,
		notifier: opts.Notifier,
		timeout:  opts.BroadcastTimeout,
		args:     opts.Args,
		lookup:   opts.Lookup,
		setenv:   opts.Setenv,
		stores:   make(map[model.Scope]*pathlist.Store, len(model.Scopes)),
		status:   StatusReady,
		logger:   logging.GetLogger("session"),
	}
	if s.gateway == nil {
		s.gateway = registry.NewGateway(registry.NewSystemBackend())
	}
	if s.elevator == nil {
		s.elevator = elevate.NewSystem()
	}
	if s.notifier == nil {
		s.notifier = broadcast.NewSystem()
	}
	if s.timeout <= 0 {
		s.timeout = broadcast.DefaultTimeout
	}
	if s.lookup == nil {
		s.lookup = os.LookupEnv
	}
	if s.setenv == nil {
		s.setenv = os.Setenv
	}

	s.elevated = s.elevator.IsElevated()
	for _, scope := range model.Scopes {
		raw, enc := s.gateway.Read(scope)
		s.stores[scope] = pathlist.NewStore(scope, raw, enc)
	}
	s.logger.Debug().
		Bool("elevated", s.elevated).
		Int("user", s.stores[model.ScopeUser].Len()).
		Int("system", s.stores[model.ScopeSystem].Len()).
		Msg("Session loaded")
	return s
}

// Store returns the list of scope. Callers may use it for selection and
// filtering; edits should go through the Session so status stays current.
func (s *Session) Store(scope model.Scope) *pathlist.Store { return s.stores[scope] }

func (s *Session) Elevated() bool { return s.elevated }
func (s *Session) Status() string { return s.status }

// Dirty reports whether any scope has unsaved edits.
func (s *Session) Dirty() bool {
	for _, st := range s.stores {
		if st.Dirty() {
			return true
		}
	}
	return false
}

// Lookup is the environment lookup used for expansion.
func (s *Session) Lookup() pathlist.LookupFunc { return s.lookup }

// Add appends a typed entry to scope.
func (s *Session) Add(scope model.Scope, text string) bool {
	if !s.stores[scope].Add(text) {
		return false
	}
	s.status = "Added entry to " + scope.Title()
	return true
}

// Browse appends a folder chosen in a picker to scope.
func (s *Session) Browse(scope model.Scope, folder string) bool {
	if !s.stores[scope].Add(folder) {
		return false
	}
	s.status = "Added folder to " + scope.Title()
	return true
}

// Remove deletes the selected entries of scope.
func (s *Session) Remove(scope model.Scope) int {
	st := s.stores[scope]
	if len(st.Selected()) == 0 {
		return 0
	}
	n := st.Remove()
	s.status = fmt.Sprintf("Removed %d %s entry/entries", n, scope.Title())
	return n
}

// Move shifts the selected entries of scope one step.
func (s *Session) Move(scope model.Scope, dir pathlist.Direction) error {
	st := s.stores[scope]
	if err := st.Move(dir); err != nil {
		return err
	}
	if len(st.Selected()) > 0 {
		s.status = "Reordered " + scope.Title()
	}
	return nil
}

// Dedupe removes entries of scope that resolve to the same directory as an
// earlier one.
func (s *Session) Dedupe(scope model.Scope) int {
	n := s.stores[scope].Dedupe(s.lookup)
	s.status = fmt.Sprintf("Dedupe removed %d entries from %s", n, scope.Title())
	return n
}

// Sort orders scope case-insensitively.
func (s *Session) Sort(scope model.Scope) {
	s.stores[scope].Sort()
	s.status = "Sorted " + scope.Title()
}

// SetFilter narrows the visible entries of scope.
func (s *Session) SetFilter(scope model.Scope, filter string) {
	s.stores[scope].SetFilter(filter)
}

// Reload discards edits to scope and reads the registry again.
func (s *Session) Reload(scope model.Scope) {
	raw, enc := s.gateway.Read(scope)
	s.stores[scope].Load(raw, enc)
	s.status = "Reloaded " + scope.Title()
}

// Expanded returns the entries of scope with tokens resolved.
func (s *Session) Expanded(scope model.Scope) []string {
	return s.stores[scope].Expanded(s.lookup)
}

// Save writes scope to the registry and broadcasts the change. Saving the
// System scope without elevation is refused before the registry is touched.
func (s *Session) Save(scope model.Scope) error {
	if err := s.checkWritable(scope); err != nil {
		return err
	}
	if err := s.write(scope); err != nil {
		return err
	}
	s.notify()
	s.updateProcessPath(scope)
	s.status = fmt.Sprintf("Saved %s PATH and broadcasted change", scope)
	return nil
}

// SaveAll writes the User scope and, when elevated, the System scope, then
// broadcasts once. A User failure stops before System is attempted.
func (s *Session) SaveAll() error {
	if err := s.write(model.ScopeUser); err != nil {
		return err
	}
	if !s.elevated {
		s.notify()
		s.updateProcessPath(model.ScopeUser)
		s.status = "Saved User PATH (System PATH skipped - not admin)"
		return nil
	}
	if err := s.write(model.ScopeSystem); err != nil {
		s.notify()
		s.updateProcessPath(model.ScopeUser)
		s.status = "Saved User PATH (System save failed)"
		return err
	}
	s.notify()
	s.updateProcessPath(model.ScopeSystem)
	s.status = "Saved User + System PATH and broadcasted change"
	return nil
}

// RestartElevated asks for an elevated instance with the original arguments.
// A nil error means the caller must exit.
func (s *Session) RestartElevated() error {
	if err := s.elevator.Relaunch(s.args); err != nil {
		s.status = "Restart as administrator failed"
		return err
	}
	s.status = "Restarting as administrator"
	return nil
}

func (s *Session) checkWritable(scope model.Scope) error {
	if scope.RequiresElevation() && !s.elevated {
		return errors.New(errors.ErrNotElevated, "Saving System PATH requires running as Administrator.").
			WithDetail("scope", scope.String())
	}
	return nil
}

func (s *Session) write(scope model.Scope) error {
	snap := s.stores[scope].Snapshot()
	raw := snap.Raw()
	enc := pathlist.SelectEncoding(raw, snap.Encoding)

	done := logging.LogOperationStart(s.logger, "save "+scope.String())
	defer done()

	if err := s.gateway.Write(scope, raw, enc); err != nil {
		s.logger.Error().Err(err).Str("scope", scope.String()).Msg("Save failed")
		return err
	}
	s.stores[scope].MarkSaved(enc)
	s.logger.Info().
		Str("scope", scope.String()).
		Str("encoding", enc.String()).
		Int("entries", len(snap.Entries)).
		Msg("PATH written")
	return nil
}

func (s *Session) notify() {
	s.notifier.NotifyEnvironmentChanged(s.timeout)
}

// updateProcessPath keeps this process's PATH in line with what was written:
// a System save merges User and System in search order, a User save uses the
// User list alone.
func (s *Session) updateProcessPath(scope model.Scope) {
	entries := s.stores[model.ScopeUser].Entries()
	if scope == model.ScopeSystem {
		entries = append(entries, s.stores[model.ScopeSystem].Entries()...)
	}
	if err := s.setenv("PATH", pathlist.Join(entries)); err != nil {
		s.logger.Warn().Err(err).Msg("Could not update process PATH")
	}
}
