package session

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathedit/internal/broadcast"
	"pathedit/internal/elevate"
	"pathedit/internal/errors"
	"pathedit/internal/model"
	"pathedit/internal/pathlist"
	"pathedit/internal/registry"
)

type fixture struct {
	mem      *registry.Memory
	elevator *elevate.Static
	counter  *broadcast.Counter
	env      map[string]string
}

func newFixture(elevated bool) *fixture {
	return &fixture{
		mem:      registry.NewMemory(),
		elevator: &elevate.Static{Elevated: elevated},
		counter:  &broadcast.Counter{},
		env:      map[string]string{"SystemRoot": `C:\Windows`},
	}
}

func (f *fixture) seed(scope model.Scope, text string, enc model.ValueEncoding) {
	f.mem.Values[registry.LocationFor(scope)] = registry.MemoryValue{
		Data: pathlist.Encode(text),
		Type: uint32(enc),
	}
}

func (f *fixture) stored(t *testing.T, scope model.Scope) (string, model.ValueEncoding) {
	t.Helper()
	v, ok := f.mem.Values[registry.LocationFor(scope)]
	require.True(t, ok, "no value stored for %s", scope)
	return pathlist.Decode(v.Data), model.ValueEncoding(v.Type)
}

func (f *fixture) writes(scope model.Scope) int {
	return f.mem.Writes[registry.LocationFor(scope)]
}

func (f *fixture) open() *Session {
	return New(Options{
		Gateway:          registry.NewGateway(f.mem),
		Elevator:         f.elevator,
		Notifier:         f.counter,
		BroadcastTimeout: time.Second,
		Args:             []string{"--verbose"},
		Lookup: func(name string) (string, bool) {
			v, ok := f.env[name]
			return v, ok
		},
		Setenv: func(key, value string) error {
			f.env[key] = value
			return nil
		},
	})
}

func TestNewLoadsBothScopes(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeUser, `C:\Tools;;  C:\Go\bin `, model.EncodingPlain)
	f.seed(model.ScopeSystem, `%SystemRoot%\System32`, model.EncodingExpandable)

	s := f.open()

	assert.Equal(t, StatusReady, s.Status())
	assert.False(t, s.Elevated())
	assert.False(t, s.Dirty())
	assert.Equal(t, []string{`C:\Tools`, `C:\Go\bin`}, s.Store(model.ScopeUser).Entries())
	assert.Equal(t, model.EncodingExpandable, s.Store(model.ScopeSystem).Encoding())
	assert.Equal(t, []string{`C:\Windows\System32`}, s.Expanded(model.ScopeSystem))
}

func TestAbsentValueAddSave(t *testing.T) {
	f := newFixture(false)
	s := f.open()

	assert.Equal(t, 0, s.Store(model.ScopeUser).Len())
	assert.Equal(t, model.EncodingPlain, s.Store(model.ScopeUser).Encoding())

	require.True(t, s.Add(model.ScopeUser, `C:\Tools`))
	assert.True(t, s.Dirty())
	require.NoError(t, s.Save(model.ScopeUser))

	v := f.mem.Values[registry.LocationFor(model.ScopeUser)]
	assert.Equal(t, pathlist.Encode(`C:\Tools`), v.Data)
	assert.Equal(t, uint32(model.EncodingPlain), v.Type)
	assert.Equal(t, 1, f.counter.Calls)
	assert.Equal(t, []time.Duration{time.Second}, f.counter.Timeouts)
	assert.False(t, s.Dirty())
	assert.Equal(t, "Saved User PATH and broadcasted change", s.Status())
	assert.Equal(t, `C:\Tools`, f.env["PATH"])
}

func TestSaveSelectsExpandableForTokens(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeUser, `C:\Tools`, model.EncodingPlain)
	s := f.open()

	s.Add(model.ScopeUser, `%USERPROFILE%\bin`)
	require.NoError(t, s.Save(model.ScopeUser))

	text, enc := f.stored(t, model.ScopeUser)
	assert.Equal(t, `C:\Tools;%USERPROFILE%\bin`, text)
	assert.Equal(t, model.EncodingExpandable, enc)
	assert.Equal(t, model.EncodingExpandable, s.Store(model.ScopeUser).Encoding())

	// Removing the token keeps the expandable type.
	s.Store(model.ScopeUser).SetSelection(1)
	s.Remove(model.ScopeUser)
	require.NoError(t, s.Save(model.ScopeUser))
	_, enc = f.stored(t, model.ScopeUser)
	assert.Equal(t, model.EncodingExpandable, enc)
}

func TestSaveSystemRequiresElevation(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeSystem, `C:\Windows`, model.EncodingExpandable)
	s := f.open()
	s.Add(model.ScopeSystem, `C:\Extra`)

	err := s.Save(model.ScopeSystem)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotElevated))
	assert.Equal(t, 0, f.writes(model.ScopeSystem))
	assert.Equal(t, 0, f.counter.Calls)
	assert.True(t, s.Store(model.ScopeSystem).Dirty())
	assert.Equal(t, "Added entry to System PATH (HKLM)", s.Status())

	// User saves are unaffected.
	s.Add(model.ScopeUser, `C:\Tools`)
	require.NoError(t, s.Save(model.ScopeUser))
	assert.Equal(t, 1, f.writes(model.ScopeUser))
}

func TestSaveSystemElevatedMergesProcessPath(t *testing.T) {
	f := newFixture(true)
	f.seed(model.ScopeUser, `C:\Users\me\bin`, model.EncodingPlain)
	f.seed(model.ScopeSystem, `C:\Windows`, model.EncodingPlain)
	s := f.open()

	s.Add(model.ScopeSystem, `C:\Extra`)
	require.NoError(t, s.Save(model.ScopeSystem))

	text, _ := f.stored(t, model.ScopeSystem)
	assert.Equal(t, `C:\Windows;C:\Extra`, text)
	assert.Equal(t, `C:\Users\me\bin;C:\Windows;C:\Extra`, f.env["PATH"])
	assert.Equal(t, 1, f.counter.Calls)
}

func TestSaveFailureLeavesState(t *testing.T) {
	f := newFixture(true)
	f.seed(model.ScopeSystem, `C:\Windows`, model.EncodingPlain)
	f.mem.Locked[registry.LocationFor(model.ScopeSystem)] = true
	s := f.open()

	s.Add(model.ScopeSystem, `%SystemRoot%\Tools`)
	err := s.Save(model.ScopeSystem)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistryOpen))
	assert.Contains(t, errors.Message(err), "Access is denied.")
	st := s.Store(model.ScopeSystem)
	assert.True(t, st.Dirty())
	assert.Equal(t, model.EncodingPlain, st.Encoding())
	assert.Equal(t, []string{`C:\Windows`, `%SystemRoot%\Tools`}, st.Entries())
	assert.Equal(t, 0, f.counter.Calls)
	_, set := f.env["PATH"]
	assert.False(t, set)
}

func TestSaveAllNotElevatedSkipsSystem(t *testing.T) {
	f := newFixture(false)
	s := f.open()
	s.Add(model.ScopeUser, `C:\Tools`)
	s.Add(model.ScopeSystem, `C:\Extra`)

	require.NoError(t, s.SaveAll())

	assert.Equal(t, 1, f.writes(model.ScopeUser))
	assert.Equal(t, 0, f.writes(model.ScopeSystem))
	assert.Equal(t, 1, f.counter.Calls)
	assert.Equal(t, "Saved User PATH (System PATH skipped - not admin)", s.Status())
	assert.True(t, s.Store(model.ScopeSystem).Dirty())
	assert.Equal(t, "User PATH saved. System PATH was skipped because this process is not elevated.", SavedAllNotice(false).Body)
}

func TestSaveAllElevated(t *testing.T) {
	f := newFixture(true)
	s := f.open()
	s.Add(model.ScopeUser, `C:\Tools`)
	s.Add(model.ScopeSystem, `C:\Extra`)

	require.NoError(t, s.SaveAll())

	assert.Equal(t, 1, f.writes(model.ScopeUser))
	assert.Equal(t, 1, f.writes(model.ScopeSystem))
	assert.Equal(t, 1, f.counter.Calls)
	assert.False(t, s.Dirty())
	assert.Equal(t, `C:\Tools;C:\Extra`, f.env["PATH"])
	assert.Equal(t, "Saved User + System PATH and broadcasted change", s.Status())
}

func TestSaveAllUserFailureStops(t *testing.T) {
	f := newFixture(true)
	f.mem.FailWrites = stderrors.New("The system cannot find the file specified.")
	s := f.open()
	s.Add(model.ScopeUser, `C:\Tools`)

	err := s.SaveAll()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistryWrite))
	assert.Contains(t, FailureNotice(err).Body, "The system cannot find the file specified.")
	assert.Equal(t, 0, f.counter.Calls)
	assert.True(t, s.Dirty())
}

func TestSaveAllSystemFailureKeepsUserSave(t *testing.T) {
	f := newFixture(true)
	f.mem.Locked[registry.LocationFor(model.ScopeSystem)] = true
	s := f.open()
	s.Add(model.ScopeUser, `C:\Tools`)
	s.Add(model.ScopeSystem, `C:\Extra`)

	err := s.SaveAll()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistryOpen))

	assert.Equal(t, 1, f.writes(model.ScopeUser))
	assert.Equal(t, 0, f.writes(model.ScopeSystem))
	assert.Equal(t, 1, f.counter.Calls)
	assert.False(t, s.Store(model.ScopeUser).Dirty())
	assert.True(t, s.Store(model.ScopeSystem).Dirty())
	assert.Equal(t, `C:\Tools`, f.env["PATH"])
	assert.Equal(t, "Saved User PATH (System save failed)", s.Status())
}

func TestEditIntentsUpdateStatus(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeUser, `A;B;C;D;b`, model.EncodingPlain)
	s := f.open()
	st := s.Store(model.ScopeUser)

	st.SetSelection(1, 2)
	require.NoError(t, s.Move(model.ScopeUser, pathlist.Up))
	assert.Equal(t, []string{"B", "C", "A", "D", "b"}, st.Entries())
	assert.Equal(t, []int{0, 1}, st.Selected())
	assert.Equal(t, "Reordered User PATH (HKCU)", s.Status())

	assert.Equal(t, 1, s.Dedupe(model.ScopeUser))
	assert.Equal(t, "Dedupe removed 1 entries from User PATH (HKCU)", s.Status())
	assert.Empty(t, st.Selected())

	s.Sort(model.ScopeUser)
	assert.Equal(t, []string{"A", "B", "C", "D"}, st.Entries())
	assert.Equal(t, "Sorted User PATH (HKCU)", s.Status())

	st.SetSelection(0, 3)
	assert.Equal(t, 2, s.Remove(model.ScopeUser))
	assert.Equal(t, "Removed 2 User PATH (HKCU) entry/entries", s.Status())

	assert.True(t, s.Browse(model.ScopeUser, `C:\Picked`))
	assert.Equal(t, "Added folder to User PATH (HKCU)", s.Status())
	assert.False(t, s.Add(model.ScopeUser, "   "))
}

func TestMoveRejectedWhileFiltering(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeUser, `A;B;C`, model.EncodingPlain)
	s := f.open()
	st := s.Store(model.ScopeUser)
	st.SetSelection(2)
	s.SetFilter(model.ScopeUser, "c")

	err := s.Move(model.ScopeUser, pathlist.Up)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMoveFiltered))
	assert.Equal(t, []string{"A", "B", "C"}, st.Entries())
	assert.False(t, st.Dirty())

	n := FailureNotice(err)
	assert.Equal(t, "Move disabled while filtering", n.Title)
	assert.Equal(t, "Clear the filter before moving entries.", n.Body)
	assert.False(t, n.Error)
}

func TestReloadDiscardsEdits(t *testing.T) {
	f := newFixture(false)
	f.seed(model.ScopeUser, `C:\Tools`, model.EncodingPlain)
	s := f.open()

	s.Add(model.ScopeUser, `C:\Other`)
	s.Reload(model.ScopeUser)

	assert.Equal(t, []string{`C:\Tools`}, s.Store(model.ScopeUser).Entries())
	assert.False(t, s.Dirty())
	assert.Equal(t, "Reloaded User PATH (HKCU)", s.Status())
}

func TestRestartElevated(t *testing.T) {
	f := newFixture(false)
	s := f.open()

	require.NoError(t, s.RestartElevated())
	assert.Equal(t, [][]string{{"--verbose"}}, f.elevator.Launched)

	f.elevator.LaunchErr = errors.New(errors.ErrLaunch, "ShellExecute runas failed").WithDetail("status", 1223)
	err := s.RestartElevated()
	require.Error(t, err)
	assert.Equal(t, "Restart failed", FailureNotice(err).Title)
	assert.Equal(t, "Restart as administrator failed", s.Status())
}

func TestFailureNoticeTitles(t *testing.T) {
	assert.Equal(t, "Administrator required", FailureNotice(errors.New(errors.ErrNotElevated, "x")).Title)
	assert.Equal(t, "Save failed", FailureNotice(errors.New(errors.ErrRegistryWrite, "x")).Title)
	assert.Equal(t, "Save failed", FailureNotice(stderrors.New("plain")).Title)
	assert.Equal(t, "System PATH saved. New terminals/apps will see the change.", SavedNotice(model.ScopeSystem).Body)
}
