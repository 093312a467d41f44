package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pathedit/internal/audit"
	"pathedit/internal/config"
	"pathedit/internal/model"
	"pathedit/internal/session"
)

// inputMode is what the keyboard is currently driving.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeAdd
	modeBrowse
	modeHelp
	modeConfirmQuit
)

// AppModel holds the TUI state. The PATH lists themselves live in Session.
type AppModel struct {
	Session *session.Session
	Config  config.Config
	DryRun  bool

	// Focus is the scope the keyboard edits.
	Focus model.Scope
	// Cursor is an index into the focused scope's visible positions.
	Cursor     map[model.Scope]int
	WindowSize tea.WindowSizeMsg

	Mode         inputMode
	ShowExpanded bool
	Notice       *session.Notice
	// Flash is a transient footer message, cleared by the next key.
	Flash string
	// Restart is set when an elevated instance was launched; the caller
	// must exit.
	Restart bool

	Audit    model.AnalysisResult
	analyzer *audit.Analyzer

	InputBuffer textinput.Model
	Picker      filepicker.Model
	Preview     viewport.Model
	HelpScrollY int

	Keys KeyMap
	Help help.Model

	copyToClipboard func(string) error
}

// InitialModel returns the editor for sess.
func InitialModel(sess *session.Session, cfg config.Config, dryRun bool) AppModel {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60

	m := AppModel{
		Session:         sess,
		Config:          cfg,
		DryRun:          dryRun,
		Focus:           model.ScopeUser,
		Cursor:          map[model.Scope]int{model.ScopeUser: 0, model.ScopeSystem: 0},
		InputBuffer:     ti,
		Preview:         viewport.New(80, 6),
		Keys:            DefaultKeyMap(),
		Help:            help.New(),
		analyzer:        audit.NewAnalyzer(sess.Lookup()),
		copyToClipboard: clipboard.WriteAll,
	}
	m.refreshAudit()
	return m
}

// refreshAudit re-derives the per-entry flags after the lists change.
func (m *AppModel) refreshAudit() {
	m.Audit = m.analyzer.AnalyzeSession(
		m.Session.Store(model.ScopeUser).Snapshot(),
		m.Session.Store(model.ScopeSystem).Snapshot(),
	)
}

// auditEntry returns the audited form of position pos in scope.
func (m *AppModel) auditEntry(scope model.Scope, pos int) (model.PathEntry, int, bool) {
	idx := pos
	if scope == model.ScopeSystem {
		idx += m.Session.Store(model.ScopeUser).Len()
	}
	if idx < 0 || idx >= len(m.Audit.PathEntries) {
		return model.PathEntry{}, idx, false
	}
	return m.Audit.PathEntries[idx], idx, true
}

// visible returns the positions the focused panel shows.
func (m *AppModel) visible(scope model.Scope) []int {
	return m.Session.Store(scope).VisiblePositions()
}

// cursorPosition maps the cursor of scope to a list position.
func (m *AppModel) cursorPosition(scope model.Scope) (int, bool) {
	vis := m.visible(scope)
	c := m.Cursor[scope]
	if c < 0 || c >= len(vis) {
		return 0, false
	}
	return vis[c], true
}

func (m *AppModel) clampCursor(scope model.Scope) {
	n := len(m.visible(scope))
	c := m.Cursor[scope]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.Cursor[scope] = c
}

// setCursorToPosition moves the cursor onto list position pos if visible.
func (m *AppModel) setCursorToPosition(scope model.Scope, pos int) {
	for i, p := range m.visible(scope) {
		if p == pos {
			m.Cursor[scope] = i
			return
		}
	}
}
