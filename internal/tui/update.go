package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/pathlist"
	"pathedit/internal/session"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Preview.Width = msg.Width - 4
		m.Picker.Height = pickerHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.Flash = ""
		if m.Notice != nil {
			if key.Matches(msg, m.Keys.Confirm, m.Keys.Cancel, m.Keys.Toggle) {
				m.Notice = nil
			}
			return m, nil
		}
		switch m.Mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeAdd:
			return m.updateAdd(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirmQuit:
			if msg.String() == "y" || msg.String() == "Y" {
				return m, tea.Quit
			}
			m.Mode = modeNormal
			return m, nil
		case modeBrowse:
			if key.Matches(msg, m.Keys.Cancel) {
				m.Mode = modeNormal
				return m, nil
			}
		default:
			return m.updateNormal(msg)
		}
	}

	if m.Mode == modeBrowse {
		return m.updateBrowse(msg)
	}
	return m, cmd
}

func (m AppModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := m.Focus
	store := m.Session.Store(scope)

	switch {
	case key.Matches(msg, m.Keys.Quit):
		if msg.String() != "ctrl+c" && m.Config.ConfirmQuit && m.Session.Dirty() {
			m.Mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		if m.Cursor[scope] > 0 {
			m.Cursor[scope]--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor[scope] < len(m.visible(scope))-1 {
			m.Cursor[scope]++
		}
	case key.Matches(msg, m.Keys.Home):
		m.Cursor[scope] = 0
	case key.Matches(msg, m.Keys.End):
		m.Cursor[scope] = len(m.visible(scope)) - 1
		m.clampCursor(scope)
	case key.Matches(msg, m.Keys.Switch):
		m.Focus = otherScope(scope)
		m.updatePreview()

	case key.Matches(msg, m.Keys.Toggle):
		if pos, ok := m.cursorPosition(scope); ok {
			store.Toggle(pos)
		}
	case key.Matches(msg, m.Keys.Add):
		m.Mode = modeAdd
		m.InputBuffer.Placeholder = `C:\Tools\bin or %SystemRoot%\System32`
		m.InputBuffer.SetValue("")
		cmd := m.InputBuffer.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Browse):
		return m.openPicker()
	case key.Matches(msg, m.Keys.Remove):
		m.ensureSelection()
		if n := m.Session.Remove(scope); n > 0 {
			m.afterEdit()
		}
	case key.Matches(msg, m.Keys.MoveUp):
		m.move(pathlist.Up)
	case key.Matches(msg, m.Keys.MoveDown):
		m.move(pathlist.Down)
	case key.Matches(msg, m.Keys.Dedupe):
		m.Session.Dedupe(scope)
		m.afterEdit()
	case key.Matches(msg, m.Keys.Sort):
		m.Session.Sort(scope)
		m.afterEdit()
	case key.Matches(msg, m.Keys.Filter):
		m.Mode = modeFilter
		m.InputBuffer.Placeholder = "filter..."
		m.InputBuffer.SetValue(store.Filter())
		cmd := m.InputBuffer.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Cancel):
		if store.Filtering() {
			m.Session.SetFilter(scope, "")
			m.clampCursor(scope)
		} else {
			store.ClearSelection()
		}

	case key.Matches(msg, m.Keys.Expanded):
		m.ShowExpanded = !m.ShowExpanded
		m.updatePreview()
	case key.Matches(msg, m.Keys.Copy):
		if err := m.copyToClipboard(store.Raw()); err != nil {
			m.Flash = "Copy failed: " + err.Error()
		} else {
			m.Flash = "Copied " + scope.Title() + " to clipboard"
		}

	case key.Matches(msg, m.Keys.Save):
		if err := m.Session.Save(scope); err != nil {
			m.fail(err)
		} else {
			n := session.SavedNotice(scope)
			m.Notice = &n
			m.refreshAudit()
		}
	case key.Matches(msg, m.Keys.SaveAll):
		if err := m.Session.SaveAll(); err != nil {
			m.fail(err)
		} else {
			n := session.SavedAllNotice(m.Session.Elevated())
			m.Notice = &n
			m.refreshAudit()
		}
	case key.Matches(msg, m.Keys.Reload):
		m.Session.Reload(scope)
		m.afterEdit()
	case key.Matches(msg, m.Keys.Elevate):
		if err := m.Session.RestartElevated(); err != nil {
			m.fail(err)
			return m, nil
		}
		m.Restart = true
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.Mode = modeHelp
		m.HelpScrollY = 0
	}
	return m, nil
}

func (m AppModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		m.Mode = modeNormal
		m.InputBuffer.Blur()
		return m, nil
	case tea.KeyEsc:
		m.Mode = modeNormal
		m.InputBuffer.Blur()
		m.InputBuffer.SetValue("")
		m.Session.SetFilter(m.Focus, "")
		m.clampCursor(m.Focus)
		return m, nil
	}
	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	m.Session.SetFilter(m.Focus, m.InputBuffer.Value())
	m.clampCursor(m.Focus)
	return m, cmd
}

func (m AppModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyEnter:
		m.Mode = modeNormal
		m.InputBuffer.Blur()
		if m.Session.Add(m.Focus, m.InputBuffer.Value()) {
			m.afterEdit()
			m.selectLast()
		}
		m.InputBuffer.SetValue("")
		return m, nil
	case tea.KeyEsc:
		m.Mode = modeNormal
		m.InputBuffer.Blur()
		m.InputBuffer.SetValue("")
		return m, nil
	}
	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	return m, cmd
}

func (m AppModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Help, m.Keys.Cancel, m.Keys.Quit):
		m.Mode = modeNormal
	case key.Matches(msg, m.Keys.Up):
		if m.HelpScrollY > 0 {
			m.HelpScrollY--
		}
	case key.Matches(msg, m.Keys.Down):
		m.HelpScrollY++
	}
	return m, nil
}

func (m AppModel) openPicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.WindowSize.Height)
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	startDir := ""
	if pos, ok := m.cursorPosition(m.Focus); ok {
		candidate := pathlist.ExpandFunc(m.Session.Store(m.Focus).Entry(pos), m.Session.Lookup())
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			startDir = candidate
		}
	}
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		} else {
			startDir = "."
		}
	}
	fp.CurrentDirectory = startDir

	m.Picker = fp
	m.Mode = modeBrowse
	return m, fp.Init()
}

func (m AppModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Picker, cmd = m.Picker.Update(msg)
	if ok, path := m.Picker.DidSelectFile(msg); ok {
		m.Mode = modeNormal
		if m.Session.Browse(m.Focus, path) {
			m.afterEdit()
			m.selectLast()
		}
		return m, nil
	}
	return m, cmd
}

// ensureSelection selects the entry under the cursor when nothing is
// selected, so single-entry edits need no extra keypress.
func (m *AppModel) ensureSelection() {
	store := m.Session.Store(m.Focus)
	if len(store.Selected()) > 0 {
		return
	}
	if pos, ok := m.cursorPosition(m.Focus); ok {
		store.Select(pos)
	}
}

func (m *AppModel) move(dir pathlist.Direction) {
	m.ensureSelection()
	if err := m.Session.Move(m.Focus, dir); err != nil {
		m.fail(err)
		return
	}
	selected := m.Session.Store(m.Focus).Selected()
	if len(selected) == 0 {
		return
	}
	if dir == pathlist.Up {
		m.setCursorToPosition(m.Focus, selected[0])
	} else {
		m.setCursorToPosition(m.Focus, selected[len(selected)-1])
	}
	m.afterEdit()
}

func (m *AppModel) selectLast() {
	m.Cursor[m.Focus] = len(m.visible(m.Focus)) - 1
	m.clampCursor(m.Focus)
}

func (m *AppModel) afterEdit() {
	m.clampCursor(m.Focus)
	m.refreshAudit()
	m.updatePreview()
}

func (m *AppModel) fail(err error) {
	logger := logging.GetLogger("tui")
	logger.Debug().Err(err).Msg("Intent rejected")
	n := session.FailureNotice(err)
	m.Notice = &n
}

func (m *AppModel) updatePreview() {
	if !m.ShowExpanded {
		return
	}
	var b strings.Builder
	for i, e := range m.Session.Expanded(m.Focus) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e)
	}
	m.Preview.SetContent(b.String())
	m.Preview.GotoTop()
}

func otherScope(s model.Scope) model.Scope {
	if s == model.ScopeUser {
		return model.ScopeSystem
	}
	return model.ScopeUser
}

func pickerHeight(windowHeight int) int {
	h := windowHeight - 8
	if h < 5 {
		h = 5
	}
	return h
}

// Init starts the cursor blink; the lists are already loaded.
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}
