package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"pathedit/internal/audit"
	"pathedit/internal/docs"
	"pathedit/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	normalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // Orange
	adminStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func (m AppModel) View() string {
	if m.WindowSize.Width == 0 {
		return "\n  Loading PATH...\n"
	}
	if m.Mode == modeHelp {
		return m.renderHelpDialog()
	}

	if m.Notice != nil {
		return m.renderOverlay(&noticeView{
			title: m.Notice.Title,
			body:  m.Notice.Body,
			err:   m.Notice.Error,
			hint:  "enter: ok",
			width: m.dialogWidth(),
		})
	}
	if m.Mode == modeConfirmQuit {
		return m.renderOverlay(&noticeView{
			title: "Unsaved changes",
			body:  "There are unsaved PATH edits. Quit anyway?",
			err:   true,
			hint:  "y: quit • any other key: stay",
			width: m.dialogWidth(),
		})
	}
	return m.renderMain()
}

func (m AppModel) renderOverlay(fg *noticeView) string {
	return overlay.New(fg, &mainView{model: &m}, overlay.Center, overlay.Center, 0, 0).View()
}

func (m AppModel) dialogWidth() int {
	w := m.WindowSize.Width * 60 / 100
	if w < 30 {
		w = 30
	}
	return w
}

func (m *AppModel) renderMain() string {
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	header := m.renderHeader()

	var body string
	if m.Mode == modeBrowse {
		body = lipgloss.NewStyle().
			Width(width-2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("205")).
			Render(panelTitleStyle.Render("Add folder to "+m.Focus.Title()) + "\n" +
				dimStyle.Render(m.Picker.CurrentDirectory) + "\n\n" + m.Picker.View())
	} else {
		netWidth := width - 4
		if netWidth < 40 {
			netWidth = 40
		}
		leftWidth := netWidth / 2
		rightWidth := netWidth - leftWidth

		reserved := 7 // header, raw preview, footer, status, borders
		if m.ShowExpanded {
			reserved += m.Preview.Height + 2
		}
		boxHeight := height - reserved
		if boxHeight < 4 {
			boxHeight = 4
		}

		left := m.renderPanel(model.ScopeUser, leftWidth, boxHeight)
		right := m.renderPanel(model.ScopeSystem, rightWidth, boxHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
		body += "\n" + m.renderRawPreview(width)
		if m.ShowExpanded {
			body += "\n" + lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render(m.Preview.View())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter(), m.renderStatus())
}

func (m *AppModel) renderHeader() string {
	title := titleStyle.Render("pathedit " + model.Version)
	privilege := warnStyle.Render("Not elevated: System PATH is read-only (E to restart as admin)")
	if m.Session.Elevated() {
		privilege = adminStyle.Render("Administrator")
	}
	header := title + "  " + privilege
	if m.DryRun {
		header += "  " + warnStyle.Render("[dry run: saves stay in memory]")
	}
	return header
}

func (m *AppModel) renderPanel(scope model.Scope, width, height int) string {
	store := m.Session.Store(scope)
	focused := scope == m.Focus

	var b strings.Builder
	heading := scope.Title()
	if store.Dirty() {
		heading += " " + model.IconDirty
	}
	b.WriteString(panelTitleStyle.Render(heading))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %d entries", store.Encoding(), store.Len())))
	b.WriteString("\n")
	if store.Filtering() {
		b.WriteString(dimStyle.Render("filter: " + store.Filter()))
	}
	b.WriteString("\n")

	// Windowing around the cursor; two header lines.
	vis := store.VisiblePositions()
	visibleItems := height - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	cursor := m.Cursor[scope]
	startIdx, endIdx := 0, len(vis)
	if len(vis) > visibleItems {
		if cursor >= visibleItems/2 {
			startIdx = cursor - visibleItems/2
		}
		if startIdx+visibleItems > len(vis) {
			startIdx = len(vis) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	if len(vis) == 0 {
		if store.Filtering() {
			b.WriteString(dimStyle.Render("No entries match the filter."))
		} else {
			b.WriteString(dimStyle.Render("PATH is empty. Press a to add an entry."))
		}
	}

	total := len(m.Audit.PathEntries)
	for i := startIdx; i < endIdx; i++ {
		pos := vis[i]
		mark := " "
		if store.IsSelected(pos) {
			mark = model.IconSelected
		}
		flags := "    "
		if entry, idx, ok := m.auditEntry(scope, pos); ok && entry.Value == store.Entry(pos) {
			flags = audit.Flags(entry, idx, total)
		}
		line := truncate(fmt.Sprintf("%2d. %s%s %s", pos+1, mark, flags, store.Entry(pos)), width-2)

		style := normalStyle
		switch {
		case focused && i == cursor:
			style = cursorStyle
		case store.IsSelected(pos):
			style = selectedStyle
		case !focused:
			style = dimStyle
		}
		b.WriteString(style.Render(line))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	borderColor := lipgloss.Color("63")
	if focused {
		borderColor = lipgloss.Color("205")
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(b.String())
}

func (m *AppModel) renderRawPreview(width int) string {
	raw := m.Session.Store(m.Focus).Raw()
	return dimStyle.Render(truncate("Raw: "+raw, width))
}

func (m *AppModel) renderFooter() string {
	switch m.Mode {
	case modeFilter:
		return "Filter " + m.Focus.Title() + ": " + m.InputBuffer.View()
	case modeAdd:
		return "Add to " + m.Focus.Title() + ": " + m.InputBuffer.View()
	case modeBrowse:
		return dimStyle.Render("enter: choose folder • h/backspace: up • esc: cancel")
	}
	return m.Help.ShortHelpView(m.Keys.ShortHelp())
}

func (m *AppModel) renderStatus() string {
	if m.Flash != "" {
		return selectedStyle.Render(m.Flash)
	}
	return dimStyle.Render(m.Session.Status())
}

func (m *AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := h - 6
	if helpHeight < 5 {
		helpHeight = 5
	}

	content := renderMarkdown(docs.Help(), m.Config.MarkdownStyle, helpWidth-4)
	lines := strings.Split(content, "\n")
	contentHeight := helpHeight - 2

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}
	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(strings.Join(lines[startY:endY], "\n"))

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

// truncate shortens s to at most width cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width < 4 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
