package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mainView renders the editor as the background of a modal overlay.
type mainView struct {
	model *AppModel
}

func (v *mainView) Init() tea.Cmd { return nil }
func (v *mainView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v *mainView) View() string { return v.model.renderMain() }

// noticeView is a blocking message box drawn over the editor.
type noticeView struct {
	title string
	body  string
	err   bool
	hint  string
	width int
}

func (v *noticeView) Init() tea.Cmd { return nil }
func (v *noticeView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *noticeView) View() string {
	border := lipgloss.Color("63")
	if v.err {
		border = lipgloss.Color("196")
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(border).Render(v.title)
	body := lipgloss.NewStyle().Width(v.width).Render(v.body)
	hint := dimStyle.Render(v.hint)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(title + "\n\n" + body + "\n\n" + hint)
}
