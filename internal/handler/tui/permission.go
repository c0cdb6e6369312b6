package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type permissionResultMsg struct{ granted bool }

type PermissionModel struct{}

func NewPermissionModel() *PermissionModel {
	return &PermissionModel{}
}

func (m *PermissionModel) Init() tea.Cmd {
	return nil
}

func (m *PermissionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Yes):
			return m, send(permissionResultMsg{granted: true})
		case key.Matches(msg, keys.No):
			return m, send(permissionResultMsg{granted: false})
		}
	}
	return m, nil
}

func (m *PermissionModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Access to saved Google accounts"))
	b.WriteString("\n\n")
	b.WriteString("This app keeps the Google accounts you sign in with on this computer\n")
	b.WriteString("so it can load the playlist without asking again.\n\n")
	b.WriteString("Allow it to read the saved accounts?")
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("y / Enter to allow, n / Esc to deny."))

	return docStyle.Render(b.String())
}
