package tui

import (
	"fmt"
	"strings"

	"TUI_playlist_viewer/internal/core/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const youtubeAPILibraryURL = "https://console.cloud.google.com/apis/library/youtube.googleapis.com"

type repairResultMsg struct{ ok bool }

// RepairModel explica o que está errado com o cliente da API e espera o
// usuário corrigir. Enter confirma, Esc desiste.
type RepairModel struct {
	status           domain.ServiceStatus
	clientSecretPath string
}

func NewRepairModel(status domain.ServiceStatus, clientSecretPath string) *RepairModel {
	return &RepairModel{
		status:           status,
		clientSecretPath: clientSecretPath,
	}
}

func (m *RepairModel) Init() tea.Cmd {
	return nil
}

func (m *RepairModel) Status() domain.ServiceStatus {
	return m.status
}

func (m *RepairModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Select):
			return m, send(repairResultMsg{ok: true})
		case key.Matches(msg, keys.Back):
			return m, send(repairResultMsg{ok: false})
		}
	}
	return m, nil
}

func (m *RepairModel) instructions() string {
	switch m.status {
	case domain.ServiceMissing:
		return fmt.Sprintf("Create an OAuth client (Desktop app) in the Google Cloud console,\ndownload its JSON and save it as:\n\n  %s", m.clientSecretPath)
	case domain.ServiceInvalid:
		return fmt.Sprintf("The file below is not a valid OAuth client JSON. Download it again:\n\n  %s", m.clientSecretPath)
	case domain.ServiceDisabled:
		return "Enable the YouTube Data API v3 for the project that owns the OAuth client:\n\n  " + urlStyle.Render(youtubeAPILibraryURL)
	default:
		return "Check the Google API client configuration."
	}
}

func (m *RepairModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Google API client needs attention"))
	b.WriteString("\n\n")
	b.WriteString(errorMessageStyle.Render(fmt.Sprintf("%s (status %d)", m.status.Description(), m.status)))
	b.WriteString("\n\n")
	b.WriteString(m.instructions())
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("Press Enter after fixing it to try again, Esc to cancel."))

	return docStyle.Render(b.String())
}
