package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const addAccountLabel = "Add a Google account…"

type accountChosenMsg struct{ name string }
type addAccountMsg struct{}

// AccountsModel é o seletor de contas: as contas com token salvo e, por
// último, a opção de entrar com uma conta nova.
type AccountsModel struct {
	accounts []string
	cursor   int
	err      error
}

func NewAccountsModel(accounts []string, err error) *AccountsModel {
	return &AccountsModel{
		accounts: accounts,
		err:      err,
	}
}

func (m *AccountsModel) Init() tea.Cmd {
	return nil
}

func (m *AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		// a última posição é "adicionar conta"
		if m.cursor < len(m.accounts) {
			m.cursor++
		}
	case key.Matches(msgKey, keys.Select):
		if m.cursor == len(m.accounts) {
			return m, send(addAccountMsg{})
		}
		return m, send(accountChosenMsg{name: m.accounts[m.cursor]})
	case key.Matches(msgKey, keys.Back):
		return m, send(accountChosenMsg{name: ""})
	}

	return m, nil
}

func (m *AccountsModel) View() string {
	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("Choose an account"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorMessageStyle.Render("Could not read saved accounts: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	for i, account := range m.accounts {
		if m.cursor == i {
			b.WriteString(selectedListItemStyle.Render(account))
		} else {
			b.WriteString(listItemStyle.Render(account))
		}
		b.WriteString("\n")
	}

	if m.cursor == len(m.accounts) {
		b.WriteString(selectedListItemStyle.Render(addAccountLabel))
	} else {
		b.WriteString(listItemStyle.Render(addAccountLabel))
	}
	b.WriteString("\n\n")

	b.WriteString(promptStyle.Render("Use ↑/↓ or j/k to navigate, Enter to select, Esc to cancel."))
	return docStyle.Render(b.String())
}
