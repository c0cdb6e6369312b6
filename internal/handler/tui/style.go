package tui

import "github.com/charmbracelet/lipgloss"

var (
	// margens da tela inteira
	docStyle = lipgloss.NewStyle().
			Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Roxo
			Padding(1, 0)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{
			Light: "#A49FA5",
			Dark:  "#777777",
		})

	listHeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")). // Cinza
			MarginBottom(1).
			PaddingBottom(1)
	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
	selectedListItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("62")). // Roxo
				SetString("> ")

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{
			Light: "#04B575",
			Dark:  "#04B575",
		}) // Verde
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")) // Vermelho
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // Laranja
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Azul
			Underline(true)
)
