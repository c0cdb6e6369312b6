package tui

import (
	"context"
	"fmt"
	"strings"

	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/ports"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// linhas ocupadas por cabeçalho, aviso e ajuda
const videosChromeLines = 10

type thumbnailLoadedMsg struct {
	videoID string
	art     string
	err     error
}

// VideosModel mostra a playlist, uma linha por vídeo com miniatura e título.
// Enter chama onSelect com o ID do vídeo da linha.
type VideosModel struct {
	ctx      context.Context
	loader   ports.ThumbnailLoader
	onSelect func(videoID string) tea.Cmd

	items     []domain.VideoItem
	thumbs    map[string]string
	requested map[string]bool
	cursor    int
	offset    int

	width  int
	height int

	notice domain.Notice
}

func NewVideosModel(ctx context.Context, loader ports.ThumbnailLoader, onSelect func(videoID string) tea.Cmd) *VideosModel {
	return &VideosModel{
		ctx:       ctx,
		loader:    loader,
		onSelect:  onSelect,
		thumbs:    map[string]string{},
		requested: map[string]bool{},
	}
}

func (m *VideosModel) Init() tea.Cmd {
	return nil
}

// SetItems troca a lista inteira; não há diff entre a lista antiga e a nova.
func (m *VideosModel) SetItems(items []domain.VideoItem) tea.Cmd {
	m.items = items
	m.thumbs = map[string]string{}
	m.requested = map[string]bool{}
	m.cursor = 0
	m.offset = 0
	m.notice = domain.Notice{}
	return m.loadVisible()
}

func (m *VideosModel) Items() []domain.VideoItem {
	return m.items
}

func (m *VideosModel) SetNotice(notice domain.Notice) {
	m.notice = notice
}

func (m *VideosModel) ClearNotice() {
	m.notice = domain.Notice{}
}

func (m *VideosModel) Notice() domain.Notice {
	return m.notice
}

func (m *VideosModel) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	m.clampOffset()
	return m.loadVisible()
}

func (m *VideosModel) rowHeight() int {
	return strings.Count(m.loader.Placeholder(), "\n") + 2
}

func (m *VideosModel) visibleRows() int {
	if m.height == 0 {
		return 3
	}
	rows := (m.height - videosChromeLines) / m.rowHeight()
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *VideosModel) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *VideosModel) visibleRange() (int, int) {
	end := m.offset + m.visibleRows()
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.offset, end
}

// loadVisible dispara o download das miniaturas das linhas visíveis que
// ainda não foram pedidas. Não há cancelamento quando a linha sai da tela.
func (m *VideosModel) loadVisible() tea.Cmd {
	start, end := m.visibleRange()

	var cmds []tea.Cmd
	for _, item := range m.items[start:end] {
		if m.requested[item.ID()] {
			continue
		}
		m.requested[item.ID()] = true
		cmds = append(cmds, loadThumbnailCmd(m.ctx, m.loader, item))
	}

	return tea.Batch(cmds...)
}

func loadThumbnailCmd(ctx context.Context, loader ports.ThumbnailLoader, item domain.VideoItem) tea.Cmd {
	return func() tea.Msg {
		art, err := loader.Load(ctx, item.ThumbnailURL())
		return thumbnailLoadedMsg{videoID: item.ID(), art: art, err: err}
	}
}

func (m *VideosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case thumbnailLoadedMsg:
		// em caso de erro o placeholder continua na tela
		if msg.err == nil && m.requested[msg.videoID] {
			m.thumbs[msg.videoID] = msg.art
		}
		return m, nil

	case tea.KeyMsg:
		if len(m.items) == 0 {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			return m, m.onSelect(m.items[m.cursor].ID())
		default:
			return m, nil
		}

		m.clampOffset()
		return m, m.loadVisible()
	}

	return m, nil
}

func (m *VideosModel) View() string {
	var b strings.Builder

	if len(m.items) == 0 {
		b.WriteString(promptStyle.Render("No videos loaded yet."))
		b.WriteString("\n")
	}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		item := m.items[i]

		art, ok := m.thumbs[item.ID()]
		if !ok {
			art = m.loader.Placeholder()
		}

		title := listItemStyle.Render(item.Title())
		if i == m.cursor {
			title = selectedListItemStyle.Render(item.Title())
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, art, " ", title))
		b.WriteString("\n\n")
	}

	if len(m.items) > 0 {
		b.WriteString(promptStyle.Render(fmt.Sprintf("Video %d of %d", m.cursor+1, len(m.items))))
		b.WriteString("\n")
	}

	if !m.notice.IsZero() {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice.Message))
		b.WriteString("\n")
	}

	return b.String()
}
