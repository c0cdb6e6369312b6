package tui

import (
	"context"
	"testing"

	"TUI_playlist_viewer/internal/core/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideosModel(loader *fakeLoader) (*VideosModel, *[]string) {
	var selected []string
	m := NewVideosModel(context.Background(), loader, func(videoID string) tea.Cmd {
		selected = append(selected, videoID)
		return nil
	})
	return m, &selected
}

func deliver(m *VideosModel, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestVideosModel_SetItemsLoadsOnlyVisibleThumbnails(t *testing.T) {
	loader := &fakeLoader{}
	m, _ := newVideosModel(loader)

	// placeholder com 2 linhas: cada linha da lista ocupa 3
	m.SetSize(80, videosChromeLines+2*3)
	msgs := collect(m.SetItems(videos("a", "b", "c", "d")))

	assert.Len(t, msgs, 2)
	assert.Equal(t, []string{
		"https://i.ytimg.com/vi/a/mqdefault.jpg",
		"https://i.ytimg.com/vi/b/mqdefault.jpg",
	}, loader.calls)
}

func TestVideosModel_ScrollingRequestsEachThumbnailOnce(t *testing.T) {
	loader := &fakeLoader{}
	m, _ := newVideosModel(loader)
	m.SetSize(80, videosChromeLines+2*3)
	deliver(m, collect(m.SetItems(videos("a", "b", "c", "d"))))

	for i := 0; i < 3; i++ {
		_, cmd := m.Update(keyDown)
		deliver(m, collect(cmd))
	}
	for i := 0; i < 3; i++ {
		_, cmd := m.Update(keyUp)
		deliver(m, collect(cmd))
	}

	assert.Len(t, loader.calls, 4)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.offset)
}

func TestVideosModel_ThumbnailFailureKeepsPlaceholder(t *testing.T) {
	loader := &fakeLoader{failing: map[string]bool{"https://i.ytimg.com/vi/b/mqdefault.jpg": true}}
	m, _ := newVideosModel(loader)
	deliver(m, collect(m.SetItems(videos("a", "b"))))

	assert.Equal(t, "art:https://i.ytimg.com/vi/a/mqdefault.jpg", m.thumbs["a"])
	_, ok := m.thumbs["b"]
	assert.False(t, ok)
	assert.Contains(t, m.View(), "..")
}

func TestVideosModel_RebindDropsOldThumbnails(t *testing.T) {
	loader := &fakeLoader{}
	m, _ := newVideosModel(loader)
	stale := collect(m.SetItems(videos("a")))

	m.SetItems(videos("b"))
	deliver(m, stale)

	assert.Empty(t, m.thumbs)
}

func TestVideosModel_SetItemsResetsCursorAndNotice(t *testing.T) {
	m, _ := newVideosModel(&fakeLoader{})
	m.SetItems(videos("a", "b", "c"))
	m.Update(keyDown)
	m.Update(keyDown)
	m.SetNotice(domain.NewNotice(domain.NoticeNoNetwork, ""))

	m.SetItems(videos("x", "y"))

	assert.Equal(t, 0, m.cursor)
	assert.True(t, m.Notice().IsZero())
}

func TestVideosModel_EnterSelectsRowUnderCursor(t *testing.T) {
	m, selected := newVideosModel(&fakeLoader{})
	m.SetItems(videos("a", "b", "c"))

	m.Update(keyDown)
	m.Update(keyDown)
	m.Update(keyDown)
	m.Update(keyEnter)

	require.Len(t, *selected, 1)
	assert.Equal(t, "c", (*selected)[0])
	assert.Contains(t, m.View(), "Video 3 of 3")
}

func TestVideosModel_EmptyList(t *testing.T) {
	m, selected := newVideosModel(&fakeLoader{})

	m.Update(keyEnter)

	assert.Empty(t, *selected)
	assert.Contains(t, m.View(), "No videos loaded yet.")
}
