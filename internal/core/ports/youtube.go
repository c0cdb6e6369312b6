package ports

import (
	"TUI_playlist_viewer/internal/core/domain"
	"context"
)

// PlaylistFetcher faz a única chamada remota da aplicação.
// Falhas devem vir como *domain.FetchError.
type PlaylistFetcher interface {
	FetchPlaylist(ctx context.Context, account, playlistID string) ([]domain.VideoItem, error)
}

type ServicesChecker interface {
	Availability() domain.ServiceStatus
}
