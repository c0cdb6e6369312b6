package usecases

import (
	"TUI_playlist_viewer/internal/core/domain"
	"context"
	"errors"
	"fmt"
)

// Fetch roda fora do loop da interface. É o único ponto de espera do fluxo.
func (f *ResultsAcquisitionFlow) Fetch(ctx context.Context, req FetchRequest) ([]domain.VideoItem, error) {
	f.log.Info(fmt.Sprintf("Fetching playlist %s for %s", req.PlaylistID, req.Account))

	items, err := f.fetcher.FetchPlaylist(ctx, req.Account, req.PlaylistID)
	if err != nil {
		f.log.Error("Playlist fetch failed", err)
		return nil, err
	}

	f.log.Info(fmt.Sprintf("Playlist fetch completed: %d videos", len(items)))
	return items, nil
}

// OnFetchResult interpreta o retorno de Fetch, já de volta no loop da interface.
func (f *ResultsAcquisitionFlow) OnFetchResult(items []domain.VideoItem, err error) Action {
	if err != nil {
		return f.interpretFailure(err)
	}

	// lista vazia não limpa o que já estava carregado
	if len(items) == 0 {
		f.log.Warning("Playlist returned no videos, keeping current list")
		return f.halt(domain.NewNotice(domain.NoticeEmptyResult, ""))
	}

	f.store.Replace(items)
	f.state = StateSuccess
	return Action{Kind: ActionRender}
}

func (f *ResultsAcquisitionFlow) interpretFailure(err error) Action {
	if errors.Is(err, context.Canceled) {
		f.log.Warning("Playlist fetch cancelled")
		return f.halt(domain.NewNotice(domain.NoticeRequestCancelled, ""))
	}

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = domain.NewGenericError(err)
	}

	switch fetchErr.Kind {
	case domain.FetchErrorServicesAvailability:
		f.log.Warning(fmt.Sprintf("Fetch needs services repair (status %d)", fetchErr.StatusCode))
		f.state = StateRecoverableError
		return Action{Kind: ActionShowRepair, StatusCode: fetchErr.StatusCode}

	case domain.FetchErrorAuthorizationRequired:
		f.log.Warning("Fetch needs user consent")
		f.state = StateRecoverableError
		return Action{Kind: ActionRequestConsent, ConsentURL: fetchErr.ConsentURL}

	default:
		f.state = StateFatalError
		return Action{Kind: ActionNotify, Notice: domain.NewNotice(domain.NoticeGenericFailure, fetchErr.Message)}
	}
}
