package provider

import (
	"TUI_playlist_viewer/infrastructure/auth"
	"TUI_playlist_viewer/infrastructure/token_manager"
	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const applicationName = "playlist-viewer-tui"

var playlistItemParts = []string{"snippet", "contentDetails"}

type youtubeProvider struct {
	authService auth.AuthenticationService
	log         ports.LoggerPort
	options     []option.ClientOption
}

// NewYoutubeProvider aceita opções extras do cliente (endpoint, por exemplo).
func NewYoutubeProvider(authService auth.AuthenticationService, logger ports.LoggerPort, opts ...option.ClientOption) ports.PlaylistFetcher {
	return &youtubeProvider{
		authService: authService,
		log:         logger,
		options:     opts,
	}
}

func (s *youtubeProvider) getYoutubeService(ctx context.Context, account string) (*youtube.Service, error) {
	client, _, err := s.authService.GetAuthenticatedClient(ctx, account)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.log.Error("error while load credential", err)
		if needsConsent(err) {
			return nil, s.authorizationRequired(account, err)
		}
		return nil, domain.NewGenericError(fmt.Errorf("error while load credential: %w", err))
	}

	opts := append([]option.ClientOption{
		option.WithHTTPClient(client),
		option.WithUserAgent(applicationName),
	}, s.options...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube service", err)
		return nil, domain.NewGenericError(fmt.Errorf("error while create youtube service: %w", err))
	}

	return service, nil
}

// FetchPlaylist lê só a primeira página; a playlist é pequena.
func (s *youtubeProvider) FetchPlaylist(ctx context.Context, account, playlistID string) ([]domain.VideoItem, error) {
	if status := s.authService.Availability(); status != domain.ServiceSuccess {
		return nil, domain.NewServicesAvailabilityError(status, nil)
	}

	service, err := s.getYoutubeService(ctx, account)
	if err != nil {
		return nil, err
	}

	//preparando chamada para a api do YouTube
	call := service.PlaylistItems.List(playlistItemParts).PlaylistId(playlistID).Context(ctx)

	response, err := call.Do()
	if err != nil {
		s.log.Error("error while call youtube service", err)
		return nil, s.classify(account, err)
	}

	if len(response.Items) == 0 {
		s.log.Warning("No videos found in playlist " + playlistID)
		return []domain.VideoItem{}, nil
	}

	videos := make([]domain.VideoItem, 0, len(response.Items))
	for _, item := range response.Items {
		video, ok := toVideoItem(item)
		if !ok {
			s.log.Warning(fmt.Sprintf("Skipping playlist item %s without video data", item.Id))
			continue
		}
		videos = append(videos, video)
	}

	s.log.Info(fmt.Sprintf("Playlist %s loaded with %d videos", playlistID, len(videos)))
	return videos, nil
}

func toVideoItem(item *youtube.PlaylistItem) (domain.VideoItem, bool) {
	if item == nil || item.ContentDetails == nil || item.Snippet == nil {
		return domain.VideoItem{}, false
	}

	videoID := item.ContentDetails.VideoId
	title := item.Snippet.Title

	var thumbnailURL string
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
		thumbnailURL = item.Snippet.Thumbnails.Medium.Url
	}

	if videoID == "" || title == "" || thumbnailURL == "" {
		return domain.VideoItem{}, false
	}

	return domain.NewVideoItem(videoID, title, thumbnailURL), true
}

// classify transforma o erro da API em uma das três categorias de falha.
func (s *youtubeProvider) classify(account string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	if needsConsent(err) {
		return s.authorizationRequired(account, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "accessNotConfigured":
				return domain.NewServicesAvailabilityError(domain.ServiceDisabled, err)
			case "authError", "insufficientPermissions":
				return s.authorizationRequired(account, err)
			}
		}
		if apiErr.Code == http.StatusUnauthorized {
			return s.authorizationRequired(account, err)
		}
	}

	return domain.NewGenericError(fmt.Errorf("error in call youtube api: %w", err))
}

// needsConsent diz se a credencial só volta a funcionar com um novo
// consentimento. Falhas de rede na renovação do token não contam.
func needsConsent(err error) bool {
	if errors.Is(err, token_manager.ErrTokenNotFound) ||
		errors.Is(err, token_manager.ErrTokenCorrupted) ||
		errors.Is(err, auth.ErrReauthorizationRequired) {
		return true
	}

	// o endpoint de token respondeu recusando; 5xx é instabilidade do Google
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return retrieveErr.Response == nil || retrieveErr.Response.StatusCode < http.StatusInternalServerError
	}

	return false
}

// A URL de consentimento carrega um state novo; a tela de consentimento
// lê o state da própria URL para validar o callback.
func (s *youtubeProvider) authorizationRequired(account string, err error) error {
	consentURL := s.authService.GenerateAuthURL(uuid.NewString(), account)
	return domain.NewAuthorizationRequiredError(consentURL, err)
}
