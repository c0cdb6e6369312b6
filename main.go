// main.go
package main

import (
	"TUI_playlist_viewer/infrastructure/auth"
	"TUI_playlist_viewer/infrastructure/config"
	"TUI_playlist_viewer/infrastructure/logger"
	"TUI_playlist_viewer/infrastructure/network"
	"TUI_playlist_viewer/infrastructure/preferences"
	"TUI_playlist_viewer/infrastructure/provider"
	"TUI_playlist_viewer/infrastructure/thumbnail"
	"TUI_playlist_viewer/infrastructure/token_manager"
	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/ports"
	"TUI_playlist_viewer/internal/core/usecases"
	"TUI_playlist_viewer/internal/handler/server"
	"TUI_playlist_viewer/internal/handler/tui"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"google.golang.org/api/youtube/v3" // For scopes
)

const thumbnailTimeout = 10 * time.Second

// browserOpener abre links no navegador padrão sem escrever no terminal.
type browserOpener struct{}

func (browserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

// savedAccount é o que --reset apaga das preferências.
type savedAccount interface {
	AccountName() (string, bool)
	RevokeAccountsPermission() error
}

type tokenRevoker interface {
	RevokeToken(ctx context.Context, account string) error
}

type accountForgetter interface {
	ForgetAccount() error
}

// resetSavedAccount revoga o token da conta salva e esquece conta e permissão.
// Falha ao revogar só é registrada: o token pode já ter sido revogado no Google.
func resetSavedAccount(ctx context.Context, prefs savedAccount, revoker tokenRevoker, flow accountForgetter, appLogger ports.LoggerPort) error {
	if account, ok := prefs.AccountName(); ok {
		if err := revoker.RevokeToken(ctx, account); err != nil {
			appLogger.Error("Failed to revoke token for "+account, err)
		}
	}
	if err := flow.ForgetAccount(); err != nil {
		return fmt.Errorf("failed to reset account: %w", err)
	}
	if err := prefs.RevokeAccountsPermission(); err != nil {
		return fmt.Errorf("failed to reset accounts permission: %w", err)
	}
	appLogger.Info("Saved account and permission reset")
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

// run devolve o erro em vez de sair, para que os defers sempre rodem.
func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize Logger
	appLogger, err := logger.NewFileLogger(cfg.LogDir, "playlist_viewer")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	// a saída do pkg/browser estragaria a tela do Bubble Tea
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	prefs, err := preferences.Open(cfg.PreferencesPath(), appLogger)
	if err != nil {
		appLogger.Error("Failed to open preferences", err)
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer prefs.Close()

	// Initialize Services
	tokenService := token_manager.NewTokenService(cfg.TokenDir())
	authService := auth.NewAuthenticationService(
		[]string{youtube.YoutubeReadonlyScope},
		cfg.ClientSecretFile,
		cfg.CallbackURL(),
		tokenService,
	)

	youtubeProvider := provider.NewYoutubeProvider(authService, appLogger)
	connectivity := network.NewConnectivityChecker(cfg.ConnectivityHost, cfg.ConnectivityTimeout, appLogger)
	thumbnails := thumbnail.NewLoader(&http.Client{Timeout: thumbnailTimeout}, thumbnail.DefaultWidth, thumbnail.DefaultHeight)

	store := domain.NewPlaylistStore()
	flow := usecases.NewResultsAcquisitionFlow(
		cfg.PlaylistID,
		store,
		authService,
		prefs,
		connectivity,
		youtubeProvider,
		appLogger,
	)

	if cfg.ResetAccount {
		if err := resetSavedAccount(context.Background(), prefs, authService, flow, appLogger); err != nil {
			appLogger.Error("Failed to reset saved account", err)
			return err
		}
	}

	// Create the initial TUI model
	initialModel := tui.NewAppModel(tui.Dependencies{
		Flow:             flow,
		Store:            store,
		Auth:             authService,
		CallbackHandler:  server.NewCallbackHandler(appLogger),
		Accounts:         tokenService,
		Thumbnails:       thumbnails,
		Opener:           browserOpener{},
		Logger:           appLogger,
		CallbackAddr:     cfg.CallbackAddr,
		ClientSecretPath: cfg.ClientSecretFile,
	})

	// Start Bubble Tea program
	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Error("Error running TUI program", err)
		return err
	}
	appLogger.Info("Application finished.")
	return nil
}
