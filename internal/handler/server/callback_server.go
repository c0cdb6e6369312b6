package server

import (
	"TUI_playlist_viewer/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

const shutdownTimeout = 5 * time.Second

type OAuthCallbackResult struct {
	Code  string
	Error error
}

// CallbackHandler sobe um servidor HTTP temporário para receber o
// redirect do Google depois do consentimento.
type CallbackHandler interface {
	ListenAndServe(
		ctx context.Context,
		expectedState,
		addr,
		callbackPath string,
		resultChan chan<- OAuthCallbackResult,
	) *http.Server
}

type callbackHandlerImpl struct {
	logger ports.LoggerPort
}

func NewCallbackHandler(logger ports.LoggerPort) CallbackHandler {
	return &callbackHandlerImpl{
		logger: logger,
	}
}

// ListenAndServe envia no máximo um resultado em resultChan e desliga o
// servidor depois da primeira requisição ou quando ctx termina.
func (h *callbackHandlerImpl) ListenAndServe(
	ctx context.Context,
	expectedState string,
	addr string,
	callbackPath string,
	resultChan chan<- OAuthCallbackResult,
) *http.Server {
	mux := http.NewServeMux()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	handlerDone := make(chan struct{})
	var handled atomic.Bool
	deliver := func(res OAuthCallbackResult) {
		select {
		case resultChan <- res:
		default:
		}
	}

	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if !handled.CompareAndSwap(false, true) {
			http.Error(w, "This authorization request was already handled. You can close this tab.", http.StatusGone)
			return
		}
		defer close(handlerDone)

		state := r.URL.Query().Get("state")
		if state != expectedState {
			err := fmt.Errorf("state CSRF inválido. Recebido: '%s', Esperado: '%s'", state, expectedState)
			h.logger.Error("Erro de state CSRF", err)

			http.Error(w, "Invalid state. Please try the authentication process again.", http.StatusBadRequest)
			deliver(OAuthCallbackResult{Error: err})
			return
		}

		if authErrParam := r.URL.Query().Get("error"); authErrParam != "" {
			var errMsg error
			if errDesc := r.URL.Query().Get("error_description"); errDesc != "" {
				errMsg = fmt.Errorf("erro de autorização do provedor OAuth: %s - %s", authErrParam, errDesc)
			} else {
				errMsg = fmt.Errorf("erro de autorização do provedor OAuth: %s", authErrParam)
			}

			h.logger.Error("Erro do provedor OAuth", errMsg)

			http.Error(w, "An error occurred during authorization with the provider. You can close this tab.", http.StatusUnauthorized)
			deliver(OAuthCallbackResult{Error: errMsg})
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			err := fmt.Errorf("código de autorização não encontrado na requisição de callback")
			h.logger.Warning("Código de autorização não encontrado.")

			http.Error(w, "Authorization code not found in the request.", http.StatusBadRequest)
			deliver(OAuthCallbackResult{Error: err})
			return
		}

		fmt.Fprint(w, "Authorization received. You can close this browser tab and go back to the terminal.")
		h.logger.Info("Código de autorização recebido com sucesso.")

		deliver(OAuthCallbackResult{Code: code})
	})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		wrappedErr := fmt.Errorf("falha crítica ao iniciar servidor de callback HTTP: %w", err)
		h.logger.Error("Falha ao abrir a porta do callback", wrappedErr)
		deliver(OAuthCallbackResult{Error: wrappedErr})
		return httpServer
	}

	go func() {
		h.logger.Info("Iniciando servidor de callback em " + listener.Addr().String() + " - " + callbackPath)

		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("Servidor de callback HTTP falhou", err)
			deliver(OAuthCallbackResult{Error: fmt.Errorf("servidor de callback HTTP falhou: %w", err)})
		}

		h.logger.Info("Servidor de callback HTTP: Serve retornou.")
	}()

	go func() {
		select {
		case <-handlerDone:
			h.logger.Info("Servidor de callback OAuth: Handler concluiu, iniciando shutdown.")
		case <-ctx.Done():
			h.logger.Info("Servidor de callback OAuth: Contexto cancelado/timeout " + ctx.Err().Error() + ", iniciando shutdown.")
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("Erro ao desligar servidor de callback HTTP", err)
		} else {
			h.logger.Info("Servidor de callback HTTP desligado com sucesso.")
		}
	}()

	return httpServer
}
