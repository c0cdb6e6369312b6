package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"TUI_playlist_viewer/internal/core/ports"
	"TUI_playlist_viewer/internal/handler/server"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const callbackPath = "/"

// Mensagens carregam o número da tentativa; respostas de uma tentativa
// anterior são ignoradas.
type authSuccessMsg struct {
	attempt int
	code    string
	account string
}
type authErrorMsg struct {
	attempt int
	err     error
}

type consentResultMsg struct {
	granted bool
	account string
}

type consentState int

const (
	consentWaitingForCallback consentState = iota
	consentExchangingToken
	consentSuccess
	consentError
)

// ConsentModel leva o usuário à tela de consentimento do Google no
// navegador e espera o redirect no servidor de callback local.
type ConsentModel struct {
	parent *AppModel

	state     consentState
	attempt   int
	authURL   string
	loginHint string
	csrfState string
	statusMsg string
	errorMsg  string

	// URL vinda do provider: o state já está nela e não muda entre tentativas
	fixedURL bool

	httpServerCancel context.CancelFunc
}

// NewConsentModel usa consentURL quando o provider já montou a URL; com
// consentURL vazio uma URL nova é gerada para adicionar uma conta.
func NewConsentModel(parent *AppModel, consentURL string) *ConsentModel {
	m := &ConsentModel{
		parent:   parent,
		authURL:  consentURL,
		fixedURL: consentURL != "",
	}

	if m.fixedURL {
		m.csrfState, m.loginHint = parseConsentURL(consentURL)
	}

	return m
}

func parseConsentURL(consentURL string) (state, loginHint string) {
	u, err := url.Parse(consentURL)
	if err != nil {
		return "", ""
	}
	q := u.Query()
	return q.Get("state"), q.Get("login_hint")
}

func (m *ConsentModel) Init() tea.Cmd {
	return m.start()
}

func (m *ConsentModel) start() tea.Cmd {
	m.stopServer()
	m.attempt++
	m.errorMsg = ""

	if !m.fixedURL {
		m.csrfState = uuid.NewString()
		m.authURL = m.parent.deps.Auth.GenerateAuthURL(m.csrfState, "")
	}

	if m.authURL == "" || m.csrfState == "" {
		m.state = consentError
		m.errorMsg = "Could not build the Google authorization link. Check the OAuth client configuration."
		m.statusMsg = "Press Enter to try again or Esc to cancel."
		return nil
	}

	m.state = consentWaitingForCallback
	m.statusMsg = "Open this link in your browser to grant access:\n"

	serverCtx, serverCancel := context.WithCancel(m.parent.appContext)
	m.httpServerCancel = serverCancel

	return tea.Batch(
		openBrowserCmd(m.parent.deps.Opener, m.authURL, m.parent.deps.Logger),
		waitForCallbackCmd(
			serverCtx,
			m.parent.deps.CallbackHandler,
			m.attempt,
			m.csrfState,
			m.parent.deps.CallbackAddr,
			callbackPath,
			m.parent.deps.Logger,
		),
	)
}

func (m *ConsentModel) stopServer() {
	if m.httpServerCancel != nil {
		m.httpServerCancel()
		m.httpServerCancel = nil
		m.parent.deps.Logger.Info("Servidor de callback finalizado.")
	}
}

// Cancel encerra o servidor de callback se ainda estiver rodando.
func (m *ConsentModel) Cancel() {
	m.stopServer()
}

func openBrowserCmd(opener ports.URLOpener, authURL string, logger ports.LoggerPort) tea.Cmd {
	return func() tea.Msg {
		// sem navegador o link continua na tela para ser copiado
		if err := opener.OpenURL(authURL); err != nil {
			logger.Error("Não foi possível abrir o navegador", err)
		}
		return nil
	}
}

// → Espera callback do Google (em background)
func waitForCallbackCmd(
	ctx context.Context,
	callbackHandler server.CallbackHandler,
	attempt int,
	expectedState string,
	addr string,
	callbackPath string,
	logger ports.LoggerPort,
) tea.Cmd {
	return func() tea.Msg {
		resultChan := make(chan server.OAuthCallbackResult, 1)

		logger.Info(fmt.Sprintf("Iniciando servidor de callback em %s", addr))
		_ = callbackHandler.ListenAndServe(ctx, expectedState, addr, callbackPath, resultChan)

		logger.Info("Aguardando resultado do callback OAuth...")
		select {
		case res := <-resultChan:
			if res.Error != nil {
				return authErrorMsg{attempt: attempt, err: fmt.Errorf("callback error: %w", res.Error)}
			}
			if res.Code != "" {
				return authSuccessMsg{attempt: attempt, code: res.Code}
			}
			return authErrorMsg{attempt: attempt, err: errors.New("nenhum código ou erro no callback")}
		case <-ctx.Done():
			logger.Info("Callback cancelado pelo contexto principal.")
			return authErrorMsg{attempt: attempt, err: fmt.Errorf("login cancelado: %w", ctx.Err())}
		}
	}
}

// → Troca o código recebido por um token
func exchangeCodeCmd(ctx context.Context, authService Authorizer, attempt int, code string) tea.Cmd {
	return func() tea.Msg {
		account, _, err := authService.ExchangeCodeForToken(ctx, code)
		if err != nil {
			return authErrorMsg{attempt: attempt, err: fmt.Errorf("falha na troca de token: %w", err)}
		}
		return authSuccessMsg{attempt: attempt, account: account}
	}
}

func (m *ConsentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			m.stopServer()
			m.attempt++
			return m, send(consentResultMsg{granted: false})
		case key.Matches(msg, keys.Select) && m.state == consentError:
			return m, m.start()
		}

	case authSuccessMsg:
		if msg.attempt != m.attempt || m.state == consentSuccess {
			return m, nil
		}
		m.stopServer()

		// fase 1: código recebido, falta trocar por token
		if msg.code != "" {
			m.state = consentExchangingToken
			m.statusMsg = "Code received! Exchanging it for a token..."
			return m, exchangeCodeCmd(m.parent.appContext, m.parent.deps.Auth, m.attempt, msg.code)
		}

		m.state = consentSuccess
		m.statusMsg = "Signed in as " + msg.account
		if m.loginHint != "" && msg.account != m.loginHint {
			m.parent.deps.Logger.Warning(fmt.Sprintf("Consent granted for %s instead of %s", msg.account, m.loginHint))
		}
		return m, send(consentResultMsg{granted: true, account: msg.account})

	case authErrorMsg:
		if msg.attempt != m.attempt || m.state != consentWaitingForCallback && m.state != consentExchangingToken {
			return m, nil
		}
		m.stopServer()
		m.state = consentError
		m.errorMsg = fmt.Sprintf("Authorization failed: %v", msg.err)
		m.statusMsg = "Press Enter to try again or Esc to cancel."
		m.parent.deps.Logger.Error("authErrorMsg recebido", msg.err)
	}

	return m, nil
}

func (m *ConsentModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Google Authorization"))
	b.WriteString("\n\n")

	if m.errorMsg != "" {
		b.WriteString(errorMessageStyle.Render(m.errorMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusMsg)
	b.WriteString("\n")

	if m.state == consentWaitingForCallback && m.authURL != "" {
		b.WriteString(urlStyle.Render(m.authURL))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("Waiting for the authorization in the browser..."))
	}

	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("(Esc to cancel)"))
	return docStyle.Render(b.String())
}
