package tui

import (
	"context"
	"strings"

	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/ports"
	"TUI_playlist_viewer/internal/core/usecases"
	"TUI_playlist_viewer/internal/handler/server"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"
)

type currentView int

const (
	viewVideos currentView = iota
	viewRepair
	viewPermission
	viewAccounts
	viewConsent
)

// Authorizer é a parte do serviço de autenticação que a tela de consentimento usa.
type Authorizer interface {
	GenerateAuthURL(state, loginHint string) string
	ExchangeCodeForToken(ctx context.Context, code string) (string, *oauth2.Token, error)
}

type AccountLister interface {
	ListAccounts() ([]string, error)
}

// Dependencies injetadas no AppModel.
type Dependencies struct {
	Flow             *usecases.ResultsAcquisitionFlow
	Store            *domain.PlaylistStore
	Auth             Authorizer
	CallbackHandler  server.CallbackHandler
	Accounts         AccountLister
	Thumbnails       ports.ThumbnailLoader
	Opener           ports.URLOpener
	Logger           ports.LoggerPort
	CallbackAddr     string
	ClientSecretPath string
}

type startFlowMsg struct{}
type fetchResultMsg struct {
	items []domain.VideoItem
	err   error
}
type connectivityResultMsg struct{ online bool }
type openVideoErrorMsg struct{ err error }

type AppModel struct {
	deps Dependencies

	videosModel     *VideosModel
	repairModel     *RepairModel
	permissionModel *PermissionModel
	accountsModel   *AccountsModel
	consentModel    *ConsentModel

	currentView   currentView
	addingAccount bool

	spinner  spinner.Model
	inFlight int

	appContext context.Context
	cancelApp  context.CancelFunc

	width  int
	height int
}

func NewAppModel(deps Dependencies) *AppModel {
	// Cria contexto principal que será cancelado no Quit
	appCtx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusMessageStyle

	m := &AppModel{
		deps:       deps,
		spinner:    s,
		appContext: appCtx,
		cancelApp:  cancel,
	}

	m.videosModel = NewVideosModel(appCtx, deps.Thumbnails, func(videoID string) tea.Cmd {
		return openVideoCmd(deps.Opener, videoID)
	})
	m.permissionModel = NewPermissionModel()

	m.currentView = viewVideos
	return m
}

// Init mostra o que já está no store, caso de um AppModel recriado sobre o
// mesmo store; só busca quando ele está vazio. O main sempre começa vazio.
func (m *AppModel) Init() tea.Cmd {
	if !m.deps.Store.IsEmpty() {
		m.deps.Logger.Info("Store já tem vídeos, exibindo sem buscar")
		return m.videosModel.SetItems(m.deps.Store.Items())
	}
	return send(startFlowMsg{})
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func openVideoCmd(opener ports.URLOpener, videoID string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenURL(domain.WatchURL(videoID)); err != nil {
			return openVideoErrorMsg{err: err}
		}
		return nil
	}
}

func checkConnectivityCmd(ctx context.Context, flow *usecases.ResultsAcquisitionFlow) tea.Cmd {
	return func() tea.Msg {
		return connectivityResultMsg{online: flow.CheckConnectivity(ctx)}
	}
}

func fetchVideosCmd(ctx context.Context, flow *usecases.ResultsAcquisitionFlow, req usecases.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		items, err := flow.Fetch(ctx, req)
		return fetchResultMsg{items: items, err: err}
	}
}

// apply executa o passo que o flow pediu.
func (m *AppModel) apply(action usecases.Action) tea.Cmd {
	switch action.Kind {
	case usecases.ActionShowRepair:
		m.repairModel = NewRepairModel(action.StatusCode, m.deps.ClientSecretPath)
		m.currentView = viewRepair
		return m.repairModel.Init()

	case usecases.ActionRequestPermission:
		m.currentView = viewPermission
		return m.permissionModel.Init()

	case usecases.ActionPickAccount:
		accounts, err := m.deps.Accounts.ListAccounts()
		if err != nil {
			m.deps.Logger.Error("Falha ao listar contas salvas", err)
		}
		m.accountsModel = NewAccountsModel(accounts, err)
		m.currentView = viewAccounts
		return m.accountsModel.Init()

	case usecases.ActionRequestConsent:
		return m.showConsent(action.ConsentURL)

	case usecases.ActionNotify:
		m.currentView = viewVideos
		m.videosModel.SetNotice(action.Notice)
		return nil

	case usecases.ActionCheckConnectivity:
		m.currentView = viewVideos
		m.videosModel.ClearNotice()
		m.inFlight++
		return tea.Batch(m.spinner.Tick, checkConnectivityCmd(m.appContext, m.deps.Flow))

	case usecases.ActionFetch:
		m.currentView = viewVideos
		m.videosModel.ClearNotice()
		m.inFlight++
		return tea.Batch(m.spinner.Tick, fetchVideosCmd(m.appContext, m.deps.Flow, action.Request))

	case usecases.ActionRender:
		m.currentView = viewVideos
		return m.videosModel.SetItems(m.deps.Store.Items())

	default:
		m.currentView = viewVideos
		return nil
	}
}

func (m *AppModel) showConsent(consentURL string) tea.Cmd {
	m.closeConsent()
	m.consentModel = NewConsentModel(m, consentURL)
	m.currentView = viewConsent
	return m.consentModel.Init()
}

func (m *AppModel) closeConsent() {
	if m.consentModel != nil {
		m.consentModel.Cancel()
		m.consentModel = nil
	}
}

func (m *AppModel) onConsentResult(msg consentResultMsg) tea.Cmd {
	m.closeConsent()
	flow := m.deps.Flow

	if m.addingAccount {
		m.addingAccount = false
		if msg.granted && msg.account != "" {
			return m.apply(flow.OnAccountChosen(m.appContext, msg.account))
		}
		return m.apply(usecases.Action{Kind: usecases.ActionPickAccount})
	}

	// o usuário pode ter autorizado outra conta no navegador
	if msg.granted && msg.account != "" && msg.account != flow.SelectedAccount() {
		m.deps.Logger.Info("Consentimento concedido para outra conta, trocando para " + msg.account)
		return m.apply(flow.OnAccountChosen(m.appContext, msg.account))
	}
	return m.apply(flow.OnConsentResult(m.appContext, msg.granted))
}

func (m *AppModel) quit() tea.Cmd {
	m.deps.Logger.Info("Encerrando app.")
	m.closeConsent()
	m.cancelApp()
	return tea.Quit
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	flow := m.deps.Flow

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m, m.quit()
		case m.currentView == viewVideos && key.Matches(msg, keys.Quit):
			return m, m.quit()
		case m.currentView == viewVideos && key.Matches(msg, keys.Refresh):
			m.deps.Logger.Info("Refresh solicitado")
			return m, m.apply(flow.Start(m.appContext))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.videosModel.SetSize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startFlowMsg:
		return m, m.apply(flow.Start(m.appContext))

	case connectivityResultMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		action := flow.OnConnectivityResult(msg.online)
		// resultado atrasado: a tela atual continua
		if action.Kind == usecases.ActionNone {
			return m, nil
		}
		return m, m.apply(action)

	case fetchResultMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		return m, m.apply(flow.OnFetchResult(msg.items, msg.err))

	case repairResultMsg:
		return m, m.apply(flow.OnServicesRepaired(m.appContext, msg.ok))

	case permissionResultMsg:
		return m, m.apply(flow.OnPermissionResult(m.appContext, msg.granted))

	case accountChosenMsg:
		return m, m.apply(flow.OnAccountChosen(m.appContext, msg.name))

	case addAccountMsg:
		m.addingAccount = true
		return m, m.showConsent("")

	case consentResultMsg:
		return m, m.onConsentResult(msg)

	case authSuccessMsg, authErrorMsg:
		if m.consentModel == nil {
			return m, nil
		}
		_, cmd := m.consentModel.Update(msg)
		return m, cmd

	case thumbnailLoadedMsg:
		_, cmd := m.videosModel.Update(msg)
		return m, cmd

	case openVideoErrorMsg:
		m.deps.Logger.Error("Falha ao abrir o vídeo", msg.err)
		m.videosModel.SetNotice(domain.NewNotice(domain.NoticeGenericFailure, msg.err.Error()))
		return m, nil
	}

	// Agora delegamos o Update ao submodel correto, de acordo com a tela atual
	var cmd tea.Cmd
	switch m.currentView {
	case viewVideos:
		_, cmd = m.videosModel.Update(msg)
	case viewRepair:
		if m.repairModel != nil {
			_, cmd = m.repairModel.Update(msg)
		}
	case viewPermission:
		_, cmd = m.permissionModel.Update(msg)
	case viewAccounts:
		if m.accountsModel != nil {
			_, cmd = m.accountsModel.Update(msg)
		}
	case viewConsent:
		if m.consentModel != nil {
			_, cmd = m.consentModel.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) header() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("YouTube Playlist Viewer"))
	if account := m.deps.Flow.SelectedAccount(); account != "" {
		b.WriteString("  ")
		b.WriteString(promptStyle.Render(account))
	}
	b.WriteString("\n")

	if m.inFlight > 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(statusMessageStyle.Render(" Calling YouTube Data API..."))
	}
	b.WriteString("\n\n")
	return b.String()
}

func (m *AppModel) View() string {
	switch m.currentView {
	case viewRepair:
		if m.repairModel != nil {
			return m.repairModel.View()
		}
	case viewPermission:
		return m.permissionModel.View()
	case viewAccounts:
		if m.accountsModel != nil {
			return m.accountsModel.View()
		}
	case viewConsent:
		if m.consentModel != nil {
			return m.consentModel.View()
		}
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString(m.videosModel.View())
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("↑/↓ or j/k to move, Enter to watch, Ctrl+R to refresh, q to quit."))
	return docStyle.Render(b.String())
}
