package usecases

import (
	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/ports"
	"context"
	"fmt"
)

type FlowState int

const (
	StateIdle FlowState = iota
	StateCheckingServices
	StateAwaitingRepair
	StateCheckingAccount
	StateAwaitingPermission
	StateAwaitingAccount
	StateCheckingConnectivity
	StateFetching
	StateSuccess
	StateRecoverableError
	StateFatalError
	StateHalted
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingServices:
		return "checking_services"
	case StateAwaitingRepair:
		return "awaiting_repair"
	case StateCheckingAccount:
		return "checking_account"
	case StateAwaitingPermission:
		return "awaiting_permission"
	case StateAwaitingAccount:
		return "awaiting_account"
	case StateCheckingConnectivity:
		return "checking_connectivity"
	case StateFetching:
		return "fetching"
	case StateSuccess:
		return "success"
	case StateRecoverableError:
		return "recoverable_error"
	case StateFatalError:
		return "fatal_error"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShowRepair
	ActionRequestPermission
	ActionPickAccount
	ActionNotify
	ActionFetch
	ActionRender
	ActionRequestConsent
	ActionCheckConnectivity
)

// FetchRequest é copiado para a goroutine da busca, assim ela não lê o estado do flow.
type FetchRequest struct {
	Account    string
	PlaylistID string
}

// Action diz para a interface qual é o próximo passo.
type Action struct {
	Kind       ActionKind
	StatusCode domain.ServiceStatus
	ConsentURL string
	Notice     domain.Notice
	Request    FetchRequest
}

// ResultsAcquisitionFlow decide o que falta para buscar a playlist e
// interpreta o resultado da busca. Todos os métodos, exceto Fetch, devem
// ser chamados a partir do loop da interface.
type ResultsAcquisitionFlow struct {
	playlistID string
	store      *domain.PlaylistStore
	services   ports.ServicesChecker
	prefs      ports.AccountPreferences
	network    ports.ConnectivityChecker
	fetcher    ports.PlaylistFetcher
	log        ports.LoggerPort

	account string
	state   FlowState
}

func NewResultsAcquisitionFlow(
	playlistID string,
	store *domain.PlaylistStore,
	services ports.ServicesChecker,
	prefs ports.AccountPreferences,
	network ports.ConnectivityChecker,
	fetcher ports.PlaylistFetcher,
	logger ports.LoggerPort,
) *ResultsAcquisitionFlow {
	return &ResultsAcquisitionFlow{
		playlistID: playlistID,
		store:      store,
		services:   services,
		prefs:      prefs,
		network:    network,
		fetcher:    fetcher,
		log:        logger,
		state:      StateIdle,
	}
}

func (f *ResultsAcquisitionFlow) State() FlowState {
	return f.state
}

func (f *ResultsAcquisitionFlow) SelectedAccount() string {
	return f.account
}

// Start reentra no fluxo pelo começo.
func (f *ResultsAcquisitionFlow) Start(ctx context.Context) Action {
	f.log.Info("Results acquisition started")
	f.state = StateCheckingServices

	status := f.services.Availability()
	if status != domain.ServiceSuccess {
		f.log.Warning(fmt.Sprintf("Google API client unavailable: %s (status %d)", status.Description(), status))
		return f.showRepair(status)
	}

	return f.checkAccount()
}

func (f *ResultsAcquisitionFlow) checkAccount() Action {
	f.state = StateCheckingAccount

	if f.account == "" {
		if !f.prefs.HasAccountsPermission() {
			f.log.Info("Accounts permission missing, requesting it")
			f.state = StateAwaitingPermission
			return Action{Kind: ActionRequestPermission}
		}

		name, ok := f.prefs.AccountName()
		if !ok || name == "" {
			f.log.Info("No saved account, opening account picker")
			f.state = StateAwaitingAccount
			return Action{Kind: ActionPickAccount}
		}

		f.log.Info("Reusing saved account " + name)
		f.account = name
	}

	return f.checkConnectivity()
}

// checkConnectivity não testa a rede aqui: o teste pode demorar e roda
// fora do loop da interface, em CheckConnectivity.
func (f *ResultsAcquisitionFlow) checkConnectivity() Action {
	f.state = StateCheckingConnectivity
	return Action{Kind: ActionCheckConnectivity}
}

// CheckConnectivity roda fora do loop da interface, como Fetch.
func (f *ResultsAcquisitionFlow) CheckConnectivity(ctx context.Context) bool {
	return f.network.IsOnline(ctx)
}

// OnConnectivityResult só vale enquanto o flow espera pelo teste de rede;
// um resultado atrasado de uma tentativa anterior é ignorado.
func (f *ResultsAcquisitionFlow) OnConnectivityResult(online bool) Action {
	if f.state != StateCheckingConnectivity {
		f.log.Warning("Ignoring connectivity result outside of the connectivity check")
		return Action{Kind: ActionNone}
	}

	if !online {
		f.log.Warning("No network connection available")
		return f.halt(domain.NewNotice(domain.NoticeNoNetwork, ""))
	}

	f.state = StateFetching
	return Action{
		Kind: ActionFetch,
		Request: FetchRequest{
			Account:    f.account,
			PlaylistID: f.playlistID,
		},
	}
}

func (f *ResultsAcquisitionFlow) showRepair(status domain.ServiceStatus) Action {
	f.state = StateAwaitingRepair
	return Action{Kind: ActionShowRepair, StatusCode: status}
}

func (f *ResultsAcquisitionFlow) halt(notice domain.Notice) Action {
	f.state = StateHalted
	return Action{Kind: ActionNotify, Notice: notice}
}
