package usecases

import (
	"TUI_playlist_viewer/internal/core/domain"
	"context"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

type fakeServices struct {
	status domain.ServiceStatus
	calls  int
}

func (s *fakeServices) Availability() domain.ServiceStatus {
	s.calls++
	return s.status
}

type fakePrefs struct {
	account    string
	permission bool
	setErr     error
}

func (p *fakePrefs) AccountName() (string, bool) {
	return p.account, p.account != ""
}

func (p *fakePrefs) SetAccountName(name string) error {
	if p.setErr != nil {
		return p.setErr
	}
	p.account = name
	return nil
}

func (p *fakePrefs) ClearAccountName() error {
	p.account = ""
	return nil
}

func (p *fakePrefs) HasAccountsPermission() bool {
	return p.permission
}

func (p *fakePrefs) GrantAccountsPermission() error {
	p.permission = true
	return nil
}

type fakeNetwork struct {
	online bool
	calls  int
}

func (n *fakeNetwork) IsOnline(context.Context) bool {
	n.calls++
	return n.online
}

type fakeFetcher struct {
	items []domain.VideoItem
	err   error
	calls []FetchRequest
}

func (f *fakeFetcher) FetchPlaylist(_ context.Context, account, playlistID string) ([]domain.VideoItem, error) {
	f.calls = append(f.calls, FetchRequest{Account: account, PlaylistID: playlistID})
	return f.items, f.err
}

type flowFixture struct {
	flow     *ResultsAcquisitionFlow
	store    *domain.PlaylistStore
	services *fakeServices
	prefs    *fakePrefs
	network  *fakeNetwork
	fetcher  *fakeFetcher
}

func newFlowFixture() *flowFixture {
	fx := &flowFixture{
		store:    domain.NewPlaylistStore(),
		services: &fakeServices{status: domain.ServiceSuccess},
		prefs:    &fakePrefs{permission: true, account: "ana@example.com"},
		network:  &fakeNetwork{online: true},
		fetcher:  &fakeFetcher{},
	}
	fx.flow = NewResultsAcquisitionFlow("PL123", fx.store, fx.services, fx.prefs, fx.network, fx.fetcher, nopLogger{})
	return fx
}

// runFetch executa o teste de rede e a busca como a interface faria.
func (fx *flowFixture) runFetch(t interface{ Helper() }, action Action) Action {
	t.Helper()
	if action.Kind == ActionCheckConnectivity {
		action = fx.flow.OnConnectivityResult(fx.flow.CheckConnectivity(context.Background()))
	}
	if action.Kind != ActionFetch {
		return action
	}
	items, err := fx.flow.Fetch(context.Background(), action.Request)
	return fx.flow.OnFetchResult(items, err)
}
