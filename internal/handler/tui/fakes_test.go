package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"TUI_playlist_viewer/internal/core/domain"
	"TUI_playlist_viewer/internal/core/usecases"
	"TUI_playlist_viewer/internal/handler/server"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

type fakeServices struct {
	status domain.ServiceStatus
}

func (s *fakeServices) Availability() domain.ServiceStatus {
	return s.status
}

type fakePrefs struct {
	account    string
	permission bool
}

func (p *fakePrefs) AccountName() (string, bool) {
	return p.account, p.account != ""
}

func (p *fakePrefs) SetAccountName(name string) error {
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

// fakeNetwork segura IsOnline até release ser fechado, quando definido.
type fakeNetwork struct {
	online  bool
	release chan struct{}
}

func (n *fakeNetwork) IsOnline(context.Context) bool {
	if n.release != nil {
		<-n.release
	}
	return n.online
}

type fetchResult struct {
	items []domain.VideoItem
	err   error
}

// fakeFetcher devolve results em ordem; o último se repete.
type fakeFetcher struct {
	results []fetchResult
	calls   []string
}

func (f *fakeFetcher) FetchPlaylist(_ context.Context, account, _ string) ([]domain.VideoItem, error) {
	f.calls = append(f.calls, account)
	if len(f.results) == 0 {
		return nil, nil
	}
	i := len(f.calls) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i].items, f.results[i].err
}

type fakeLoader struct {
	failing map[string]bool
	calls   []string
}

func (l *fakeLoader) Load(_ context.Context, url string) (string, error) {
	l.calls = append(l.calls, url)
	if l.failing[url] {
		return "", errors.New("thumbnail unavailable")
	}
	return "art:" + url, nil
}

func (l *fakeLoader) Placeholder() string {
	return "..\n.."
}

type fakeOpener struct {
	urls []string
	err  error
}

func (o *fakeOpener) OpenURL(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

func (o *fakeOpener) watchURLs() []string {
	var out []string
	for _, u := range o.urls {
		if strings.HasPrefix(u, "https://www.youtube.com/watch") {
			out = append(out, u)
		}
	}
	return out
}

type fakeAccounts struct {
	accounts []string
	err      error
}

func (a *fakeAccounts) ListAccounts() ([]string, error) {
	return a.accounts, a.err
}

type fakeAuth struct {
	account     string
	exchangeErr error
	codes       []string
}

func (a *fakeAuth) GenerateAuthURL(state, loginHint string) string {
	return "https://accounts.example.com/auth?state=" + state + "&login_hint=" + loginHint
}

func (a *fakeAuth) ExchangeCodeForToken(_ context.Context, code string) (string, *oauth2.Token, error) {
	a.codes = append(a.codes, code)
	if a.exchangeErr != nil {
		return "", nil, a.exchangeErr
	}
	return a.account, &oauth2.Token{AccessToken: "access"}, nil
}

// fakeCallbackHandler entrega result na hora, sem abrir porta.
type fakeCallbackHandler struct {
	result server.OAuthCallbackResult
	states []string
}

func (h *fakeCallbackHandler) ListenAndServe(
	_ context.Context,
	expectedState,
	_,
	_ string,
	resultChan chan<- server.OAuthCallbackResult,
) *http.Server {
	h.states = append(h.states, expectedState)
	resultChan <- h.result
	return &http.Server{}
}

type appFixture struct {
	app      *AppModel
	store    *domain.PlaylistStore
	services *fakeServices
	prefs    *fakePrefs
	network  *fakeNetwork
	fetcher  *fakeFetcher
	loader   *fakeLoader
	opener   *fakeOpener
	accounts *fakeAccounts
	auth     *fakeAuth
	callback *fakeCallbackHandler
}

// newAppFixture monta um app pronto para buscar com a conta me@example.com.
func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	f := &appFixture{
		store:    domain.NewPlaylistStore(),
		services: &fakeServices{status: domain.ServiceSuccess},
		prefs:    &fakePrefs{account: "me@example.com", permission: true},
		network:  &fakeNetwork{online: true},
		fetcher:  &fakeFetcher{},
		loader:   &fakeLoader{failing: map[string]bool{}},
		opener:   &fakeOpener{},
		accounts: &fakeAccounts{},
		auth:     &fakeAuth{account: "me@example.com"},
		callback: &fakeCallbackHandler{result: server.OAuthCallbackResult{Code: "auth-code"}},
	}

	flow := usecases.NewResultsAcquisitionFlow(
		"PL123",
		f.store,
		f.services,
		f.prefs,
		f.network,
		f.fetcher,
		nopLogger{},
	)

	f.app = NewAppModel(Dependencies{
		Flow:             flow,
		Store:            f.store,
		Auth:             f.auth,
		CallbackHandler:  f.callback,
		Accounts:         f.accounts,
		Thumbnails:       f.loader,
		Opener:           f.opener,
		Logger:           nopLogger{},
		CallbackAddr:     "127.0.0.1:0",
		ClientSecretPath: "client_secret.json",
	})
	t.Cleanup(f.app.cancelApp)

	return f
}

func videos(ids ...string) []domain.VideoItem {
	items := make([]domain.VideoItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.NewVideoItem(id, "Title "+id, "https://i.ytimg.com/vi/"+id+"/mqdefault.jpg"))
	}
	return items
}

// run executa cmd e devolve ao app cada mensagem produzida, até não sobrar
// nenhum comando. Ticks do spinner são descartados.
func run(m tea.Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

// collect executa cmd sem devolver nada ao model.
func collect(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func press(m tea.Model, k tea.KeyMsg) {
	_, cmd := m.Update(k)
	run(m, cmd)
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
