package ports

import "context"

type ConnectivityChecker interface {
	IsOnline(ctx context.Context) bool
}

// AccountPreferences é o armazenamento chave/valor com a conta escolhida
// e a permissão de leitura das contas salvas.
type AccountPreferences interface {
	AccountName() (string, bool)
	SetAccountName(name string) error
	ClearAccountName() error
	HasAccountsPermission() bool
	GrantAccountsPermission() error
}

type URLOpener interface {
	OpenURL(url string) error
}

type ThumbnailLoader interface {
	Load(ctx context.Context, url string) (string, error)
	Placeholder() string
}
