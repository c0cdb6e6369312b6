package usecases

import (
	"TUI_playlist_viewer/internal/core/domain"
	"context"
	"fmt"
)

func (f *ResultsAcquisitionFlow) OnServicesRepaired(ctx context.Context, ok bool) Action {
	if !ok {
		f.log.Warning("Services repair declined")
		return f.halt(domain.NewNotice(domain.NoticeServicesRequired, ""))
	}
	return f.Start(ctx)
}

func (f *ResultsAcquisitionFlow) OnPermissionResult(ctx context.Context, granted bool) Action {
	if !granted {
		f.log.Warning("Accounts permission denied")
		f.state = StateIdle
		return Action{Kind: ActionNone}
	}

	if err := f.prefs.GrantAccountsPermission(); err != nil {
		f.log.Error("Failed to persist accounts permission", err)
		f.state = StateFatalError
		return Action{Kind: ActionNotify, Notice: domain.NewNotice(domain.NoticeGenericFailure, err.Error())}
	}

	return f.checkAccount()
}

// OnAccountChosen grava a conta antes de seguir, para que a próxima
// execução não precise abrir o seletor de novo.
func (f *ResultsAcquisitionFlow) OnAccountChosen(ctx context.Context, name string) Action {
	if name == "" {
		f.log.Info("Account picker closed without a choice")
		f.state = StateIdle
		return Action{Kind: ActionNone}
	}

	if err := f.prefs.SetAccountName(name); err != nil {
		f.log.Error("Failed to persist account name", err)
		f.state = StateFatalError
		return Action{Kind: ActionNotify, Notice: domain.NewNotice(domain.NoticeGenericFailure, err.Error())}
	}

	f.log.Info(fmt.Sprintf("Account %s selected", name))
	f.account = name
	return f.checkConnectivity()
}

func (f *ResultsAcquisitionFlow) OnConsentResult(ctx context.Context, granted bool) Action {
	if !granted {
		f.log.Warning("Consent not granted")
		f.state = StateIdle
		return Action{Kind: ActionNone}
	}
	return f.checkAccount()
}

// ForgetAccount esquece a conta salva; a próxima execução abre o seletor.
func (f *ResultsAcquisitionFlow) ForgetAccount() error {
	f.account = ""
	f.state = StateIdle
	if err := f.prefs.ClearAccountName(); err != nil {
		return fmt.Errorf("error while clearing saved account: %w", err)
	}
	f.log.Info("Saved account cleared")
	return nil
}
