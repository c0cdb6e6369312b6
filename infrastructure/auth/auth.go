package auth

import (
	"TUI_playlist_viewer/infrastructure/token_manager"
	"TUI_playlist_viewer/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer    = "https://accounts.google.com"
	googleRevokeURL = "https://oauth2.googleapis.com/revoke"
)

// ErrReauthorizationRequired indica um token que não pode mais ser renovado
// sem passar de novo pela tela de consentimento.
var ErrReauthorizationRequired = errors.New("é preciso autorizar o app de novo")

// IdentityVerifier valida o id_token e devolve o nome da conta (o e-mail).
type IdentityVerifier func(ctx context.Context, clientID, rawIDToken string) (string, error)

type authenticationServiceImpl struct {
	clienteSecretFilePath string
	defaultRedirectURL    string
	scopes                []string
	revokeURL             string
	tokenService          token_manager.TokenService
	verifyIdentity        IdentityVerifier

	mu          sync.Mutex
	oauthConfig *oauth2.Config
}

type AuthenticationService interface {
	Availability() domain.ServiceStatus
	GetAuthenticatedClient(ctx context.Context, account string) (*http.Client, *oauth2.Token, error)
	GenerateAuthURL(state, loginHint string) string
	ExchangeCodeForToken(ctx context.Context, code string) (string, *oauth2.Token, error)
	RevokeToken(ctx context.Context, account string) error
}

// NewAuthenticationService não lê o arquivo de segredo na criação: o arquivo
// pode ser corrigido com o app aberto, e Availability relê a cada chamada.
func NewAuthenticationService(scopes []string, clienteSecretFilePath, redirectURL string, tokenService token_manager.TokenService) AuthenticationService {
	return &authenticationServiceImpl{
		clienteSecretFilePath: clienteSecretFilePath,
		defaultRedirectURL:    redirectURL,
		scopes:                append([]string{oidc.ScopeOpenID, "email"}, scopes...),
		revokeURL:             googleRevokeURL,
		tokenService:          tokenService,
		verifyIdentity:        verifyGoogleIdentity,
	}
}

func loadConfig(scopes []string, clienteSecretFilePath string) (*oauth2.Config, domain.ServiceStatus, error) {
	b, err := os.ReadFile(clienteSecretFilePath)
	if err != nil {
		return nil, domain.ServiceMissing, fmt.Errorf("não foi possível ler o arquivo de segredo do cliente (%s): %w", clienteSecretFilePath, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, domain.ServiceInvalid, fmt.Errorf("não foi possível analisar a configuração do cliente a partir do arquivo JSON: %w", err)
	}

	return config, domain.ServiceSuccess, nil
}

func (a *authenticationServiceImpl) Availability() domain.ServiceStatus {
	config, status, _ := loadConfig(a.scopes, a.clienteSecretFilePath)

	a.mu.Lock()
	defer a.mu.Unlock()

	if status == domain.ServiceSuccess {
		config.RedirectURL = a.defaultRedirectURL
		a.oauthConfig = config
	}

	return status
}

func (a *authenticationServiceImpl) config() (*oauth2.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.oauthConfig != nil {
		return a.oauthConfig, nil
	}

	config, status, err := loadConfig(a.scopes, a.clienteSecretFilePath)
	if err != nil {
		return nil, domain.NewServicesAvailabilityError(status, err)
	}

	config.RedirectURL = a.defaultRedirectURL
	a.oauthConfig = config
	return config, nil
}

func (a *authenticationServiceImpl) GetAuthenticatedClient(ctx context.Context, account string) (*http.Client, *oauth2.Token, error) {
	config, err := a.config()
	if err != nil {
		return nil, nil, err
	}

	token, err := a.tokenService.LoadToken(account)
	if err != nil {
		return nil, nil, fmt.Errorf("não foi possível carregar o token: %w", err)
	}

	if !token.Valid() && token.RefreshToken == "" {
		return nil, nil, fmt.Errorf("token expirado sem refresh token: %w", ErrReauthorizationRequired)
	}

	tokenSource := config.TokenSource(ctx, token)
	refreshedToken, err := tokenSource.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("não foi possível atualizar o token: %w", err)
	}

	if refreshedToken.AccessToken != token.AccessToken || (refreshedToken.RefreshToken != "" && refreshedToken.RefreshToken != token.RefreshToken) {
		if errSave := a.tokenService.SaveToken(account, refreshedToken); errSave != nil {
			return nil, nil, fmt.Errorf("não foi possível salvar o token atualizado: %w", errSave)
		}
	}

	return oauth2.NewClient(ctx, tokenSource), refreshedToken, nil
}

// GenerateAuthURL devolve "" se o cliente OAuth não estiver configurado.
func (a *authenticationServiceImpl) GenerateAuthURL(state, loginHint string) string {
	config, err := a.config()
	if err != nil {
		return ""
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	}
	if loginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", loginHint))
	}

	return config.AuthCodeURL(state, opts...)
}

// ExchangeCodeForToken troca o código, descobre de qual conta é o token e o salva.
func (a *authenticationServiceImpl) ExchangeCodeForToken(ctx context.Context, code string) (string, *oauth2.Token, error) {
	config, err := a.config()
	if err != nil {
		return "", nil, err
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("não foi possível trocar o código de autorização por um token: %w", err)
	}

	account, err := a.accountFromToken(ctx, config.ClientID, token)
	if err != nil {
		return "", nil, err
	}

	if err = a.tokenService.SaveToken(account, token); err != nil {
		return "", nil, fmt.Errorf("não foi possível salvar o token: %w", err)
	}

	return account, token, nil
}

func (a *authenticationServiceImpl) accountFromToken(ctx context.Context, clientID string, token *oauth2.Token) (string, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("resposta do Google sem id_token; verifique os escopos openid e email")
	}

	account, err := a.verifyIdentity(ctx, clientID, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("não foi possível validar o id_token: %w", err)
	}

	return account, nil
}

func verifyGoogleIdentity(ctx context.Context, clientID, rawIDToken string) (string, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return "", fmt.Errorf("falha ao carregar o provedor OIDC: %w", err)
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: clientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return "", err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("falha ao ler as claims do id_token: %w", err)
	}

	if claims.Email == "" {
		return idToken.Subject, nil
	}
	return claims.Email, nil
}

// RevokeToken revoga o token no Google e apaga a cópia local.
func (a *authenticationServiceImpl) RevokeToken(ctx context.Context, account string) error {
	token, err := a.tokenService.LoadToken(account)
	if err != nil {
		if errors.Is(err, token_manager.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	tokenToRevoke := token.RefreshToken
	if tokenToRevoke == "" {
		tokenToRevoke = token.AccessToken
	}

	data := url.Values{}
	data.Set("token", tokenToRevoke)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.revokeURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("falha ao montar requisição de revogação de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao enviar requisição de revogação de token: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("falha ao revogar o token, status: %s", resp.Status)
	}

	return a.tokenService.DeleteLocalToken(account)
}
