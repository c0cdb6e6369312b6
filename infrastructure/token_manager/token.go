package token_manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/oauth2"
)

const tokenFileExt = ".json"

var (
	// ErrTokenNotFound indica que a conta nunca autorizou o app neste computador.
	ErrTokenNotFound = errors.New("token não encontrado")
	// ErrTokenCorrupted indica um arquivo de token que não pode ser usado.
	ErrTokenCorrupted = errors.New("token corrompido")
)

type tokenServiceImpl struct {
	TokenDir string
}

// TokenService guarda um token por conta Google, um arquivo por conta.
type TokenService interface {
	ListAccounts() ([]string, error)
	DeleteLocalToken(account string) error
	LoadToken(account string) (*oauth2.Token, error)
	SaveToken(account string, token *oauth2.Token) error
}

func NewTokenService(tokenDir string) TokenService {
	if tokenDir == "" {
		tokenDir = "tokens"
	}

	return &tokenServiceImpl{
		TokenDir: tokenDir,
	}
}

func (t *tokenServiceImpl) pathFor(account string) string {
	return filepath.Join(t.TokenDir, url.PathEscape(account)+tokenFileExt)
}

func (t *tokenServiceImpl) ListAccounts() ([]string, error) {
	entries, err := os.ReadDir(t.TokenDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("não foi possível listar o diretório de tokens %s: %w", t.TokenDir, err)
	}

	accounts := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, tokenFileExt) {
			continue
		}

		account, err := url.PathUnescape(strings.TrimSuffix(name, tokenFileExt))
		if err != nil || account == "" {
			continue
		}
		accounts = append(accounts, account)
	}

	sort.Strings(accounts)
	return accounts, nil
}

func (t *tokenServiceImpl) DeleteLocalToken(account string) error {
	err := os.Remove(t.pathFor(account))
	if err != nil {
		return fmt.Errorf("não foi possível remover o arquivo de token: %w", err)
	}

	return nil
}

func (t *tokenServiceImpl) LoadToken(account string) (*oauth2.Token, error) {
	if account == "" {
		return nil, fmt.Errorf("conta vazia: %w", ErrTokenNotFound)
	}

	path := t.pathFor(account)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("conta %s: %w", account, ErrTokenNotFound)
		}
		return nil, fmt.Errorf("falha ao abrir arquivo de token %s: %w", path, err)
	}

	defer file.Close()
	token := &oauth2.Token{}

	err = json.NewDecoder(file).Decode(token)
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar token do arquivo %s: %w: %w", path, ErrTokenCorrupted, err)
	}

	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("token inválido: não contém AccessToken ou RefreshToken: %w", ErrTokenCorrupted)
	}

	return token, nil
}

func (t *tokenServiceImpl) SaveToken(account string, token *oauth2.Token) error {
	if account == "" {
		return fmt.Errorf("não é possível salvar token sem conta")
	}

	if err := os.MkdirAll(t.TokenDir, 0700); err != nil {
		return fmt.Errorf("não foi possível criar o diretório de tokens %s: %w", t.TokenDir, err)
	}

	path := t.pathFor(account)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("não foi possível abrir/criar o arquivo de token %s: %w", path, err)
	}

	defer file.Close()
	return json.NewEncoder(file).Encode(token)
}
