package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fred1268/go-clap/clap"
	"github.com/joho/godotenv"
	"github.com/sosodev/duration"
)

type EnvKey string

func (key EnvKey) Get() string {
	return os.Getenv(string(key))
}

// GetOr devolve def quando a variável não está definida.
func (key EnvKey) GetOr(def string) string {
	if value := key.Get(); value != "" {
		return value
	}
	return def
}

const (
	ClientSecretFile    EnvKey = "YT_CLIENT_SECRET_FILE"
	DataDir             EnvKey = "YT_DATA_DIR"
	PlaylistID          EnvKey = "YT_PLAYLIST_ID"
	CallbackAddr        EnvKey = "YT_CALLBACK_ADDR"
	ConnectivityHost    EnvKey = "YT_CONNECTIVITY_HOST"
	ConnectivityTimeout EnvKey = "YT_CONNECTIVITY_TIMEOUT"
	LogDir              EnvKey = "YT_LOG_DIR"
)

const (
	DefaultPlaylistID          = "PLwvpilDJocx7TX7fRLPzXqv79DRuTPZ3E"
	DefaultClientSecretFile    = "client_secret.json"
	DefaultDataDir             = ".playlist_viewer"
	DefaultCallbackAddr        = ":8080"
	DefaultConnectivityHost    = "www.googleapis.com:443"
	DefaultConnectivityTimeout = "PT3S"
	DefaultLogDir              = "logs"
	defaultEnvFile             = ".env"
)

// Flags são os argumentos de linha de comando.
type Flags struct {
	Playlist string `clap:"--playlist,-p"`
	Reset    bool   `clap:"--reset"`
	EnvFile  string `clap:"--env,-e"`
}

type Config struct {
	ClientSecretFile    string
	DataDir             string
	PlaylistID          string
	CallbackAddr        string
	ConnectivityHost    string
	ConnectivityTimeout time.Duration
	LogDir              string
	ResetAccount        bool
}

func (c Config) TokenDir() string {
	return filepath.Join(c.DataDir, "tokens")
}

func (c Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, "preferences.db")
}

// CallbackURL é o redirect_uri cadastrado no cliente OAuth.
func (c Config) CallbackURL() string {
	host := c.CallbackAddr
	if len(host) > 0 && host[0] == ':' {
		host = "localhost" + host
	}
	return "http://" + host
}

func ParseFlags(args []string) (Flags, error) {
	flags := Flags{}
	if _, err := clap.Parse(args, &flags); err != nil {
		return Flags{}, fmt.Errorf("invalid arguments: %w", err)
	}
	return flags, nil
}

// Load lê os argumentos, depois o .env (opcional) e por fim o ambiente.
// Variáveis já definidas no ambiente têm prioridade sobre o .env.
func Load(args []string) (Config, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return Config{}, err
	}

	envFile := flags.EnvFile
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		// o .env padrão é opcional, mas um arquivo pedido com --env não
		if flags.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	timeout, err := parseDuration(ConnectivityTimeout.GetOr(DefaultConnectivityTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", ConnectivityTimeout, err)
	}

	cfg := Config{
		ClientSecretFile:    ClientSecretFile.GetOr(DefaultClientSecretFile),
		DataDir:             DataDir.GetOr(DefaultDataDir),
		PlaylistID:          PlaylistID.GetOr(DefaultPlaylistID),
		CallbackAddr:        CallbackAddr.GetOr(DefaultCallbackAddr),
		ConnectivityHost:    ConnectivityHost.GetOr(DefaultConnectivityHost),
		ConnectivityTimeout: timeout,
		LogDir:              LogDir.GetOr(DefaultLogDir),
		ResetAccount:        flags.Reset,
	}

	if flags.Playlist != "" {
		cfg.PlaylistID = flags.Playlist
	}

	return cfg, nil
}

// parseDuration usa o formato ISO 8601 (PT3S), o mesmo da API do YouTube.
func parseDuration(value string) (time.Duration, error) {
	d, err := duration.Parse(value)
	if err != nil {
		return 0, err
	}

	timeout := d.ToTimeDuration()
	if timeout <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", value)
	}
	return timeout, nil
}
