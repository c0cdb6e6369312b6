package network

import (
	"TUI_playlist_viewer/internal/core/ports"
	"context"
	"fmt"
	"net"
	"time"
)

const (
	DefaultHost    = "www.googleapis.com:443"
	defaultTimeout = 3 * time.Second
)

type connectivityChecker struct {
	host    string
	timeout time.Duration
	dialer  net.Dialer
	log     ports.LoggerPort
}

// NewConnectivityChecker considera o computador online se conseguir abrir
// uma conexão TCP com host dentro do timeout.
func NewConnectivityChecker(host string, timeout time.Duration, logger ports.LoggerPort) ports.ConnectivityChecker {
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &connectivityChecker{
		host:    host,
		timeout: timeout,
		log:     logger,
	}
}

func (c *connectivityChecker) IsOnline(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(dialCtx, "tcp", c.host)
	if err != nil {
		c.log.Error(fmt.Sprintf("Connectivity check to %s failed", c.host), err)
		return false
	}

	_ = conn.Close()
	return true
}
