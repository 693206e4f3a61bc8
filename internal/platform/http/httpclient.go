package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for calls to external services.
//
// http.DefaultClient has no timeout, so outbound calls always go through this.
// timeout bounds the whole request; dialing and the TLS handshake get 5s each.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
