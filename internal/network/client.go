package network

import (
	"fmt"
	"net/http"

	"golang.org/x/net/proxy"
)

// NewClient builds the http.Client used to reach the catalog API.
// With proxyAddr set every connection goes through that SOCKS5 proxy.
// No timeout is configured: a request only ends when the server answers or its context is cancelled.
func NewClient(proxyAddr string, logLevel string) (*http.Client, error) {
	var base http.RoundTripper = http.DefaultTransport

	if proxyAddr != "" {
		dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy %s: %w", proxyAddr, err)
		}

		transport := &http.Transport{}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.Dial = dialer.Dial
		}
		base = transport
	}

	return &http.Client{
		Transport: &LoggingTransport{Base: base, LogLevel: logLevel},
	}, nil
}
