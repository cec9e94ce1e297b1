package network

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
)

// LoggingTransport logs outbound requests and responses when LogLevel is "debug".
type LoggingTransport struct {
	Base     http.RoundTripper
	LogLevel string
	Logger   *log.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if !strings.EqualFold(t.LogLevel, "debug") {
		return base.RoundTrip(req)
	}

	logger := t.Logger
	if logger == nil {
		logger = log.Default()
	}

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	logger.Printf("debug: outbound %s %s", req.Method, req.URL.String())
	if len(reqBody) > 0 {
		logger.Printf("debug: outbound body %s", string(reqBody))
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Printf("debug: outbound %s %s failed: %v", req.Method, req.URL.String(), err)
		return resp, err
	}

	logger.Printf("debug: inbound %d %s", resp.StatusCode, req.URL.String())

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	if len(respBody) > 0 {
		logger.Printf("debug: inbound body %s", string(respBody))
	}

	return resp, nil
}
