package utils

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shoppingapp-backend/pkg/logger"
)

// LoggingTransport implements http.RoundTripper and logs outbound provider
// calls. Request bodies are not logged: they contain prompts and, for image
// tasks, large base64 payloads.
type LoggingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and logs its outcome.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Log.Error("outbound http request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("status", resp.Status),
		zap.Duration("duration", duration),
	}

	if resp.StatusCode >= 400 && resp.Body != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // restore body
		if len(bodyBytes) > 2000 {
			bodyBytes = append(bodyBytes[:2000], []byte("...(truncated)")...)
		}
		fields = append(fields, zap.ByteString("body", bodyBytes))
		logger.Log.Warn("outbound http request returned error status", fields...)
	} else {
		logger.Log.Debug("outbound http request", fields...)
	}

	return resp, nil
}

// NewHTTPClient returns a new http.Client with logging enabled.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
