package connection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qcatools/qcamap.go/pkg/logger"
)

const DefaultHTTPTimeout = 30 * time.Second

type HTTPConnection struct {
	BaseConnection

	httpClient *http.Client
	headers    sync.Map
}

func NewHTTPConnection(p NewConnectionParams) *HTTPConnection {
	con := HTTPConnection{
		BaseConnection: BaseConnection{
			marshaler:   p.Marshaler,
			unmarshaler: p.Unmarshaler,
			baseURL:     p.BaseURL,
			logger:      p.Logger,
		},
	}
	if con.logger == nil {
		con.logger = logger.Nop()
	}

	if con.httpClient == nil {
		con.httpClient = &http.Client{
			Timeout: DefaultHTTPTimeout, // Set a default timeout to avoid hanging requests
		}
	}

	return &con
}

func (h *HTTPConnection) SetTimeout(timeout time.Duration) *HTTPConnection {
	h.httpClient.Timeout = timeout
	return h
}

func (h *HTTPConnection) SetHTTPClient(client *http.Client) *HTTPConnection {
	h.httpClient = client
	return h
}

// SetHeader adds a header sent with every request, e.g. a session cookie.
func (h *HTTPConnection) SetHeader(key, value string) *HTTPConnection {
	h.headers.Store(key, value)
	return h
}

// SetToken sends token as a bearer Authorization header. An empty token clears it.
func (h *HTTPConnection) SetToken(token string) *HTTPConnection {
	if token == "" {
		h.headers.Delete("Authorization")
		return h
	}
	return h.SetHeader("Authorization", "Bearer "+token)
}

func (h *HTTPConnection) Send(ctx context.Context, method, path string, body, res any) error {
	if err := h.preConnectionChecks(); err != nil {
		return err
	}

	reqBody := io.Reader(http.NoBody)
	if body != nil {
		data, err := h.marshaler.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	h.headers.Range(func(k, v any) bool {
		req.Header.Set(k.(string), v.(string))
		return true
	})

	requestID := uuid.NewString()
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)

	respData, err := h.MakeRequest(req)
	if err != nil {
		h.logger.Debug("request failed", "id", requestID, "error", err.Error())
		return err
	}

	if res == nil || len(bytes.TrimSpace(respData)) == 0 {
		return nil
	}
	if err := h.unmarshaler.Unmarshal(respData, res); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func (h *HTTPConnection) MakeRequest(req *http.Request) ([]byte, error) {
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBytes, nil
	}

	return nil, &HTTPError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(respBytes),
	}
}
