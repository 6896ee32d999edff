package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/medkeeper/internal/client/credentials"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader tags each outgoing request so client and store logs can be joined.
const RequestIDHeader = "X-Request-ID"

// HTTPClient talks to the record store's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewHTTPClient builds a client for baseURL, which includes the API prefix
// (e.g. http://localhost:8080/api). The underlying http.Client has no
// timeout of its own.
func NewHTTPClient(baseURL string, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/login", token, nil, nil)
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *HTTPClient) Status(ctx context.Context, token string) (bool, error) {
	var resp statusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/status", token, nil, &resp); err != nil {
		return false, err
	}
	return resp.Authenticated, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	var resp models.SignupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListMedicines(ctx context.Context, token string) ([]models.Medicine, error) {
	list := make([]models.Medicine, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/medicines", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateMedicine(ctx context.Context, token string, m models.Medicine) (*models.Medicine, error) {
	m.ID = 0
	var created models.Medicine
	if err := c.doJSON(ctx, http.MethodPost, "/medicines", token, m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateMedicine(ctx context.Context, token string, id int64, m models.Medicine) (*models.Medicine, error) {
	var updated models.Medicine
	if err := c.doJSON(ctx, http.MethodPut, medicinePath(id), token, m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteMedicine(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, medicinePath(id), token, nil, nil)
}

func medicinePath(id int64) string {
	return "/medicines/" + strconv.FormatInt(id, 10)
}

// doJSON issues exactly one request. A transport failure becomes
// ErrUnavailable, 401 becomes ErrUnauthorized, any other non-2xx a
// *StatusError. out may be nil when the body is not needed.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", credentials.Header(token))
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	log.Debug(ctx, "sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response received", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls "message" (or "error") out of an error body.
func readErrorMessage(r io.Reader) string {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}
