// File: services/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carepro/models"

	"go.uber.org/zap"
)

// envelope is the wrapper every upstream response comes in.
type envelope struct {
	Succeeded bool            `json:"succeeded"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

// HTTPClient is the production Client backed by the remote CarePro API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a client for the given API base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginData, error) {
	env, err := c.postJSON(ctx, "/Account/login", req, "")
	if err != nil {
		return nil, err
	}
	var data LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode login data: %w", err)
	}
	return &data, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, userID, otp string) error {
	payload := map[string]string{"userId": userID, "otp": otp}
	_, err := c.postJSON(ctx, "/Account/verify-otp", payload, "")
	return err
}

func (c *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	_, err := c.postJSON(ctx, "/Account/logout", nil, accessToken)
	return err
}

func (c *HTTPClient) Register(ctx context.Context, role models.Role, contentType string, body io.Reader) (string, error) {
	path := "/Account/register-user"
	if role == models.RoleProvider {
		path = "/Account/register-service-provider"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to build registration request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	env, err := c.do(req)
	if err != nil {
		return "", err
	}

	// User registrations report the new ID as "id"; provider registrations
	// use "userId".
	var data struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode registration data: %w", err)
	}
	if role == models.RoleProvider {
		return data.UserID, nil
	}
	return data.ID, nil
}

func (c *HTTPClient) Profile(ctx context.Context, role models.Role, accessToken string) (*models.Profile, error) {
	path := "/User/profile"
	if role == models.RoleProvider {
		path = "/Provider/profile"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data struct {
		ID             string `json:"id"`
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		FullName       string `json:"fullName"`
		Address        string `json:"address"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode profile data: %w", err)
	}

	name := data.FullName
	if name == "" {
		name = data.FirstName
		if data.LastName != "" {
			name += " " + data.LastName
		}
	}
	return &models.Profile{
		UserID:    data.ID,
		Name:      name,
		Avatar:    data.ProfilePicture,
		Address:   data.Address,
		FetchedAt: time.Now(),
	}, nil
}

func (c *HTTPClient) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/Category/active", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build categories request: %w", err)
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// postJSON sends a JSON POST and returns the decoded envelope.
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any, bearer string) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return c.do(req)
}

// do executes a request and enforces the envelope contract: non-2xx statuses
// and succeeded=false both surface as APIError with the upstream's message.
func (c *HTTPClient) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode upstream envelope: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Succeeded {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.logger.Debug("upstream rejection",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}
	return &env, nil
}
