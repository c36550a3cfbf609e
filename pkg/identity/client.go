// Package identity wraps the external identity gateway (a
// Supabase-compatible auth API). The gateway owns user identities; the
// local record store only mirrors the id it hands out.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the part of the identity provider the registration
// coordinator depends on.
type Gateway interface {
	// SignUp registers email/password with the provider and returns
	// the identity id it issued. Domain rejections (duplicate email,
	// weak password) and transport failures both come back as plain
	// errors; callers treat them the same.
	SignUp(ctx context.Context, email, password string) (string, error)
}

// Client is an HTTP Gateway implementation.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a gateway client. Empty credentials are accepted;
// SignUp reports them when it is actually called.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpResponse covers both response shapes the gateway uses: the
// user object at the top level or nested under "user".
type signUpResponse struct {
	ID   string `json:"id"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error"`
}

// SignUp implements Gateway.
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return "", fmt.Errorf("identity gateway credentials are not configured")
	}

	body, err := json.Marshal(signUpRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal signup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read identity gateway response: %w", err)
	}

	var parsed signUpResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("malformed identity gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s", gatewayMessage(parsed, resp.StatusCode))
	}

	switch {
	case parsed.ID != "":
		return parsed.ID, nil
	case parsed.User != nil && parsed.User.ID != "":
		return parsed.User.ID, nil
	default:
		return "", fmt.Errorf("identity gateway signup failed for unknown reason")
	}
}

// gatewayMessage picks the most specific message the gateway offered.
func gatewayMessage(resp signUpResponse, status int) string {
	switch {
	case resp.Msg != "":
		return resp.Msg
	case resp.ErrorDescription != "":
		return resp.ErrorDescription
	case resp.ErrorCode != "":
		return resp.ErrorCode
	default:
		return fmt.Sprintf("identity gateway rejected signup (status %d)", status)
	}
}
