package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Environment keys configuring the remote secrets service.
const (
	EnvSecretsURL   = "SECRETS_SERVICE_URL"
	EnvSecretsToken = "SECRETS_SERVICE_TOKEN"
)

const remoteTimeout = 10 * time.Second

// RemoteSource resolves secrets from a remote secret-management service
// scoped to the current execution context. It reports "not found" as
// absence and every other failure as a source error, so the resolver can
// distinguish a missing secret from an unreachable service.
type RemoteSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemoteSource creates a remote source for the service at baseURL.
// An empty baseURL yields a source that reports every key as absent,
// which keeps the resolver's control flow uniform when no service is
// configured.
func NewRemoteSource(baseURL, token string) *RemoteSource {
	return &RemoteSource{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: remoteTimeout,
		},
	}
}

// Resolve fetches the secret named key from the service.
func (r *RemoteSource) Resolve(ctx context.Context, key string) (string, bool, error) {
	if r.baseURL == "" {
		return "", false, nil
	}

	endpoint := fmt.Sprintf("%s/v1/secrets/%s", r.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("secrets service call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// Do not echo the response body: it belongs to the secrets
		// service and may contain sensitive material.
		return "", false, fmt.Errorf("secrets service returned status %d", resp.StatusCode)
	}

	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("decode secrets service response: %w", err)
	}

	if payload.Value == "" {
		return "", false, nil
	}
	return payload.Value, true, nil
}
