package azdo

import "fmt"

// AuthError is returned on HTTP 401/403 and signals a stale or invalid
// PAT. It is never retried automatically and never carries the PAT.
type AuthError struct {
	StatusCode int
	Endpoint   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("azure devops rejected credentials (status %d) calling %s", e.StatusCode, e.Endpoint)
}

// NotFoundError is returned on HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("azure devops resource not found: %s", e.Resource)
}

// TransientError is returned on HTTP 429 and 5xx. The client performs no
// retry; whether to retry is the caller's decision.
type TransientError struct {
	StatusCode int
	Endpoint   string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("azure devops transient failure (status %d) calling %s", e.StatusCode, e.Endpoint)
}

// RequestError is returned on any other 4xx and carries the response body,
// which Azure DevOps uses for validation messages.
type RequestError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("azure devops rejected request (status %d) calling %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// MalformedResponseError is returned when a 2xx response body is not the
// JSON the endpoint is documented to produce.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
