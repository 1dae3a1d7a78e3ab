// Package azdo is a thin client for the Azure DevOps REST API v7.1.
//
// The client covers the endpoints the MCP tools need: projects, teams,
// identities, work items (including WIQL), Git repositories and pull
// requests, builds and pipelines, wikis, and code search. Responses are
// returned as decoded JSON (Result) without reshaping.
//
// # Hosts
//
// Most endpoints live on dev.azure.com. Identity lookups use the
// vssps.dev.azure.com host and code search uses almsearch.dev.azure.com;
// the client routes each call to the right host automatically. Tests
// override all three with WithBaseURLs.
//
// # Authentication
//
// Every request carries HTTP Basic auth with an empty username and the
// personal access token as the password. The token is held in memory for
// the life of the client and never written to logs or error messages.
//
// # Error Taxonomy
//
// Non-2xx responses are translated into typed errors so callers can
// react without parsing strings:
//
//   - 401/403 → *AuthError
//   - 404 → *NotFoundError
//   - 429 and 5xx → *TransientError
//   - other 4xx → *RequestError (carries the response body)
//   - undecodable 2xx body → *MalformedResponseError
//
// The client never retries. A *TransientError tells the caller the
// request may succeed later; acting on that is the caller's decision.
package azdo
