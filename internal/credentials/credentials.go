package credentials

import (
	"context"
	"fmt"
	"os"
)

// Credential keys recognized by the resolver.
const (
	// KeyOrg names the Azure DevOps organization.
	KeyOrg = "AZURE_DEVOPS_ORG"
	// KeyPAT names the Personal Access Token. Its value is sensitive and
	// must never appear in logs or error messages.
	KeyPAT = "AZURE_DEVOPS_PAT"
)

// Source yields named secrets. Absence is a normal, reportable outcome and
// is returned as found=false with a nil error. A non-nil error means the
// source itself failed (for example the secrets service was unreachable),
// which callers must treat differently from a missing secret.
type Source interface {
	Resolve(ctx context.Context, key string) (value string, found bool, err error)
}

// EnvSource resolves credentials from the process environment, including
// values the config loader copied in from a local .env file at startup.
type EnvSource struct{}

// Resolve returns the environment value for key. Empty values count as absent.
func (EnvSource) Resolve(_ context.Context, key string) (string, bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Credentials is the resolved organization/PAT pair. Both fields are
// non-empty once resolution succeeds; the pair is never partially filled.
type Credentials struct {
	Org string
	PAT string
}

// MissingError reports that a required credential was absent from every
// configured source. It carries the key name only, never a value.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("credential %s not set in environment or secrets service", e.Key)
}

// UnavailableError reports that the remote secrets service failed while
// resolving a key. This is distinct from MissingError: the secret may
// exist, the lookup itself could not complete.
type UnavailableError struct {
	Key string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("secrets service unavailable while resolving %s: %v", e.Key, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
