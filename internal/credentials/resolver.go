package credentials

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver resolves credentials from an ordered list of sources and
// memoizes each key for the lifetime of the process. The environment is
// always consulted before the remote secrets service; the priority order
// is fixed and not configurable.
//
// Resolver is safe for concurrent use. Concurrent resolutions of the same
// not-yet-cached key are collapsed into a single source lookup; the first
// resolved value wins and every later call returns it from cache.
type Resolver struct {
	sources []Source

	mu    sync.RWMutex
	cache map[string]string

	group singleflight.Group
}

// NewResolver creates a resolver that tries sources in the given order.
func NewResolver(sources ...Source) *Resolver {
	if len(sources) == 0 {
		sources = []Source{EnvSource{}}
	}
	return &Resolver{
		sources: sources,
		cache:   make(map[string]string),
	}
}

// NewFromEnv creates the standard resolver: process environment first,
// then the remote secrets service configured via SECRETS_SERVICE_URL and
// SECRETS_SERVICE_TOKEN. Without a configured service the remote source
// simply reports every key as absent.
func NewFromEnv() *Resolver {
	remote := NewRemoteSource(os.Getenv(EnvSecretsURL), os.Getenv(EnvSecretsToken))
	return NewResolver(EnvSource{}, remote)
}

// Get resolves a single credential. Cached values are returned without
// querying any source. If the key is absent from every source, Get fails
// with *MissingError; if a source itself fails, Get fails with
// *UnavailableError so callers can tell the two apart.
func (r *Resolver) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	value, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return value, nil
	}

	resolved, err, _ := r.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have resolved the key while this
		// one waited on the flight group.
		r.mu.RLock()
		value, ok := r.cache[key]
		r.mu.RUnlock()
		if ok {
			return value, nil
		}

		for _, source := range r.sources {
			value, found, err := source.Resolve(ctx, key)
			if err != nil {
				return nil, &UnavailableError{Key: key, Err: err}
			}
			if !found {
				continue
			}

			r.mu.Lock()
			r.cache[key] = value
			r.mu.Unlock()
			return value, nil
		}

		return nil, &MissingError{Key: key}
	})
	if err != nil {
		return "", err
	}
	return resolved.(string), nil
}

// OrgAndPAT resolves the organization and PAT pair. Resolution is
// all-or-nothing: the org is checked before the PAT and the first error
// encountered is returned, never a partial result.
func (r *Resolver) OrgAndPAT(ctx context.Context) (Credentials, error) {
	org, err := r.Get(ctx, KeyOrg)
	if err != nil {
		return Credentials{}, err
	}

	pat, err := r.Get(ctx, KeyPAT)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Org: org, PAT: pat}, nil
}
