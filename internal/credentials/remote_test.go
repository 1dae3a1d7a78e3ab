package credentials

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteSourceResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns secret value with bearer token", func(t *testing.T) {
		var gotPath, gotAuth string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"value":"secret-value"}`))
		}))
		defer ts.Close()

		source := NewRemoteSource(ts.URL, "service-token")
		value, found, err := source.Resolve(ctx, "AZURE_DEVOPS_PAT")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "secret-value", value)
		assert.Equal(t, "/v1/secrets/AZURE_DEVOPS_PAT", gotPath)
		assert.Equal(t, "Bearer service-token", gotAuth)
	})

	t.Run("404 reports absence, not an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		source := NewRemoteSource(ts.URL, "")
		_, found, err := source.Resolve(ctx, "ABSENT")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("server error is a source failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("sensitive internal detail"))
		}))
		defer ts.Close()

		source := NewRemoteSource(ts.URL, "")
		_, found, err := source.Resolve(ctx, "KEY")
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "500")
		assert.NotContains(t, err.Error(), "sensitive internal detail")
	})

	t.Run("unreachable service is a source failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		source := NewRemoteSource(ts.URL, "")
		_, found, err := source.Resolve(ctx, "KEY")
		require.Error(t, err)
		assert.False(t, found)
	})

	t.Run("empty base URL reports every key absent", func(t *testing.T) {
		source := NewRemoteSource("", "")
		_, found, err := source.Resolve(ctx, "KEY")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty value in payload counts as absent", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"value":""}`))
		}))
		defer ts.Close()

		source := NewRemoteSource(ts.URL, "")
		_, found, err := source.Resolve(ctx, "KEY")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("no authorization header without a token", func(t *testing.T) {
		var gotAuth string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"value":"v"}`))
		}))
		defer ts.Close()

		source := NewRemoteSource(ts.URL, "")
		_, _, err := source.Resolve(ctx, "KEY")
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestResolverWithRemoteFallback(t *testing.T) {
	t.Run("environment value never queries the service", func(t *testing.T) {
		requests := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = w.Write([]byte(`{"value":"remote"}`))
		}))
		defer ts.Close()

		t.Setenv("CRED_REMOTE_TEST", "local")
		r := NewResolver(EnvSource{}, NewRemoteSource(ts.URL, ""))

		value, err := r.Get(context.Background(), "CRED_REMOTE_TEST")
		require.NoError(t, err)
		assert.Equal(t, "local", value)
		assert.Zero(t, requests)
	})

	t.Run("remote value is memoized", func(t *testing.T) {
		requests := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = w.Write([]byte(`{"value":"remote"}`))
		}))
		defer ts.Close()

		t.Setenv("CRED_REMOTE_TEST", "")
		r := NewResolver(EnvSource{}, NewRemoteSource(ts.URL, ""))

		for i := 0; i < 3; i++ {
			value, err := r.Get(context.Background(), "CRED_REMOTE_TEST")
			require.NoError(t, err)
			assert.Equal(t, "remote", value)
		}
		assert.Equal(t, 1, requests)
	})
}
