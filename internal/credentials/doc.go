// Package credentials resolves the Azure DevOps organization name and
// personal access token.
//
// Resolution tries the process environment first and falls back to a
// remote secrets service when one is configured via SECRETS_SERVICE_URL.
// The priority order is fixed. Each key is resolved at most once per
// process: the first value wins and is memoized for every later lookup,
// so credential rotation requires a restart.
//
// # Failure Modes
//
// A key absent from every source yields *MissingError naming the key. A
// source that itself fails (unreachable secrets service, non-404 error
// status) yields *UnavailableError, so callers can distinguish "not
// configured" from "could not check". Failures are not memoized; the
// next lookup tries the sources again.
//
// # Sensitivity
//
// The PAT value never appears in logs or error messages. Errors carry
// key names only.
package credentials
