// Package grants defines the ephemeral grant store contract shared by the
// authorization and token flows. The store holds two key namespaces, pending
// authorization requests and issued authorization codes, both TTL-bounded.
package grants

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Take for a missing or expired key. Callers map
// it to invalid_request / invalid_grant, never to an internal error.
var ErrNotFound = errors.New("grant not found")

// Store is a key-value store with per-key expiry.
//
// Take is the load-bearing primitive of the whole flow: it reads and removes
// a key in one atomic step, which is what makes a pending request or an
// authorization code single-use under concurrent access. A separate get and
// delete is not an acceptable implementation, since two concurrent redeemers
// could both observe the value before either deletes it.
//
// Keys are generated by the caller with a cryptographically strong random
// source, not by the store.
type Store interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Take(ctx context.Context, key string) ([]byte, error)
}

// RequestKey returns the store key for a pending authorization request.
func RequestKey(requestID string) string {
	return "request:" + requestID
}

// CodeKey returns the store key for an issued authorization code.
func CodeKey(code string) string {
	return "code:" + code
}
