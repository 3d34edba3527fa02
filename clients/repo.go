package clients

import "errors"

var (
	// ErrNotFound is returned by Repo.Get for an unknown client ID. Callers
	// must map this to the protocol-level invalid_client error, never to an
	// internal failure.
	ErrNotFound = errors.New("client not found")

	ErrInvalidScope = errors.New("invalid scope")
)

type Repo interface {
	Get(clientID string) (*Client, error)
	List() ([]*Client, error)
}
