// Package token mints the opaque credentials used throughout the flow:
// authorization codes and bearer access tokens.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
)

// DefaultLength is the number of random bytes per minted credential.
// 32 bytes = 256 bits of entropy before encoding.
const DefaultLength = 32

// Issuer generates opaque, URL-safe credential strings from a
// cryptographically strong random source. Predictable or sequential
// generation would make codes guessable, so the source is crypto/rand
// unless a test injects its own.
type Issuer struct {
	length int
	random io.Reader
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithRandom sets the random source (primarily for testing)
func WithRandom(r io.Reader) IssuerOption {
	return func(i *Issuer) {
		i.random = r
	}
}

// NewIssuer creates an Issuer producing credentials of length random bytes.
// A non-positive length falls back to DefaultLength.
func NewIssuer(length int, options ...IssuerOption) *Issuer {
	if length <= 0 {
		length = DefaultLength
	}
	issuer := &Issuer{length: length, random: rand.Reader}
	for _, opt := range options {
		opt(issuer)
	}
	return issuer
}

// Mint returns a fresh opaque credential.
func (i *Issuer) Mint() (string, error) {
	bytes := make([]byte, i.length)
	if _, err := io.ReadFull(i.random, bytes); err != nil {
		return "", errors.Wrap(err, "[Issuer.Mint] read random")
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
