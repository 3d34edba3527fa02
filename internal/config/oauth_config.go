package config

import "time"

type OAuthConfig interface {
	GetRequestTTL() time.Duration
	GetAuthCodeTTL() time.Duration
	GetCodeGenerationLength() int
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

// GetRequestTTL bounds how long an authorization request may sit undecided
// before the flow is considered abandoned.
func (OAuth) GetRequestTTL() time.Duration {
	return 10 * time.Minute
}

// GetAuthCodeTTL bounds how long an issued code stays redeemable.
func (OAuth) GetAuthCodeTTL() time.Duration {
	return 5 * time.Minute
}

func (OAuth) GetCodeGenerationLength() int {
	return 32 // 32 bytes = 256 bits
}
