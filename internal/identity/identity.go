// Package identity models the external auth boundary: the user record, the
// tier attribute carried in user metadata, and the credential precondition
// checked before a generation request is built.
package identity

import (
	"errors"
	"fmt"

	"github.com/hxrsha10/reguflow/internal/tier"
)

// ErrAuthorizationRequired signals that the acting tier needs a credential
// selection step that has not been completed. Raised by the caller-side
// precondition check, never by the generation engine.
var ErrAuthorizationRequired = errors.New("credential selection required")

const tierMetadataKey = "tier"

// User is the identity supplied by the external auth provider. The tier
// attribute lives in Metadata and is treated purely as input.
type User struct {
	ID       string
	Email    string
	Metadata map[string]string
}

// TierFromUser reads the subscription tier from user metadata. A missing
// attribute means Free; a present but unrecognized value is an error.
func TierFromUser(u User) (tier.Tier, error) {
	raw, ok := u.Metadata[tierMetadataKey]
	if !ok || raw == "" {
		return tier.Free, nil
	}
	return tier.Parse(raw)
}

// CredentialProvider verifies that the credentials a tier needs are in
// place. Callers invoke EnsureReady before constructing a request.
type CredentialProvider interface {
	EnsureReady(t tier.Tier) error
}

// APIKeyCredentialProvider checks that a generation API key is configured.
type APIKeyCredentialProvider struct {
	APIKey string
}

func (p APIKeyCredentialProvider) EnsureReady(t tier.Tier) error {
	if p.APIKey == "" {
		return fmt.Errorf("%w: no API key configured for tier %s", ErrAuthorizationRequired, t)
	}
	return nil
}
