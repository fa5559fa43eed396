// Package generation adapts the hosted Gemini generation API behind a
// narrow client interface.
package generation

import (
	"context"

	"github.com/hxrsha10/reguflow/internal/prompt"
	"github.com/hxrsha10/reguflow/internal/roadmap"
	"github.com/hxrsha10/reguflow/internal/tier"
)

// RawResponse carries the unvalidated text and citation metadata returned
// by one generation call.
type RawResponse struct {
	Text      string
	Citations []roadmap.Citation
}

// Client performs one generation call. Engine strength and augmentation are
// taken strictly from the supplied policy; implementations must not apply
// their own tier logic. No retries at this layer.
type Client interface {
	Generate(ctx context.Context, payload prompt.Payload, policy tier.Policy) (*RawResponse, error)
}
