// Package engine orchestrates roadmap generation: tier policy, prompt
// composition, the generation call and response normalization.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hxrsha10/reguflow/internal/generation"
	"github.com/hxrsha10/reguflow/internal/prompt"
	"github.com/hxrsha10/reguflow/internal/roadmap"
	"github.com/hxrsha10/reguflow/internal/tier"
)

var (
	// ErrInvalidRequest rejects a request with no scenario text and no
	// attachments, before any external call is made.
	ErrInvalidRequest = errors.New("empty scenario and no attachments")

	// ErrGenerationService classifies failures of the external generation
	// call, including calls that returned no text. Not retried here.
	ErrGenerationService = errors.New("generation service failure")
)

// Request describes one roadmap generation.
type Request struct {
	Scenario    string
	Tier        tier.Tier
	Attachments []prompt.Attachment
	// RecentHistory holds prior scenario texts, most recent first.
	RecentHistory []string
}

// Engine is the public entry point for roadmap generation. It holds no
// per-request state; concurrent calls are independent.
type Engine struct {
	client   generation.Client
	composer *prompt.Composer
}

func New(client generation.Client) *Engine {
	return &Engine{client: client, composer: &prompt.Composer{}}
}

// GenerateRoadmap runs one generation end to end. Failures are classified:
// ErrInvalidRequest before any call, ErrGenerationService for adapter
// failures or empty text, roadmap.ErrMalformedResponse for shape failures.
// The contract is all-or-nothing; no partial result is ever returned.
func (e *Engine) GenerateRoadmap(ctx context.Context, req Request) (*roadmap.Roadmap, error) {
	if strings.TrimSpace(req.Scenario) == "" && len(req.Attachments) == 0 {
		return nil, ErrInvalidRequest
	}

	policy := tier.ResolvePolicy(req.Tier)
	payload := e.composer.Build(req.Scenario, req.RecentHistory, req.Attachments, policy)

	raw, err := e.client.Generate(ctx, payload, policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationService, err)
	}
	if strings.TrimSpace(raw.Text) == "" {
		return nil, fmt.Errorf("%w: empty response from AI engine", ErrGenerationService)
	}

	result, err := roadmap.ParseAndValidate(raw.Text)
	if err != nil {
		return nil, err
	}

	roadmap.AttachGrounding(result, raw.Citations, policy.UseLiveAugmentation)
	return result, nil
}
