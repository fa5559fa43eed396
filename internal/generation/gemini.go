package generation

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/hxrsha10/reguflow/internal/prompt"
	"github.com/hxrsha10/reguflow/internal/roadmap"
	"github.com/hxrsha10/reguflow/internal/tier"
)

// roadmapSchema constrains the generation output to the domain shape.
// All seven sequence fields are required; grounding fields are attached by
// the normalizer, not requested from the model.
var roadmapSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"applicableRegulations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
				Required: []string{"name", "description"},
			},
		},
		"complianceObligations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"actionableTaskChecklist": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"task":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
				Required: []string{"task", "description"},
			},
		},
		"requiredDocuments":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"deadlinesFrequency":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"riskFlags":             {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"monitoringSuggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{
		"applicableRegulations", "complianceObligations", "actionableTaskChecklist",
		"requiredDocuments", "deadlinesFrequency", "riskFlags", "monitoringSuggestions",
	},
}

// GeminiClient implements Client using the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed generation client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Generate performs one structured-output generation call. The Google
// Search tool is attached only when the policy requested live augmentation,
// and every grounding chunk the service returns is surfaced as a citation
// (filtering is the normalizer's job).
func (g *GeminiClient) Generate(ctx context.Context, payload prompt.Payload, policy tier.Policy) (*RawResponse, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(payload.System, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    roadmapSchema,
	}
	if policy.UseLiveAugmentation {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	parts := []*genai.Part{genai.NewPartFromText(payload.Text)}
	for _, a := range payload.Attachments {
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, policy.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := &RawResponse{Text: resp.Text()}
	if policy.UseLiveAugmentation {
		raw.Citations = extractCitations(resp)
	}
	return raw, nil
}

func extractCitations(resp *genai.GenerateContentResponse) []roadmap.Citation {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var citations []roadmap.Citation
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		var c roadmap.Citation
		if chunk.Web != nil {
			c.Title = chunk.Web.Title
			c.URI = chunk.Web.URI
		}
		citations = append(citations, c)
	}
	return citations
}
