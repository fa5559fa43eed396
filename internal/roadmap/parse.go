package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse classifies responses that came back from the
// generation service but failed shape validation. The usual cause is an
// overly complex scenario; callers should suggest simplifying the input.
var ErrMalformedResponse = errors.New("generation response failed shape validation")

// Recognized wrapper fences the generation service may emit around
// structured output. Checked in order: the more specific prefix first.
var wrapperFences = []string{"```json", "```"}

// stripWrappers removes known formatting fences around a structured payload.
func stripWrappers(text string) string {
	text = strings.TrimSpace(text)
	for _, fence := range wrapperFences {
		if strings.HasPrefix(text, fence) {
			text = strings.TrimPrefix(text, fence)
			text = strings.TrimSuffix(strings.TrimSpace(text), "```")
			return strings.TrimSpace(text)
		}
	}
	return text
}

// rawRoadmap mirrors Roadmap with pointer-typed sequences so that an absent
// field is distinguishable from an empty one.
type rawRoadmap struct {
	ApplicableRegulations   *[]Regulation    `json:"applicableRegulations"`
	ComplianceObligations   *[]string        `json:"complianceObligations"`
	ActionableTaskChecklist *[]ChecklistItem `json:"actionableTaskChecklist"`
	RequiredDocuments       *[]string        `json:"requiredDocuments"`
	DeadlinesFrequency      *[]string        `json:"deadlinesFrequency"`
	RiskFlags               *[]string        `json:"riskFlags"`
	MonitoringSuggestions   *[]string        `json:"monitoringSuggestions"`
}

// ParseAndValidate turns the raw text returned by the generation service
// into a Roadmap. It fails with ErrMalformedResponse when the text is empty,
// not parseable after unwrapping known fences, or missing any required
// sequence field. No field is ever silently defaulted.
func ParseAndValidate(rawText string) (*Roadmap, error) {
	cleaned := stripWrappers(rawText)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response text", ErrMalformedResponse)
	}

	var raw rawRoadmap
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	required := []struct {
		name    string
		present bool
	}{
		{"applicableRegulations", raw.ApplicableRegulations != nil},
		{"complianceObligations", raw.ComplianceObligations != nil},
		{"actionableTaskChecklist", raw.ActionableTaskChecklist != nil},
		{"requiredDocuments", raw.RequiredDocuments != nil},
		{"deadlinesFrequency", raw.DeadlinesFrequency != nil},
		{"riskFlags", raw.RiskFlags != nil},
		{"monitoringSuggestions", raw.MonitoringSuggestions != nil},
	}
	for _, f := range required {
		if !f.present {
			return nil, fmt.Errorf("%w: missing required field %q", ErrMalformedResponse, f.name)
		}
	}

	return &Roadmap{
		ApplicableRegulations:   *raw.ApplicableRegulations,
		ComplianceObligations:   *raw.ComplianceObligations,
		ActionableTaskChecklist: *raw.ActionableTaskChecklist,
		RequiredDocuments:       *raw.RequiredDocuments,
		DeadlinesFrequency:      *raw.DeadlinesFrequency,
		RiskFlags:               *raw.RiskFlags,
		MonitoringSuggestions:   *raw.MonitoringSuggestions,
	}, nil
}

// AttachGrounding normalizes raw citations onto a roadmap. Citations are
// honored only when augmentation was requested by tier policy; entries
// without a web locator are dropped, and IsGrounded is set only when at
// least one entry survives.
func AttachGrounding(r *Roadmap, citations []Citation, augmentationRequested bool) {
	if !augmentationRequested {
		return
	}
	var sources []GroundingSource
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		sources = append(sources, GroundingSource{Title: c.Title, URI: c.URI})
	}
	if len(sources) == 0 {
		return
	}
	r.IsGrounded = true
	r.GroundingSources = sources
}
