// Package roadmap defines the compliance roadmap domain schema and its
// validation rules.
package roadmap

import "time"

// Regulation is a named regulation with a plain-language summary.
type Regulation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ChecklistItem is one actionable task. Checklist order is significant:
// positional task identifiers are derived from it.
type ChecklistItem struct {
	Task        string `json:"task"`
	Description string `json:"description"`
}

// GroundingSource is a web citation attached to a live-augmented result.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Roadmap is the structured compliance result returned by the generation
// engine. The seven sequence fields are all required; grounding fields are
// present only when live augmentation produced usable citations.
type Roadmap struct {
	ApplicableRegulations   []Regulation      `json:"applicableRegulations"`
	ComplianceObligations   []string          `json:"complianceObligations"`
	ActionableTaskChecklist []ChecklistItem   `json:"actionableTaskChecklist"`
	RequiredDocuments       []string          `json:"requiredDocuments"`
	DeadlinesFrequency      []string          `json:"deadlinesFrequency"`
	RiskFlags               []string          `json:"riskFlags"`
	MonitoringSuggestions   []string          `json:"monitoringSuggestions"`
	IsGrounded              bool              `json:"isGrounded,omitempty"`
	GroundingSources        []GroundingSource `json:"groundingSources,omitempty"`
}

// Citation is one raw grounding entry surfaced by the generation service,
// before normalization. An empty URI means the entry carried no web locator.
type Citation struct {
	Title string
	URI   string
}

// Record is a persisted roadmap together with its completion state.
type Record struct {
	ID             string
	UserID         string
	Scenario       string
	Roadmap        Roadmap
	CompletedTasks []string
	CreatedAt      time.Time
}
