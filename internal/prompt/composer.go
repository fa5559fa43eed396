// Package prompt builds the instruction text and context parts sent to the
// generation service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hxrsha10/reguflow/internal/tier"
)

const systemInstruction = `
Role: Compliance & Risk Workflow Assistant (India)
Purpose: Convert complex Indian regulations into clear operational tasks and checklists.
Tone: Professional, neutral, helpful. NO legal advice.
Important: You MUST return a valid JSON object matching the requested schema, with exactly these keys:
applicableRegulations, complianceObligations, actionableTaskChecklist, requiredDocuments, deadlinesFrequency, riskFlags, monitoringSuggestions.
Every key must map to an array, even when empty.
If using Google Search grounding, ensure the links provided are specific to Indian ministries (MCA, GSTN, RBI, SEBI).
Do not include any text outside the JSON block.
`

const detailInstruction = "\n\nProvide statutory citation-level detail: name the specific acts, sections and rules behind every obligation and deadline."

// HistoryLimit bounds how many prior scenarios are carried as continuity
// context. Entries beyond the limit are dropped from the oldest end.
const HistoryLimit = 3

// Attachment is a binary payload carried alongside the prompt text as a
// separate typed part, never inlined into the text.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Payload is the composed generation request.
type Payload struct {
	System      string
	Text        string
	Attachments []Attachment
}

// Composer assembles generation payloads.
type Composer struct{}

// Build composes the payload for a scenario. Prior scenarios, when present,
// are rendered as an explicitly labelled and numbered context block,
// most-recent-first, capped at HistoryLimit entries. Tier elaboration depth
// comes from the policy's DetailMultiplier.
func (c *Composer) Build(scenario string, recentHistory []string, attachments []Attachment, policy tier.Policy) Payload {
	var sb strings.Builder

	if len(recentHistory) > 0 {
		history := recentHistory
		if len(history) > HistoryLimit {
			history = history[:HistoryLimit]
		}
		sb.WriteString("Prior scenarios from this user, for continuity (most recent first):\n")
		for i, h := range history {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, h)
		}
		sb.WriteString("\nCurrent scenario:\n")
	}

	sb.WriteString(scenario)

	if policy.DetailMultiplier > 1 {
		sb.WriteString(detailInstruction)
	}

	return Payload{
		System:      strings.TrimSpace(systemInstruction),
		Text:        sb.String(),
		Attachments: attachments,
	}
}
