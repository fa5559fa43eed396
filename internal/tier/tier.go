// Package tier maps subscription tiers to generation policy.
package tier

import (
	"fmt"
	"strings"
)

// Tier is a subscription level. The set is closed: Free, Pro and Premium.
type Tier string

const (
	Free    Tier = "FREE"
	Pro     Tier = "PRO"
	Premium Tier = "PREMIUM"
)

// Parse converts a user-supplied string into a Tier.
func Parse(s string) (Tier, error) {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case Free:
		return Free, nil
	case Pro:
		return Pro, nil
	case Premium:
		return Premium, nil
	default:
		return "", fmt.Errorf("unknown tier: %q", s)
	}
}

// Policy holds the generation parameters derived from a tier.
// It is the single source of tier-dependent behavior; callers must not
// branch on the tier value itself.
type Policy struct {
	// Model selects the generation engine strength.
	Model string
	// UseLiveAugmentation requests live web-search grounding.
	UseLiveAugmentation bool
	// DetailMultiplier amplifies elaboration depth. 1 is baseline,
	// 2 requests statutory citation-level detail.
	DetailMultiplier int
}

const (
	modelFlash = "gemini-3-flash-preview"
	modelPro   = "gemini-3-pro-preview"
)

// ResolvePolicy derives the generation policy for a tier. It is pure and
// exhaustive over the closed tier set; a value outside the set is a
// programming error and panics rather than defaulting.
func ResolvePolicy(t Tier) Policy {
	switch t {
	case Free:
		return Policy{Model: modelFlash, UseLiveAugmentation: false, DetailMultiplier: 1}
	case Pro:
		return Policy{Model: modelPro, UseLiveAugmentation: true, DetailMultiplier: 1}
	case Premium:
		return Policy{Model: modelPro, UseLiveAugmentation: true, DetailMultiplier: 2}
	default:
		panic(fmt.Sprintf("tier: ResolvePolicy called with unknown tier %q", t))
	}
}
