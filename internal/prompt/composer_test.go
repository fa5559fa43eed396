package prompt

import (
	"strings"
	"testing"

	"github.com/hxrsha10/reguflow/internal/tier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_NoHistoryOmitsContextBlock(t *testing.T) {
	c := &Composer{}
	payload := c.Build("Opening a tea stall in Chennai", nil, nil, tier.ResolvePolicy(tier.Free))

	assert.Equal(t, "Opening a tea stall in Chennai", payload.Text)
	assert.NotContains(t, payload.Text, "Prior scenarios")
	assert.Contains(t, payload.System, "Compliance & Risk Workflow Assistant")
	assert.Contains(t, payload.System, "Do not include any text outside the JSON block")
}

func TestBuild_HistoryIsNumberedMostRecentFirst(t *testing.T) {
	c := &Composer{}
	history := []string{"newest scenario", "older scenario"}
	payload := c.Build("current query", history, nil, tier.ResolvePolicy(tier.Premium))

	assert.Contains(t, payload.Text, "most recent first")
	assert.Contains(t, payload.Text, "1. newest scenario")
	assert.Contains(t, payload.Text, "2. older scenario")
	assert.Contains(t, payload.Text, "Current scenario:")

	// Prior context precedes the current query.
	require.Less(t,
		strings.Index(payload.Text, "1. newest scenario"),
		strings.Index(payload.Text, "current query"))
}

func TestBuild_HistoryBounded(t *testing.T) {
	c := &Composer{}
	history := []string{"h1", "h2", "h3", "h4", "h5"}
	payload := c.Build("query", history, nil, tier.ResolvePolicy(tier.Free))

	assert.Contains(t, payload.Text, "3. h3")
	assert.NotContains(t, payload.Text, "4. h4")
	assert.NotContains(t, payload.Text, "h5")
}

func TestBuild_PremiumRequestsStatutoryDetail(t *testing.T) {
	c := &Composer{}

	free := c.Build("query", nil, nil, tier.ResolvePolicy(tier.Free))
	assert.NotContains(t, free.Text, "statutory citation-level detail")

	premium := c.Build("query", nil, nil, tier.ResolvePolicy(tier.Premium))
	assert.Contains(t, premium.Text, "statutory citation-level detail")
}

func TestBuild_AttachmentsAreSeparateParts(t *testing.T) {
	c := &Composer{}
	atts := []Attachment{{MIMEType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}}
	payload := c.Build("query", nil, atts, tier.ResolvePolicy(tier.Pro))

	require.Len(t, payload.Attachments, 1)
	assert.Equal(t, "image/png", payload.Attachments[0].MIMEType)
	// Binary content is never inlined into the instruction text.
	assert.Equal(t, "query", payload.Text)
}
