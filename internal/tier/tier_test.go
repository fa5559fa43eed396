package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"free", Free, false},
		{"FREE", Free, false},
		{" Pro ", Pro, false},
		{"premium", Premium, false},
		{"enterprise", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolvePolicy_TotalAndDeterministic(t *testing.T) {
	for _, tr := range []Tier{Free, Pro, Premium} {
		first := ResolvePolicy(tr)
		second := ResolvePolicy(tr)
		assert.Equal(t, first, second, "policy for %s must be deterministic", tr)
		assert.NotEmpty(t, first.Model)
		assert.GreaterOrEqual(t, first.DetailMultiplier, 1)
	}
}

func TestResolvePolicy_TierGates(t *testing.T) {
	free := ResolvePolicy(Free)
	assert.False(t, free.UseLiveAugmentation)
	assert.Equal(t, 1, free.DetailMultiplier)

	pro := ResolvePolicy(Pro)
	assert.True(t, pro.UseLiveAugmentation)
	assert.Equal(t, 1, pro.DetailMultiplier)

	premium := ResolvePolicy(Premium)
	assert.True(t, premium.UseLiveAugmentation)
	assert.Equal(t, 2, premium.DetailMultiplier)

	// Paid tiers select a stronger engine than free.
	assert.NotEqual(t, free.Model, pro.Model)
	assert.Equal(t, pro.Model, premium.Model)
}

func TestResolvePolicy_PanicsOnUnknownTier(t *testing.T) {
	assert.Panics(t, func() {
		ResolvePolicy(Tier("PLATINUM"))
	})
}
