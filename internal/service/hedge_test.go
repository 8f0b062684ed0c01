package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestUrgencyBoundaries(t *testing.T) {
	t.Parallel()

	// Exposures picked so the score crosses the 50 threshold only under the
	// multiplier expected for that maturity bucket.
	cases := []struct {
		name     string
		notional float64
		daysLeft int
		want     string
	}{
		{"overdue counts as near", 3000, -3, SuggestSell}, // 30 * 1.8 = 54
		{"day 7 still near", 3000, 7, SuggestSell},        // 30 * 1.8 = 54
		{"day 8 drops to mid", 3000, 8, SuggestHold},      // 30 * 1.3 = 39
		{"day 30 still mid", 4000, 30, SuggestSell},       // 40 * 1.3 = 52
		{"day 31 drops to far", 4000, 31, SuggestHold},    // 40 * 1.0 = 40
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Suggest(tc.notional, 1, tc.daysLeft))
		})
	}
}

func TestSuggestDecisions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SuggestSell, Suggest(10000, 1, 5))
	assert.Equal(t, SuggestBuy, Suggest(10000, -1, 5))
	assert.Equal(t, SuggestHold, Suggest(100, 1, 100))
}

func TestSuggestZeroScenarioAlwaysHolds(t *testing.T) {
	t.Parallel()

	for _, days := range []int{-100, 0, 7, 30, 365} {
		assert.Equal(t, SuggestHold, Suggest(1e12, 0, days), "daysLeft=%d", days)
	}
}
