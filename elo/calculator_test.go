package elo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinProbability_SumsToOne(t *testing.T) {
	calc := NewCalculator(DefaultKFactor)

	cases := [][2]int{
		{1500, 1500},
		{1600, 1400},
		{1000, 2400},
		{-200, 300},
		{25000, 100},
	}
	for _, c := range cases {
		pA, pB := calc.WinProbability(c[0], c[1])
		assert.InDelta(t, 1.0, pA+pB, 1e-9, "ratings %v", c)
		assert.GreaterOrEqual(t, pA, 0.0)
		assert.LessOrEqual(t, pA, 1.0)
	}
}

func TestWinProbability_EqualRatings(t *testing.T) {
	calc := NewCalculator(DefaultKFactor)

	pA, pB := calc.WinProbability(1500, 1500)
	assert.InDelta(t, 0.5, pA, 1e-9)
	assert.InDelta(t, 0.5, pB, 1e-9)
}

func TestWinProbability_SymmetricUnderSwap(t *testing.T) {
	calc := NewCalculator(DefaultKFactor)

	pA, pB := calc.WinProbability(1700, 1450)
	qB, qA := calc.WinProbability(1450, 1700)
	assert.InDelta(t, pA, qA, 1e-9)
	assert.InDelta(t, pB, qB, 1e-9)
}

func TestWinProbability_IncreasesWithRatingGap(t *testing.T) {
	calc := NewCalculator(DefaultKFactor)

	prev := 0.0
	for _, ratingA := range []int{1300, 1400, 1500, 1600, 1700, 1900} {
		pA, _ := calc.WinProbability(ratingA, 1500)
		assert.Greater(t, pA, prev, "probability must rise with rating %d", ratingA)
		prev = pA
	}
}

func TestRatingChange_EqualRatingsDefaultK(t *testing.T) {
	calc := NewCalculator(32)

	newWinner, newLoser := calc.RatingChange(1500, 1500)
	assert.Equal(t, 1516, newWinner)
	assert.Equal(t, 1484, newLoser)
}

func TestRatingChange_WinnerUpLoserDown(t *testing.T) {
	calc := NewCalculator(32)

	cases := [][2]int{
		{1500, 1500},
		{1400, 1700}, // upset
		{1800, 1200}, // expected result, small exchange
	}
	for _, c := range cases {
		newWinner, newLoser := calc.RatingChange(c[0], c[1])
		assert.Greater(t, newWinner, c[0], "winner must gain (%v)", c)
		assert.Less(t, newLoser, c[1], "loser must drop (%v)", c)
	}
}

func TestRatingChange_ConservesMassWithinRounding(t *testing.T) {
	calc := NewCalculator(32)

	cases := [][2]int{
		{1500, 1500},
		{1503, 1497},
		{1650, 1420},
		{2100, 900},
	}
	for _, c := range cases {
		newWinner, newLoser := calc.RatingChange(c[0], c[1])
		before := c[0] + c[1]
		after := newWinner + newLoser
		assert.LessOrEqual(t, abs(after-before), 1, "ratings %v", c)
	}
}

func TestRatingChange_ZeroKFactor(t *testing.T) {
	calc := NewCalculator(0)

	newWinner, newLoser := calc.RatingChange(1500, 1500)
	assert.Equal(t, 1500, newWinner)
	assert.Equal(t, 1500, newLoser)
}

func TestDrawRatingChange_EqualRatingsUnchanged(t *testing.T) {
	calc := NewCalculator(32)

	newA, newB := calc.DrawRatingChange(1500, 1500)
	assert.Equal(t, 1500, newA)
	assert.Equal(t, 1500, newB)
}

func TestDrawRatingChange_FavorsUnderdog(t *testing.T) {
	calc := NewCalculator(32)

	newHigh, newLow := calc.DrawRatingChange(1700, 1300)
	assert.Less(t, newHigh, 1700, "favourite loses ground on a draw")
	assert.Greater(t, newLow, 1300, "underdog gains ground on a draw")
}

func TestNewCalculator_NegativeKFallsBackToDefault(t *testing.T) {
	calc := NewCalculator(-5)
	assert.Equal(t, DefaultKFactor, calc.KFactor())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
