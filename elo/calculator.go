package elo

import "math"

// DefaultKFactor gives moderate rating volatility.
const DefaultKFactor = 32

// Calculator implements the logistic expected-score ELO model. It is pure:
// callers persist the returned ratings and write their own audit entries.
type Calculator struct {
	kFactor int
}

func NewCalculator(kFactor int) *Calculator {
	if kFactor < 0 {
		kFactor = DefaultKFactor
	}
	return &Calculator{kFactor: kFactor}
}

func (c *Calculator) KFactor() int {
	return c.kFactor
}

// WinProbability returns the expected scores for both sides. The two values
// always sum to 1 and swap when the inputs swap.
func (c *Calculator) WinProbability(ratingA, ratingB int) (float64, float64) {
	expectedA := 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
	return expectedA, 1 - expectedA
}

// RatingChange applies a decisive result: actual score 1 for the winner,
// 0 for the loser. Each side's delta is rounded independently, so total
// rating mass is conserved within ±1.
func (c *Calculator) RatingChange(winnerRating, loserRating int) (int, int) {
	winnerChange, loserChange := c.RatingChangeAmount(winnerRating, loserRating)
	return winnerRating + winnerChange, loserRating + loserChange
}

// RatingChangeAmount returns the deltas of a decisive result without
// applying them.
func (c *Calculator) RatingChangeAmount(winnerRating, loserRating int) (int, int) {
	expectedWinner, expectedLoser := c.WinProbability(winnerRating, loserRating)
	winnerChange := int(math.Round(float64(c.kFactor) * (1.0 - expectedWinner)))
	loserChange := int(math.Round(float64(c.kFactor) * (0.0 - expectedLoser)))
	return winnerChange, loserChange
}

// DrawRatingChange treats both sides as scoring 0.5.
func (c *Calculator) DrawRatingChange(ratingA, ratingB int) (int, int) {
	changeA, changeB := c.DrawChangeAmount(ratingA, ratingB)
	return ratingA + changeA, ratingB + changeB
}

// DrawChangeAmount returns the deltas of a draw without applying them.
func (c *Calculator) DrawChangeAmount(ratingA, ratingB int) (int, int) {
	expectedA, expectedB := c.WinProbability(ratingA, ratingB)
	changeA := int(math.Round(float64(c.kFactor) * (0.5 - expectedA)))
	changeB := int(math.Round(float64(c.kFactor) * (0.5 - expectedB)))
	return changeA, changeB
}
