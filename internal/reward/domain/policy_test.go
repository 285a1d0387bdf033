package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func ladder() []Tier {
	return []Tier{
		{Name: "Bronze", MinPoints: 0, MaxPoints: ptr(999)},
		{Name: "Silver", MinPoints: 1000, MaxPoints: ptr(2499)},
		{Name: "Gold", MinPoints: 2500, MaxPoints: ptr(4999)},
		{Name: "Platinum", MinPoints: 5000},
	}
}

func TestPointsFor(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		rate   float64
		want   int64
	}{
		{"whole units", 250, 0.1, 25},
		{"fraction truncates", 99, 0.1, 9},
		{"single unit boundary", 10, 0.1, 1},
		{"below one point", 9, 0.1, 0},
		{"zero amount", 0, 0.1, 0},
		{"negative amount", -100, 0.1, 0},
		{"zero rate", 500, 0, 0},
		{"generous rate", 500, 0.5, 250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PointsFor(tc.amount, tc.rate))
		})
	}
}

func TestTierForBoundaries(t *testing.T) {
	tiers := ladder()

	cases := []struct {
		points int64
		want   string
	}{
		{0, "Bronze"},
		{999, "Bronze"},
		{1000, "Silver"},
		{2499, "Silver"},
		{2500, "Gold"},
		{4999, "Gold"},
		{5000, "Platinum"},
		{1_000_000, "Platinum"},
		{-1, "Bronze"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.points, tiers).Name, "points=%d", tc.points)
	}
}

func TestTierForEmptyLadder(t *testing.T) {
	assert.Equal(t, Tier{}, TierFor(100, nil))
}

func TestProgressForMidTier(t *testing.T) {
	progress := ProgressFor(500, ladder(), 0.1)

	assert.Equal(t, "Bronze", progress.Current.Name)
	if assert.NotNil(t, progress.Next) {
		assert.Equal(t, "Silver", progress.Next.Name)
	}
	assert.InDelta(t, 50.0, progress.ProgressPct, 0.001)
	assert.Equal(t, int64(500), progress.PointsToNext)
	// 500 points at 0.1 per rupee means 5000 rupees of donations remain.
	assert.Equal(t, int64(5000), progress.AmountToNext)
}

func TestProgressForTopTier(t *testing.T) {
	progress := ProgressFor(9000, ladder(), 0.1)

	assert.Equal(t, "Platinum", progress.Current.Name)
	assert.Nil(t, progress.Next)
	assert.Equal(t, 100.0, progress.ProgressPct)
	assert.Equal(t, int64(0), progress.PointsToNext)
	assert.Equal(t, int64(0), progress.AmountToNext)
}

func TestProgressForTierFloor(t *testing.T) {
	progress := ProgressFor(1000, ladder(), 0.1)

	assert.Equal(t, "Silver", progress.Current.Name)
	assert.Equal(t, 0.0, progress.ProgressPct)
	assert.Equal(t, int64(1500), progress.PointsToNext)
}
