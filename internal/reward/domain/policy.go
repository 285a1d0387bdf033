package domain

import "math"

// Tier is a named bracket of cumulative reward points. MaxPoints nil marks
// the unbounded top tier.
type Tier struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
	MaxPoints *int64 `json:"max_points,omitempty"`
}

// TierProgress describes where a point total sits inside the tier ladder.
type TierProgress struct {
	Current      Tier
	Next         *Tier
	ProgressPct  float64
	PointsToNext int64
	AmountToNext int64
}

// PointsFor converts a donated amount into points. Truncates rather than
// rounds so fractional remainders never inflate the total.
func PointsFor(amount int64, pointsPerUnit float64) int64 {
	if amount <= 0 || pointsPerUnit <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount) * pointsPerUnit))
}

// TierFor returns the first tier whose range contains points. Negative
// totals fall back to the lowest tier.
func TierFor(points int64, tiers []Tier) Tier {
	if len(tiers) == 0 {
		return Tier{}
	}
	if points < 0 {
		return tiers[0]
	}
	for _, tier := range tiers {
		if points < tier.MinPoints {
			continue
		}
		if tier.MaxPoints == nil || points <= *tier.MaxPoints {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

// ProgressFor computes the donor's position within the tier ladder and the
// estimated amount still needed to reach the next tier.
func ProgressFor(points int64, tiers []Tier, pointsPerUnit float64) TierProgress {
	current := TierFor(points, tiers)

	var next *Tier
	for i := range tiers {
		if tiers[i].Name == current.Name && i+1 < len(tiers) {
			next = &tiers[i+1]
			break
		}
	}

	if next == nil {
		return TierProgress{Current: current, ProgressPct: 100}
	}

	span := next.MinPoints - current.MinPoints
	pct := float64(0)
	if span > 0 {
		pct = float64(points-current.MinPoints) / float64(span) * 100
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	needed := next.MinPoints - points
	if needed < 0 {
		needed = 0
	}

	amount := int64(0)
	if needed > 0 && pointsPerUnit > 0 {
		amount = int64(math.Ceil(float64(needed) / pointsPerUnit))
	}

	return TierProgress{
		Current:      current,
		Next:         next,
		ProgressPct:  pct,
		PointsToNext: needed,
		AmountToNext: amount,
	}
}
