package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRewardConfig(t *testing.T) {
	cfg := DefaultRewardConfig()

	assert.Equal(t, 0.1, cfg.PointsPerUnit)
	require.Len(t, cfg.Tiers, 4)
	assert.Equal(t, "Bronze", cfg.Tiers[0].Name)
	assert.Equal(t, "Platinum", cfg.Tiers[3].Name)
	assert.Nil(t, cfg.Tiers[3].MaxPoints)
	require.NoError(t, validateRewardConfig(cfg))
}

func TestValidateRewardConfig(t *testing.T) {
	base := DefaultRewardConfig()

	bad := base
	bad.PointsPerUnit = 0
	assert.Error(t, validateRewardConfig(bad))

	bad = base
	bad.Tiers = nil
	assert.Error(t, validateRewardConfig(bad))

	bad = base
	bounded := int64(9999)
	bad.Tiers = []RewardTier{{Name: "Only", MinPoints: 0, MaxPoints: &bounded}}
	assert.Error(t, validateRewardConfig(bad))
}

func TestRewardConfigHolderDefaultsWithoutFile(t *testing.T) {
	holder, err := NewRewardConfigHolder()
	require.NoError(t, err)

	got := holder.Get()
	assert.Equal(t, DefaultRewardConfig(), got)
}

func TestStaticRewardConfigHolder(t *testing.T) {
	cfg := RewardConfig{
		PointsPerUnit: 0.5,
		Tiers:         []RewardTier{{Name: "Flat", MinPoints: 0}},
	}

	holder := NewStaticRewardConfigHolder(cfg)
	got := holder.Get()

	assert.Equal(t, 0.5, got.PointsPerUnit)
	require.Len(t, got.Tiers, 1)
	assert.Equal(t, "Flat", got.Tiers[0].Name)
}
