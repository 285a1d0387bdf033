package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RewardConfig controls how donations convert into points and how points
// map onto display tiers.
type RewardConfig struct {
	PointsPerUnit float64      `mapstructure:"pointsPerUnit"`
	Tiers         []RewardTier `mapstructure:"tiers"`
}

type RewardTier struct {
	Name      string `mapstructure:"name"`
	MinPoints int64  `mapstructure:"minPoints"`
	MaxPoints *int64 `mapstructure:"maxPoints"` // nil = unbounded top tier
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		PointsPerUnit: 0.1, // 1 point per 10 rupees
		Tiers: []RewardTier{
			{Name: "Bronze", MinPoints: 0, MaxPoints: int64Ptr(999)},
			{Name: "Silver", MinPoints: 1000, MaxPoints: int64Ptr(2499)},
			{Name: "Gold", MinPoints: 2500, MaxPoints: int64Ptr(4999)},
			{Name: "Platinum", MinPoints: 5000, MaxPoints: nil},
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

// RewardConfigHolder keeps the active reward policy and swaps it on file change.
type RewardConfigHolder struct {
	current atomic.Value // holds RewardConfig
}

func NewRewardConfigHolder() (*RewardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("rewards")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/nepfund/config") // Volume-mounted config
	v.AddConfigPath("/etc/nepfund")            // System config
	v.AddConfigPath(".")                       // Current directory (dev mode)

	v.SetEnvPrefix("NEPFUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg RewardConfig
	if err := v.UnmarshalKey("rewards", &cfg); err != nil {
		return nil, err
	}
	// No config file (or no rewards section) falls back to the built-in policy.
	if cfg.PointsPerUnit == 0 && len(cfg.Tiers) == 0 {
		cfg = DefaultRewardConfig()
	}
	if err := validateRewardConfig(cfg); err != nil {
		return nil, err
	}

	holder := &RewardConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RewardConfig
		if err := v.UnmarshalKey("rewards", &updated); err != nil {
			log.Printf("[reward-config] reload failed: %v", err)
			return
		}
		if err := validateRewardConfig(updated); err != nil {
			log.Printf("[reward-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reward-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticRewardConfigHolder returns a holder pinned to cfg, for tests.
func NewStaticRewardConfigHolder(cfg RewardConfig) *RewardConfigHolder {
	holder := &RewardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *RewardConfigHolder) Get() RewardConfig {
	return h.current.Load().(RewardConfig)
}

func validateRewardConfig(cfg RewardConfig) error {
	if cfg.PointsPerUnit <= 0 {
		return errors.New("rewards.pointsPerUnit must be positive")
	}
	if len(cfg.Tiers) == 0 {
		return errors.New("rewards.tiers cannot be empty")
	}
	if cfg.Tiers[len(cfg.Tiers)-1].MaxPoints != nil {
		return errors.New("rewards.tiers last tier must be unbounded")
	}
	return nil
}
