package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type BetTier struct {
	ID      string `json:"id"`
	BaseBet int64  `json:"base_bet"`
}

// WindowSeconds holds the per-window decision deadlines. A zero field falls
// back to the compiled default for that window.
type WindowSeconds struct {
	Bid     int `json:"bid"`
	Gablak  int `json:"gablak"`
	Double  int `json:"double"`
	Variant int `json:"variant"`
	Play    int `json:"play"`
	Claim   int `json:"claim"`
	Dispute int `json:"dispute"`
}

type GameConfig struct {
	TaxRate     float64   `json:"tax_rate"`
	DefaultTier string    `json:"default_tier"`
	Tiers       []BetTier `json:"tiers"`

	Windows WindowSeconds `json:"window_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Compiled window defaults, in seconds.
var defaultWindows = WindowSeconds{
	Bid:     15,
	Gablak:  10,
	Double:  10,
	Variant: 10,
	Play:    20,
	Claim:   15,
	Dispute: 30,
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetWindowSeconds returns the configured deadline for a window name as used
// by the engine ("bid", "play", ...), falling back to defaults when the
// config is absent or leaves the field zero.
func GetWindowSeconds(window string) int {
	w := defaultWindows
	if cfg != nil {
		w = cfg.Windows
	}
	pick := func(configured, fallback int) int {
		if configured > 0 {
			return configured
		}
		return fallback
	}
	switch window {
	case "bid":
		return pick(w.Bid, defaultWindows.Bid)
	case "gablak":
		return pick(w.Gablak, defaultWindows.Gablak)
	case "double":
		return pick(w.Double, defaultWindows.Double)
	case "variant":
		return pick(w.Variant, defaultWindows.Variant)
	case "play":
		return pick(w.Play, defaultWindows.Play)
	case "claim":
		return pick(w.Claim, defaultWindows.Claim)
	case "dispute":
		return pick(w.Dispute, defaultWindows.Dispute)
	default:
		return defaultWindows.Play
	}
}

// GetBaseBet returns the base bet for a given tier ID, or the default if not found.
func GetBaseBet(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseBet
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseBet
		}
	}

	return 100
}
