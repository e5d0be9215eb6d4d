package bot

import (
	"fmt"
)

// BotLevel selects a decision policy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota + 1
	BotLevelSmart
	BotLevelGod
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return &SmartBot{}, nil
	case BotLevelGod:
		return &GodBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a provisioned bot identity, picking the
// brain tier from the identity's configured difficulty.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelSmart
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		level = LevelFromDifficulty(identity.Difficulty)
		name = identity.DisplayName
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}

// LevelFromDifficulty maps a bot identity's difficulty string to a level.
// Unknown strings fall back to the middle tier.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelGood
	case "hard":
		return BotLevelGod
	default:
		return BotLevelSmart
	}
}
