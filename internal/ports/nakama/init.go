package nakama

import (
	"context"
	"database/sql"

	"baloot/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	// Bot accounts exist as real users so balances and display names
	// resolve; a missing identity file only disables autofill.
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("Bot identities unavailable: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("Bot provisioning failed: %v", err)
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameBaloot, NewMatch); err != nil {
		return err
	}

	logger.Info("Baloot Go module loaded.")
	return nil
}
