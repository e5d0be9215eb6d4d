package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"baloot/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

var vivoxService *app.VivoxService

// ensureVivoxService initializes the token signer from runtime env vars on
// first use. Tests inject vivoxService directly.
func ensureVivoxService(ctx context.Context, logger runtime.Logger) *app.VivoxService {
	if vivoxService != nil {
		return vivoxService
	}
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["vivox_secret"]
	issuer := env["vivox_issuer"]
	domain := env["vivox_domain"]
	if secret == "" || issuer == "" || domain == "" {
		logger.Warn("Vivox credentials missing from env; voice tokens disabled.")
		return nil
	}
	vivoxService = app.NewVivoxService(secret, issuer, domain)
	return vivoxService
}

// RpcGetVivoxToken signs a Vivox voice token for the calling user.
// Payload: {"action": "login" | "join", "match_id": "..."} - match_id is
// required for join tokens and maps to the table's voice channel.
func RpcGetVivoxToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Unauthenticated", 16) // UNAUTHENTICATED
	}

	var req struct {
		Action  string `json:"action"`
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	svc := ensureVivoxService(ctx, logger)
	if svc == nil {
		return "", runtime.NewError("Voice not configured", 13) // INTERNAL
	}

	channel := ""
	if req.Action == app.VivoxTokenActionJoin {
		if req.MatchID == "" {
			return "", runtime.NewError("match_id required for join", 3)
		}
		channel = app.TableChannelName(req.MatchID)
	}

	token, err := svc.GenerateToken(userID, req.Action, channel)
	if err != nil {
		logger.Error("Failed to generate Vivox token: %v", err)
		return "", runtime.NewError("Invalid token request", 3)
	}

	res := map[string]string{"token": token}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}
