package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"baloot/internal/app"
	"baloot/internal/bot"
	"baloot/internal/config"
	"baloot/internal/domain"
	"baloot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	// interRoundDelaySeconds is the pause between a scored round and the
	// next deal, so clients can show the score sheet.
	interRoundDelaySeconds = 4
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string `json:"seats"`      // user IDs by table position, empty string means open
	OwnerSeat int       `json:"owner_seat"` // seat index of the match owner
	Tick      int64     `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Match     *domain.Match               `json:"-"` // nil while in the lobby
	Bots      map[string]*bot.Agent       `json:"-"`
	Economy   ports.EconomyPort           `json:"-"`

	BaseBet int64 `json:"base_bet"`

	// Decision-window bookkeeping. DeadlineTick applies the engine's
	// timeout default; NextRoundTick schedules the deal after a scored
	// round.
	DeadlineTick  int64 `json:"deadline_tick"`
	NextRoundTick int64 `json:"next_round_tick"`

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`
	BotMaxDelay          int   `json:"bot_max_delay"`
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64 `json:"bot_wait_until"`
	LastSinglePlayerTick int64 `json:"last_single_player_tick"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the table position of a user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, id := range ms.Seats {
		if id == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	tier := ""
	if v, ok := params["tier"].(string); ok {
		tier = v
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
		BaseBet:   config.GetBaseBet(tier),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["baloot_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["baloot_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["baloot_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["baloot_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}
	if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
		state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
	}

	label, err := marshalLabel(state.GetOpenSeatsCount(), "lobby")
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the
	// match begins.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Match == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Match == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId != p.GetUserId() {
				continue
			}
			if matchState.Match != nil {
				// A live table must stay four-handed; a bot inherits the
				// seat and the hand.
				identity := bot.GetBotIdentity(i)
				if agent, err := bot.NewAgent(identity.UserID); err == nil {
					matchState.Seats[i] = identity.UserID
					matchState.Bots[identity.UserID] = agent
					logger.Info("MatchLeave: Bot %s took over seat %d from %s", identity.UserID, i, p.GetUserId())
				} else {
					matchState.Seats[i] = ""
					logger.Error("MatchLeave: No bot available for seat %d: %v", i, err)
				}
			} else {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
			}
			break
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	mh.processDeadlines(ctx, matchState, dispatcher, logger)

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// handleMessage routes one client message through the engine.
func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if msg.GetOpCode() == OpStartMatch {
		mh.handleStartMatch(ctx, state, dispatcher, logger, senderID)
		return
	}

	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("handleMessage: Message from non-seated user %s", senderID)
		return
	}
	if state.Match == nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, "", "match not started")
		return
	}
	seat := domain.Seat(senderSeat)

	events, err := mh.applyAction(state, seat, msg.GetOpCode(), msg.GetData())
	if err != nil {
		logger.Warn("handleMessage: User %s (seat %d) opcode %d rejected: %v", senderID, senderSeat, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, 400, string(domain.ReasonOf(err)), err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// applyAction decodes the payload for an opcode and invokes the matching
// engine operation.
func (mh *matchHandler) applyAction(state *MatchState, seat domain.Seat, opCode int64, data []byte) ([]app.Event, error) {
	m := state.Match

	switch opCode {
	case OpBid:
		var req bidRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		call, err := parseCall(req.Call)
		if err != nil {
			return nil, err
		}
		return state.App.Bid(m, seat, call, req.Trump)

	case OpGablakClaim:
		return state.App.GablakClaim(m, seat)

	case OpDouble:
		var req doubleRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return state.App.Double(m, seat, domain.DoublingLevel(req.Level))

	case OpDeclineDouble:
		return state.App.DeclineDouble(m, seat)

	case OpChooseVariant:
		var req variantRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		v, err := parseVariant(req.Variant)
		if err != nil {
			return nil, err
		}
		return state.App.ChooseVariant(m, seat, v)

	case OpDeclareProject:
		var req declareRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		t, err := parseProject(req.Project)
		if err != nil {
			return nil, err
		}
		return state.App.DeclareProject(m, seat, t)

	case OpPlayCard:
		var req playRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return state.App.Play(m, seat, req.Card)

	case OpSawaClaim:
		return state.App.SawaClaim(m, seat)

	case OpSawaRespond:
		var req sawaRespondRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return state.App.SawaRespond(m, seat, req.Accept)

	case OpQaydTrigger:
		return state.App.QaydTrigger(m, seat)

	case OpQaydAccuse:
		var req qaydAccuseRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		v, err := parseViolation(req.Violation)
		if err != nil {
			return nil, err
		}
		return state.App.QaydAccuse(m, seat, v, req.Card, req.TrickIndex)

	case OpQaydConfirm:
		return state.App.QaydConfirm(m, seat)

	case OpQaydCancel:
		return state.App.QaydCancel(m, seat)

	default:
		return nil, nil
	}
}

func (mh *matchHandler) handleStartMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := state.seatOf(senderID)
	logger.Info("StartMatch: Request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartMatch: User %s is not the owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Match != nil {
		logger.Warn("StartMatch: Match already running.")
		return
	}
	if state.GetOccupiedSeatCount() < app.SeatsRequiredToStart {
		logger.Warn("StartMatch: Cannot start with %d seats. Need %d.", state.GetOccupiedSeatCount(), app.SeatsRequiredToStart)
		return
	}

	state.Match = domain.NewMatch(0)
	events, err := state.App.BeginRound(state.Match)
	if err != nil {
		logger.Error("StartMatch: Failed to deal: %v", err)
		state.Match = nil
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// processDeadlines applies window expiries and deals the next round once
// the score-sheet pause elapses.
func (mh *matchHandler) processDeadlines(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil {
		return
	}

	if state.Match.Round == nil {
		if state.NextRoundTick == 0 || state.Tick < state.NextRoundTick {
			return
		}
		state.NextRoundTick = 0
		events, err := state.App.BeginRound(state.Match)
		if err != nil {
			logger.Error("processDeadlines: Failed to deal next round: %v", err)
			return
		}
		mh.dispatchEvents(ctx, state, dispatcher, logger, events)
		return
	}

	if state.DeadlineTick == 0 || state.Tick < state.DeadlineTick {
		return
	}

	w := state.Match.Round.ActiveWindow()
	if w == nil {
		state.DeadlineTick = 0
		return
	}
	logger.Debug("processDeadlines: %s window for seat %d expired.", w.Kind, w.Seat)
	events, err := state.App.ExpireWindow(state.Match)
	if err != nil {
		logger.Error("processDeadlines: Expiry failed: %v", err)
		state.DeadlineTick = 0
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Match == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(ctx, state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot decision windows in-game
	if state.Match.Round == nil {
		return
	}
	w := state.Match.Round.ActiveWindow()
	if w == nil {
		state.BotWaitUntil = 0
		return
	}
	currentUserID := state.Seats[w.Seat]
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d, %s window) will act at tick %d", currentUserID, w.Seat, w.Kind, state.BotWaitUntil)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	events, err := agent.Act(state.App, state.Match, w.Seat)
	if err != nil {
		logger.Error("processBots: Bot %s failed to act on %s window: %v", currentUserID, w.Kind, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// dispatchEvents broadcasts a batch of engine events and maintains the
// deadline and lifecycle bookkeeping they imply.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.rearmDeadline(state)
}

// rearmDeadline resets the expiry timer against the round's current window.
// Every accepted action changes the window, so this runs after each one.
func (mh *matchHandler) rearmDeadline(state *MatchState) {
	if state.Match == nil || state.Match.Round == nil {
		state.DeadlineTick = 0
		return
	}
	w := state.Match.Round.ActiveWindow()
	if w == nil {
		state.DeadlineTick = 0
		return
	}
	state.DeadlineTick = state.Tick + int64(config.GetWindowSeconds(string(w.Kind)))
	state.BotWaitUntil = 0
}

// broadcastEvent serializes one engine event and maintains settlement and
// lifecycle side effects.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch ev.Kind {
	case app.EventRoundScored:
		if state.Match != nil && state.Match.Winner == nil {
			state.NextRoundTick = state.Tick + interRoundDelaySeconds
		}

	case app.EventMatchEnded:
		p := ev.Payload.(app.MatchEndedPayload)
		mh.settle(ctx, state, logger, p.Winner)
		state.Match = nil
		state.NextRoundTick = 0
		state.DeadlineTick = 0
		mh.updateLabel(state, dispatcher, logger)
	}

	bytes, err := marshalTableEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			uid := state.Seats[seat]
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If the intended recipients are not connected (e.g. bots), we
		// MUST NOT fall through to a table-wide broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(OpTableEvent, bytes, recipients, nil, true)
}

// settle pays the decided match out through the economy port. Bot seats are
// skipped: their wallets are cosmetic.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, winner domain.Team) {
	if state.Economy == nil || state.BaseBet <= 0 {
		return
	}
	deltas := state.App.Settlement(winner, state.BaseBet)
	updates := make([]ports.WalletUpdate, 0, len(deltas))
	for seat, amount := range deltas {
		userID := state.Seats[seat]
		if userID == "" || isBotUserId(userID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "match_settlement",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("Failed to update balances: %v", err)
	}
}

// lobbyPlayer is one seat entry of the OpLobbyState snapshot.
type lobbyPlayer struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
}

type lobbySnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []lobbyPlayer `json:"players"`
}

func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []lobbyPlayer
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		balance := int64(0)
		if state.Economy != nil {
			if b, err := state.Economy.GetBalance(ctx, userId); err == nil {
				balance = b
			}
		}

		players = append(players, lobbyPlayer{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
			Balance:     balance,
		})
	}

	snapshot := lobbySnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal lobby snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendError sends a rejection payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, reason, message string) {
	bytes, err := json.Marshal(gameError{Code: code, Reason: reason, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Match != nil {
		phase = "playing"
	}

	label, err := marshalLabel(state.GetOpenSeatsCount(), phase)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
