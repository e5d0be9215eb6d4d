package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"baloot/internal/app"
	"baloot/internal/bot"
	"baloot/internal/domain"
	"baloot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	lastLabel      string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

type mockEconomy struct {
	balances map[string]int64
	calls    map[string]int
	updates  []ports.WalletUpdate
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	if me.calls == nil {
		me.calls = make(map[string]int)
	}
	me.calls[userID]++
	if balance, ok := me.balances[userID]; ok {
		return balance, nil
	}
	return 0, errors.New("balance not found")
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	me.updates = append(me.updates, updates...)
	return nil
}

func init() {
	// Load bot identities for testing.
	if err := bot.LoadIdentities("test_bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID
	bot3 := bot.GetBotIdentity(2).UserID
	bot4 := bot.GetBotIdentity(3).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{
			name:  "BotsOnly",
			seats: []string{bot1, bot2, bot3, bot4},
			want:  true,
		},
		{
			name:  "BotsAndEmpty",
			seats: []string{bot1, "", bot3, ""},
			want:  true,
		},
		{
			name:  "HumansPresent",
			seats: []string{bot1, "user-1", "", ""},
			want:  false,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	tests := []struct {
		name     string
		open     int
		phase    string
		expected string
	}{
		{
			name:     "LobbyState",
			open:     3,
			phase:    "lobby",
			expected: `{"open":3,"game":"baloot","phase":"lobby"}`,
		},
		{
			name:     "PlayingState",
			open:     0,
			phase:    "playing",
			expected: `{"open":0,"game":"baloot","phase":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			label, err := marshalLabel(test.open, test.phase)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			if label != test.expected {
				t.Errorf("Got %s, want %s", label, test.expected)
			}
		})
	}
}

func TestProcessBots_FillsTableForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := &MatchState{
		Seats:                [4]string{"user-1", "", "", ""},
		Presences:            make(map[string]runtime.Presence),
		Bots:                 make(map[string]*bot.Agent),
		BotsEnabled:          true,
		BotAutoFillDelay:     2,
		LastSinglePlayerTick: 8,
		Tick:                 10,
	}

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
		}
	}

	if botCount != 3 {
		t.Fatalf("Expected 3 bots to complete the table, got %d", botCount)
	}
	if state.GetOpenSeatsCount() != 0 {
		t.Fatalf("Expected a full table after auto-fill, got %d open", state.GetOpenSeatsCount())
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected match state broadcast and label update after auto-fill")
	}
}

func TestBroadcastMatchState_IncludesBalances(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	botID := bot.GetBotIdentity(0).UserID
	economy := &mockEconomy{
		balances: map[string]int64{
			"user-1": 1200,
			botID:    5000,
		},
	}
	state := &MatchState{
		Seats:     [4]string{"user-1", botID, "", ""},
		OwnerSeat: 0,
		Tick:      42,
		Presences: make(map[string]runtime.Presence),
		Economy:   economy,
	}

	handler.broadcastMatchState(context.Background(), state, dispatcher, noopLogger{})

	if dispatcher.lastOpCode != OpLobbyState {
		t.Fatalf("Expected opcode %d, got %d", OpLobbyState, dispatcher.lastOpCode)
	}
	if len(dispatcher.lastData) == 0 {
		t.Fatalf("Expected snapshot payload to be broadcast")
	}

	var snapshot lobbySnapshot
	if err := json.Unmarshal(dispatcher.lastData, &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	balances := make(map[string]int64)
	for _, player := range snapshot.Players {
		balances[player.UserID] = player.Balance
	}

	if got := balances["user-1"]; got != 1200 {
		t.Fatalf("Expected human balance 1200, got %d", got)
	}
	if got := balances[botID]; got != 5000 {
		t.Fatalf("Expected bot balance 5000, got %d", got)
	}
	if economy.calls["user-1"] != 1 {
		t.Fatalf("Expected balance lookup for human, got %d", economy.calls["user-1"])
	}
	if economy.calls[botID] != 1 {
		t.Fatalf("Expected balance lookup for bot, got %d", economy.calls[botID])
	}
}

func fullTableState() *MatchState {
	return &MatchState{
		Seats: [4]string{
			"user-1",
			bot.GetBotIdentity(1).UserID,
			bot.GetBotIdentity(2).UserID,
			bot.GetBotIdentity(3).UserID,
		},
		OwnerSeat: 0,
		Tick:      100,
		Presences: make(map[string]runtime.Presence),
		Bots:      make(map[string]*bot.Agent),
		App:       app.NewService(nil),
	}
}

func TestHandleStartMatchDealsFirstRound(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := fullTableState()

	handler.handleStartMatch(context.Background(), state, dispatcher, noopLogger{}, "user-1")

	if state.Match == nil || state.Match.Round == nil {
		t.Fatal("Expected a dealt round after start")
	}
	if state.Match.Round.Phase != domain.PhaseBidding {
		t.Fatalf("Round phase = %s, want bidding", state.Match.Round.Phase)
	}
	if dispatcher.lastOpCode != OpTableEvent {
		t.Fatalf("Expected table event broadcast, got opcode %d", dispatcher.lastOpCode)
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatal("Expected a label update to playing")
	}
	if state.DeadlineTick <= state.Tick {
		t.Fatalf("Expected an armed bid deadline, got %d at tick %d", state.DeadlineTick, state.Tick)
	}

	// Only the owner can start, and not twice.
	before := dispatcher.broadcastCount
	handler.handleStartMatch(context.Background(), state, dispatcher, noopLogger{}, "user-1")
	if dispatcher.broadcastCount != before {
		t.Fatal("Second start request must be ignored")
	}
}

func TestHandleStartMatchRejectsNonOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := fullTableState()

	handler.handleStartMatch(context.Background(), state, dispatcher, noopLogger{}, bot.GetBotIdentity(1).UserID)

	if state.Match != nil {
		t.Fatal("Non-owner must not start the match")
	}
}

func TestApplyActionBid(t *testing.T) {
	handler := &matchHandler{}
	state := fullTableState()
	state.Match = domain.NewMatch(0)
	if _, err := state.App.BeginRound(state.Match); err != nil {
		t.Fatal(err)
	}

	seat := state.Match.Round.Auction.Turn
	events, err := handler.applyAction(state, seat, OpBid, []byte(`{"call":"sun"}`))
	if err != nil {
		t.Fatalf("applyAction error: %v", err)
	}

	// First-seat Sun resolves the auction immediately.
	if state.Match.Round.Phase != domain.PhaseDoubling {
		t.Fatalf("Round phase = %s, want doubling", state.Match.Round.Phase)
	}
	resolved := false
	for _, ev := range events {
		if ev.Kind == app.EventContractResolved {
			resolved = true
		}
	}
	if !resolved {
		t.Fatal("Expected a contract resolution event")
	}
}

func TestApplyActionRejectsBadPayloads(t *testing.T) {
	handler := &matchHandler{}
	state := fullTableState()
	state.Match = domain.NewMatch(0)
	if _, err := state.App.BeginRound(state.Match); err != nil {
		t.Fatal(err)
	}
	seat := state.Match.Round.Auction.Turn

	if _, err := handler.applyAction(state, seat, OpBid, []byte(`not json`)); err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
	if _, err := handler.applyAction(state, seat, OpBid, []byte(`{"call":"slam"}`)); err == nil {
		t.Fatal("Expected error for unknown call")
	}
	if _, err := handler.applyAction(state, seat.Next(), OpBid, []byte(`{"call":"pass"}`)); domain.ReasonOf(err) != domain.ReasonWrongTurn {
		t.Fatalf("Expected wrong_turn rejection, got %v", err)
	}
}

func TestProcessDeadlinesAutoPasses(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := fullTableState()
	state.Match = domain.NewMatch(0)
	if _, err := state.App.BeginRound(state.Match); err != nil {
		t.Fatal(err)
	}
	firstTurn := state.Match.Round.Auction.Turn
	state.DeadlineTick = 90 // already past

	handler.processDeadlines(context.Background(), state, dispatcher, noopLogger{})

	if got := state.Match.Round.Auction.Turn; got != firstTurn.Next() {
		t.Fatalf("Auction turn = %d, want auto-pass to %d", got, firstTurn.Next())
	}
	if state.DeadlineTick <= state.Tick {
		t.Fatalf("Expected the deadline rearmed, got %d", state.DeadlineTick)
	}
	if dispatcher.broadcastCount == 0 {
		t.Fatal("Expected the auto-pass to be broadcast")
	}
}

func TestSettleSkipsBots(t *testing.T) {
	handler := &matchHandler{}
	economy := &mockEconomy{balances: map[string]int64{}}
	state := fullTableState()
	state.Economy = economy
	state.BaseBet = 500

	handler.settle(context.Background(), state, noopLogger{}, domain.TeamUs)

	if len(economy.updates) != 1 {
		t.Fatalf("Expected exactly the human wallet update, got %d", len(economy.updates))
	}
	up := economy.updates[0]
	if up.UserID != "user-1" || up.Amount != 500 {
		t.Fatalf("Unexpected settlement %+v", up)
	}
}
