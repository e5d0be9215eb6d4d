package bot

import (
	"math/rand"
	"testing"

	"baloot/internal/app"
	"baloot/internal/domain"
)

// stubBrain forces a fixed bid so tests can provoke rule rejections.
type stubBrain struct {
	SmartBot
	bid BidDecision
}

func (b *stubBrain) Bid(r *domain.Round, seat domain.Seat) BidDecision {
	return b.bid
}

func TestAgentActsOnlyOnOwnWindow(t *testing.T) {
	svc := app.NewService(rand.New(rand.NewSource(5)))
	m := domain.NewMatch(0)
	if _, err := svc.BeginRound(m); err != nil {
		t.Fatal(err)
	}

	turn := m.Round.Auction.Turn
	agent := &Agent{ID: "bot-a", Strategy: &GoodBot{}}

	evs, err := agent.Act(svc, m, turn.Next())
	if err != nil || evs != nil {
		t.Fatalf("off-turn act = (%v, %v), want silence", evs, err)
	}
	if m.Round.Auction.Turn != turn {
		t.Fatal("off-turn act must not advance the auction")
	}
}

func TestAgentFallsBackToPassOnRejectedBid(t *testing.T) {
	svc := app.NewService(rand.New(rand.NewSource(5)))
	m := domain.NewMatch(0)
	if _, err := svc.BeginRound(m); err != nil {
		t.Fatal(err)
	}

	// First to speak is seat 1 (dealer 0), which may not call Ashkal.
	turn := m.Round.Auction.Turn
	agent := &Agent{ID: "bot-a", Strategy: &stubBrain{bid: BidDecision{Call: domain.CallAshkal}}}

	evs, err := agent.Act(svc, m, turn)
	if err != nil {
		t.Fatalf("act error: %v", err)
	}
	if len(evs) == 0 || evs[0].Kind != app.EventBidPlaced {
		t.Fatalf("events = %v, want a pass bid", evs)
	}
	if got := evs[0].Payload.(app.BidPlacedPayload); got.Call != domain.CallPass {
		t.Fatalf("fallback call = %v, want pass", got.Call)
	}
	if m.Round.Auction.Turn != turn.Next() {
		t.Fatal("fallback pass must advance the auction")
	}
}

func TestAgentsPlayARoundToCompletion(t *testing.T) {
	svc := app.NewService(rand.New(rand.NewSource(11)))
	m := domain.NewMatch(0)
	if _, err := svc.BeginRound(m); err != nil {
		t.Fatal(err)
	}

	agents := [domain.NumSeats]*Agent{}
	for seat := range agents {
		brain, err := NewBrain(BotLevelSmart)
		if err != nil {
			t.Fatal(err)
		}
		agents[seat] = &Agent{ID: "bot", Strategy: brain}
	}

	for step := 0; m.Round != nil; step++ {
		if step > 400 {
			t.Fatal("agents failed to finish the round")
		}
		w := m.Round.ActiveWindow()
		if w == nil {
			t.Fatalf("live round without a window in phase %s", m.Round.Phase)
		}
		if _, err := agents[w.Seat].Act(svc, m, w.Seat); err != nil {
			t.Fatalf("step %d (%s, seat %d): %v", step, w.Kind, w.Seat, err)
		}
	}

	total := m.Scores[0] + m.Scores[1]
	if total == 0 && m.Dealer == 0 {
		t.Fatal("round ended with neither score nor a redeal rotation")
	}
}
