package app

import (
	"math/rand"
	"testing"

	"baloot/internal/domain"
)

func TestBeginRoundDealsHands(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))
	m := domain.NewMatch(0)

	evs, err := svc.BeginRound(m)
	if err != nil {
		t.Fatalf("begin round error: %v", err)
	}
	if m.Round == nil || m.Round.Phase != domain.PhaseBidding {
		t.Fatalf("round not in bidding: %+v", m.Round)
	}

	if evs[0].Kind != EventRoundStarted {
		t.Fatalf("first event = %s, want round_started", evs[0].Kind)
	}
	started := evs[0].Payload.(RoundStartedPayload)
	if started.RoundID == "" {
		t.Fatal("round started without an id")
	}

	handEvents := 0
	for _, ev := range evs {
		if ev.Kind != EventHandDealt {
			continue
		}
		handEvents++
		if len(ev.Recipients) != 1 {
			t.Fatalf("hand event must be targeted, recipients = %v", ev.Recipients)
		}
		payload := ev.Payload.(HandDealtPayload)
		if len(payload.Hand) != 5 {
			t.Fatalf("bidding hand size = %d, want 5", len(payload.Hand))
		}
	}
	if handEvents != 4 {
		t.Fatalf("hand events = %d, want 4", handEvents)
	}
}

func TestExpiredAuctionVoidsRound(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(7)))
	m := domain.NewMatch(0)
	if _, err := svc.BeginRound(m); err != nil {
		t.Fatal(err)
	}

	voided := false
	for i := 0; i < 8; i++ {
		evs, err := svc.ExpireWindow(m)
		if err != nil {
			t.Fatalf("expire %d: %v", i, err)
		}
		for _, ev := range evs {
			if ev.Kind == EventRoundVoided {
				voided = true
				if !ev.Payload.(RoundVoidedPayload).RotateDealer {
					t.Fatal("double-pass exhaustion must rotate the dealer")
				}
			}
		}
	}
	if !voided {
		t.Fatal("eight auto-passes should void the round")
	}
	if m.Round != nil {
		t.Fatal("voided round should be folded into the match")
	}
	if m.Dealer != 1 {
		t.Fatalf("dealer = %d, want 1", m.Dealer)
	}
}

// A first-seat Sun resolves the auction immediately; from there timeout
// defaults alone can carry the round to a settled score.
func TestRoundPlayedOutByDefaults(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(99)))
	m := domain.NewMatch(3)
	if _, err := svc.BeginRound(m); err != nil {
		t.Fatal(err)
	}

	evs, err := svc.Bid(m, m.Round.Auction.Turn, domain.CallSun, 0)
	if err != nil {
		t.Fatalf("sun bid: %v", err)
	}
	var resolved, redealt bool
	for _, ev := range evs {
		switch ev.Kind {
		case EventContractResolved:
			resolved = true
			if p := ev.Payload.(ContractResolvedPayload); p.Contract != domain.ContractSun {
				t.Fatalf("contract = %v, want sun", p.Contract)
			}
		case EventHandDealt:
			redealt = true
			if p := ev.Payload.(HandDealtPayload); len(p.Hand) != 8 {
				t.Fatalf("completed hand size = %d, want 8", len(p.Hand))
			}
		}
	}
	if !resolved || !redealt {
		t.Fatalf("sun bid should resolve the contract and complete the deal (resolved=%v redealt=%v)", resolved, redealt)
	}

	scored := false
	for i := 0; m.Round != nil && i < 100; i++ {
		evs, err := svc.ExpireWindow(m)
		if err != nil {
			t.Fatalf("expire %d: %v", i, err)
		}
		for _, ev := range evs {
			if ev.Kind == EventRoundScored {
				scored = true
				p := ev.Payload.(RoundScoredPayload)
				if sum := p.Result.Us + p.Result.Them; sum != domain.SunPool && sum != domain.SunKaboot {
					t.Fatalf("sun round paid %d total, want %d or %d", sum, domain.SunPool, domain.SunKaboot)
				}
			}
		}
	}
	if !scored {
		t.Fatal("timeout defaults never settled the round")
	}
	if m.Dealer != 0 {
		t.Fatalf("dealer = %d, want rotated to 0", m.Dealer)
	}
}

func TestSettlement(t *testing.T) {
	svc := NewService(nil)
	got := svc.Settlement(domain.TeamThem, 500)
	want := map[domain.Seat]int64{0: -500, 1: 500, 2: -500, 3: 500}
	for seat, amount := range want {
		if got[seat] != amount {
			t.Fatalf("seat %d delta = %d, want %d", seat, got[seat], amount)
		}
	}
}
