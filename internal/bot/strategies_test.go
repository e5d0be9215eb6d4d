package bot

import (
	"testing"

	"baloot/internal/domain"
)

func card(s domain.Suit, r domain.Rank) domain.Card {
	return domain.Card{Suit: s, Rank: r}
}

func biddingRound(dealer domain.Seat, floor domain.Card) *domain.Round {
	return &domain.Round{
		Phase:   domain.PhaseBidding,
		Dealer:  dealer,
		Auction: domain.NewAuction(dealer, floor),
	}
}

func TestGoodBotBidsFloorSuitHokum(t *testing.T) {
	r := biddingRound(3, card(domain.Hearts, domain.Nine))
	r.Hands[0] = []domain.Card{
		card(domain.Hearts, domain.Jack),
		card(domain.Hearts, domain.Ace),
		card(domain.Hearts, domain.Seven),
		card(domain.Spades, domain.Eight),
		card(domain.Clubs, domain.Seven),
	}
	b := &GoodBot{}
	if d := b.Bid(r, 0); d.Call != domain.CallHokum {
		t.Fatalf("call = %v, want hokum", d.Call)
	}

	// Two trumps are not enough for the easy tier.
	r.Hands[0][2] = card(domain.Diamonds, domain.Seven)
	if d := b.Bid(r, 0); d.Call != domain.CallPass {
		t.Fatalf("call = %v, want pass", d.Call)
	}
}

func TestGoodBotBidsSunOnAces(t *testing.T) {
	r := biddingRound(3, card(domain.Hearts, domain.Nine))
	r.Hands[0] = []domain.Card{
		card(domain.Spades, domain.Ace),
		card(domain.Diamonds, domain.Ace),
		card(domain.Clubs, domain.Ace),
		card(domain.Spades, domain.Seven),
		card(domain.Clubs, domain.Seven),
	}
	if d := (&GoodBot{}).Bid(r, 0); d.Call != domain.CallSun {
		t.Fatalf("call = %v, want sun", d.Call)
	}
}

func TestSmartBotRoundTwoTrumpChoice(t *testing.T) {
	r := biddingRound(3, card(domain.Hearts, domain.Nine))
	r.Auction.Round = 2
	r.Hands[0] = []domain.Card{
		card(domain.Spades, domain.Jack),
		card(domain.Spades, domain.Nine),
		card(domain.Spades, domain.Seven),
		card(domain.Diamonds, domain.Eight),
		card(domain.Clubs, domain.Seven),
	}
	d := (&SmartBot{}).Bid(r, 0)
	if d.Call != domain.CallHokum || d.Trump != domain.Spades {
		t.Fatalf("decision = %+v, want hokum in spades", d)
	}
}

func TestSmartBotNeverSecondHokum(t *testing.T) {
	r := biddingRound(3, card(domain.Hearts, domain.Nine))
	r.Auction.Round = 2
	r.Auction.HokumBid = &domain.Bid{Contract: domain.ContractHokum, Trump: domain.Clubs, Bidder: 3, Beneficiary: 3}
	r.Hands[0] = []domain.Card{
		card(domain.Spades, domain.Jack),
		card(domain.Spades, domain.Nine),
		card(domain.Spades, domain.Seven),
		card(domain.Diamonds, domain.Eight),
		card(domain.Clubs, domain.Seven),
	}
	if d := (&SmartBot{}).Bid(r, 0); d.Call != domain.CallPass {
		t.Fatalf("call = %v, want pass over a standing hokum", d.Call)
	}
}

// playingRound builds a round mid-play with the table and hands supplied by
// the caller.
func playingRound(contract domain.Contract, trump domain.Suit) *domain.Round {
	bidder := domain.Seat(0)
	return &domain.Round{
		Phase:    domain.PhasePlaying,
		Dealer:   3,
		Bid:      &domain.Bid{Contract: contract, Trump: trump, Bidder: bidder, Beneficiary: bidder},
		Doubling: &domain.DoublingState{Level: domain.LevelNormal, Done: true, Contract: contract, Bidder: bidder.Team()},
	}
}

func TestSmartBotTakesValuableTrickCheaply(t *testing.T) {
	r := playingRound(domain.ContractSun, 0)
	r.Table = []domain.Play{
		{Seat: 1, Card: card(domain.Hearts, domain.Jack)},
		{Seat: 2, Card: card(domain.Hearts, domain.Nine)},
		{Seat: 3, Card: card(domain.Hearts, domain.Eight)},
	}
	r.Turn = 0
	r.Hands[0] = []domain.Card{
		card(domain.Hearts, domain.Ace),
		card(domain.Hearts, domain.Ten),
		card(domain.Hearts, domain.Seven),
	}

	got, ok := (&SmartBot{}).Play(r, 0)
	if !ok {
		t.Fatal("no card chosen")
	}
	// Closing the trick: the ten beats the jack without spending the ace.
	if want := card(domain.Hearts, domain.Ten); got != want {
		t.Fatalf("played %s, want %s", got, want)
	}
}

func TestSmartBotDucksUnderPartner(t *testing.T) {
	r := playingRound(domain.ContractSun, 0)
	r.Table = []domain.Play{
		{Seat: 1, Card: card(domain.Hearts, domain.King)},
		{Seat: 2, Card: card(domain.Hearts, domain.Ace)},
	}
	r.Turn = 0
	r.Hands[0] = []domain.Card{
		card(domain.Hearts, domain.Ten),
		card(domain.Hearts, domain.Seven),
	}

	got, ok := (&SmartBot{}).Play(r, 0)
	if !ok {
		t.Fatal("no card chosen")
	}
	if want := card(domain.Hearts, domain.Seven); got != want {
		t.Fatalf("played %s over the partner's ace, want %s", got, want)
	}
}

func TestGodBotDoublesStrongDefense(t *testing.T) {
	r := playingRound(domain.ContractHokum, domain.Spades)
	r.Phase = domain.PhaseDoubling
	r.Doubling = domain.NewDoublingState(domain.ContractHokum, domain.Team(0), 3)
	r.Hands[1] = []domain.Card{
		card(domain.Spades, domain.Jack),
		card(domain.Spades, domain.Nine),
		card(domain.Spades, domain.Ace),
		card(domain.Hearts, domain.Seven),
		card(domain.Clubs, domain.Seven),
		card(domain.Clubs, domain.Eight),
		card(domain.Diamonds, domain.Seven),
		card(domain.Diamonds, domain.Eight),
	}

	level, ok := (&GodBot{}).Double(r, 1)
	if !ok || level != domain.LevelDouble {
		t.Fatalf("double = (%v, %v), want (double, true)", level, ok)
	}

	// The bidding team never raises its own contract here.
	r.Hands[0] = r.Hands[1]
	if _, ok := (&GodBot{}).Double(r, 0); ok {
		t.Fatal("bidder-team seat must not double its own contract")
	}
}

func TestClaimLooksUnbeatable(t *testing.T) {
	boss := []domain.Card{card(domain.Spades, domain.Ace), card(domain.Hearts, domain.Ace)}
	weak := []domain.Card{card(domain.Spades, domain.King), card(domain.Hearts, domain.Ace)}

	build := func(exposed []domain.Card, unseen ...domain.Card) *domain.Round {
		r := playingRound(domain.ContractSun, 0)
		r.Claim = &domain.ClaimState{Claimant: 0, AwaitingResponse: true}
		r.Hands[0] = exposed
		skip := map[domain.Card]bool{}
		for _, c := range exposed {
			skip[c] = true
		}
		for _, c := range unseen {
			skip[c] = true
		}
		trick := domain.Trick{}
		for _, c := range domain.NewDeck() {
			if skip[c] {
				continue
			}
			trick.Plays = append(trick.Plays, domain.Play{Card: c})
			if len(trick.Plays) == domain.NumSeats {
				r.Tricks = append(r.Tricks, trick)
				trick = domain.Trick{}
			}
		}
		return r
	}

	r := build(boss, card(domain.Spades, domain.Seven), card(domain.Hearts, domain.Seven))
	if !claimLooksUnbeatable(r) {
		t.Fatal("two bare aces against sevens should be accepted")
	}

	r = build(weak, card(domain.Spades, domain.Ace), card(domain.Hearts, domain.Seven))
	if claimLooksUnbeatable(r) {
		t.Fatal("a king under the live ace must be refused")
	}
}

func TestNewBrainLevels(t *testing.T) {
	for _, level := range []BotLevel{BotLevelGood, BotLevelSmart, BotLevelGod} {
		if _, err := NewBrain(level); err != nil {
			t.Fatalf("NewBrain(%d): %v", level, err)
		}
	}
	if _, err := NewBrain(BotLevel(0)); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFromDifficulty(t *testing.T) {
	cases := map[string]BotLevel{
		"easy":   BotLevelGood,
		"medium": BotLevelSmart,
		"hard":   BotLevelGod,
		"":       BotLevelSmart,
	}
	for in, want := range cases {
		if got := LevelFromDifficulty(in); got != want {
			t.Fatalf("LevelFromDifficulty(%q) = %d, want %d", in, got, want)
		}
	}
}
