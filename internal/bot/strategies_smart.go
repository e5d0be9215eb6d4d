package bot

import (
	"baloot/internal/domain"
)

// SmartBot is the medium tier: it bids to sensible thresholds, declares its
// melds, and spends high cards only when the trick is worth taking.
type SmartBot struct{}

func (b *SmartBot) Bid(r *domain.Round, seat domain.Seat) BidDecision {
	hand := r.Hands[seat]
	a := r.Auction

	if a.Round == 1 {
		if count, quality := trumpQuality(hand, a.FloorCard.Suit); count >= 2 && quality >= 3 {
			return BidDecision{Call: domain.CallHokum}
		}
	} else if a.HokumBid == nil {
		if trump, ok := bestRoundTwoTrump(hand, a.FloorCard.Suit); ok {
			return BidDecision{Call: domain.CallHokum, Trump: trump}
		}
	}
	if handSunScore(hand) >= 7 {
		return BidDecision{Call: domain.CallSun}
	}
	return BidDecision{Call: domain.CallPass}
}

func (b *SmartBot) TakeGablak(r *domain.Round, seat domain.Seat) bool {
	return false
}

func (b *SmartBot) Double(r *domain.Round, seat domain.Seat) (domain.DoublingLevel, bool) {
	return 0, false
}

func (b *SmartBot) ChooseVariant(r *domain.Round, seat domain.Seat) domain.HokumVariant {
	return domain.VariantOpen
}

func (b *SmartBot) Declarations(r *domain.Round, seat domain.Seat) []domain.ProjectType {
	melds := domain.ScanMelds(r.Hands[seat], r.Bid.Contract)
	types := make([]domain.ProjectType, 0, len(melds))
	for _, m := range melds {
		types = append(types, m.Type)
	}
	return types
}

func (b *SmartBot) Play(r *domain.Round, seat domain.Seat) (domain.Card, bool) {
	return pointAwarePlay(r, seat)
}

func (b *SmartBot) RespondClaim(r *domain.Round, seat domain.Seat) bool {
	return claimLooksUnbeatable(r)
}

// pointAwarePlay takes tricks that carry points when it can do so cheaply
// and otherwise sheds the weakest legal card. The partner's winning tricks
// are left alone.
func pointAwarePlay(r *domain.Round, seat domain.Seat) (domain.Card, bool) {
	hand := r.Hands[seat]
	contract, trump := r.Bid.Contract, r.Bid.Trump

	if len(r.Table) == 0 {
		return leadCard(r, seat)
	}

	best := tableBest(r.Table, contract, trump)
	if best.Seat == seat.Partner() {
		return domain.WeakestLegal(hand, r.Table, contract, trump, r.Doubling.Variant)
	}

	worth := tableAbnat(r.Table, contract, trump)
	lastToPlay := len(r.Table) == domain.NumSeats-1
	if worth >= 10 || lastToPlay {
		if c, ok := cheapestWinner(r, seat); ok {
			return c, true
		}
	}
	return domain.WeakestLegal(hand, r.Table, contract, trump, r.Doubling.Variant)
}

// leadCard opens a trick: cash a sure winner when the hand holds one,
// otherwise lead low.
func leadCard(r *domain.Round, seat domain.Seat) (domain.Card, bool) {
	hand := r.Hands[seat]
	contract, trump := r.Bid.Contract, r.Bid.Trump

	seen := map[domain.Card]bool{}
	for _, t := range r.Tricks {
		for _, p := range t.Plays {
			seen[p.Card] = true
		}
	}
	for _, c := range hand {
		seen[c] = true
	}

	for _, c := range hand {
		if domain.IsLegalPlay(c, hand, r.Table, contract, trump, r.Doubling.Variant) != nil {
			continue
		}
		boss := true
		for _, unseen := range domain.NewDeck() {
			if seen[unseen] {
				continue
			}
			if beatsCard(unseen, c, c.Suit, contract, trump) {
				boss = false
				break
			}
		}
		if boss {
			return c, true
		}
	}
	return domain.WeakestLegal(hand, r.Table, contract, trump, r.Doubling.Variant)
}
