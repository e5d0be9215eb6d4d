package bot

import (
	"baloot/internal/domain"
)

// GodBot is the hard tier. It shares the SmartBot card play but bids more
// aggressively, contests weak Sun calls through the priority window, and
// doubles contracts its hand can defend.
type GodBot struct {
	SmartBot
}

func (b *GodBot) Bid(r *domain.Round, seat domain.Seat) BidDecision {
	hand := r.Hands[seat]
	a := r.Auction

	if handSunScore(hand) >= 6 {
		return BidDecision{Call: domain.CallSun}
	}
	if a.Round == 1 {
		if count, quality := trumpQuality(hand, a.FloorCard.Suit); count >= 2 && quality >= 2 {
			return BidDecision{Call: domain.CallHokum}
		}
	} else if a.HokumBid == nil {
		if trump, ok := bestRoundTwoTrump(hand, a.FloorCard.Suit); ok {
			return BidDecision{Call: domain.CallHokum, Trump: trump}
		}
	}
	return BidDecision{Call: domain.CallPass}
}

func (b *GodBot) TakeGablak(r *domain.Round, seat domain.Seat) bool {
	return handSunScore(r.Hands[seat]) >= 7
}

func (b *GodBot) Double(r *domain.Round, seat domain.Seat) (domain.DoublingLevel, bool) {
	hand := r.Hands[seat]
	bid := r.Bid
	if bid == nil || bid.Beneficiary.Team() == seat.Team() {
		return 0, false
	}
	strong := false
	switch bid.Contract {
	case domain.ContractSun:
		strong = handSunScore(hand) >= 8
	case domain.ContractHokum:
		count, quality := trumpQuality(hand, bid.Trump)
		strong = count >= 3 && quality >= 4
	}
	if !strong {
		return 0, false
	}
	level, ok := r.Doubling.PendingTier()
	return level, ok
}

func (b *GodBot) ChooseVariant(r *domain.Round, seat domain.Seat) domain.HokumVariant {
	// Closed pays more but forbids unforced trump leads; only worth it when
	// the trumps in hand are self-sufficient.
	if count, quality := trumpQuality(r.Hands[seat], r.Bid.Trump); count >= 4 && quality >= 5 {
		return domain.VariantClosed
	}
	return domain.VariantOpen
}
