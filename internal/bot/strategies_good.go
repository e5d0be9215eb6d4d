package bot

import (
	"baloot/internal/domain"
)

// GoodBot is the easy tier: it only bids on the safest hands, never raises,
// and always sheds the cheapest legal card.
type GoodBot struct{}

func (b *GoodBot) Bid(r *domain.Round, seat domain.Seat) BidDecision {
	hand := r.Hands[seat]
	if r.Auction.Round == 1 {
		if count, quality := trumpQuality(hand, r.Auction.FloorCard.Suit); count >= 3 && quality >= 3 {
			return BidDecision{Call: domain.CallHokum}
		}
	}
	if handSunScore(hand) >= 8 {
		return BidDecision{Call: domain.CallSun}
	}
	return BidDecision{Call: domain.CallPass}
}

func (b *GoodBot) TakeGablak(r *domain.Round, seat domain.Seat) bool {
	return false
}

func (b *GoodBot) Double(r *domain.Round, seat domain.Seat) (domain.DoublingLevel, bool) {
	return 0, false
}

func (b *GoodBot) ChooseVariant(r *domain.Round, seat domain.Seat) domain.HokumVariant {
	return domain.VariantOpen
}

func (b *GoodBot) Declarations(r *domain.Round, seat domain.Seat) []domain.ProjectType {
	return nil
}

func (b *GoodBot) Play(r *domain.Round, seat domain.Seat) (domain.Card, bool) {
	return domain.WeakestLegal(r.Hands[seat], r.Table, r.Bid.Contract, r.Bid.Trump, r.Doubling.Variant)
}

func (b *GoodBot) RespondClaim(r *domain.Round, seat domain.Seat) bool {
	return false
}
