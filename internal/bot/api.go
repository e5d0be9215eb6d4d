package bot

import (
	"baloot/internal/domain"
)

// BidDecision is a brain's answer for a bidding turn.
type BidDecision struct {
	Call  domain.Call
	Trump domain.Suit // round-2 Hokum only
}

// Brain is the decision policy behind an agent. One method per decision
// window; the agent dispatches based on what the round is waiting for.
type Brain interface {
	Bid(r *domain.Round, seat domain.Seat) BidDecision
	TakeGablak(r *domain.Round, seat domain.Seat) bool
	Double(r *domain.Round, seat domain.Seat) (domain.DoublingLevel, bool)
	ChooseVariant(r *domain.Round, seat domain.Seat) domain.HokumVariant
	Declarations(r *domain.Round, seat domain.Seat) []domain.ProjectType
	Play(r *domain.Round, seat domain.Seat) (domain.Card, bool)
	RespondClaim(r *domain.Round, seat domain.Seat) bool
}
