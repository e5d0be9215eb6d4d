package app

import "baloot/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventRoundStarted     EventKind = "round_started"
	EventHandDealt        EventKind = "hand_dealt"
	EventBidPlaced        EventKind = "bid_placed"
	EventGablakOpened     EventKind = "gablak_opened"
	EventContractResolved EventKind = "contract_resolved"
	EventRoundVoided      EventKind = "round_voided"
	EventDoubleRaised     EventKind = "double_raised"
	EventDoubleDeclined   EventKind = "double_declined"
	EventVariantChosen    EventKind = "variant_chosen"
	EventPlayBegan        EventKind = "play_began"
	EventProjectDeclared  EventKind = "project_declared"
	EventProjectsResolved EventKind = "projects_resolved"
	EventCardPlayed       EventKind = "card_played"
	EventTrickResolved    EventKind = "trick_resolved"
	EventBalootAnnounced  EventKind = "baloot_announced"
	EventClaimRaised      EventKind = "claim_raised"
	EventClaimResolved    EventKind = "claim_resolved"
	EventDisputeOpened    EventKind = "dispute_opened"
	EventDisputeVerdict   EventKind = "dispute_verdict"
	EventDisputeClosed    EventKind = "dispute_closed"
	EventRoundScored      EventKind = "round_scored"
	EventMatchEnded       EventKind = "match_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type RoundStartedPayload struct {
	RoundID   string      `json:"round_id"`
	Dealer    domain.Seat `json:"dealer"`
	FloorCard domain.Card `json:"floor_card"`
}

// HandDealtPayload is always targeted at its seat; nobody else may see
// the cards.
type HandDealtPayload struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type BidPlacedPayload struct {
	Seat  domain.Seat `json:"seat"`
	Call  domain.Call `json:"call"`
	Trump domain.Suit `json:"trump,omitempty"`
	Next  domain.Seat `json:"next"`
}

type GablakOpenedPayload struct {
	Caller   domain.Seat   `json:"caller"`
	Eligible []domain.Seat `json:"eligible"`
}

type ContractResolvedPayload struct {
	Contract    domain.Contract `json:"contract"`
	Trump       domain.Suit     `json:"trump,omitempty"`
	Bidder      domain.Seat     `json:"bidder"`
	Beneficiary domain.Seat     `json:"beneficiary"`
	Ashkal      bool            `json:"ashkal"`
}

type RoundVoidedPayload struct {
	RoundID      string `json:"round_id"`
	RotateDealer bool   `json:"rotate_dealer"`
}

type DoubleRaisedPayload struct {
	Seat  domain.Seat          `json:"seat"`
	Level domain.DoublingLevel `json:"level"`
}

type DoubleDeclinedPayload struct {
	Seat domain.Seat `json:"seat"`
}

type VariantChosenPayload struct {
	Seat    domain.Seat         `json:"seat"`
	Variant domain.HokumVariant `json:"variant"`
}

type PlayBeganPayload struct {
	Level   domain.DoublingLevel `json:"level"`
	Variant domain.HokumVariant  `json:"variant"`
	Lead    domain.Seat          `json:"lead"`
}

// ProjectDeclaredPayload announces a meld by type only; the cards stay
// hidden until the trick-2 comparison.
type ProjectDeclaredPayload struct {
	Seat domain.Seat        `json:"seat"`
	Type domain.ProjectType `json:"type"`
}

type ProjectsResolvedPayload struct {
	Winner       *domain.Team             `json:"winner,omitempty"`
	Declarations []domain.DeclaredProject `json:"declarations"`
}

type CardPlayedPayload struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
	Next domain.Seat `json:"next"`
}

type TrickResolvedPayload struct {
	Winner domain.Seat `json:"winner"`
	Trick  int         `json:"trick"`
}

type BalootAnnouncedPayload struct {
	Seat domain.Seat `json:"seat"`
	Team domain.Team `json:"team"`
}

type ClaimRaisedPayload struct {
	Claimant domain.Seat   `json:"claimant"`
	Hand     []domain.Card `json:"hand"` // exposed to the whole table
}

type ClaimResolvedPayload struct {
	Claimant domain.Seat `json:"claimant"`
	Accepted bool        `json:"accepted"`
}

type DisputeOpenedPayload struct {
	Accuser domain.Seat `json:"accuser"`
}

type DisputeVerdictPayload struct {
	Verdict domain.Verdict `json:"verdict"`
}

type DisputeClosedPayload struct {
	Accuser domain.Seat `json:"accuser"`
}

type RoundScoredPayload struct {
	RoundID string            `json:"round_id"`
	Result  domain.RoundScore `json:"result"`
	Totals  [2]int            `json:"totals"`
}

type MatchEndedPayload struct {
	Winner domain.Team          `json:"winner"`
	Totals [2]int               `json:"totals"`
	Rounds []domain.RoundRecord `json:"rounds"`
}
