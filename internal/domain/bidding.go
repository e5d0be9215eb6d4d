package domain

import "fmt"

// Call is a bidding-phase action.
type Call int

const (
	CallPass Call = iota
	CallSun
	CallHokum
	CallAshkal
	CallKawesh
)

// String returns the call name.
func (c Call) String() string {
	switch c {
	case CallPass:
		return "pass"
	case CallSun:
		return "sun"
	case CallHokum:
		return "hokum"
	case CallAshkal:
		return "ashkal"
	case CallKawesh:
		return "kawesh"
	default:
		return "?"
	}
}

// Bid is the resolved contract of a round.
type Bid struct {
	Contract    Contract `json:"contract"`
	Trump       Suit     `json:"trump"` // meaningful only under Hokum
	Bidder      Seat     `json:"bidder"`
	Ashkal      bool     `json:"ashkal"`
	Beneficiary Seat     `json:"beneficiary"` // floor-card recipient and scoring owner
}

// GablakWindow reopens Sun priority for the seats that acted before the
// Sun caller. If nobody claims before expiry, the original call stands.
type GablakWindow struct {
	Caller   Seat   `json:"caller"`
	Eligible []Seat `json:"eligible"`
}

// Auction runs the two-round Baloot bidding sequence.
type Auction struct {
	Dealer    Seat  `json:"dealer"`
	FloorCard Card  `json:"floor_card"`
	Round     int   `json:"round"` // 1 or 2
	Turn      Seat  `json:"turn"`
	Acted     int   `json:"acted"` // seats that have acted in the current round

	HokumBid *Bid          `json:"hokum_bid,omitempty"` // standing Hokum, pending a Sun override
	Gablak   *GablakWindow `json:"gablak,omitempty"`
	Resolved *Bid          `json:"resolved,omitempty"`

	// Redeal is set when the auction voids the round: a granted Kawesh or
	// double-pass exhaustion. RotateDealer tells the match whether the
	// dealer button advances for the redeal.
	Redeal       bool `json:"redeal"`
	RotateDealer bool `json:"rotate_dealer"`
}

// NewAuction starts round 1 at the seat to the dealer's right.
func NewAuction(dealer Seat, floor Card) *Auction {
	return &Auction{
		Dealer:    dealer,
		FloorCard: floor,
		Round:     1,
		Turn:      dealer.Next(),
	}
}

// Done reports whether the auction reached a terminal state. An open
// Gablak window keeps the auction live even though a provisional Sun is
// already recorded.
func (a *Auction) Done() bool {
	if a.Gablak != nil {
		return false
	}
	return a.Resolved != nil || a.Redeal
}

// ashkalEligible reports whether the seat may call Ashkal: only the dealer
// and the dealer's partner, in round 1, and never on an Ace floor card.
// (Source materials disagree on the eligible pair; the dealer+partner
// reading is implemented here.)
func (a *Auction) ashkalEligible(seat Seat) bool {
	if a.Round != 1 || a.FloorCard.Rank == Ace {
		return false
	}
	return seat == a.Dealer || seat == a.Dealer.Partner()
}

// kaweshEligible reports whether the hand is worthless enough for a redeal
// request: no card ranked 10 or above.
func kaweshEligible(hand []Card) bool {
	for _, c := range hand {
		switch c.Rank {
		case Ten, Jack, Queen, King, Ace:
			return false
		}
	}
	return true
}

// Place processes one bidding call from a seat. trump is consulted only for
// a round-2 Hokum call; hand only for Kawesh eligibility. contractExisted
// tells a granted Kawesh whether a now-voided contract forces dealer
// rotation.
func (a *Auction) Place(seat Seat, call Call, trump Suit, hand []Card) error {
	if a.Done() {
		return ruleErr(ReasonWrongPhase, "auction finished")
	}
	if a.Gablak != nil {
		return ruleErr(ReasonWindowClosed, "gablak window open")
	}
	if seat != a.Turn {
		return ruleErr(ReasonWrongTurn, fmt.Sprintf("turn is seat %d", a.Turn))
	}

	switch call {
	case CallPass:
		a.advance()
		return nil

	case CallKawesh:
		if !kaweshEligible(hand) {
			return ruleErr(ReasonKaweshIneligible, "hand holds a court card or ten")
		}
		a.Redeal = true
		a.RotateDealer = false // pre-bid: same dealer redeals
		return nil

	case CallHokum:
		if a.HokumBid != nil {
			// The round's first Hokum stands; later seats may only raise to
			// Sun or pass.
			return ruleErr(ReasonInvalidCall, "hokum already called")
		}
		bid := &Bid{Contract: ContractHokum, Bidder: seat, Beneficiary: seat}
		if a.Round == 1 {
			bid.Trump = a.FloorCard.Suit
		} else {
			if trump == a.FloorCard.Suit {
				return ruleErr(ReasonInvalidCall, "round-2 hokum may not use the floor suit")
			}
			bid.Trump = trump
		}
		a.HokumBid = bid
		a.advance()
		return nil

	case CallSun:
		a.openSun(&Bid{Contract: ContractSun, Bidder: seat, Beneficiary: seat})
		return nil

	case CallAshkal:
		if !a.ashkalEligible(seat) {
			return ruleErr(ReasonAshkalIneligible, "ashkal restricted to dealer and partner, round 1, non-ace floor")
		}
		// Ashkal is a Sun whose benefit passes to the caller's partner. It
		// resolves immediately; the reopened-priority window applies to
		// plain Sun calls only.
		a.Resolved = &Bid{Contract: ContractSun, Bidder: seat, Ashkal: true, Beneficiary: seat.Partner()}
		return nil

	default:
		return ruleErr(ReasonInvalidCall, "unknown call")
	}
}

// openSun resolves a Sun call immediately unless a higher-priority seat
// already acted this round, in which case the Gablak window opens.
func (a *Auction) openSun(bid *Bid) {
	if a.Acted == 0 {
		a.Resolved = bid
		return
	}
	eligible := make([]Seat, 0, a.Acted)
	s := a.Dealer.Next()
	for i := 0; i < a.Acted; i++ {
		eligible = append(eligible, s)
		s = s.Next()
	}
	a.Gablak = &GablakWindow{Caller: bid.Bidder, Eligible: eligible}
	a.HokumBid = nil
	a.Resolved = bid // provisional; a Gablak claim replaces the bidder
}

// ClaimGablak lets a higher-priority seat take over the pending Sun.
func (a *Auction) ClaimGablak(seat Seat) error {
	if a.Gablak == nil {
		return ruleErr(ReasonWindowClosed, "no gablak window")
	}
	for _, s := range a.Gablak.Eligible {
		if s == seat {
			a.Resolved = &Bid{Contract: ContractSun, Bidder: seat, Beneficiary: seat}
			a.Gablak = nil
			return nil
		}
	}
	return ruleErr(ReasonWrongTurn, "seat not eligible for gablak")
}

// ExpireGablak closes an unclaimed window; the original Sun call stands.
func (a *Auction) ExpireGablak() {
	a.Gablak = nil
}

// advance moves the turn pointer and handles end-of-round transitions.
func (a *Auction) advance() {
	a.Acted++
	if a.Acted < NumSeats {
		a.Turn = a.Turn.Next()
		return
	}
	// All four seats acted. A standing Hokum that survived the round wins.
	if a.HokumBid != nil {
		a.Resolved = a.HokumBid
		return
	}
	if a.Round == 1 {
		a.Round = 2
		a.Acted = 0
		a.Turn = a.Dealer.Next()
		return
	}
	// Double-pass exhaustion: void and redeal with the dealer advanced.
	a.Redeal = true
	a.RotateDealer = true
}
