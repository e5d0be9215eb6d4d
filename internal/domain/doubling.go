package domain

import "fmt"

// DoublingState runs the post-auction raise chain. Each tier belongs to one
// team, represented by a single deciding seat so exactly one player owns
// the decision window at any moment.
type DoublingState struct {
	Level    DoublingLevel `json:"level"`
	Turn     Seat          `json:"turn"` // seat owning the current decision
	Done     bool          `json:"done"`
	Contract Contract      `json:"contract"`
	Bidder   Team          `json:"bidder"`

	// VariantPending is set after a Hokum Double until the bidder team
	// picks the Open or Closed play style.
	VariantPending bool         `json:"variant_pending"`
	Variant        HokumVariant `json:"variant"`
}

// NewDoublingState opens the chain with the non-bidding team. dealer fixes
// which of a team's two seats speaks for it: the one acting earlier in turn
// order.
func NewDoublingState(contract Contract, bidder Team, dealer Seat) *DoublingState {
	return &DoublingState{
		Level:    LevelNormal,
		Contract: contract,
		Bidder:   bidder,
		Turn:     teamSpokesman(bidder.Opponent(), dealer),
	}
}

// teamSpokesman returns the team seat closest to the dealer's right.
func teamSpokesman(t Team, dealer Seat) Seat {
	s := dealer.Next()
	if s.Team() == t {
		return s
	}
	return s.Next()
}

// nextTier maps the current level to the next level and its raising team.
// The chain alternates: opponents Double, bidders Triple, opponents Four,
// bidders Gahwa. Sun stops at Double; only Hokum reaches Gahwa.
func (d *DoublingState) nextTier() (DoublingLevel, Team, bool) {
	switch d.Level {
	case LevelNormal:
		return LevelDouble, d.Bidder.Opponent(), true
	case LevelDouble:
		if d.Contract == ContractSun {
			return 0, 0, false
		}
		return LevelTriple, d.Bidder, true
	case LevelTriple:
		return LevelFour, d.Bidder.Opponent(), true
	case LevelFour:
		if d.Contract != ContractHokum {
			return 0, 0, false
		}
		return LevelGahwa, d.Bidder, true
	default:
		return 0, 0, false
	}
}

// PendingTier returns the level the deciding seat may raise to, or false
// when the chain is exhausted for this contract.
func (d *DoublingState) PendingTier() (DoublingLevel, bool) {
	if d.Done || d.VariantPending {
		return 0, false
	}
	level, _, ok := d.nextTier()
	return level, ok
}

// Raise accepts the pending tier from the deciding seat. matchScores gates
// the Sun Double, which is a trailing-team-only mechanic.
func (d *DoublingState) Raise(seat Seat, level DoublingLevel, matchScores [2]int) error {
	if d.Done || d.VariantPending {
		return ruleErr(ReasonWrongPhase, "doubling closed")
	}
	if seat != d.Turn {
		return ruleErr(ReasonWrongTurn, fmt.Sprintf("doubling decision belongs to seat %d", d.Turn))
	}
	next, _, ok := d.nextTier()
	if !ok {
		return ruleErr(ReasonDoubleUnavailable, "no higher tier for this contract")
	}
	if level != next {
		return ruleErr(ReasonDoubleUnavailable, fmt.Sprintf("next tier is %d", next))
	}
	if d.Contract == ContractSun {
		doubling := seat.Team()
		if matchScores[doubling] >= 100 || matchScores[doubling.Opponent()] < 100 {
			return ruleErr(ReasonDoubleUnavailable, "sun double requires trailing team below 100 against 100+")
		}
	}

	d.Level = next

	if d.Level == LevelGahwa {
		// Terminal: the round plays for its maximum outright, open variant.
		d.Variant = VariantOpen
		d.Done = true
		return nil
	}

	if d.Contract == ContractHokum && d.Level == LevelDouble {
		// The bidder team picks Open or Closed before the chain continues.
		d.VariantPending = true
		d.Turn = spokesmanFrom(seat, d.Bidder)
		return nil
	}

	d.advanceTurn(seat)
	return nil
}

// advanceTurn hands the next tier's decision to its owning team, or closes
// the chain when no tier remains.
func (d *DoublingState) advanceTurn(from Seat) {
	_, team, ok := d.nextTier()
	if !ok {
		d.Done = true
		return
	}
	d.Turn = spokesmanFrom(from, team)
}

// spokesmanFrom walks the rotation from the given seat to the first seat of
// the wanted team.
func spokesmanFrom(from Seat, t Team) Seat {
	s := from
	for s.Team() != t {
		s = s.Next()
	}
	return s
}

// Decline passes on the pending tier and closes the chain; play begins at
// the current level.
func (d *DoublingState) Decline(seat Seat) error {
	if d.Done || d.VariantPending {
		return ruleErr(ReasonWrongPhase, "doubling closed")
	}
	if seat != d.Turn {
		return ruleErr(ReasonWrongTurn, fmt.Sprintf("doubling decision belongs to seat %d", d.Turn))
	}
	d.Done = true
	return nil
}

// ChooseVariant records the bidder team's Open/Closed choice after a Hokum
// Double and resumes the chain at the Triple tier.
func (d *DoublingState) ChooseVariant(seat Seat, v HokumVariant) error {
	if !d.VariantPending {
		return ruleErr(ReasonWrongPhase, "no variant decision pending")
	}
	if seat.Team() != d.Bidder {
		return ruleErr(ReasonWrongTurn, "variant choice belongs to the bidding team")
	}
	d.Variant = v
	d.VariantPending = false
	d.Turn = spokesmanFrom(seat, d.Bidder)
	return nil
}
