package domain

import "fmt"

// Play is one card laid on the table by a seat.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick is a resolved set of four plays.
type Trick struct {
	Plays  []Play `json:"plays"`
	Winner Seat   `json:"winner"`
}

// highestTrumpOnTable returns the strongest trump played so far, or false
// if the trick holds no trump yet.
func highestTrumpOnTable(table []Play, trump Suit) (Card, bool) {
	best := Card{}
	found := false
	for _, p := range table {
		if p.Card.Suit != trump {
			continue
		}
		if !found || trumpStrength(p.Card.Rank) > trumpStrength(best.Rank) {
			best = p.Card
			found = true
		}
	}
	return best, found
}

func hasHigherTrump(hand []Card, trump Suit, than Card) bool {
	for _, c := range hand {
		if c.Suit == trump && trumpStrength(c.Rank) > trumpStrength(than.Rank) {
			return true
		}
	}
	return false
}

// IsLegalPlay validates a proposed card against the Baloot following rules.
// table holds the in-progress trick (empty when leading). A nil error means
// the play is legal; otherwise the RuleError reason identifies the broken
// obligation.
func IsLegalPlay(card Card, hand []Card, table []Play, contract Contract, trump Suit, variant HokumVariant) error {
	if !ContainsCard(hand, card) {
		return ruleErr(ReasonNotInHand, card.String())
	}

	if len(table) == 0 {
		// Leading. Under a Closed double a trump may only be led when the
		// hand holds nothing else.
		if contract == ContractHokum && variant == VariantClosed && card.Suit == trump {
			for _, c := range hand {
				if c.Suit != trump {
					return ruleErr(ReasonClosedTrumpLead, card.String())
				}
			}
		}
		return nil
	}

	led := table[0].Card.Suit

	if HasSuit(hand, led) {
		if card.Suit != led {
			return ruleErr(ReasonMustFollowSuit, fmt.Sprintf("led %s, played %s", led, card))
		}
		// Following the trump suit still carries the overtrump obligation.
		if contract == ContractHokum && led == trump {
			if best, ok := highestTrumpOnTable(table, trump); ok && hasHigherTrump(hand, trump, best) {
				if trumpStrength(card.Rank) <= trumpStrength(best.Rank) {
					return ruleErr(ReasonMustOvertrump, card.String())
				}
			}
		}
		return nil
	}

	// Void in the led suit. Under Hokum the void player must trump, and must
	// overtrump when the trick already holds a beatable trump.
	if contract == ContractHokum && HasSuit(hand, trump) {
		if card.Suit != trump {
			return ruleErr(ReasonMustTrump, card.String())
		}
		if best, ok := highestTrumpOnTable(table, trump); ok && hasHigherTrump(hand, trump, best) {
			if trumpStrength(card.Rank) <= trumpStrength(best.Rank) {
				return ruleErr(ReasonMustOvertrump, card.String())
			}
		}
	}
	return nil
}

// ResolveTrick determines the winning seat of a completed trick. The
// strongest trump wins if any trump was played; otherwise the strongest
// card of the led suit.
func ResolveTrick(table []Play, contract Contract, trump Suit) (Seat, error) {
	if len(table) != NumSeats {
		return 0, fmt.Errorf("%w: trick resolved with %d plays", ErrInvariant, len(table))
	}
	led := table[0].Card.Suit
	bestIdx := 0
	for i := 1; i < len(table); i++ {
		if beats(table[i].Card, table[bestIdx].Card, led, contract, trump) {
			bestIdx = i
		}
	}
	return table[bestIdx].Seat, nil
}

// beats reports whether card a outranks the current best card b in a trick
// where led was the led suit.
func beats(a, b Card, led Suit, contract Contract, trump Suit) bool {
	if contract == ContractHokum {
		if a.Suit == trump && b.Suit != trump {
			return true
		}
		if a.Suit != trump && b.Suit == trump {
			return false
		}
	}
	if a.Suit == b.Suit {
		return Strength(a, contract, trump) > Strength(b, contract, trump)
	}
	// Off-suit discards never beat anything; b is either on the led suit or
	// itself an earlier discard that a on-suit card replaces.
	return a.Suit == led && b.Suit != led
}

// TrickAbnat sums the raw capture value of a trick's cards.
func TrickAbnat(t Trick, contract Contract, trump Suit) int {
	total := 0
	for _, p := range t.Plays {
		total += CardAbnat(p.Card, contract, trump)
	}
	return total
}

// WeakestLegal returns the deterministic default card for a timed-out turn:
// the legal card with the lowest capture value, ties broken by lowest
// strength, then by suit order. The boolean is false only when the hand is
// empty.
func WeakestLegal(hand []Card, table []Play, contract Contract, trump Suit, variant HokumVariant) (Card, bool) {
	var best Card
	found := false
	for _, c := range hand {
		if IsLegalPlay(c, hand, table, contract, trump, variant) != nil {
			continue
		}
		if !found || weaker(c, best, contract, trump) {
			best = c
			found = true
		}
	}
	return best, found
}

func weaker(a, b Card, contract Contract, trump Suit) bool {
	av, bv := CardAbnat(a, contract, trump), CardAbnat(b, contract, trump)
	if av != bv {
		return av < bv
	}
	as, bs := Strength(a, contract, trump), Strength(b, contract, trump)
	if as != bs {
		return as < bs
	}
	return a.Suit < b.Suit
}
