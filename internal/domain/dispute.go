package domain

import "fmt"

// Violation is a Qayd accusation class.
type Violation int

const (
	ViolationRevoke          Violation = iota // held the led suit, played another
	ViolationClosedTrumpLead                  // led an unforced trump under a Closed double
	ViolationNoOvertrump                      // held a higher trump but did not overtrump
	ViolationNoTrump                          // void and holding trump but did not trump
)

// String returns the violation name.
func (v Violation) String() string {
	switch v {
	case ViolationRevoke:
		return "revoke"
	case ViolationClosedTrumpLead:
		return "closed_trump_lead"
	case ViolationNoOvertrump:
		return "no_overtrump"
	case ViolationNoTrump:
		return "no_trump"
	default:
		return "?"
	}
}

// reason maps the violation class to the legality reason the play would
// have been rejected with, had the engine been asked at the time.
func (v Violation) reason() Reason {
	switch v {
	case ViolationRevoke:
		return ReasonMustFollowSuit
	case ViolationClosedTrumpLead:
		return ReasonClosedTrumpLead
	case ViolationNoOvertrump:
		return ReasonMustOvertrump
	case ViolationNoTrump:
		return ReasonMustTrump
	default:
		return ""
	}
}

// Accusation is submitted evidence for an open dispute: the cited card, the
// trick it was played in, and the rule it allegedly broke.
type Accusation struct {
	Accuser    Seat      `json:"accuser"`
	Violation  Violation `json:"violation"`
	Card       Card      `json:"card"`
	TrickIndex int       `json:"trick_index"`
}

// DisputeState is an open Qayd window. While a dispute is open every turn
// timer is blocked; the window either produces a verdict or lapses.
type DisputeState struct {
	Accuser Seat `json:"accuser"`
	// Verdict holds the evaluated accusation once submitted; the round
	// only ends when the accuser confirms.
	Verdict *Verdict `json:"verdict,omitempty"`
}

// Verdict is the binary outcome of an evaluated accusation.
type Verdict struct {
	Accusation Accusation `json:"accusation"`
	Accused    Seat       `json:"accused"`
	Upheld     bool       `json:"upheld"`
}

// EvaluateAccusation re-derives from the recorded history whether the cited
// play actually broke the stated rule. dealt holds the full eight-card
// hands as completed after bidding; tricks the resolved history; table the
// in-progress trick (cited via trickIndex == len(tricks)).
func EvaluateAccusation(acc Accusation, dealt [NumSeats][]Card, tricks []Trick, table []Play, contract Contract, trump Suit, variant HokumVariant) (Verdict, error) {
	var plays []Play
	switch {
	case acc.TrickIndex >= 0 && acc.TrickIndex < len(tricks):
		plays = tricks[acc.TrickIndex].Plays
	case acc.TrickIndex == len(tricks):
		plays = table
	default:
		return Verdict{}, ruleErr(ReasonQaydUnavailable, fmt.Sprintf("no trick %d", acc.TrickIndex))
	}

	playIdx := -1
	for i, p := range plays {
		if p.Card == acc.Card {
			playIdx = i
			break
		}
	}
	if playIdx < 0 {
		return Verdict{}, ruleErr(ReasonQaydUnavailable, "cited card was not played in that trick")
	}
	accused := plays[playIdx].Seat

	// Reconstruct the accused hand at the cited moment: the dealt hand
	// minus everything that seat had played before, the cited card still
	// held.
	hand := append([]Card{}, dealt[accused]...)
	for t := 0; t < acc.TrickIndex && t < len(tricks); t++ {
		for _, p := range tricks[t].Plays {
			if p.Seat == accused {
				hand = RemoveCard(hand, p.Card)
			}
		}
	}
	for i := 0; i < playIdx; i++ {
		if plays[i].Seat == accused {
			hand = RemoveCard(hand, plays[i].Card)
		}
	}

	err := IsLegalPlay(acc.Card, hand, plays[:playIdx], contract, trump, variant)
	upheld := err != nil && ReasonOf(err) == acc.Violation.reason()

	return Verdict{Accusation: acc, Accused: accused, Upheld: upheld}, nil
}
