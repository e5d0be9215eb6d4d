package domain

import "errors"

// Reason is a machine-readable rejection code forwarded to clients when an
// action is refused. A refused action never mutates state.
type Reason string

const (
	ReasonWrongTurn         Reason = "wrong_turn"
	ReasonWrongPhase        Reason = "wrong_phase"
	ReasonInvalidCall       Reason = "invalid_call"
	ReasonAshkalIneligible  Reason = "ashkal_ineligible"
	ReasonKaweshIneligible  Reason = "kawesh_ineligible"
	ReasonNotInHand         Reason = "card_not_in_hand"
	ReasonMustFollowSuit    Reason = "must_follow_suit"
	ReasonMustTrump         Reason = "must_trump"
	ReasonMustOvertrump     Reason = "must_overtrump"
	ReasonClosedTrumpLead   Reason = "closed_trump_lead"
	ReasonInvalidMeld       Reason = "invalid_meld"
	ReasonWindowClosed      Reason = "window_closed"
	ReasonDoubleUnavailable Reason = "double_unavailable"
	ReasonClaimUnavailable  Reason = "claim_unavailable"
	ReasonQaydUnavailable   Reason = "qayd_unavailable"
	ReasonTableLocked       Reason = "table_locked"
)

// RuleError is the rejection of an illegal action. It is an error so
// call sites can bubble it, and carries the reason code the transport
// layer forwards to the offending client.
type RuleError struct {
	Reason Reason
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return string(e.Reason) + ": " + e.Detail
}

func ruleErr(reason Reason, detail string) error {
	return &RuleError{Reason: reason, Detail: detail}
}

// ReasonOf extracts the reason code from an error, or empty if the error is
// not a rule rejection.
func ReasonOf(err error) Reason {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

// ErrInvariant marks a broken engine invariant (e.g. a trick resolved with
// fewer than four plays). Such an error is fatal for the round: the engine
// surfaces it instead of guessing at a consistent continuation.
var ErrInvariant = errors.New("engine invariant violated")
