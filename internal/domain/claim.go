package domain

// ClaimState tracks an open or running Sawa ("I win the rest") claim.
type ClaimState struct {
	Claimant Seat `json:"claimant"`
	// AwaitingResponse is true between the claim and the opponents' answer;
	// normal play is frozen while set.
	AwaitingResponse bool `json:"awaiting_response"`
	// Refused marks a contested claim: play resumed with the claimant's
	// hand exposed, and the claim validates only if the claimant takes
	// every remaining trick.
	Refused bool `json:"refused"`
	// FromTrick is the trick index at which the claim was raised.
	FromTrick int `json:"from_trick"`
}

// Exposed reports whether the claimant's hand is face up for the table.
func (c *ClaimState) Exposed() bool {
	return c != nil
}
