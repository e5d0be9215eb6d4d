package domain

import "fmt"

// Phase is the lifecycle stage of a round.
type Phase string

const (
	// PhaseBidding covers the two-round auction including the Gablak window.
	PhaseBidding Phase = "bidding"
	// PhaseDoubling covers the raise chain and the Open/Closed choice.
	PhaseDoubling Phase = "doubling"
	// PhasePlaying covers the eight tricks with their claim and dispute
	// interrupts.
	PhasePlaying Phase = "playing"
	// PhaseComplete means the round is scored.
	PhaseComplete Phase = "complete"
	// PhaseVoided means the round must be redealt (Kawesh or double-pass
	// exhaustion); RotateDealer tells the match how.
	PhaseVoided Phase = "voided"
)

// WindowKind identifies the bounded decision window currently holding up
// the round. Deadlines are owned by the transport tick loop; the engine
// only defines the deterministic default applied on expiry.
type WindowKind string

const (
	WindowBid     WindowKind = "bid"      // expiry: auto-pass
	WindowGablak  WindowKind = "gablak"   // expiry: original Sun stands
	WindowDouble  WindowKind = "double"   // expiry: decline
	WindowVariant WindowKind = "variant"  // expiry: open variant
	WindowPlay    WindowKind = "play"     // expiry: weakest legal card
	WindowClaim   WindowKind = "claim"    // expiry: refuse
	WindowDispute WindowKind = "dispute"  // expiry: cancel
)

// Window is the active decision window and its owning seat.
type Window struct {
	Kind WindowKind `json:"kind"`
	Seat Seat       `json:"seat"`
}

// Round is the authoritative state of one deal. All mutation goes through
// its methods; a rejected action leaves the state untouched.
type Round struct {
	ID          string    `json:"id"`
	Dealer      Seat      `json:"dealer"`
	Phase       Phase     `json:"phase"`
	MatchScores [2]int    `json:"match_scores"` // snapshot for the Sun-double gate

	Hands     [NumSeats][]Card `json:"hands"`
	Dealt     [NumSeats][]Card `json:"dealt"` // full hands as completed, for dispute replay
	FloorCard *Card            `json:"floor_card,omitempty"`
	deck      []Card           // undealt remainder during bidding

	Auction  *Auction       `json:"auction,omitempty"`
	Bid      *Bid           `json:"bid,omitempty"`
	Doubling *DoublingState `json:"doubling,omitempty"`

	Turn         Seat              `json:"turn"`
	Table        []Play            `json:"table"`
	Tricks       []Trick           `json:"tricks"`
	Declarations []DeclaredProject `json:"declarations"`
	declClosed   [NumSeats]bool

	ProjectWinner *Team          `json:"project_winner,omitempty"`
	Baloot        [2]bool        `json:"baloot"`
	balootSeen    [NumSeats]int

	Claim   *ClaimState   `json:"claim,omitempty"`
	Dispute *DisputeState `json:"dispute,omitempty"`

	captured [2]int

	Result       *RoundScore `json:"result,omitempty"`
	RotateDealer bool        `json:"rotate_dealer"`
}

// NewRound deals a shuffled 32-card deck: five cards per seat from the
// dealer's right, one face-up floor card, the remainder held back until the
// contract resolves.
func NewRound(id string, dealer Seat, deck []Card, matchScores [2]int) (*Round, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("%w: deck has %d cards", ErrInvariant, len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate card %s in deck", ErrInvariant, c)
		}
		seen[c] = true
	}

	r := &Round{
		ID:          id,
		Dealer:      dealer,
		Phase:       PhaseBidding,
		MatchScores: matchScores,
	}
	idx := 0
	seat := dealer.Next()
	for i := 0; i < NumSeats; i++ {
		r.Hands[seat] = append([]Card{}, deck[idx:idx+5]...)
		idx += 5
		seat = seat.Next()
	}
	floor := deck[idx]
	idx++
	r.FloorCard = &floor
	r.deck = append([]Card{}, deck[idx:]...)
	r.Auction = NewAuction(dealer, floor)
	return r, nil
}

// Locked reports whether an open claim or dispute is freezing normal play.
func (r *Round) Locked() bool {
	return (r.Claim != nil && r.Claim.AwaitingResponse) || r.Dispute != nil
}

// ActiveWindow returns the decision window currently owning the round, or
// nil once the round is terminal.
func (r *Round) ActiveWindow() *Window {
	switch r.Phase {
	case PhaseBidding:
		if r.Auction.Gablak != nil {
			return &Window{Kind: WindowGablak, Seat: r.Auction.Gablak.Eligible[0]}
		}
		return &Window{Kind: WindowBid, Seat: r.Auction.Turn}
	case PhaseDoubling:
		if r.Doubling.VariantPending {
			return &Window{Kind: WindowVariant, Seat: r.Doubling.Turn}
		}
		return &Window{Kind: WindowDouble, Seat: r.Doubling.Turn}
	case PhasePlaying:
		if r.Dispute != nil {
			return &Window{Kind: WindowDispute, Seat: r.Dispute.Accuser}
		}
		if r.Claim != nil && r.Claim.AwaitingResponse {
			return &Window{Kind: WindowClaim, Seat: spokesmanFrom(r.Claim.Claimant.Next(), r.Claim.Claimant.Team().Opponent())}
		}
		return &Window{Kind: WindowPlay, Seat: r.Turn}
	default:
		return nil
	}
}

// PlaceBid processes a bidding call. During the doubling phase only Kawesh
// remains admissible: a worthless completed hand may still void the round,
// in which case the dealer seat rotates because a contract already existed.
func (r *Round) PlaceBid(seat Seat, call Call, trump Suit) error {
	if r.Phase == PhaseDoubling && call == CallKawesh {
		if !kaweshEligible(r.Hands[seat]) {
			return ruleErr(ReasonKaweshIneligible, "hand holds a court card or ten")
		}
		r.Phase = PhaseVoided
		r.RotateDealer = true
		return nil
	}
	if r.Phase != PhaseBidding {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if err := r.Auction.Place(seat, call, trump, r.Hands[seat]); err != nil {
		return err
	}
	r.syncAuction()
	return nil
}

// ClaimGablak lets a higher-priority seat reclaim a just-taken Sun.
func (r *Round) ClaimGablak(seat Seat) error {
	if r.Phase != PhaseBidding {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if err := r.Auction.ClaimGablak(seat); err != nil {
		return err
	}
	r.syncAuction()
	return nil
}

// ExpireGablak closes an unclaimed Gablak window; the earlier Sun stands.
func (r *Round) ExpireGablak() {
	if r.Phase != PhaseBidding || r.Auction.Gablak == nil {
		return
	}
	r.Auction.ExpireGablak()
	r.syncAuction()
}

// syncAuction reacts to a terminal auction: void the round or absorb the
// floor card and open the doubling chain.
func (r *Round) syncAuction() {
	switch {
	case r.Auction.Gablak != nil:
		return
	case r.Auction.Redeal:
		r.Phase = PhaseVoided
		r.RotateDealer = r.Auction.RotateDealer
	case r.Auction.Resolved != nil:
		r.Bid = r.Auction.Resolved
		r.completeDeal()
		r.Doubling = NewDoublingState(r.Bid.Contract, r.Bid.Beneficiary.Team(), r.Dealer)
		r.Phase = PhaseDoubling
	}
}

// completeDeal brings every hand to eight cards: the beneficiary absorbs
// the floor card plus two, everyone else takes three.
func (r *Round) completeDeal() {
	benef := r.Bid.Beneficiary
	idx := 0
	seat := r.Dealer.Next()
	for i := 0; i < NumSeats; i++ {
		n := 3
		if seat == benef {
			r.Hands[seat] = append(r.Hands[seat], *r.FloorCard)
			n = 2
		}
		r.Hands[seat] = append(r.Hands[seat], r.deck[idx:idx+n]...)
		idx += n
		seat = seat.Next()
	}
	r.FloorCard = nil
	r.deck = nil
	for s := Seat(0); s < NumSeats; s++ {
		r.Dealt[s] = append([]Card{}, r.Hands[s]...)
	}
}

// Double raises the doubling chain one tier.
func (r *Round) Double(seat Seat, level DoublingLevel) error {
	if r.Phase != PhaseDoubling {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if err := r.Doubling.Raise(seat, level, r.MatchScores); err != nil {
		return err
	}
	r.syncDoubling()
	return nil
}

// DeclineDouble passes on the pending tier; play begins.
func (r *Round) DeclineDouble(seat Seat) error {
	if r.Phase != PhaseDoubling {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if err := r.Doubling.Decline(seat); err != nil {
		return err
	}
	r.syncDoubling()
	return nil
}

// ChooseVariant records the bidder's Open/Closed choice after a Hokum
// double.
func (r *Round) ChooseVariant(seat Seat, v HokumVariant) error {
	if r.Phase != PhaseDoubling {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if err := r.Doubling.ChooseVariant(seat, v); err != nil {
		return err
	}
	r.syncDoubling()
	return nil
}

func (r *Round) syncDoubling() {
	if r.Doubling.Done {
		r.Phase = PhasePlaying
		r.Turn = r.Dealer.Next()
	}
}

// DeclareProject registers a meld. The window is a seat's first turn to
// play in trick 1; playing a card closes it, and an expired turn forfeits
// it silently.
func (r *Round) DeclareProject(seat Seat, t ProjectType) error {
	if r.Phase != PhasePlaying {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if r.Locked() {
		return ruleErr(ReasonTableLocked, "claim or dispute pending")
	}
	if len(r.Tricks) > 0 || r.declClosed[seat] {
		return ruleErr(ReasonWindowClosed, "declaration window closed")
	}
	if seat != r.Turn {
		return ruleErr(ReasonWrongTurn, fmt.Sprintf("turn is seat %d", r.Turn))
	}
	meld, ok := r.undeclaredMeld(seat, t)
	if !ok {
		return ruleErr(ReasonInvalidMeld, t.String())
	}
	meld.Owner = seat
	r.Declarations = append(r.Declarations, meld)
	return nil
}

// undeclaredMeld finds a scanned candidate of the type the seat has not
// already declared.
func (r *Round) undeclaredMeld(seat Seat, t ProjectType) (DeclaredProject, bool) {
	candidates := ScanMelds(r.Hands[seat], r.Bid.Contract)
next:
	for _, m := range candidates {
		if m.Type != t {
			continue
		}
		for _, d := range r.Declarations {
			if d.Owner == seat && sameCards(d.Cards, m.Cards) {
				continue next
			}
		}
		return m, true
	}
	return DeclaredProject{}, false
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for _, c := range a {
		if !ContainsCard(b, c) {
			return false
		}
	}
	return true
}

// PlayCard plays one card for the acting seat, resolving the trick when it
// is the fourth.
func (r *Round) PlayCard(seat Seat, card Card) error {
	if r.Phase != PhasePlaying {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if r.Locked() {
		return ruleErr(ReasonTableLocked, "claim or dispute pending")
	}
	if seat != r.Turn {
		return ruleErr(ReasonWrongTurn, fmt.Sprintf("turn is seat %d", r.Turn))
	}
	if err := IsLegalPlay(card, r.Hands[seat], r.Table, r.Bid.Contract, r.Bid.Trump, r.Doubling.Variant); err != nil {
		return err
	}

	r.declClosed[seat] = true
	r.Hands[seat] = RemoveCard(r.Hands[seat], card)
	r.Table = append(r.Table, Play{Seat: seat, Card: card})
	r.trackBaloot(seat, card)

	if len(r.Table) == NumSeats {
		return r.resolveTable()
	}
	r.Turn = r.Turn.Next()
	return nil
}

// trackBaloot notices the trump King and Queen leaving one hand; the pair
// declares itself the instant its second card hits the table.
func (r *Round) trackBaloot(seat Seat, card Card) {
	if r.Bid.Contract != ContractHokum || card.Suit != r.Bid.Trump {
		return
	}
	if card.Rank != King && card.Rank != Queen {
		return
	}
	r.balootSeen[seat]++
	if r.balootSeen[seat] == 2 {
		r.Baloot[seat.Team()] = true
	}
}

func (r *Round) resolveTable() error {
	winner, err := ResolveTrick(r.Table, r.Bid.Contract, r.Bid.Trump)
	if err != nil {
		return err
	}
	trick := Trick{Plays: r.Table, Winner: winner}
	r.Tricks = append(r.Tricks, trick)
	r.Table = nil

	abnat := TrickAbnat(trick, r.Bid.Contract, r.Bid.Trump)
	if len(r.Tricks) == NumSeats*2 {
		abnat += LastTrickAbnat
	}
	r.captured[winner.Team()] += abnat
	r.Turn = winner

	// Declarations freeze after trick 1 and are compared before trick 2.
	if len(r.Tricks) == 1 {
		r.ProjectWinner = CompareDeclarations(r.Declarations, r.Dealer)
	}

	// A refused claim fails the moment the claimant loses a trick.
	if r.Claim != nil && r.Claim.Refused && winner != r.Claim.Claimant {
		r.penaltyEnd(r.Claim.Claimant.Team().Opponent())
		return nil
	}

	if len(r.Tricks) == NumSeats*2 {
		return r.finishNaturally()
	}
	return nil
}

// finishNaturally scores a round that ran its eight tricks. A refused claim
// whose claimant swept the remainder validates retroactively here: natural
// accounting already pays exactly the claimed remainder.
func (r *Round) finishNaturally() error {
	in := ScoreInput{
		RawUs:    r.captured[TeamUs],
		RawThem:  r.captured[TeamThem],
		MeldUs:   MeldAbnat(r.Declarations, TeamUs),
		MeldThem: MeldAbnat(r.Declarations, TeamThem),
		Contract: r.Bid.Contract,
		Doubling: r.Doubling.Level,
		BalootUs: r.Baloot[TeamUs], BalootThem: r.Baloot[TeamThem],
	}
	bidder := r.Bid.Beneficiary.Team()
	in.BidderTeam = &bidder

	score, err := Score(in)
	if err != nil {
		return err
	}
	r.Result = &score
	r.Phase = PhaseComplete
	return nil
}

// SawaClaim freezes play: the acting player claims every remaining trick
// and exposes their hand.
func (r *Round) SawaClaim(seat Seat) error {
	if r.Phase != PhasePlaying {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if r.Locked() || r.Claim != nil {
		return ruleErr(ReasonClaimUnavailable, "claim already raised or table locked")
	}
	if seat != r.Turn {
		return ruleErr(ReasonWrongTurn, "claim belongs to the acting player")
	}
	if len(r.Table) != 0 {
		return ruleErr(ReasonClaimUnavailable, "trick in progress")
	}
	r.Claim = &ClaimState{Claimant: seat, AwaitingResponse: true, FromTrick: len(r.Tricks)}
	return nil
}

// SawaRespond answers an open claim from the opposing team. Acceptance ends
// the round with the remainder awarded; refusal resumes play with the
// claimant exposed.
func (r *Round) SawaRespond(seat Seat, accept bool) error {
	if r.Phase != PhasePlaying || r.Claim == nil || !r.Claim.AwaitingResponse {
		return ruleErr(ReasonClaimUnavailable, "no claim awaiting response")
	}
	if seat.Team() != r.Claim.Claimant.Team().Opponent() {
		return ruleErr(ReasonWrongTurn, "response belongs to the opposing team")
	}
	if accept {
		return r.claimAccepted()
	}
	r.Claim.AwaitingResponse = false
	r.Claim.Refused = true
	return nil
}

// claimAccepted ends the round: the claiming team collects every point
// still on the table and in hands, plus the final-trick bonus.
func (r *Round) claimAccepted() error {
	team := r.Claim.Claimant.Team()
	remaining := LastTrickAbnat
	for s := Seat(0); s < NumSeats; s++ {
		for _, c := range r.Hands[s] {
			remaining += CardAbnat(c, r.Bid.Contract, r.Bid.Trump)
		}
	}
	for _, p := range r.Table {
		remaining += CardAbnat(p.Card, r.Bid.Contract, r.Bid.Trump)
	}
	r.captured[team] += remaining
	return r.finishNaturally()
}

// penaltyEnd applies a round-ending verdict consequence: the winning team
// takes the contract ceiling plus its own declared melds and Baloot, the
// offending team scores zero.
func (r *Round) penaltyEnd(winner Team) {
	score := RoundScore{}
	pts := KabootAward(r.Bid.Contract)
	for _, d := range r.Declarations {
		if d.Owner.Team() != winner {
			continue
		}
		if r.Bid.Contract == ContractSun {
			pts += d.Type.Abnat() * 2 / 10
		} else {
			pts += d.Type.Abnat() / 10
		}
	}
	if r.Baloot[winner] {
		pts += BalootBonus
	}
	if winner == TeamUs {
		score.Us = pts
	} else {
		score.Them = pts
	}
	r.Result = &score
	r.Claim = nil
	r.Dispute = nil
	r.Phase = PhaseComplete
}

// QaydTrigger opens a dispute investigation window; all turn timers block
// until evidence is submitted or the window lapses.
func (r *Round) QaydTrigger(seat Seat) error {
	if r.Phase != PhasePlaying {
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}
	if r.Dispute != nil || (r.Claim != nil && r.Claim.AwaitingResponse) {
		return ruleErr(ReasonQaydUnavailable, "table locked")
	}
	if len(r.Tricks) == 0 && len(r.Table) == 0 {
		return ruleErr(ReasonQaydUnavailable, "nothing has been played")
	}
	r.Dispute = &DisputeState{Accuser: seat}
	return nil
}

// QaydAccuse submits the accusation evidence. The verdict is rendered
// immediately but applied on confirmation.
func (r *Round) QaydAccuse(seat Seat, v Violation, card Card, trickIndex int) error {
	if r.Dispute == nil {
		return ruleErr(ReasonQaydUnavailable, "no open dispute")
	}
	if seat != r.Dispute.Accuser {
		return ruleErr(ReasonWrongTurn, "accusation belongs to the dispute opener")
	}
	if r.Dispute.Verdict != nil {
		return ruleErr(ReasonQaydUnavailable, "verdict already rendered")
	}
	acc := Accusation{Accuser: seat, Violation: v, Card: card, TrickIndex: trickIndex}
	verdict, err := EvaluateAccusation(acc, r.Dealt, r.Tricks, r.Table, r.Bid.Contract, r.Bid.Trump, r.Doubling.Variant)
	if err != nil {
		return err
	}
	if verdict.Accused.Team() == seat.Team() {
		return ruleErr(ReasonQaydUnavailable, "cited play belongs to the accuser's own team")
	}
	r.Dispute.Verdict = &verdict
	return nil
}

// QaydConfirm applies the rendered verdict: an upheld accusation zeroes the
// offending team, a rejected one boomerangs onto the accuser. Either way
// the round ends now.
func (r *Round) QaydConfirm(seat Seat) error {
	if r.Dispute == nil || r.Dispute.Verdict == nil {
		return ruleErr(ReasonQaydUnavailable, "no verdict to confirm")
	}
	if seat != r.Dispute.Accuser {
		return ruleErr(ReasonWrongTurn, "confirmation belongs to the dispute opener")
	}
	v := r.Dispute.Verdict
	if v.Upheld {
		r.penaltyEnd(v.Accusation.Accuser.Team())
	} else {
		r.penaltyEnd(v.Accused.Team())
	}
	return nil
}

// QaydCancel withdraws an open dispute; play resumes unaffected. Window
// expiry funnels here.
func (r *Round) QaydCancel(seat Seat) error {
	if r.Dispute == nil {
		return ruleErr(ReasonQaydUnavailable, "no open dispute")
	}
	if seat != r.Dispute.Accuser {
		return ruleErr(ReasonWrongTurn, "cancellation belongs to the dispute opener")
	}
	r.Dispute = nil
	return nil
}

// AutoPlay applies the play-timeout default for the acting seat: the
// weakest legal card. The declaration right lapses silently with it.
func (r *Round) AutoPlay() error {
	if r.Phase != PhasePlaying || r.Locked() {
		return ruleErr(ReasonWrongPhase, "no play pending")
	}
	card, ok := WeakestLegal(r.Hands[r.Turn], r.Table, r.Bid.Contract, r.Bid.Trump, r.Doubling.Variant)
	if !ok {
		return fmt.Errorf("%w: seat %d has no legal card", ErrInvariant, r.Turn)
	}
	return r.PlayCard(r.Turn, card)
}
