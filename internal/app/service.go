package app

import (
	"errors"
	"math/rand"
	"time"

	"baloot/internal/domain"

	"github.com/google/uuid"
)

// Service contains the Baloot use-cases operating on domain state. It owns
// the deck shuffle and translates domain mutations into dispatchable
// events; all rule enforcement stays in the domain.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNoRound        = errors.New("no round in progress")
	ErrMatchOver      = errors.New("match already decided")
	ErrSeatsIncomplete = errors.New("table needs four occupied seats")
)

// BeginRound deals the next round of the match: five cards per seat plus
// the face-up floor card. Every hand travels only to its own seat.
func (s *Service) BeginRound(m *domain.Match) ([]Event, error) {
	if m.Winner != nil {
		return nil, ErrMatchOver
	}
	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	r, err := m.BeginRound(uuid.NewString(), deck)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{RoundID: r.ID, Dealer: r.Dealer, FloorCard: *r.FloorCard},
	}}
	events = append(events, handEvents(r)...)
	return events, nil
}

func handEvents(r *domain.Round) []Event {
	out := make([]Event, 0, domain.NumSeats)
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		out = append(out, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: append([]domain.Card{}, r.Hands[seat]...)},
			Recipients: []domain.Seat{seat},
		})
	}
	return out
}

func (s *Service) liveRound(m *domain.Match) (*domain.Round, error) {
	if m.Winner != nil {
		return nil, ErrMatchOver
	}
	if m.Round == nil {
		return nil, ErrNoRound
	}
	return m.Round, nil
}

// Bid places one auction call and reports the resulting transitions.
func (s *Service) Bid(m *domain.Match, seat domain.Seat, call domain.Call, trump domain.Suit) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	hadGablak := r.Auction != nil && r.Auction.Gablak != nil
	prev := r.Phase
	if err := r.PlaceBid(seat, call, trump); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventBidPlaced,
		Payload: BidPlacedPayload{Seat: seat, Call: call, Trump: trump, Next: auctionTurn(r)},
	}}
	if !hadGablak && r.Auction != nil && r.Auction.Gablak != nil {
		g := r.Auction.Gablak
		events = append(events, Event{
			Kind:    EventGablakOpened,
			Payload: GablakOpenedPayload{Caller: g.Caller, Eligible: g.Eligible},
		})
	}
	return s.appendTransitions(events, m, r, prev)
}

func auctionTurn(r *domain.Round) domain.Seat {
	if r.Phase == domain.PhaseBidding {
		return r.Auction.Turn
	}
	return r.Turn
}

// GablakClaim transfers a provisional Sun to a higher-priority seat.
func (s *Service) GablakClaim(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	if err := r.ClaimGablak(seat); err != nil {
		return nil, err
	}
	return s.appendTransitions(nil, m, r, prev)
}

// GablakExpire closes an unclaimed priority window; the earlier Sun stands.
func (s *Service) GablakExpire(m *domain.Match) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	r.ExpireGablak()
	return s.appendTransitions(nil, m, r, prev)
}

// Double raises the doubling chain one tier.
func (s *Service) Double(m *domain.Match, seat domain.Seat, level domain.DoublingLevel) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	if err := r.Double(seat, level); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventDoubleRaised, Payload: DoubleRaisedPayload{Seat: seat, Level: level}}}
	return s.appendTransitions(events, m, r, prev)
}

// DeclineDouble passes on the pending tier.
func (s *Service) DeclineDouble(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	if err := r.DeclineDouble(seat); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventDoubleDeclined, Payload: DoubleDeclinedPayload{Seat: seat}}}
	return s.appendTransitions(events, m, r, prev)
}

// ChooseVariant records the bidder team's Open/Closed choice after a Hokum
// double.
func (s *Service) ChooseVariant(m *domain.Match, seat domain.Seat, v domain.HokumVariant) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	if err := r.ChooseVariant(seat, v); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventVariantChosen, Payload: VariantChosenPayload{Seat: seat, Variant: v}}}
	return s.appendTransitions(events, m, r, prev)
}

// DeclareProject registers a meld announcement. Only the type is made
// public; the cards surface at the trick-2 comparison.
func (s *Service) DeclareProject(m *domain.Match, seat domain.Seat, t domain.ProjectType) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	if err := r.DeclareProject(seat, t); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventProjectDeclared, Payload: ProjectDeclaredPayload{Seat: seat, Type: t}}}, nil
}

// Play puts one card on the table and reports everything that falls out of
// it: the trick resolution, the frozen declarations, a detected Baloot
// pair, and the round settlement when the eighth trick closes.
func (s *Service) Play(m *domain.Match, seat domain.Seat, card domain.Card) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	prevTricks := len(r.Tricks)
	prevBaloot := r.Baloot
	hadProjects := r.ProjectWinner != nil

	if err := r.PlayCard(seat, card); err != nil {
		return nil, err
	}

	events := []Event{{Kind: EventCardPlayed, Payload: CardPlayedPayload{Seat: seat, Card: card, Next: r.Turn}}}
	if r.Baloot != prevBaloot {
		events = append(events, Event{
			Kind:    EventBalootAnnounced,
			Payload: BalootAnnouncedPayload{Seat: seat, Team: seat.Team()},
		})
	}
	if len(r.Tricks) > prevTricks {
		trick := r.Tricks[len(r.Tricks)-1]
		events = append(events, Event{
			Kind:    EventTrickResolved,
			Payload: TrickResolvedPayload{Winner: trick.Winner, Trick: prevTricks},
		})
	}
	if !hadProjects && len(r.Declarations) > 0 && len(r.Tricks) >= 1 {
		events = append(events, Event{
			Kind: EventProjectsResolved,
			Payload: ProjectsResolvedPayload{
				Winner:       r.ProjectWinner,
				Declarations: append([]domain.DeclaredProject{}, r.Declarations...),
			},
		})
	}
	return s.appendTransitions(events, m, r, prev)
}

// SawaClaim freezes play with an "I take the rest" claim. The claimant's
// hand goes face up for the whole table.
func (s *Service) SawaClaim(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	if err := r.SawaClaim(seat); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventClaimRaised,
		Payload: ClaimRaisedPayload{Claimant: seat, Hand: append([]domain.Card{}, r.Hands[seat]...)},
	}}, nil
}

// SawaRespond answers an open claim for the opposing team.
func (s *Service) SawaRespond(m *domain.Match, seat domain.Seat, accept bool) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	claimant := domain.Seat(0)
	if r.Claim != nil {
		claimant = r.Claim.Claimant
	}
	if err := r.SawaRespond(seat, accept); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventClaimResolved, Payload: ClaimResolvedPayload{Claimant: claimant, Accepted: accept}}}
	return s.appendTransitions(events, m, r, prev)
}

// QaydTrigger opens a dispute window; every timer blocks until it closes.
func (s *Service) QaydTrigger(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	if err := r.QaydTrigger(seat); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventDisputeOpened, Payload: DisputeOpenedPayload{Accuser: seat}}}, nil
}

// QaydAccuse submits dispute evidence and broadcasts the rendered verdict.
func (s *Service) QaydAccuse(m *domain.Match, seat domain.Seat, v domain.Violation, card domain.Card, trickIndex int) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	if err := r.QaydAccuse(seat, v, card, trickIndex); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventDisputeVerdict, Payload: DisputeVerdictPayload{Verdict: *r.Dispute.Verdict}}}, nil
}

// QaydConfirm applies a rendered verdict and ends the round.
func (s *Service) QaydConfirm(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	prev := r.Phase
	if err := r.QaydConfirm(seat); err != nil {
		return nil, err
	}
	return s.appendTransitions(nil, m, r, prev)
}

// QaydCancel withdraws an open dispute; play resumes.
func (s *Service) QaydCancel(m *domain.Match, seat domain.Seat) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	if err := r.QaydCancel(seat); err != nil {
		return nil, err
	}
	return []Event{{Kind: EventDisputeClosed, Payload: DisputeClosedPayload{Accuser: seat}}}, nil
}

// ExpireWindow applies the deterministic timeout default for whatever
// decision window currently owns the round.
func (s *Service) ExpireWindow(m *domain.Match) ([]Event, error) {
	r, err := s.liveRound(m)
	if err != nil {
		return nil, err
	}
	w := r.ActiveWindow()
	if w == nil {
		return nil, nil
	}
	switch w.Kind {
	case domain.WindowBid:
		return s.Bid(m, w.Seat, domain.CallPass, 0)
	case domain.WindowGablak:
		return s.GablakExpire(m)
	case domain.WindowDouble:
		return s.DeclineDouble(m, w.Seat)
	case domain.WindowVariant:
		return s.ChooseVariant(m, w.Seat, domain.VariantOpen)
	case domain.WindowPlay:
		card, ok := domain.WeakestLegal(r.Hands[w.Seat], r.Table, r.Bid.Contract, r.Bid.Trump, r.Doubling.Variant)
		if !ok {
			return nil, ErrNoRound
		}
		return s.Play(m, w.Seat, card)
	case domain.WindowClaim:
		return s.SawaRespond(m, w.Seat, false)
	case domain.WindowDispute:
		if r.Dispute != nil && r.Dispute.Verdict != nil {
			return s.QaydConfirm(m, r.Dispute.Accuser)
		}
		return s.QaydCancel(m, r.Dispute.Accuser)
	default:
		return nil, nil
	}
}

// appendTransitions folds phase changes caused by the last action into the
// event stream and finishes terminal rounds against the match.
func (s *Service) appendTransitions(events []Event, m *domain.Match, r *domain.Round, prev domain.Phase) ([]Event, error) {
	if r.Phase == prev {
		return events, nil
	}

	switch r.Phase {
	case domain.PhaseDoubling:
		events = append(events, Event{
			Kind: EventContractResolved,
			Payload: ContractResolvedPayload{
				Contract:    r.Bid.Contract,
				Trump:       r.Bid.Trump,
				Bidder:      r.Bid.Bidder,
				Beneficiary: r.Bid.Beneficiary,
				Ashkal:      r.Bid.Ashkal,
			},
		})
		// Hands were completed to eight cards; redeal privately.
		events = append(events, handEvents(r)...)

	case domain.PhasePlaying:
		events = append(events, Event{
			Kind: EventPlayBegan,
			Payload: PlayBeganPayload{
				Level:   r.Doubling.Level,
				Variant: r.Doubling.Variant,
				Lead:    r.Turn,
			},
		})

	case domain.PhaseVoided:
		events = append(events, Event{
			Kind:    EventRoundVoided,
			Payload: RoundVoidedPayload{RoundID: r.ID, RotateDealer: r.RotateDealer},
		})
		if err := m.FinishRound(); err != nil {
			return nil, err
		}

	case domain.PhaseComplete:
		result := *r.Result
		id := r.ID
		if err := m.FinishRound(); err != nil {
			return nil, err
		}
		events = append(events, Event{
			Kind:    EventRoundScored,
			Payload: RoundScoredPayload{RoundID: id, Result: result, Totals: m.Scores},
		})
		if m.Winner != nil {
			events = append(events, Event{
				Kind: EventMatchEnded,
				Payload: MatchEndedPayload{
					Winner: *m.Winner,
					Totals: m.Scores,
					Rounds: append([]domain.RoundRecord{}, m.History...),
				},
			})
		}
	}
	return events, nil
}

// Settlement maps the decided match to per-seat wallet deltas: the winning
// partnership collects the base bet from the losing one.
func (s *Service) Settlement(winner domain.Team, baseBet int64) map[domain.Seat]int64 {
	out := make(map[domain.Seat]int64, domain.NumSeats)
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		if seat.Team() == winner {
			out[seat] = baseBet
		} else {
			out[seat] = -baseBet
		}
	}
	return out
}
