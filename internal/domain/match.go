package domain

import "fmt"

// RoundRecord summarizes a finished round for the match history.
type RoundRecord struct {
	ID       string        `json:"id"`
	Dealer   Seat          `json:"dealer"`
	Contract Contract      `json:"contract"`
	Trump    Suit          `json:"trump"`
	Doubling DoublingLevel `json:"doubling"`
	Us       int           `json:"us"`
	Them     int           `json:"them"`
	Kaboot   bool          `json:"kaboot"`
	Khasara  bool          `json:"khasara"`
}

// Match sequences rounds, rotates the dealer and watches the win
// threshold. One Match instance belongs to exactly one table and is only
// ever mutated by that table's single writer.
type Match struct {
	Target  int           `json:"target"`
	Scores  [2]int        `json:"scores"`
	Dealer  Seat          `json:"dealer"`
	Round   *Round        `json:"round,omitempty"`
	History []RoundRecord `json:"history"`
	Winner  *Team         `json:"winner,omitempty"`
}

// NewMatch starts a match playing to the standard 152 threshold.
func NewMatch(firstDealer Seat) *Match {
	return &Match{Target: WinThreshold, Dealer: firstDealer}
}

// BeginRound deals a new round from the given shuffled deck. The id tags
// the round in history and settlement metadata.
func (m *Match) BeginRound(id string, deck []Card) (*Round, error) {
	if m.Winner != nil {
		return nil, ruleErr(ReasonWrongPhase, "match already decided")
	}
	if m.Round != nil && m.Round.Phase != PhaseComplete && m.Round.Phase != PhaseVoided {
		return nil, ruleErr(ReasonWrongPhase, "round in progress")
	}
	r, err := NewRound(id, m.Dealer, deck, m.Scores)
	if err != nil {
		return nil, err
	}
	m.Round = r
	return r, nil
}

// FinishRound folds a terminal round into the match: voided rounds only
// decide whether the dealer button moves, scored rounds accumulate and may
// decide the match. An exact cross of the threshold by both teams plays on.
func (m *Match) FinishRound() error {
	r := m.Round
	if r == nil {
		return ruleErr(ReasonWrongPhase, "no round to finish")
	}
	switch r.Phase {
	case PhaseVoided:
		if r.RotateDealer {
			m.Dealer = m.Dealer.Next()
		}
		m.Round = nil
		return nil
	case PhaseComplete:
		if r.Result == nil {
			return fmt.Errorf("%w: complete round without a result", ErrInvariant)
		}
	default:
		return ruleErr(ReasonWrongPhase, string(r.Phase))
	}

	rec := RoundRecord{
		ID:       r.ID,
		Dealer:   r.Dealer,
		Contract: r.Bid.Contract,
		Trump:    r.Bid.Trump,
		Doubling: r.Doubling.Level,
		Us:       r.Result.Us,
		Them:     r.Result.Them,
		Kaboot:   r.Result.Kaboot != nil,
		Khasara:  r.Result.Khasara,
	}
	m.History = append(m.History, rec)
	m.Scores[TeamUs] += r.Result.Us
	m.Scores[TeamThem] += r.Result.Them

	switch {
	case m.Scores[TeamUs] >= m.Target && m.Scores[TeamUs] > m.Scores[TeamThem]:
		w := TeamUs
		m.Winner = &w
	case m.Scores[TeamThem] >= m.Target && m.Scores[TeamThem] > m.Scores[TeamUs]:
		w := TeamThem
		m.Winner = &w
	}

	m.Dealer = m.Dealer.Next()
	m.Round = nil
	return nil
}
