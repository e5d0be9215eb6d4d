package domain

import "fmt"

// ScoreInput feeds the round accounting. Raw values are abnat: captured
// card points (including the last-trick bonus) and meld points before any
// conversion.
type ScoreInput struct {
	RawUs, RawThem   int
	MeldUs, MeldThem int
	Contract         Contract
	Doubling         DoublingLevel
	BidderTeam       *Team // nil when no bidding team is identified
	BalootUs         bool
	BalootThem       bool
}

// RoundScore is the converted match-point outcome of a round.
type RoundScore struct {
	Us      int   `json:"us"`
	Them    int   `json:"them"`
	Kaboot  *Team `json:"kaboot,omitempty"`  // team that swept every trick
	Khasara bool  `json:"khasara"`           // bidder failed and the pot transferred
}

// Score converts a round's raw abnat into match points, applying Kaboot,
// Khasara, doubling and the flat Baloot bonus in that order.
func Score(in ScoreInput) (RoundScore, error) {
	if in.Contract != ContractSun && in.Contract != ContractHokum {
		return RoundScore{}, fmt.Errorf("%w: scoring a round without a contract", ErrInvariant)
	}
	if in.RawUs == 0 && in.RawThem == 0 {
		return RoundScore{}, fmt.Errorf("%w: both teams captured zero abnat", ErrInvariant)
	}

	var out RoundScore

	switch {
	case in.RawUs == 0:
		t := TeamThem
		out.Kaboot = &t
		out.Them = KabootAward(in.Contract)
	case in.RawThem == 0:
		t := TeamUs
		out.Kaboot = &t
		out.Us = KabootAward(in.Contract)
	default:
		if in.Contract == ContractSun {
			out.Us, out.Them = convertSun(in.RawUs, in.RawThem)
			out.Us += in.MeldUs * 2 / 10
			out.Them += in.MeldThem * 2 / 10
		} else {
			out.Us, out.Them = convertHokum(in.RawUs, in.RawThem)
			out.Us += in.MeldUs / 10
			out.Them += in.MeldThem / 10
		}

		if in.BidderTeam != nil && khasara(in, out) {
			out.Khasara = true
			pot := out.Us + out.Them
			if *in.BidderTeam == TeamUs {
				out.Us, out.Them = 0, pot
			} else {
				out.Us, out.Them = pot, 0
			}
		}
	}

	if in.Doubling > LevelNormal {
		if err := applyDoubling(&out, in.Doubling, in.BidderTeam); err != nil {
			return RoundScore{}, err
		}
	}

	// The Baloot pair pays flat, after every transfer and multiplier.
	if in.BalootUs {
		out.Us += BalootBonus
	}
	if in.BalootThem {
		out.Them += BalootBonus
	}
	return out, nil
}

// convertSun maps Sun abnat to game points: double, divide by ten with the
// half-to-even bias on one side, complement to the 26 pool on the other.
func convertSun(rawUs, rawThem int) (int, int) {
	us := divRoundHalfEven(rawUs*2, 10)
	return us, SunPool - us
}

// divRoundHalfEven divides n by d rounding to nearest, exact halves going
// to the even quotient.
func divRoundHalfEven(n, d int) int {
	q, r := n/d, n%d
	switch {
	case 2*r < d:
		return q
	case 2*r > d:
		return q + 1
	case q%2 == 0:
		return q
	default:
		return q + 1
	}
}

// convertHokum rounds each team's abnat to the nearest ten (an exact half
// rounds down), then applies a one-point correction when the independently
// rounded totals miss the 16 pool: the side with the larger fractional
// remainder absorbs the adjustment, a remainder tie going against the
// smaller raw total.
func convertHokum(rawUs, rawThem int) (int, int) {
	round := func(x int) int {
		if x%10 >= 6 {
			return x/10 + 1
		}
		return x / 10
	}
	us, them := round(rawUs), round(rawThem)
	diff := HokumPool - (us + them)
	if diff == 0 {
		return us, them
	}
	usRem, themRem := rawUs%10, rawThem%10
	adjustUs := usRem > themRem || (usRem == themRem && rawUs < rawThem)
	if adjustUs {
		us += diff
	} else {
		them += diff
	}
	return us, them
}

// khasara decides whether the bidding team failed the round. A strict
// shortfall always fails; a converted tie fails unless the bidder's raw
// total was strictly higher, and under any doubled level the bidder loses
// every tie outright.
func khasara(in ScoreInput, conv RoundScore) bool {
	bidder := *in.BidderTeam
	bidderPts, oppPts := conv.Us, conv.Them
	bidderRaw, oppRaw := in.RawUs+in.MeldUs, in.RawThem+in.MeldThem
	if bidder == TeamThem {
		bidderPts, oppPts = oppPts, bidderPts
		bidderRaw, oppRaw = oppRaw, bidderRaw
	}
	if bidderPts < oppPts {
		return true
	}
	if bidderPts > oppPts {
		return false
	}
	if in.Doubling > LevelNormal {
		return true
	}
	return bidderRaw <= oppRaw
}

// applyDoubling gives the whole pot, multiplied by the level, to the
// winning side. Doubling without an identifiable bidder or winner is an
// engine invariant failure: the chain only opens once a contract exists.
func applyDoubling(s *RoundScore, level DoublingLevel, bidder *Team) error {
	if bidder == nil {
		return fmt.Errorf("%w: doubled round with no bidding team", ErrInvariant)
	}
	pot := s.Us + s.Them
	switch {
	case s.Us > s.Them:
		s.Us, s.Them = pot*int(level), 0
	case s.Them > s.Us:
		s.Us, s.Them = 0, pot*int(level)
	default:
		return fmt.Errorf("%w: doubled round resolved to a tie", ErrInvariant)
	}
	return nil
}
