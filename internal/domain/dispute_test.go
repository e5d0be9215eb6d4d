package domain

import "testing"

func TestEvaluateAccusationRevoke(t *testing.T) {
	var dealt [NumSeats][]Card
	dealt[1] = []Card{card(Hearts, Nine), card(Spades, Seven), card(Clubs, Eight)}
	tricks := []Trick{{
		Plays: []Play{
			{Seat: 0, Card: card(Spades, Ace)},
			{Seat: 1, Card: card(Hearts, Nine)}, // held S7, did not follow
			{Seat: 2, Card: card(Spades, Ten)},
			{Seat: 3, Card: card(Spades, King)},
		},
		Winner: 0,
	}}

	acc := Accusation{Accuser: 0, Violation: ViolationRevoke, Card: card(Hearts, Nine), TrickIndex: 0}
	v, err := EvaluateAccusation(acc, dealt, tricks, nil, ContractSun, 0, VariantOpen)
	if err != nil {
		t.Fatalf("EvaluateAccusation() error: %v", err)
	}
	if !v.Upheld || v.Accused != 1 {
		t.Fatalf("verdict = %+v, want upheld against seat 1", v)
	}
}

func TestEvaluateAccusationVoidSeatIsCleared(t *testing.T) {
	var dealt [NumSeats][]Card
	dealt[1] = []Card{card(Hearts, Nine), card(Clubs, Eight)} // genuinely void in spades
	tricks := []Trick{{
		Plays: []Play{
			{Seat: 0, Card: card(Spades, Ace)},
			{Seat: 1, Card: card(Hearts, Nine)},
			{Seat: 2, Card: card(Spades, Ten)},
			{Seat: 3, Card: card(Spades, King)},
		},
		Winner: 0,
	}}

	acc := Accusation{Accuser: 0, Violation: ViolationRevoke, Card: card(Hearts, Nine), TrickIndex: 0}
	v, err := EvaluateAccusation(acc, dealt, tricks, nil, ContractSun, 0, VariantOpen)
	if err != nil {
		t.Fatalf("EvaluateAccusation() error: %v", err)
	}
	if v.Upheld {
		t.Fatalf("verdict = %+v, want rejected: the discard was legal", v)
	}
}

func TestEvaluateAccusationReconstructsAcrossTricks(t *testing.T) {
	// Seat 1's only spade went out in trick 0; the trick-1 discard under
	// investigation was legal by then.
	var dealt [NumSeats][]Card
	dealt[1] = []Card{card(Spades, Seven), card(Hearts, Nine), card(Hearts, Eight)}
	tricks := []Trick{{
		Plays: []Play{
			{Seat: 0, Card: card(Spades, Ace)},
			{Seat: 1, Card: card(Spades, Seven)},
			{Seat: 2, Card: card(Spades, Ten)},
			{Seat: 3, Card: card(Spades, King)},
		},
		Winner: 0,
	}}
	table := []Play{
		{Seat: 0, Card: card(Spades, Queen)},
		{Seat: 1, Card: card(Hearts, Nine)},
	}

	acc := Accusation{Accuser: 2, Violation: ViolationRevoke, Card: card(Hearts, Nine), TrickIndex: 1}
	v, err := EvaluateAccusation(acc, dealt, tricks, table, ContractSun, 0, VariantOpen)
	if err != nil {
		t.Fatalf("EvaluateAccusation() error: %v", err)
	}
	if v.Upheld {
		t.Fatalf("verdict = %+v, want rejected after hand reconstruction", v)
	}
}

func TestEvaluateAccusationViolationClassMustMatch(t *testing.T) {
	// The play was illegal, but as a missed trump, not a revoke. Citing the
	// wrong rule rejects the accusation; citing the right one upholds it.
	var dealt [NumSeats][]Card
	dealt[1] = []Card{card(Hearts, Seven), card(Clubs, Eight)}
	tricks := []Trick{{
		Plays: []Play{
			{Seat: 0, Card: card(Spades, Ace)},
			{Seat: 1, Card: card(Clubs, Eight)}, // void, held trump H7, did not trump
			{Seat: 2, Card: card(Spades, Ten)},
			{Seat: 3, Card: card(Spades, King)},
		},
		Winner: 0,
	}}

	wrong := Accusation{Accuser: 0, Violation: ViolationRevoke, Card: card(Clubs, Eight), TrickIndex: 0}
	v, err := EvaluateAccusation(wrong, dealt, tricks, nil, ContractHokum, Hearts, VariantOpen)
	if err != nil {
		t.Fatal(err)
	}
	if v.Upheld {
		t.Fatalf("wrong violation class upheld: %+v", v)
	}

	right := Accusation{Accuser: 0, Violation: ViolationNoTrump, Card: card(Clubs, Eight), TrickIndex: 0}
	v, err = EvaluateAccusation(right, dealt, tricks, nil, ContractHokum, Hearts, VariantOpen)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Upheld || v.Accused != 1 {
		t.Fatalf("verdict = %+v, want upheld no-trump against seat 1", v)
	}
}

func TestEvaluateAccusationBadCitations(t *testing.T) {
	var dealt [NumSeats][]Card
	tricks := []Trick{{Plays: []Play{
		{Seat: 0, Card: card(Spades, Ace)},
		{Seat: 1, Card: card(Spades, Seven)},
		{Seat: 2, Card: card(Spades, Ten)},
		{Seat: 3, Card: card(Spades, King)},
	}}}

	notPlayed := Accusation{Accuser: 0, Violation: ViolationRevoke, Card: card(Hearts, Nine), TrickIndex: 0}
	if _, err := EvaluateAccusation(notPlayed, dealt, tricks, nil, ContractSun, 0, VariantOpen); ReasonOf(err) != ReasonQaydUnavailable {
		t.Fatalf("unplayed card citation: got %v", err)
	}

	noTrick := Accusation{Accuser: 0, Violation: ViolationRevoke, Card: card(Spades, Ace), TrickIndex: 5}
	if _, err := EvaluateAccusation(noTrick, dealt, tricks, nil, ContractSun, 0, VariantOpen); ReasonOf(err) != ReasonQaydUnavailable {
		t.Fatalf("missing trick citation: got %v", err)
	}
}
