package bot

import (
	"baloot/internal/domain"
)

// handSunScore weighs a bidding hand for a Sun call. Aces dominate Sun
// play, tens and kings back them up.
func handSunScore(hand []domain.Card) int {
	score := 0
	for _, c := range hand {
		switch c.Rank {
		case domain.Ace:
			score += 3
		case domain.Ten:
			score += 2
		case domain.King:
			score++
		}
	}
	return score
}

// trumpQuality weighs a candidate trump suit: count plus a bonus for the
// jack and nine, which between them take most Hokum tricks.
func trumpQuality(hand []domain.Card, suit domain.Suit) (count, quality int) {
	for _, c := range hand {
		if c.Suit != suit {
			continue
		}
		count++
		switch c.Rank {
		case domain.Jack:
			quality += 3
		case domain.Nine:
			quality += 2
		case domain.Ace, domain.Ten:
			quality++
		}
	}
	return count, quality
}

// bestRoundTwoTrump picks the strongest non-floor suit worth a round-2
// Hokum call, requiring at least three cards with an honor.
func bestRoundTwoTrump(hand []domain.Card, floorSuit domain.Suit) (domain.Suit, bool) {
	bestSuit := domain.Suit(0)
	bestScore := 0
	for _, s := range []domain.Suit{domain.Spades, domain.Hearts, domain.Diamonds, domain.Clubs} {
		if s == floorSuit {
			continue
		}
		count, quality := trumpQuality(hand, s)
		if count < 3 || quality < 2 {
			continue
		}
		if score := count + quality; score > bestScore {
			bestSuit, bestScore = s, score
		}
	}
	return bestSuit, bestScore > 0
}

// beatsCard mirrors trick precedence: trump over plain suits under Hokum,
// strength within a suit, and only on-led cards beat the current best.
func beatsCard(a, b domain.Card, led domain.Suit, contract domain.Contract, trump domain.Suit) bool {
	if contract == domain.ContractHokum {
		if a.Suit == trump && b.Suit != trump {
			return true
		}
		if a.Suit != trump && b.Suit == trump {
			return false
		}
	}
	if a.Suit == b.Suit {
		return domain.Strength(a, contract, trump) > domain.Strength(b, contract, trump)
	}
	return a.Suit == led && b.Suit != led
}

// tableBest returns the play currently winning the in-progress trick.
func tableBest(table []domain.Play, contract domain.Contract, trump domain.Suit) domain.Play {
	best := table[0]
	led := table[0].Card.Suit
	for _, p := range table[1:] {
		if beatsCard(p.Card, best.Card, led, contract, trump) {
			best = p
		}
	}
	return best
}

// cheapestWinner returns the lowest-value legal card that would take the
// trick as it stands, or false when no legal card wins.
func cheapestWinner(r *domain.Round, seat domain.Seat) (domain.Card, bool) {
	hand := r.Hands[seat]
	contract, trump := r.Bid.Contract, r.Bid.Trump
	best := tableBest(r.Table, contract, trump)
	led := r.Table[0].Card.Suit

	var pick domain.Card
	found := false
	for _, c := range hand {
		if domain.IsLegalPlay(c, hand, r.Table, contract, trump, r.Doubling.Variant) != nil {
			continue
		}
		if !beatsCard(c, best.Card, led, contract, trump) {
			continue
		}
		if !found || domain.CardAbnat(c, contract, trump) < domain.CardAbnat(pick, contract, trump) {
			pick = c
			found = true
		}
	}
	return pick, found
}

// tableAbnat sums the capture value currently sitting on the table.
func tableAbnat(table []domain.Play, contract domain.Contract, trump domain.Suit) int {
	total := 0
	for _, p := range table {
		total += domain.CardAbnat(p.Card, contract, trump)
	}
	return total
}

// claimLooksUnbeatable checks an exposed Sawa hand against every card not
// yet accounted for. It is a sound accept test for leads only: if no unseen
// card can outrank any exposed card, the claimant runs the table.
func claimLooksUnbeatable(r *domain.Round) bool {
	if r.Claim == nil || r.Bid == nil {
		return false
	}
	contract, trump := r.Bid.Contract, r.Bid.Trump
	exposed := r.Hands[r.Claim.Claimant]
	if len(r.Table) > 0 {
		return false
	}

	seen := map[domain.Card]bool{}
	for _, t := range r.Tricks {
		for _, p := range t.Plays {
			seen[p.Card] = true
		}
	}
	for _, c := range exposed {
		seen[c] = true
	}

	for _, unseen := range domain.NewDeck() {
		if seen[unseen] {
			continue
		}
		for _, c := range exposed {
			if beatsCard(unseen, c, c.Suit, contract, trump) {
				return false
			}
		}
	}
	return true
}
