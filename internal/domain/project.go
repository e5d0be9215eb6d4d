package domain

import "sort"

// ProjectType classifies a declared meld. Baloot (the trump K+Q pair) is
// deliberately absent: it is detected at play time and scored outside the
// declaration comparison.
type ProjectType int

const (
	ProjectSira        ProjectType = iota // same-suit run of 3
	ProjectFifty                          // same-suit run of 4
	ProjectHundred                        // run of 5+, or four of a kind
	ProjectFourHundred                    // four aces under Sun
)

// String returns the project name.
func (p ProjectType) String() string {
	switch p {
	case ProjectSira:
		return "sira"
	case ProjectFifty:
		return "fifty"
	case ProjectHundred:
		return "hundred"
	case ProjectFourHundred:
		return "four_hundred"
	default:
		return "?"
	}
}

// Abnat returns the raw meld value before conversion.
func (p ProjectType) Abnat() int {
	switch p {
	case ProjectSira:
		return 20
	case ProjectFifty:
		return 50
	case ProjectHundred:
		return 100
	case ProjectFourHundred:
		return 400
	default:
		return 0
	}
}

// DeclaredProject is a meld announced during trick 1 and compared at the
// start of trick 2.
type DeclaredProject struct {
	Type       ProjectType `json:"type"`
	Owner      Seat        `json:"owner"`
	Cards      []Card      `json:"cards"`
	FourOfKind bool        `json:"four_of_kind"`
	Resolved   bool        `json:"resolved"`
	Won        bool        `json:"won"`
}

// rankTier orders project kinds for the cross-team comparison:
// FourHundred > Hundred(run) > Hundred(four of a kind) > Fifty > Sira.
func (p DeclaredProject) rankTier() int {
	switch {
	case p.Type == ProjectFourHundred:
		return 4
	case p.Type == ProjectHundred && !p.FourOfKind:
		return 3
	case p.Type == ProjectHundred:
		return 2
	case p.Type == ProjectFifty:
		return 1
	default:
		return 0
	}
}

// topRank returns the highest natural rank inside the meld, the first-level
// tie-break between melds of the same tier.
func (p DeclaredProject) topRank() Rank {
	top := Seven
	for _, c := range p.Cards {
		if c.Rank > top {
			top = c.Rank
		}
	}
	return top
}

// ScanMelds finds every meld candidate in a hand. Sequence melds are carved
// greedily from the top of each maximal same-suit run so no card is counted
// in two sequences; four-of-a-kind candidates are reported independently.
// Four aces rank as FourHundred only under Sun.
func ScanMelds(hand []Card, contract Contract) []DeclaredProject {
	var out []DeclaredProject

	for suit := Spades; suit <= Clubs; suit++ {
		cards := CardsOfSuit(hand, suit)
		sort.Slice(cards, func(i, j int) bool { return cards[i].Rank > cards[j].Rank })
		run := []Card{}
		flush := func() {
			for len(run) >= 3 {
				take := len(run)
				if take > 5 {
					take = 5
				}
				meld := append([]Card{}, run[:take]...)
				out = append(out, DeclaredProject{Type: sequenceType(take), Cards: meld})
				run = run[take:]
			}
			run = nil
		}
		for _, c := range cards {
			if len(run) > 0 && run[len(run)-1].Rank != c.Rank+1 {
				flush()
			}
			run = append(run, c)
		}
		flush()
	}

	byRank := map[Rank][]Card{}
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, r := range []Rank{Ace, King, Queen, Jack, Ten} {
		if len(byRank[r]) != 4 {
			continue
		}
		t := ProjectHundred
		if r == Ace && contract == ContractSun {
			t = ProjectFourHundred
		}
		out = append(out, DeclaredProject{Type: t, Cards: append([]Card{}, byRank[r]...), FourOfKind: true})
	}

	return out
}

func sequenceType(length int) ProjectType {
	switch length {
	case 3:
		return ProjectSira
	case 4:
		return ProjectFifty
	default:
		return ProjectHundred
	}
}

// FindMeld locates a scanned candidate of the requested type in the hand,
// for validating a DECLARE_PROJECT action.
func FindMeld(hand []Card, t ProjectType, contract Contract) (DeclaredProject, bool) {
	for _, m := range ScanMelds(hand, contract) {
		if m.Type == t {
			return m, true
		}
	}
	return DeclaredProject{}, false
}

// CompareDeclarations resolves the trick-2 comparison. Each team's single
// best meld is found (tier, then top card rank, then earliest turn order
// from the dealer's right); the holding team wins every meld it declared
// and the other team's melds score nothing. The returned team is nil when
// no meld was declared at all.
func CompareDeclarations(decls []DeclaredProject, dealer Seat) *Team {
	if len(decls) == 0 {
		return nil
	}

	best := map[Team]*DeclaredProject{}
	for i := range decls {
		d := &decls[i]
		team := d.Owner.Team()
		cur := best[team]
		if cur == nil || betterMeld(d, cur, dealer) {
			best[team] = d
		}
	}

	var winner Team
	switch {
	case best[TeamUs] == nil:
		winner = TeamThem
	case best[TeamThem] == nil:
		winner = TeamUs
	case betterMeld(best[TeamUs], best[TeamThem], dealer):
		winner = TeamUs
	default:
		winner = TeamThem
	}

	for i := range decls {
		decls[i].Resolved = true
		decls[i].Won = decls[i].Owner.Team() == winner
	}
	return &winner
}

// betterMeld reports whether a outranks b in the comparison hierarchy.
func betterMeld(a, b *DeclaredProject, dealer Seat) bool {
	if a.rankTier() != b.rankTier() {
		return a.rankTier() > b.rankTier()
	}
	if a.topRank() != b.topRank() {
		return a.topRank() > b.topRank()
	}
	return turnDistance(dealer.Next(), a.Owner) < turnDistance(dealer.Next(), b.Owner)
}

// MeldAbnat sums the raw value of a seat list's winning melds for one team.
func MeldAbnat(decls []DeclaredProject, team Team) int {
	total := 0
	for _, d := range decls {
		if d.Won && d.Owner.Team() == team {
			total += d.Type.Abnat()
		}
	}
	return total
}
