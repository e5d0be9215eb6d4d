package domain

// Contract is the round's game mode, fixed once bidding resolves.
type Contract int

const (
	ContractNone Contract = iota
	ContractSun
	ContractHokum
)

// String returns the contract name.
func (c Contract) String() string {
	switch c {
	case ContractSun:
		return "sun"
	case ContractHokum:
		return "hokum"
	default:
		return "none"
	}
}

// DoublingLevel is the round's score multiplier tier. It only ever rises
// within a round and resets to Normal at the next deal.
type DoublingLevel int

const (
	LevelNormal DoublingLevel = 1
	LevelDouble DoublingLevel = 2
	LevelTriple DoublingLevel = 3
	LevelFour   DoublingLevel = 4
	LevelGahwa  DoublingLevel = 5 // Hokum only; plays for the maximum outright
)

// HokumVariant selects the open or closed play style after a Hokum double.
// Closed forbids leading an unforced trump while holding any non-trump card.
type HokumVariant int

const (
	VariantOpen HokumVariant = iota
	VariantClosed
)

// Fixed scoring constants. These are rules of the game, not configuration.
const (
	SunPool       = 26 // converted game points per non-Kaboot Sun round
	HokumPool     = 16 // converted game points per non-Kaboot Hokum round
	SunKaboot     = 44 // fixed award for taking every trick under Sun
	HokumKaboot   = 25 // fixed award for taking every trick under Hokum
	LastTrickAbnat = 10 // raw bonus captured with the eighth trick
	BalootBonus   = 2  // flat bonus for the declared trump K+Q pair
	WinThreshold  = 152
)

// sunStrength orders ranks for Sun and for every non-trump suit under
// Hokum: A > 10 > K > Q > J > 9 > 8 > 7.
func sunStrength(r Rank) int {
	switch r {
	case Ace:
		return 7
	case Ten:
		return 6
	case King:
		return 5
	case Queen:
		return 4
	case Jack:
		return 3
	case Nine:
		return 2
	case Eight:
		return 1
	default:
		return 0
	}
}

// trumpStrength orders ranks inside the trump suit: J > 9 > A > 10 > K > Q > 8 > 7.
func trumpStrength(r Rank) int {
	switch r {
	case Jack:
		return 7
	case Nine:
		return 6
	case Ace:
		return 5
	case Ten:
		return 4
	case King:
		return 3
	case Queen:
		return 2
	case Eight:
		return 1
	default:
		return 0
	}
}

// Strength returns the trick-taking strength of a card under the given
// contract. Only comparable between cards of the same suit; cross-suit
// precedence (led suit, trump) is the trick resolver's job.
func Strength(c Card, contract Contract, trump Suit) int {
	if contract == ContractHokum && c.Suit == trump {
		return trumpStrength(c.Rank)
	}
	return sunStrength(c.Rank)
}

// CardAbnat returns the raw capture value of a card under the contract.
// Trump cards carry the heavier Hokum values; everything else uses the Sun
// table. Suit totals: Sun 4x30 = 120 (+10 last trick = 130); Hokum
// 62 + 3x30 = 152 (+10 = 162).
func CardAbnat(c Card, contract Contract, trump Suit) int {
	if contract == ContractHokum && c.Suit == trump {
		switch c.Rank {
		case Jack:
			return 20
		case Nine:
			return 14
		case Ace:
			return 11
		case Ten:
			return 10
		case King:
			return 4
		case Queen:
			return 3
		default:
			return 0
		}
	}
	switch c.Rank {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// KabootAward returns the fixed ceiling paid for winning every trick.
func KabootAward(contract Contract) int {
	if contract == ContractSun {
		return SunKaboot
	}
	return HokumKaboot
}

// Pool returns the converted game-point pool the two teams split in a
// non-Kaboot round.
func Pool(contract Contract) int {
	if contract == ContractSun {
		return SunPool
	}
	return HokumPool
}
