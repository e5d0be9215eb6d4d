package domain

import "testing"

func teamPtr(t Team) *Team { return &t }

func TestScoreConversion(t *testing.T) {
	tests := []struct {
		name     string
		in       ScoreInput
		us, them int
	}{
		{
			name: "sun even split no bidder",
			in:   ScoreInput{RawUs: 65, RawThem: 65, Contract: ContractSun, Doubling: LevelNormal},
			us:   13, them: 13,
		},
		{
			name: "sun 80/50 bidder wins",
			in:   ScoreInput{RawUs: 80, RawThem: 50, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   16, them: 10,
		},
		{
			name: "sun exact tie bidder us loses pot",
			in:   ScoreInput{RawUs: 65, RawThem: 65, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   0, them: 26,
		},
		{
			name: "sun exact tie bidder them loses pot",
			in:   ScoreInput{RawUs: 65, RawThem: 65, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamThem)},
			us:   26, them: 0,
		},
		{
			name: "hokum pair rounding keeps the pool",
			in:   ScoreInput{RawUs: 85, RawThem: 77, Contract: ContractHokum, Doubling: LevelNormal},
			us:   8, them: 8,
		},
		{
			name: "hokum kaboot pays fixed ceiling to bidder opponents",
			in:   ScoreInput{RawUs: 162, RawThem: 0, Contract: ContractHokum, Doubling: LevelNormal, BidderTeam: teamPtr(TeamThem)},
			us:   25, them: 0,
		},
		{
			name: "sun kaboot pays 44 regardless of melds",
			in:   ScoreInput{RawUs: 0, RawThem: 130, MeldUs: 100, Contract: ContractSun, Doubling: LevelNormal},
			us:   0, them: 44,
		},
		{
			name: "sun doubled winner takes pot times level",
			in:   ScoreInput{RawUs: 80, RawThem: 50, Contract: ContractSun, Doubling: LevelDouble, BidderTeam: teamPtr(TeamUs)},
			us:   52, them: 0,
		},
		{
			name: "hokum gahwa multiplies by five",
			in:   ScoreInput{RawUs: 100, RawThem: 62, Contract: ContractHokum, Doubling: LevelGahwa, BidderTeam: teamPtr(TeamUs)},
			us:   80, them: 0,
		},
		{
			name: "melds convert and count toward khasara",
			in:   ScoreInput{RawUs: 60, RawThem: 70, MeldUs: 50, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   22, them: 14,
		},
		{
			name: "baloot pays flat after doubling",
			in:   ScoreInput{RawUs: 100, RawThem: 62, Contract: ContractHokum, Doubling: LevelDouble, BidderTeam: teamPtr(TeamUs), BalootUs: true, BalootThem: true},
			us:   34, them: 2,
		},
		{
			name: "khasara transfers the whole pot",
			in:   ScoreInput{RawUs: 50, RawThem: 80, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   0, them: 26,
		},
		{
			name: "converted tie broken by higher raw for the bidder",
			in:   ScoreInput{RawUs: 67, RawThem: 63, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   13, them: 13,
		},
		{
			name: "converted tie with lower raw fails the bidder",
			in:   ScoreInput{RawUs: 63, RawThem: 67, Contract: ContractSun, Doubling: LevelNormal, BidderTeam: teamPtr(TeamUs)},
			us:   0, them: 26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.in)
			if err != nil {
				t.Fatalf("Score() error: %v", err)
			}
			if got.Us != tt.us || got.Them != tt.them {
				t.Fatalf("Score() = %d/%d, want %d/%d", got.Us, got.Them, tt.us, tt.them)
			}
		})
	}
}

// The two conversion laws must always split the exact pool, whatever the
// raw distribution.
func TestConversionPoolInvariant(t *testing.T) {
	for rawUs := 1; rawUs < 130; rawUs++ {
		us, them := convertSun(rawUs, 130-rawUs)
		if us+them != SunPool {
			t.Fatalf("sun %d/%d converts to %d+%d != %d", rawUs, 130-rawUs, us, them, SunPool)
		}
	}
	for rawUs := 1; rawUs < 162; rawUs++ {
		us, them := convertHokum(rawUs, 162-rawUs)
		if us+them != HokumPool {
			t.Fatalf("hokum %d/%d converts to %d+%d != %d", rawUs, 162-rawUs, us, them, HokumPool)
		}
	}
}

func TestScoreInvariantFailures(t *testing.T) {
	if _, err := Score(ScoreInput{Contract: ContractNone, RawUs: 1, Doubling: LevelNormal}); err == nil {
		t.Fatal("expected error scoring without a contract")
	}
	if _, err := Score(ScoreInput{Contract: ContractSun, Doubling: LevelNormal}); err == nil {
		t.Fatal("expected error when both teams captured zero")
	}
	if _, err := Score(ScoreInput{Contract: ContractSun, RawUs: 65, RawThem: 65, Doubling: LevelDouble}); err == nil {
		t.Fatal("expected error doubling without a bidder")
	}
}

func TestDivRoundHalfEven(t *testing.T) {
	tests := []struct{ n, want int }{
		{125, 12}, // 12.5 -> even 12
		{135, 14}, // 13.5 -> even 14
		{134, 13},
		{136, 14},
		{130, 13},
	}
	for _, tt := range tests {
		if got := divRoundHalfEven(tt.n, 10); got != tt.want {
			t.Errorf("divRoundHalfEven(%d, 10) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
