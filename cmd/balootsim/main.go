package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"baloot/internal/app"
	"baloot/internal/bot"
	"baloot/internal/domain"
)

// maxSteps bounds the drive loop so a stalled engine fails loudly instead of
// spinning forever.
const maxSteps = 20000

func main() {
	seedFlag := flag.Int64("seed", 1, "deck shuffle seed")
	levelFlag := flag.String("level", "smart", "bot strength: good, smart or god")
	verboseFlag := flag.Bool("verbose", false, "print every card played")
	flag.Parse()

	level, err := parseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	title, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("BAL", pterm.FgLightGreen.ToStyle()),
		putils.LettersFromStringWithStyle("OOT", pterm.FgDarkGray.ToStyle()),
	).Srender()
	pterm.Print(title)
	pterm.Info.Printfln("Simulating a full match: 4 %s bots, seed %d", *levelFlag, *seedFlag)
	pterm.Println()

	agents := make([]*bot.Agent, domain.NumSeats)
	for i := range agents {
		brain, err := bot.NewBrain(level)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		agents[i] = &bot.Agent{
			ID:       fmt.Sprintf("sim-bot-%d", i),
			Name:     fmt.Sprintf("Bot %d", i),
			Strategy: brain,
		}
	}

	rng := rand.New(rand.NewSource(*seedFlag))
	svc := app.NewService(rng)
	m := domain.NewMatch(0)

	sim := &simulator{svc: svc, match: m, agents: agents, verbose: *verboseFlag}
	if err := sim.run(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func parseLevel(s string) (bot.BotLevel, error) {
	switch s {
	case "good":
		return bot.BotLevelGood, nil
	case "smart":
		return bot.BotLevelSmart, nil
	case "god":
		return bot.BotLevelGod, nil
	default:
		return 0, fmt.Errorf("unknown bot level %q", s)
	}
}

type simulator struct {
	svc     *app.Service
	match   *domain.Match
	agents  []*bot.Agent
	verbose bool

	roundNo int
}

// run drives the match until a team reaches the winning threshold.
func (s *simulator) run() error {
	events, err := s.svc.BeginRound(s.match)
	if err != nil {
		return err
	}
	s.render(events)

	for step := 0; step < maxSteps; step++ {
		if s.match.Winner != nil {
			return nil
		}
		if s.match.Round == nil {
			events, err := s.svc.BeginRound(s.match)
			if err != nil {
				return err
			}
			s.render(events)
			continue
		}

		w := s.match.Round.ActiveWindow()
		if w == nil {
			return fmt.Errorf("round %d stalled with no decision window", s.roundNo)
		}

		events, err := s.agents[w.Seat].Act(s.svc, s.match, w.Seat)
		if err != nil {
			// The agent hit a rule edge its strategy cannot resolve; the
			// timeout default always can.
			events, err = s.svc.ExpireWindow(s.match)
			if err != nil {
				return err
			}
		}
		s.render(events)
	}
	return fmt.Errorf("match did not finish within %d steps", maxSteps)
}

func (s *simulator) render(events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.RoundStartedPayload:
			s.roundNo++
			pterm.DefaultSection.Printfln("Round %d - dealer seat %d, floor %s", s.roundNo, p.Dealer, p.FloorCard)

		case app.BidPlacedPayload:
			if s.verbose || p.Call != domain.CallPass {
				pterm.Info.Printfln("Seat %d bids %s", p.Seat, p.Call)
			}

		case app.GablakOpenedPayload:
			pterm.Info.Printfln("Seat %d's sun reopens priority for seats %v", p.Caller, p.Eligible)

		case app.ContractResolvedPayload:
			desc := p.Contract.String()
			if p.Contract == domain.ContractHokum {
				desc += " (" + p.Trump.String() + ")"
			}
			if p.Ashkal {
				desc += ", ashkal for seat " + fmt.Sprint(p.Beneficiary)
			}
			pterm.Success.Printfln("Seat %d takes the contract: %s", p.Bidder, desc)

		case app.DoubleRaisedPayload:
			pterm.Warning.Printfln("Seat %d raises the stake to %s", p.Seat, levelName(p.Level))

		case app.VariantChosenPayload:
			pterm.Info.Printfln("Seat %d plays %s", p.Seat, variantName(p.Variant))

		case app.PlayBeganPayload:
			pterm.Info.Printfln("Play begins at %s, seat %d leads", levelName(p.Level), p.Lead)

		case app.ProjectDeclaredPayload:
			pterm.Info.Printfln("Seat %d declares a %s", p.Seat, p.Type)

		case app.ProjectsResolvedPayload:
			if p.Winner != nil {
				pterm.Info.Printfln("Melds compared: %s scores its declarations", p.Winner)
			}

		case app.CardPlayedPayload:
			if s.verbose {
				pterm.Printfln("  seat %d plays %s", p.Seat, p.Card)
			}

		case app.TrickResolvedPayload:
			if s.verbose {
				pterm.Printfln("  trick %d to seat %d", p.Trick+1, p.Winner)
			}

		case app.BalootAnnouncedPayload:
			pterm.Info.Printfln("Seat %d announces baloot for %s", p.Seat, p.Team)

		case app.ClaimRaisedPayload:
			pterm.Warning.Printfln("Seat %d claims the remaining tricks: %v", p.Claimant, p.Hand)

		case app.ClaimResolvedPayload:
			if p.Accepted {
				pterm.Success.Printfln("Claim by seat %d accepted", p.Claimant)
			} else {
				pterm.Info.Printfln("Claim by seat %d refused, play continues", p.Claimant)
			}

		case app.RoundVoidedPayload:
			pterm.Info.Println("Round voided, redealing")

		case app.RoundScoredPayload:
			s.renderScore(p)

		case app.MatchEndedPayload:
			s.renderFinal(p)
		}
	}
}

func (s *simulator) renderScore(p app.RoundScoredPayload) {
	notes := ""
	if p.Result.Kaboot != nil {
		notes = "kaboot for " + p.Result.Kaboot.String()
	}
	if p.Result.Khasara {
		if notes != "" {
			notes += ", "
		}
		notes += "khasara"
	}
	if notes != "" {
		pterm.Warning.Printfln("Round ends: %s", notes)
	}

	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"", "Round", "Total"},
		{"Us", fmt.Sprint(p.Result.Us), fmt.Sprint(p.Totals[domain.TeamUs])},
		{"Them", fmt.Sprint(p.Result.Them), fmt.Sprint(p.Totals[domain.TeamThem])},
	}).Render()
}

func (s *simulator) renderFinal(p app.MatchEndedPayload) {
	pterm.Println()
	pterm.Success.Printfln("%s wins the match %d - %d after %d rounds",
		p.Winner, p.Totals[p.Winner], p.Totals[p.Winner.Opponent()], len(p.Rounds))

	data := pterm.TableData{{"Round", "Contract", "Us", "Them"}}
	for i, r := range p.Rounds {
		contract := r.Contract.String()
		if r.Contract == domain.ContractHokum {
			contract += " (" + r.Trump.String() + ")"
		}
		data = append(data, []string{
			fmt.Sprint(i + 1),
			contract,
			fmt.Sprint(r.Us),
			fmt.Sprint(r.Them),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func levelName(l domain.DoublingLevel) string {
	switch l {
	case domain.LevelDouble:
		return "double"
	case domain.LevelTriple:
		return "triple"
	case domain.LevelFour:
		return "four"
	case domain.LevelGahwa:
		return "gahwa"
	default:
		return "normal"
	}
}

func variantName(v domain.HokumVariant) string {
	if v == domain.VariantClosed {
		return "closed"
	}
	return "open"
}
