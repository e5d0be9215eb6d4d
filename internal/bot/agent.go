package bot

import (
	"baloot/internal/app"
	"baloot/internal/domain"
)

// Agent is an autonomous seat. The surrounding match loop decides when it
// is an agent's turn; Act performs one decision through the service so bot
// moves flow through the same validation and event path as human ones.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act resolves the round's active window if it belongs to the given seat.
// A brain decision the rules reject falls back to the window's timeout
// default rather than wedging the match.
func (a *Agent) Act(svc *app.Service, m *domain.Match, seat domain.Seat) ([]app.Event, error) {
	if m.Round == nil {
		return nil, nil
	}
	w := m.Round.ActiveWindow()
	if w == nil || w.Seat != seat {
		return nil, nil
	}

	switch w.Kind {
	case domain.WindowBid:
		d := a.Strategy.Bid(m.Round, seat)
		evs, err := svc.Bid(m, seat, d.Call, d.Trump)
		if domain.ReasonOf(err) != "" {
			return svc.Bid(m, seat, domain.CallPass, 0)
		}
		return evs, err

	case domain.WindowGablak:
		if a.Strategy.TakeGablak(m.Round, seat) {
			return svc.GablakClaim(m, seat)
		}
		return svc.GablakExpire(m)

	case domain.WindowDouble:
		if level, ok := a.Strategy.Double(m.Round, seat); ok {
			evs, err := svc.Double(m, seat, level)
			if domain.ReasonOf(err) == "" {
				return evs, err
			}
		}
		return svc.DeclineDouble(m, seat)

	case domain.WindowVariant:
		return svc.ChooseVariant(m, seat, a.Strategy.ChooseVariant(m.Round, seat))

	case domain.WindowPlay:
		return a.playTurn(svc, m, seat)

	case domain.WindowClaim:
		return svc.SawaRespond(m, seat, a.Strategy.RespondClaim(m.Round, seat))

	case domain.WindowDispute:
		// Agents never raise disputes; an inherited one is withdrawn.
		return svc.QaydCancel(m, seat)
	}
	return nil, nil
}

func (a *Agent) playTurn(svc *app.Service, m *domain.Match, seat domain.Seat) ([]app.Event, error) {
	var events []app.Event

	// Melds are only declarable during the first trick; rejected or
	// already-spoken declarations are skipped silently.
	if len(m.Round.Tricks) == 0 {
		for _, t := range a.Strategy.Declarations(m.Round, seat) {
			evs, err := svc.DeclareProject(m, seat, t)
			if err == nil {
				events = append(events, evs...)
			}
		}
	}

	card, ok := a.Strategy.Play(m.Round, seat)
	if !ok {
		evs, err := svc.ExpireWindow(m)
		return append(events, evs...), err
	}
	evs, err := svc.Play(m, seat, card)
	if domain.ReasonOf(err) != "" {
		evs, err = svc.ExpireWindow(m)
	}
	return append(events, evs...), err
}
