package nakama

import (
	"encoding/json"
	"fmt"

	"baloot/internal/app"
	"baloot/internal/domain"
)

// Client request payloads. Cards travel as {"suit":0..3,"rank":0..7} using
// the engine's own encoding, so the authoritative state and the wire never
// disagree on a card.

type bidRequest struct {
	Call  string      `json:"call"`
	Trump domain.Suit `json:"trump"` // round-2 hokum only
}

type doubleRequest struct {
	Level int `json:"level"`
}

type variantRequest struct {
	Variant string `json:"variant"`
}

type declareRequest struct {
	Project string `json:"project"`
}

type playRequest struct {
	Card domain.Card `json:"card"`
}

type sawaRespondRequest struct {
	Accept bool `json:"accept"`
}

type qaydAccuseRequest struct {
	Violation  string      `json:"violation"`
	Card       domain.Card `json:"card"`
	TrickIndex int         `json:"trick_index"`
}

// tableEvent is the envelope for every engine event broadcast to clients.
type tableEvent struct {
	Kind    app.EventKind `json:"kind"`
	Payload interface{}   `json:"payload"`
}

// gameError is the payload of an OpGameError message.
type gameError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// matchLabel is the JSON match listing label used by the quick-match query.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

func marshalLabel(open int, phase string) (string, error) {
	b, err := json.Marshal(matchLabel{Open: open, Game: "baloot", Phase: phase})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalTableEvent(ev app.Event) ([]byte, error) {
	return json.Marshal(tableEvent{Kind: ev.Kind, Payload: ev.Payload})
}

func parseCall(s string) (domain.Call, error) {
	switch s {
	case "pass":
		return domain.CallPass, nil
	case "sun":
		return domain.CallSun, nil
	case "hokum":
		return domain.CallHokum, nil
	case "ashkal":
		return domain.CallAshkal, nil
	case "kawesh":
		return domain.CallKawesh, nil
	default:
		return 0, fmt.Errorf("unknown call %q", s)
	}
}

func parseVariant(s string) (domain.HokumVariant, error) {
	switch s {
	case "open":
		return domain.VariantOpen, nil
	case "closed":
		return domain.VariantClosed, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

func parseProject(s string) (domain.ProjectType, error) {
	for _, t := range []domain.ProjectType{
		domain.ProjectSira, domain.ProjectFifty, domain.ProjectHundred,
		domain.ProjectFourHundred,
	} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown project %q", s)
}

func parseViolation(s string) (domain.Violation, error) {
	for _, v := range []domain.Violation{
		domain.ViolationRevoke, domain.ViolationNoTrump,
		domain.ViolationNoOvertrump, domain.ViolationClosedTrumpLead,
	} {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown violation %q", s)
}
