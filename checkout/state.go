package checkout

import (
	"errors"

	"github.com/Kariqs/amexan-store/session"
)

var ErrIllegalTransition = errors.New("illegal transition of checkout state")

type Action string

const (
	ActionCreatePayment Action = "create_payment"
	ActionPlaceOrder    Action = "place_order"
)

var transitions = map[session.State][]session.State{
	session.StateBuilding:      {session.StateBuilding, session.StateIntentCreated, session.StateVerifying},
	session.StateIntentCreated: {session.StateBuilding, session.StateIntentCreated, session.StateVerifying},
	session.StateVerifying:     {session.StateCompleted, session.StateFailed, session.StateBuilding},
	session.StateCompleted:     {session.StateBuilding},
	session.StateFailed:        {session.StateBuilding, session.StateIntentCreated, session.StateVerifying},
}

func CanTransitionTo(from, to session.State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transition(s *session.Session, to session.State) error {
	if !CanTransitionTo(s.State, to) {
		return ErrIllegalTransition
	}
	s.State = to
	return nil
}

// begin starts a new building cycle when the previous one completed.
func begin(s *session.Session) {
	if s.State == "" || s.State == session.StateCompleted {
		s.State = session.StateBuilding
		s.Pending = nil
	}
}
