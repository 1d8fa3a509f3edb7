package survey

import (
	"fmt"
	"strings"
)

// Reduce applies one event to the session state. It never mutates its input;
// on refusal it returns the original state unchanged together with the reason.
func Reduce(state SessionState, event Event) (SessionState, error) {
	switch e := event.(type) {
	case StartTrip:
		if state.Screen != ScreenDashboard {
			return state, refuse(state, event)
		}
		next := state.Clone()
		next.Screen = ScreenTripForm
		return next, nil

	case SubmitTrip:
		if state.Screen != ScreenTripForm {
			return state, refuse(state, event)
		}
		return submitTrip(state, e)

	case SubmitTravelers:
		if state.Screen != ScreenTravelerForm {
			return state, refuse(state, event)
		}
		return submitTravelers(state, e)

	case Back:
		if state.Screen != ScreenTravelerForm {
			return state, refuse(state, event)
		}
		next := state.Clone()
		next.Screen = ScreenTripForm
		return next, nil

	case ReturnToDashboard:
		if state.Screen != ScreenSuccess {
			return state, refuse(state, event)
		}
		return NewSessionState(), nil
	}
	return state, refuse(state, event)
}

// CheckTrip reports whether a trip submission would be accepted from the
// current state, without producing a new state. The navigator uses it so
// identifiers are only minted for submissions that go through.
func CheckTrip(state SessionState, draft TripDraft) error {
	if state.Screen != ScreenTripForm {
		return refuse(state, SubmitTrip{})
	}
	if _, err := ParseTravelerCount(draft.TravelerCount); err != nil {
		return fmt.Errorf("%w (got %q)", err, strings.TrimSpace(draft.TravelerCount))
	}
	return nil
}

func submitTrip(state SessionState, e SubmitTrip) (SessionState, error) {
	if err := CheckTrip(state, e.Draft); err != nil {
		return state, err
	}
	id := strings.TrimSpace(e.TripID)
	if id == "" {
		return state, ErrMissingTripID
	}
	count, _ := ParseTravelerCount(e.Draft.TravelerCount)
	trip := newTripRecord(id, e.Draft, count)
	next := SessionState{Trip: &trip}
	if count == 1 {
		next.Screen = ScreenSuccess
		next.Travelers = []TravelerRecord{SelfTraveler()}
		return next, nil
	}
	next.Screen = ScreenTravelerForm
	return next, nil
}

func submitTravelers(state SessionState, e SubmitTravelers) (SessionState, error) {
	if state.Trip == nil {
		return state, ErrNoTrip
	}
	if err := ValidateTravelers(state.Trip.TravelerCount, e.Travelers); err != nil {
		return state, err
	}
	next := state.Clone()
	next.Screen = ScreenSuccess
	next.Travelers = cloneTravelers(e.Travelers)
	return next, nil
}

// ValidateTravelers checks a finalized traveler list against the trip's count.
func ValidateTravelers(count int, travelers []TravelerRecord) error {
	if len(travelers) != count {
		return fmt.Errorf("%w: want %d, got %d", ErrTravelerCountMismatch, count, len(travelers))
	}
	seen := make(map[string]struct{}, len(travelers))
	for i, t := range travelers {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return fmt.Errorf("%w: travelers[%d] has no id", ErrInvalidTraveler, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidTraveler, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func refuse(state SessionState, event Event) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, EventName(event), state.Screen)
}
