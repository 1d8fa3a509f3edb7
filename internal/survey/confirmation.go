package survey

import (
	"fmt"
	"strings"
)

// Confirmation is what the success screen shows for a finalized trip.
type Confirmation struct {
	TripID        string
	Origin        string
	Destination   string
	Route         string
	TravelMode    string
	Purpose       string
	TravelerCount int
	TravelerLabel string
	Travelers     []TravelerRecord
}

// DeriveConfirmation computes the confirmation values from session state alone.
func DeriveConfirmation(state SessionState) (Confirmation, error) {
	if state.Screen != ScreenSuccess {
		return Confirmation{}, fmt.Errorf("%w: confirmation needs %s, on %s", ErrInvalidTransition, ScreenSuccess, state.Screen)
	}
	if state.Trip == nil {
		return Confirmation{}, ErrNoTrip
	}
	trip := state.Trip
	label, err := PluralizeTravelers(trip.TravelerCount)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{
		TripID:        trip.ID,
		Origin:        trip.Origin,
		Destination:   trip.Destination,
		Route:         FormatRoute(trip.Origin, trip.Destination),
		TravelMode:    trip.TravelMode,
		Purpose:       trip.Purpose,
		TravelerCount: trip.TravelerCount,
		TravelerLabel: label,
		Travelers:     cloneTravelers(state.Travelers),
	}, nil
}

// PluralizeTravelers renders a traveler count as "1 person" or "N people".
func PluralizeTravelers(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w (got %d)", ErrInvalidTravelerCount, n)
	}
	if n == 1 {
		return "1 person", nil
	}
	return fmt.Sprintf("%d people", n), nil
}

// FormatRoute joins origin and destination with an arrow.
func FormatRoute(origin, destination string) string {
	return fmt.Sprintf("%s → %s", strings.TrimSpace(origin), strings.TrimSpace(destination))
}
