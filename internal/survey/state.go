package survey

import (
	"strconv"
	"strings"
)

// Screen identifies which wizard screen the session is on.
type Screen int

const (
	ScreenDashboard    Screen = iota // Landing screen, no trip in progress
	ScreenTripForm                   // Collecting trip-level fields
	ScreenTravelerForm               // Collecting one record per traveler
	ScreenSuccess                    // Confirmation of a finalized trip
)

// String returns the stable tag for a screen.
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "dashboard"
	case ScreenTripForm:
		return "trip-form"
	case ScreenTravelerForm:
		return "traveler-form"
	case ScreenSuccess:
		return "success"
	default:
		return "unknown"
	}
}

const (
	// Unspecified marks demographic fields the respondent did not provide.
	Unspecified = "unspecified"
	// RelationSelf is the relation recorded for the primary traveler.
	RelationSelf = "self"
)

// TripDraft is what the trip intake form hands over: every trip field
// except the identifier, with the traveler count still as typed.
type TripDraft struct {
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	TravelMode    string
	Purpose       string
	TravelerCount string
	Notes         string
}

// TripRecord is an accepted trip. Records are values; a re-submitted draft
// produces a new record rather than mutating the old one.
type TripRecord struct {
	ID            string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	TravelMode    string
	Purpose       string
	TravelerCount int
	Notes         string

	rawCount string
}

// Draft returns the fields exactly as they were submitted, so a form can be
// prefilled after navigating back.
func (r TripRecord) Draft() TripDraft {
	count := r.rawCount
	if count == "" && r.TravelerCount > 0 {
		count = strconv.Itoa(r.TravelerCount)
	}
	return TripDraft{
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		TravelMode:    r.TravelMode,
		Purpose:       r.Purpose,
		TravelerCount: count,
		Notes:         r.Notes,
	}
}

// TravelerRecord holds demographic detail for one traveler on a trip.
type TravelerRecord struct {
	ID       string
	AgeGroup string
	Gender   string
	Relation string
}

// SelfTraveler is the record synthesized when a trip has a single traveler.
func SelfTraveler() TravelerRecord {
	return TravelerRecord{
		ID:       "1",
		AgeGroup: Unspecified,
		Gender:   Unspecified,
		Relation: RelationSelf,
	}
}

// SessionState is everything the presentation layer reads to render a screen.
type SessionState struct {
	Screen    Screen
	Trip      *TripRecord
	Travelers []TravelerRecord
}

// NewSessionState returns the initial dashboard state.
func NewSessionState() SessionState {
	return SessionState{Screen: ScreenDashboard}
}

// Clone returns a deep copy that shares no storage with s.
func (s SessionState) Clone() SessionState {
	out := SessionState{Screen: s.Screen}
	if s.Trip != nil {
		trip := *s.Trip
		out.Trip = &trip
	}
	out.Travelers = cloneTravelers(s.Travelers)
	return out
}

// ParseTravelerCount converts the typed traveler count into a positive integer.
func ParseTravelerCount(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, ErrInvalidTravelerCount
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, ErrInvalidTravelerCount
	}
	return n, nil
}

func newTripRecord(id string, draft TripDraft, count int) TripRecord {
	return TripRecord{
		ID:            id,
		Origin:        draft.Origin,
		Destination:   draft.Destination,
		DepartureTime: draft.DepartureTime,
		ArrivalTime:   draft.ArrivalTime,
		TravelMode:    draft.TravelMode,
		Purpose:       draft.Purpose,
		TravelerCount: count,
		Notes:         draft.Notes,
		rawCount:      draft.TravelerCount,
	}
}

func cloneTravelers(values []TravelerRecord) []TravelerRecord {
	if len(values) == 0 {
		return nil
	}
	out := make([]TravelerRecord, len(values))
	copy(out, values)
	return out
}
