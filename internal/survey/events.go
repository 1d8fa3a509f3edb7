package survey

// Event is a user action dispatched into the navigator.
type Event interface {
	eventName() string
}

// StartTrip opens the trip form from the dashboard.
type StartTrip struct{}

// SubmitTrip carries a completed trip draft. TripID is filled in by the
// Navigator before the event reaches Reduce.
type SubmitTrip struct {
	Draft  TripDraft
	TripID string
}

// SubmitTravelers carries the traveler list collected for a multi-traveler trip.
type SubmitTravelers struct {
	Travelers []TravelerRecord
}

// Back returns from the traveler form to the trip form.
type Back struct{}

// ReturnToDashboard acknowledges the confirmation screen.
type ReturnToDashboard struct{}

func (StartTrip) eventName() string         { return "start-trip" }
func (SubmitTrip) eventName() string        { return "submit-trip" }
func (SubmitTravelers) eventName() string   { return "submit-travelers" }
func (Back) eventName() string              { return "back" }
func (ReturnToDashboard) eventName() string { return "return-to-dashboard" }

// EventName returns a short label for logging.
func EventName(e Event) string {
	if e == nil {
		return "none"
	}
	return e.eventName()
}
