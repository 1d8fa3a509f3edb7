package survey

import "errors"

var (
	// ErrInvalidTransition is returned when an event does not apply to the current screen.
	ErrInvalidTransition = errors.New("survey: invalid transition")
	// ErrInvalidTravelerCount is returned when the traveler count is not a positive integer.
	ErrInvalidTravelerCount = errors.New("survey: traveler count must be a positive integer")
	// ErrTravelerCountMismatch is returned when the traveler list length differs from the trip's count.
	ErrTravelerCountMismatch = errors.New("survey: traveler list does not match traveler count")
	// ErrInvalidTraveler is returned for traveler records with missing or duplicate ids.
	ErrInvalidTraveler = errors.New("survey: invalid traveler record")
	// ErrMissingTripID is returned when a trip submission carries no identifier.
	ErrMissingTripID = errors.New("survey: trip id is required")
	// ErrNoTrip is returned when an operation needs a trip that the session does not hold.
	ErrNoTrip = errors.New("survey: no trip in session")
)
