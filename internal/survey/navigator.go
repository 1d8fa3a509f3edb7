package survey

import (
	"errors"

	"github.com/google/uuid"
)

// Logger records navigator decisions. It matches logbook.Logbook's methods.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// Navigator owns the session state and funnels every change through Reduce.
// It is driven from a single event loop and is not safe for concurrent use.
type Navigator struct {
	state     SessionState
	minter    Minter
	logger    Logger
	sessionID string
	rejection error
}

// NavigatorOption customizes a Navigator.
type NavigatorOption func(*Navigator)

// WithMinter overrides the trip identifier source.
func WithMinter(m Minter) NavigatorOption {
	return func(n *Navigator) {
		if m != nil {
			n.minter = m
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) NavigatorOption {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithSessionID fixes the session id used to tag log lines.
func WithSessionID(id string) NavigatorOption {
	return func(n *Navigator) {
		if id != "" {
			n.sessionID = id
		}
	}
}

// NewNavigator returns a navigator on the dashboard screen.
func NewNavigator(opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		state:     NewSessionState(),
		minter:    NewSequenceMinter(DefaultTripIDPrefix),
		logger:    nopLogger{},
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns a copy of the current session state.
func (n *Navigator) State() SessionState {
	return n.state.Clone()
}

// Screen returns the current screen.
func (n *Navigator) Screen() Screen {
	return n.state.Screen
}

// SessionID identifies this navigator in the journey log.
func (n *Navigator) SessionID() string {
	return n.sessionID
}

// LastRejection returns the reason the most recent event was refused, or nil
// if it was accepted.
func (n *Navigator) LastRejection() error {
	return n.rejection
}

// Start opens the trip form.
func (n *Navigator) Start() error {
	return n.Dispatch(StartTrip{})
}

// SubmitTrip accepts a trip draft. A draft re-submitted after Back keeps the
// identifier the trip was already given.
func (n *Navigator) SubmitTrip(draft TripDraft) error {
	return n.Dispatch(SubmitTrip{Draft: draft})
}

// SubmitTravelers accepts the traveler list for a multi-traveler trip.
func (n *Navigator) SubmitTravelers(travelers []TravelerRecord) error {
	return n.Dispatch(SubmitTravelers{Travelers: travelers})
}

// Back returns from the traveler form to the trip form.
func (n *Navigator) Back() error {
	return n.Dispatch(Back{})
}

// ReturnToDashboard clears the trip and travelers and shows the dashboard.
func (n *Navigator) ReturnToDashboard() error {
	return n.Dispatch(ReturnToDashboard{})
}

// Dispatch applies an event. On refusal the state is left as it was and the
// reason is returned and kept for LastRejection.
func (n *Navigator) Dispatch(event Event) error {
	if submit, ok := event.(SubmitTrip); ok {
		id, err := n.tripIDFor(submit.Draft)
		if err != nil {
			return n.reject(event, err)
		}
		submit.TripID = id
		event = submit
	}
	prev := n.state.Screen
	next, err := Reduce(n.state, event)
	if err != nil {
		return n.reject(event, err)
	}
	n.state = next
	n.rejection = nil
	n.logAccepted(event, prev)
	return nil
}

func (n *Navigator) tripIDFor(draft TripDraft) (string, error) {
	if err := CheckTrip(n.state, draft); err != nil {
		return "", err
	}
	if n.state.Trip != nil && n.state.Trip.ID != "" {
		return n.state.Trip.ID, nil
	}
	return n.minter.Mint(), nil
}

func (n *Navigator) reject(event Event, err error) error {
	n.rejection = err
	n.logger.Warn("session %s · %s refused on %s: %v", n.shortSession(), EventName(event), n.state.Screen, err)
	return err
}

func (n *Navigator) logAccepted(event Event, prev Screen) {
	switch event.(type) {
	case SubmitTrip:
		trip := n.state.Trip
		n.logger.Info("session %s · trip %s accepted (%d traveler(s)) · %s → %s",
			n.shortSession(), trip.ID, trip.TravelerCount, prev, n.state.Screen)
	case SubmitTravelers:
		n.logger.Info("session %s · %d traveler record(s) accepted for %s · %s → %s",
			n.shortSession(), len(n.state.Travelers), n.state.Trip.ID, prev, n.state.Screen)
	default:
		n.logger.Info("session %s · %s · %s → %s", n.shortSession(), EventName(event), prev, n.state.Screen)
	}
}

func (n *Navigator) shortSession() string {
	if len(n.sessionID) > 8 {
		return n.sessionID[:8]
	}
	return n.sessionID
}

// IsRefusal reports whether err is one of the navigator's refusal reasons.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidTravelerCount) ||
		errors.Is(err, ErrTravelerCountMismatch) ||
		errors.Is(err, ErrInvalidTraveler) ||
		errors.Is(err, ErrMissingTripID) ||
		errors.Is(err, ErrNoTrip)
}
