package intake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/tripsurvey/internal/survey"
)

const (
	fieldOrigin      = "origin"
	fieldDestination = "destination"
	fieldDeparture   = "departure"
	fieldArrival     = "arrival"
	fieldMode        = "mode"
	fieldPurpose     = "purpose"
	fieldTravelers   = "travelers"
	fieldNotes       = "notes"

	// defaultTravelerCount is used when the travelers field is left empty.
	defaultTravelerCount = "1"
)

// TripOptions configures the trip form.
type TripOptions struct {
	TravelModes  []string
	MaxTravelers int
}

// TripForm collects the trip-level fields. It only emits drafts whose
// traveler count is a positive integer within MaxTravelers.
type TripForm struct {
	opts   TripOptions
	ring   focusRing
	byKey  map[string]*field
	banner string
}

// NewTripForm builds an empty form, or one prefilled from draft when the user
// has navigated back to it.
func NewTripForm(opts TripOptions, draft *survey.TripDraft) *TripForm {
	if len(opts.TravelModes) == 0 {
		opts.TravelModes = []string{"Other"}
	}
	fields := []*field{
		newTextField(fieldOrigin, "From", "e.g. Kochi", true),
		newTextField(fieldDestination, "To", "e.g. Trivandrum", true),
		newTextField(fieldDeparture, "Departure", "YYYY-MM-DD HH:MM", true),
		newTextField(fieldArrival, "Arrival", "YYYY-MM-DD HH:MM", false),
		newChoiceField(fieldMode, "Travel mode", opts.TravelModes),
		newTextField(fieldPurpose, "Purpose", "work, education, shopping…", true),
		newTextField(fieldTravelers, "Travelers", defaultTravelerCount, false),
		newTextField(fieldNotes, "Notes", "optional", false),
	}
	f := &TripForm{
		opts:  opts,
		ring:  focusRing{fields: fields},
		byKey: make(map[string]*field, len(fields)),
	}
	for _, fld := range fields {
		f.byKey[fld.key] = fld
	}
	if draft != nil {
		f.SetDraft(*draft)
	}
	f.ring.current().focus()
	return f
}

// SetDraft fills every field from draft.
func (f *TripForm) SetDraft(d survey.TripDraft) {
	f.byKey[fieldOrigin].SetValue(d.Origin)
	f.byKey[fieldDestination].SetValue(d.Destination)
	f.byKey[fieldDeparture].SetValue(d.DepartureTime)
	f.byKey[fieldArrival].SetValue(d.ArrivalTime)
	f.byKey[fieldMode].SetValue(d.TravelMode)
	f.byKey[fieldPurpose].SetValue(d.Purpose)
	f.byKey[fieldTravelers].SetValue(d.TravelerCount)
	f.byKey[fieldNotes].SetValue(d.Notes)
}

// Draft returns the current field values.
func (f *TripForm) Draft() survey.TripDraft {
	return survey.TripDraft{
		Origin:        f.byKey[fieldOrigin].Value(),
		Destination:   f.byKey[fieldDestination].Value(),
		DepartureTime: f.byKey[fieldDeparture].Value(),
		ArrivalTime:   f.byKey[fieldArrival].Value(),
		TravelMode:    f.byKey[fieldMode].Value(),
		Purpose:       f.byKey[fieldPurpose].Value(),
		TravelerCount: f.travelerCount(),
		Notes:         f.byKey[fieldNotes].Value(),
	}
}

func (f *TripForm) travelerCount() string {
	if v := f.byKey[fieldTravelers].Value(); v != "" {
		return v
	}
	return defaultTravelerCount
}

// SetBanner shows a message above the form, e.g. a refusal from the navigator.
func (f *TripForm) SetBanner(text string) {
	f.banner = strings.TrimSpace(text)
}

// Init focuses the first field.
func (f *TripForm) Init() tea.Cmd {
	return f.ring.focusIndex(0)
}

// Update handles key presses and returns TripSubmittedMsg once the form validates.
func (f *TripForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		cur := f.ring.current()
		switch {
		case key.Matches(keyMsg, formKeys.Submit):
			return f.submit()
		case key.Matches(keyMsg, formKeys.Confirm):
			if f.ring.atLast() {
				return f.submit()
			}
			return f.ring.move(1)
		case key.Matches(keyMsg, formKeys.Next):
			return f.ring.move(1)
		case key.Matches(keyMsg, formKeys.Prev):
			return f.ring.move(-1)
		case cur.isChoice() && key.Matches(keyMsg, formKeys.Left):
			cur.cycle(-1)
			return nil
		case cur.isChoice() && key.Matches(keyMsg, formKeys.Right):
			cur.cycle(1)
			return nil
		}
	}
	return f.ring.current().update(msg)
}

func (f *TripForm) submit() tea.Cmd {
	if first := f.Validate(); first >= 0 {
		f.banner = "Please fix the highlighted fields."
		return f.ring.focusIndex(first)
	}
	f.banner = ""
	return emit(TripSubmittedMsg{Draft: f.Draft()})
}

// Validate marks invalid fields and returns the index of the first one, or -1.
func (f *TripForm) Validate() int {
	first := -1
	for i, fld := range f.ring.fields {
		fld.err = ""
		if fld.required && fld.Value() == "" {
			fld.err = "required"
		}
		if fld.key == fieldTravelers && fld.err == "" {
			if err := checkTravelerCount(f.travelerCount(), f.opts.MaxTravelers); err != nil {
				fld.err = err.Error()
			}
		}
		if fld.err != "" && first < 0 {
			first = i
		}
	}
	return first
}

func checkTravelerCount(text string, max int) error {
	n, err := survey.ParseTravelerCount(text)
	if err != nil {
		return errors.New("enter a whole number of at least 1")
	}
	if max > 0 && n > max {
		return fmt.Errorf("at most %d travelers", max)
	}
	return nil
}

// View renders the form.
func (f *TripForm) View() string {
	lines := []string{titleStyle.Render("Record a trip")}
	if f.banner != "" {
		lines = append(lines, errorStyle.Render(f.banner), "")
	}
	for i, fld := range f.ring.fields {
		lines = append(lines, fld.view(i == f.ring.index))
	}
	lines = append(lines, hintStyle.Render(helpLine(formKeys.Confirm, formKeys.Next, formKeys.Right, formKeys.Submit)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
