package intake

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tripsurvey/internal/survey"
)

// TripSubmittedMsg carries a trip draft that passed form validation.
type TripSubmittedMsg struct {
	Draft survey.TripDraft
}

// TravelersSubmittedMsg carries one record per traveler, in entry order.
type TravelersSubmittedMsg struct {
	Travelers []survey.TravelerRecord
}

// BackMsg asks to leave the traveler form for the trip form.
type BackMsg struct{}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
