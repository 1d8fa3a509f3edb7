package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/tripsurvey/internal/config"
	"github.com/kingrea/tripsurvey/internal/intake"
	"github.com/kingrea/tripsurvey/internal/survey"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	workDir := t.TempDir()
	if err := config.InitDir(workDir); err != nil {
		t.Fatalf("init survey dir: %v", err)
	}
	cfg, err := config.NewConfig(workDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	clock := func() time.Time { return time.UnixMilli(1_700_000_654_321) }
	nav := survey.NewNavigator(survey.WithMinter(survey.NewSequenceMinter(cfg.TripIDPrefix(), survey.WithClock(clock))))
	app, err := NewApp(cfg, WithNavigator(nav), WithMarkdownRenderer(PlainMarkdown))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	send(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func send(t *testing.T, app *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := app.Update(msg)
	if model != app {
		t.Fatalf("unexpected model: %T", model)
	}
	return cmd
}

// follow runs cmd and feeds intake messages back into the app until the chain ends.
func follow(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		switch msg := cmd().(type) {
		case intake.TripSubmittedMsg, intake.TravelersSubmittedMsg, intake.BackMsg:
			cmd = send(t, app, msg)
		default:
			return
		}
	}
}

func pressKey(t *testing.T, app *App, k tea.KeyType) tea.Cmd {
	t.Helper()
	return send(t, app, tea.KeyMsg{Type: k})
}

func typeRunes(t *testing.T, app *App, text string) {
	t.Helper()
	for _, r := range text {
		send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func kochiDraft(count string) survey.TripDraft {
	return survey.TripDraft{
		Origin:        "Kochi",
		Destination:   "Trivandrum",
		DepartureTime: "2024-03-01 08:30",
		TravelMode:    "Bus",
		Purpose:       "Work",
		TravelerCount: count,
	}
}

func startTrip(t *testing.T, app *App) {
	t.Helper()
	pressKey(t, app, tea.KeyEnter)
	if got := app.nav.Screen(); got != survey.ScreenTripForm {
		t.Fatalf("screen = %s, want trip-form", got)
	}
	if app.tripForm == nil {
		t.Fatalf("trip form not created")
	}
}

func TestSingleTravelerSkipsTravelerForm(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	send(t, app, intake.TripSubmittedMsg{Draft: kochiDraft("1")})
	if got := app.nav.Screen(); got != survey.ScreenSuccess {
		t.Fatalf("screen = %s, want success", got)
	}
	if app.travelerForm != nil {
		t.Fatalf("traveler form must never be built for a single traveler")
	}
	conf, err := app.Confirmation()
	if err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	if conf.TripID != "TRP654321-0001" || conf.TravelerLabel != "1 person" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
	view := app.View()
	for _, want := range []string{"TRP654321-0001", "Kochi → Trivandrum", "1 person", "What happens next?", "Travelers (skipped)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("success view missing %q:\n%s", want, view)
		}
	}
}

func TestMultiTravelerFlowRefusesShortList(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	send(t, app, intake.TripSubmittedMsg{Draft: kochiDraft("3")})
	if got := app.nav.Screen(); got != survey.ScreenTravelerForm {
		t.Fatalf("screen = %s, want traveler-form", got)
	}
	if app.travelerForm == nil || app.travelerForm.Count() != 3 {
		t.Fatalf("traveler form should collect 3 travelers")
	}
	two := app.travelerForm.Travelers()[:2]
	send(t, app, intake.TravelersSubmittedMsg{Travelers: two})
	if got := app.nav.Screen(); got != survey.ScreenTravelerForm {
		t.Fatalf("short list must not advance, screen = %s", got)
	}
	if !strings.Contains(app.statusMsg, "does not match") {
		t.Fatalf("status should explain the mismatch, got %q", app.statusMsg)
	}
	if !strings.Contains(app.View(), "want 3, got 2") {
		t.Fatalf("traveler form should show the refusal banner")
	}
	send(t, app, intake.TravelersSubmittedMsg{Travelers: app.travelerForm.Travelers()})
	if got := app.nav.Screen(); got != survey.ScreenSuccess {
		t.Fatalf("screen = %s, want success", got)
	}
	if !strings.Contains(app.View(), "3 people") {
		t.Fatalf("success view should pluralize travelers")
	}
}

func TestBackRestoresTripDraft(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	draft := kochiDraft("2")
	draft.Notes = "return same day"
	send(t, app, intake.TripSubmittedMsg{Draft: draft})
	id := app.nav.State().Trip.ID
	send(t, app, intake.BackMsg{})
	if got := app.nav.Screen(); got != survey.ScreenTripForm {
		t.Fatalf("screen = %s, want trip-form", got)
	}
	if app.tripForm == nil {
		t.Fatalf("trip form not rebuilt on back")
	}
	if got := app.tripForm.Draft(); got != draft {
		t.Fatalf("form draft = %+v, want %+v", got, draft)
	}
	send(t, app, intake.TripSubmittedMsg{Draft: draft})
	if got := app.nav.State().Trip.ID; got != id {
		t.Fatalf("trip id changed after back: %s -> %s", id, got)
	}
}

func TestReturnToDashboardClearsSession(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	send(t, app, intake.TripSubmittedMsg{Draft: kochiDraft("1")})
	pressKey(t, app, tea.KeyEnter)
	state := app.nav.State()
	if state.Screen != survey.ScreenDashboard || state.Trip != nil || len(state.Travelers) != 0 {
		t.Fatalf("session not cleared: %+v", state)
	}
	if app.tripForm != nil || app.travelerForm != nil {
		t.Fatalf("forms should be dropped on return")
	}
	if !strings.Contains(app.View(), "Record New Trip") {
		t.Fatalf("dashboard menu not rendered")
	}
}

func TestInvalidCountFromFormIsRefused(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	send(t, app, intake.TripSubmittedMsg{Draft: kochiDraft("0")})
	if got := app.nav.Screen(); got != survey.ScreenTripForm {
		t.Fatalf("screen = %s, want trip-form", got)
	}
	if !strings.Contains(app.statusMsg, "positive integer") {
		t.Fatalf("status should explain the refusal, got %q", app.statusMsg)
	}
}

func TestKeyboardDrivenSingleTrip(t *testing.T) {
	app := newTestApp(t)
	startTrip(t, app)
	typeRunes(t, app, "Kochi")
	pressKey(t, app, tea.KeyTab)
	typeRunes(t, app, "Trivandrum")
	pressKey(t, app, tea.KeyTab)
	typeRunes(t, app, "08:30")
	pressKey(t, app, tea.KeyTab)
	pressKey(t, app, tea.KeyTab)
	pressKey(t, app, tea.KeyTab)
	typeRunes(t, app, "Education")
	follow(t, app, pressKey(t, app, tea.KeyCtrlS))
	if got := app.nav.Screen(); got != survey.ScreenSuccess {
		t.Fatalf("screen = %s, want success\n%s", got, app.View())
	}
	trip := app.nav.State().Trip
	if trip.TravelMode != "Bus" || trip.Purpose != "Education" || trip.TravelerCount != 1 {
		t.Fatalf("unexpected trip: %+v", trip)
	}
}

func TestLogPanelShowsJourney(t *testing.T) {
	app := newTestApp(t)
	app.nav = survey.NewNavigator(survey.WithLogger(app.logbook))
	startTrip(t, app)
	send(t, app, intake.TripSubmittedMsg{Draft: kochiDraft("1")})
	view := app.View()
	if !strings.Contains(view, "LOG · journey.log") {
		t.Fatalf("log panel missing:\n%s", view)
	}
	if !strings.Contains(view, "accepted") {
		t.Fatalf("log panel should show navigator decisions:\n%s", view)
	}
}

func TestQuitFromDashboard(t *testing.T) {
	app := newTestApp(t)
	cmd := send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
