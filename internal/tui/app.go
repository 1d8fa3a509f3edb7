// internal/tui/app.go
//
// This is the terminal UI for the trip survey.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the App, which renders whatever the survey navigator says
// 2. Update: translates key presses and form messages into navigator calls
// 3. View: renders the current screen to a string
//
// The App never decides which screen comes next; it asks the navigator and
// re-renders from the state it gets back.

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/tripsurvey/internal/config"
	"github.com/kingrea/tripsurvey/internal/intake"
	"github.com/kingrea/tripsurvey/internal/logbook"
	"github.com/kingrea/tripsurvey/internal/survey"
)

const (
	menuRecordTrip = "Record New Trip"
	menuExit       = "Exit"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	badgeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#2D3748")).Foreground(lipgloss.Color("#E2E8F0")).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	stepDone     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	stepActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	stepPending  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithNavigator overrides the navigator the App drives.
func WithNavigator(nav *survey.Navigator) AppOption {
	return func(a *App) {
		if nav != nil {
			a.nav = nav
		}
	}
}

// WithLogbook overrides the journey logbook.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// WithMarkdownRenderer overrides how the success notes are rendered.
func WithMarkdownRenderer(r MarkdownRenderer) AppOption {
	return func(a *App) {
		if r != nil {
			a.renderMarkdown = r
		}
	}
}

// App is the main application model. The survey session itself lives in the
// navigator; App only holds widgets and layout.
type App struct {
	config  *config.Config
	nav     *survey.Navigator
	logbook *logbook.Logbook

	mainMenu     list.Model
	tripForm     *intake.TripForm
	travelerForm *intake.TravelerForm

	renderMarkdown MarkdownRenderer
	notes          string

	statusMsg string
	width     int
	height    int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("tui: config is required")
	}
	app := &App{
		config:   cfg,
		mainMenu: newMainMenu(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logbook == nil && cfg.SurveyDir != "" {
		lb, err := logbook.New(cfg.JourneyLogPath())
		if err != nil {
			return nil, err
		}
		app.logbook = lb
	}
	if app.nav == nil {
		navOpts := []survey.NavigatorOption{
			survey.WithMinter(survey.NewSequenceMinter(cfg.TripIDPrefix())),
		}
		if app.logbook != nil {
			navOpts = append(navOpts, survey.WithLogger(app.logbook))
		}
		app.nav = survey.NewNavigator(navOpts...)
	}
	if app.renderMarkdown == nil {
		app.renderMarkdown = NewMarkdownRenderer(72)
	}
	app.logInfo("Session %s opened", app.nav.SessionID())
	return app, nil
}

func newMainMenu() list.Model {
	items := []list.Item{
		menuItem{title: menuRecordTrip, desc: "Log one journey: where, when, how and who"},
		menuItem{title: menuExit, desc: "Close the survey"},
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Trip Survey"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	return menu
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(20, msg.Width-6), max(6, msg.Height-14))
		return a, nil

	case intake.TripSubmittedMsg:
		return a.handleTripSubmitted(msg)

	case intake.TravelersSubmittedMsg:
		return a.handleTravelersSubmitted(msg)

	case intake.BackMsg:
		return a.handleBack()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.nav.Screen() == survey.ScreenDashboard {
				return a, tea.Quit
			}
		case "enter":
			switch a.nav.Screen() {
			case survey.ScreenDashboard:
				return a.handleMainMenuSelection()
			case survey.ScreenSuccess:
				return a.returnToDashboard()
			}
		case "n":
			if a.nav.Screen() == survey.ScreenSuccess {
				return a.returnToDashboard()
			}
		}
	}

	var cmd tea.Cmd
	switch a.nav.Screen() {
	case survey.ScreenDashboard:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case survey.ScreenTripForm:
		if a.tripForm != nil {
			cmd = a.tripForm.Update(msg)
		}
	case survey.ScreenTravelerForm:
		if a.travelerForm != nil {
			cmd = a.travelerForm.Update(msg)
		}
	}
	return a, cmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	switch item.title {
	case menuRecordTrip:
		return a.startTrip()
	case menuExit:
		a.logInfo("Session %s closed", a.nav.SessionID())
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) startTrip() (tea.Model, tea.Cmd) {
	if err := a.nav.Start(); err != nil {
		a.statusMsg = refusalText(err)
		return a, nil
	}
	a.tripForm = intake.NewTripForm(a.tripOptions(), nil)
	a.statusMsg = "Fill in the trip details"
	return a, a.tripForm.Init()
}

func (a *App) handleTripSubmitted(msg intake.TripSubmittedMsg) (tea.Model, tea.Cmd) {
	if err := a.nav.SubmitTrip(msg.Draft); err != nil {
		text := refusalText(err)
		if a.tripForm != nil {
			a.tripForm.SetBanner(text)
		}
		a.statusMsg = text
		return a, nil
	}
	a.tripForm = nil
	state := a.nav.State()
	switch state.Screen {
	case survey.ScreenTravelerForm:
		a.travelerForm = intake.NewTravelerForm(state.Trip.TravelerCount, a.travelerOptions())
		a.statusMsg = fmt.Sprintf("Trip %s saved · add details for %d travelers", state.Trip.ID, state.Trip.TravelerCount)
	case survey.ScreenSuccess:
		a.enterSuccess()
	}
	return a, nil
}

func (a *App) handleTravelersSubmitted(msg intake.TravelersSubmittedMsg) (tea.Model, tea.Cmd) {
	if err := a.nav.SubmitTravelers(msg.Travelers); err != nil {
		text := refusalText(err)
		if a.travelerForm != nil {
			a.travelerForm.SetBanner(text)
		}
		a.statusMsg = text
		return a, nil
	}
	a.travelerForm = nil
	a.enterSuccess()
	return a, nil
}

func (a *App) handleBack() (tea.Model, tea.Cmd) {
	if err := a.nav.Back(); err != nil {
		a.statusMsg = refusalText(err)
		return a, nil
	}
	a.travelerForm = nil
	var draft *survey.TripDraft
	if trip := a.nav.State().Trip; trip != nil {
		d := trip.Draft()
		draft = &d
	}
	a.tripForm = intake.NewTripForm(a.tripOptions(), draft)
	a.statusMsg = "Back to trip details · your entries were kept"
	return a, a.tripForm.Init()
}

func (a *App) enterSuccess() {
	a.notes = ""
	if a.renderMarkdown != nil {
		if out, err := a.renderMarkdown(nextStepsMarkdown); err == nil {
			a.notes = out
		}
	}
	if conf, err := a.Confirmation(); err == nil {
		a.statusMsg = fmt.Sprintf("Trip %s submitted", conf.TripID)
	}
}

// returnToDashboard transitions back to the dashboard and drops the session.
func (a *App) returnToDashboard() (tea.Model, tea.Cmd) {
	if err := a.nav.ReturnToDashboard(); err != nil {
		a.statusMsg = refusalText(err)
		return a, nil
	}
	a.tripForm = nil
	a.travelerForm = nil
	a.notes = ""
	a.statusMsg = ""
	return a, nil
}

// Confirmation derives what the success screen shows.
func (a *App) Confirmation() (survey.Confirmation, error) {
	return survey.DeriveConfirmation(a.nav.State())
}

func (a *App) tripOptions() intake.TripOptions {
	return intake.TripOptions{
		TravelModes:  a.config.TravelModes(),
		MaxTravelers: a.config.MaxTravelers(),
	}
}

func (a *App) travelerOptions() intake.TravelerOptions {
	return intake.TravelerOptions{
		AgeGroups: a.config.AgeGroups(),
		Genders:   a.config.Genders(),
		Relations: a.config.Relations(),
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.nav.Screen() {
	case survey.ScreenDashboard:
		content = a.renderDashboard()
	case survey.ScreenTripForm:
		if a.tripForm != nil {
			content = a.tripForm.View()
		}
	case survey.ScreenTravelerForm:
		if a.travelerForm != nil {
			content = a.travelerForm.View()
		}
	case survey.ScreenSuccess:
		content = a.renderSuccess()
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("⬡ KERALA TRIP SURVEY"),
		subtitleStyle.Render("Transportation planning research · one trip at a time"),
	)
	body := boxStyle.Width(max(40, width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderProgress(), "", content),
	)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderDashboard() string {
	hint := mutedStyle.MarginTop(1).Render("Enter → select    q → quit")
	return lipgloss.JoinVertical(lipgloss.Left, a.mainMenu.View(), hint)
}

func (a *App) renderSuccess() string {
	conf, err := a.Confirmation()
	if err != nil {
		return fmt.Sprintf("⚠ %s", refusalText(err))
	}
	row := func(label, value string) string {
		return mutedStyle.Width(14).Render(label) + value
	}
	summary := lipgloss.JoinVertical(lipgloss.Left,
		row("Trip ID", badgeStyle.Render(conf.TripID)),
		row("Route", "📍 "+conf.Route),
		row("Travel mode", conf.TravelMode),
		row("Travelers", conf.TravelerLabel),
	)
	parts := []string{
		successStyle.Render("✔ Trip data submitted successfully!"),
		mutedStyle.Render("Thank you for contributing to Kerala's transportation planning research."),
		"",
		boxStyle.Render(summary),
	}
	if a.notes != "" {
		parts = append(parts, "", a.notes)
	}
	parts = append(parts, mutedStyle.MarginTop(1).Render("Enter → return to dashboard"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderProgress shows where the session is in the wizard.
func (a *App) renderProgress() string {
	screen := a.nav.Screen()
	if screen == survey.ScreenDashboard {
		return mutedStyle.Render("Ready to record a trip.")
	}
	steps := []struct {
		label  string
		screen survey.Screen
	}{
		{"Trip details", survey.ScreenTripForm},
		{"Travelers", survey.ScreenTravelerForm},
		{"Done", survey.ScreenSuccess},
	}
	state := a.nav.State()
	skipTravelers := state.Trip != nil && state.Trip.TravelerCount == 1 && screen == survey.ScreenSuccess
	var parts []string
	for _, step := range steps {
		label := step.label
		if step.screen == survey.ScreenTravelerForm && skipTravelers {
			label += " (skipped)"
		}
		switch {
		case step.screen == screen:
			parts = append(parts, stepActive.Render("● "+label))
		case step.screen < screen:
			parts = append(parts, stepDone.Render("✓ "+label))
		default:
			parts = append(parts, stepPending.Render("○ "+label))
		}
	}
	return strings.Join(parts, stepPending.Render("  →  "))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil || !a.config.ShowLogPanel() {
		return ""
	}
	lines, total := a.logbook.Tail(a.config.LogLines())
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d entries)", fileName, total))
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func refusalText(err error) string {
	if err == nil {
		return ""
	}
	text := strings.TrimPrefix(err.Error(), "survey: ")
	if text == "" {
		return ""
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
