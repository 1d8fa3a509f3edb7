package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/tripsurvey/internal/survey"
)

// TravelerOptions configures the choices offered per traveler.
type TravelerOptions struct {
	AgeGroups []string
	Genders   []string
	Relations []string
}

type travelerEntry struct {
	ageGroup *field
	gender   *field
	relation *field
}

// TravelerForm pages through one entry per traveler. The first traveler is
// the respondent, so their relation is fixed to self.
type TravelerForm struct {
	entries []travelerEntry
	page    int
	ring    focusRing
	banner  string
}

// NewTravelerForm builds a form for count travelers.
func NewTravelerForm(count int, opts TravelerOptions) *TravelerForm {
	if count < 1 {
		count = 1
	}
	f := &TravelerForm{entries: make([]travelerEntry, count)}
	for i := range f.entries {
		entry := travelerEntry{
			ageGroup: newChoiceField("age_group", "Age group", withUnspecified(opts.AgeGroups)),
			gender:   newChoiceField("gender", "Gender", withUnspecified(opts.Genders)),
		}
		if i == 0 {
			entry.relation = newChoiceField("relation", "Relation", []string{survey.RelationSelf})
			entry.relation.locked = true
		} else {
			entry.relation = newChoiceField("relation", "Relation", withUnspecified(opts.Relations))
		}
		entry.ageGroup.SetValue(survey.Unspecified)
		entry.gender.SetValue(survey.Unspecified)
		if !entry.relation.locked {
			entry.relation.SetValue(survey.Unspecified)
		}
		f.entries[i] = entry
	}
	f.showPage(0)
	return f
}

func withUnspecified(options []string) []string {
	out := make([]string, 0, len(options)+1)
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), survey.Unspecified) {
			continue
		}
		out = append(out, opt)
	}
	return append(out, survey.Unspecified)
}

// Count returns how many travelers the form collects.
func (f *TravelerForm) Count() int {
	return len(f.entries)
}

// Page returns the zero-based index of the traveler being edited.
func (f *TravelerForm) Page() int {
	return f.page
}

// SetBanner shows a message above the form, e.g. a refusal from the navigator.
func (f *TravelerForm) SetBanner(text string) {
	f.banner = strings.TrimSpace(text)
}

// Travelers returns the records as currently entered, in entry order.
func (f *TravelerForm) Travelers() []survey.TravelerRecord {
	out := make([]survey.TravelerRecord, len(f.entries))
	for i, entry := range f.entries {
		out[i] = survey.TravelerRecord{
			ID:       strconv.Itoa(i + 1),
			AgeGroup: entry.ageGroup.Value(),
			Gender:   entry.gender.Value(),
			Relation: entry.relation.Value(),
		}
	}
	return out
}

func (f *TravelerForm) showPage(page int) {
	f.page = page
	entry := f.entries[page]
	fields := []*field{entry.ageGroup, entry.gender}
	if !entry.relation.locked {
		fields = append(fields, entry.relation)
	}
	f.ring = focusRing{fields: fields}
}

// Update handles key presses. It returns BackMsg when the user backs out of
// the first traveler and TravelersSubmittedMsg after the last one.
func (f *TravelerForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, formKeys.Back):
		if f.page == 0 {
			return emit(BackMsg{})
		}
		f.showPage(f.page - 1)
	case key.Matches(keyMsg, formKeys.Submit):
		return f.submit()
	case key.Matches(keyMsg, formKeys.Confirm):
		if f.page == len(f.entries)-1 {
			return f.submit()
		}
		f.showPage(f.page + 1)
	case key.Matches(keyMsg, formKeys.Next):
		f.ring.move(1)
	case key.Matches(keyMsg, formKeys.Prev):
		f.ring.move(-1)
	case key.Matches(keyMsg, formKeys.Left):
		f.ring.current().cycle(-1)
	case key.Matches(keyMsg, formKeys.Right):
		f.ring.current().cycle(1)
	}
	return nil
}

func (f *TravelerForm) submit() tea.Cmd {
	f.banner = ""
	return emit(TravelersSubmittedMsg{Travelers: f.Travelers()})
}

// View renders the current traveler page.
func (f *TravelerForm) View() string {
	title := titleStyle.Render(fmt.Sprintf("Traveler %d of %d", f.page+1, len(f.entries)))
	lines := []string{title}
	if f.banner != "" {
		lines = append(lines, errorStyle.Render(f.banner), "")
	}
	entry := f.entries[f.page]
	for _, fld := range []*field{entry.ageGroup, entry.gender, entry.relation} {
		focused := f.ring.current() == fld
		lines = append(lines, fld.view(focused))
	}
	lines = append(lines, "", f.renderProgress())
	confirm := formKeys.Confirm
	if f.page == len(f.entries)-1 {
		confirm = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish"))
	}
	lines = append(lines, hintStyle.Render(helpLine(confirm, formKeys.Right, formKeys.Next, formKeys.Back)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (f *TravelerForm) renderProgress() string {
	marks := make([]string, len(f.entries))
	for i := range f.entries {
		switch {
		case i == f.page:
			marks[i] = choiceActiveStyle.Render("●")
		case i < f.page:
			marks[i] = choiceStyle.Render("●")
		default:
			marks[i] = choiceStyle.Render("○")
		}
	}
	return strings.Join(marks, " ")
}
