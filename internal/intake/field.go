package intake

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Width(18)
	labelFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Width(18)
	choiceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	choiceActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
)

// field is either a free-text input or a fixed list of options.
type field struct {
	key      string
	label    string
	required bool
	input    textinput.Model
	options  []string
	choice   int
	locked   bool
	err      string
}

func newTextField(key, label, placeholder string, required bool) *field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 120
	return &field{key: key, label: label, required: required, input: in}
}

func newChoiceField(key, label string, options []string) *field {
	opts := make([]string, len(options))
	copy(opts, options)
	return &field{key: key, label: label, required: true, options: opts}
}

func (f *field) isChoice() bool {
	return f.options != nil
}

// Value returns the trimmed text or the selected option.
func (f *field) Value() string {
	if f.isChoice() {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// SetValue selects the matching option, or sets the text.
func (f *field) SetValue(value string) {
	if !f.isChoice() {
		f.input.SetValue(value)
		return
	}
	target := strings.TrimSpace(value)
	for i, opt := range f.options {
		if strings.EqualFold(opt, target) {
			f.choice = i
			return
		}
	}
	if target != "" {
		f.options = append(f.options, target)
		f.choice = len(f.options) - 1
	}
}

func (f *field) focus() tea.Cmd {
	if f.isChoice() {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if !f.isChoice() {
		f.input.Blur()
	}
}

func (f *field) cycle(delta int) {
	if !f.isChoice() || f.locked || len(f.options) == 0 {
		return
	}
	n := len(f.options)
	f.choice = (f.choice + delta + n) % n
	f.err = ""
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	if f.isChoice() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		f.err = ""
	}
	return cmd
}

func (f *field) view(focused bool) string {
	label := labelStyle.Render(f.label)
	if focused {
		label = labelFocusedStyle.Render(f.label)
	}
	var body string
	if f.isChoice() {
		body = f.renderChoice(focused)
	} else {
		body = f.input.View()
	}
	line := label + body
	if f.err != "" {
		line += "  " + errorStyle.Render(f.err)
	}
	return line
}

func (f *field) renderChoice(focused bool) string {
	if len(f.options) == 0 {
		return choiceStyle.Render("(none)")
	}
	value := f.options[f.choice]
	if f.locked {
		return choiceStyle.Render(value)
	}
	if !focused {
		return choiceStyle.Render(value)
	}
	return choiceActiveStyle.Render(fmt.Sprintf("‹ %s ›", value)) +
		choiceStyle.Render(fmt.Sprintf("  (%d/%d)", f.choice+1, len(f.options)))
}

// focusRing moves focus across a slice of fields.
type focusRing struct {
	fields []*field
	index  int
}

func (r *focusRing) current() *field {
	if len(r.fields) == 0 {
		return nil
	}
	return r.fields[r.index]
}

func (r *focusRing) move(delta int) tea.Cmd {
	if len(r.fields) == 0 {
		return nil
	}
	r.fields[r.index].blur()
	n := len(r.fields)
	r.index = (r.index + delta + n) % n
	return r.fields[r.index].focus()
}

func (r *focusRing) focusIndex(idx int) tea.Cmd {
	if idx < 0 || idx >= len(r.fields) {
		return nil
	}
	r.fields[r.index].blur()
	r.index = idx
	return r.fields[r.index].focus()
}

func (r *focusRing) atLast() bool {
	return r.index == len(r.fields)-1
}
