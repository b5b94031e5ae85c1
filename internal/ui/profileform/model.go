package profileform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/study-planner/internal/model"
	"github.com/nhle/study-planner/internal/theme"
)

const dateLayout = "2006-01-02"

// ProfileSubmitMsg is dispatched when the user saves the profile.
// AvatarPath is a local image file to upload, empty when unchanged.
type ProfileSubmitMsg struct {
	Profile    model.Profile
	AvatarPath string
}

// ProfileFormCancelMsg is dispatched when the user cancels the form.
type ProfileFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username   string
	age        string
	dob        string
	gender     string
	bio        string
	avatarPath string
}

// Model is the Bubble Tea model for the profile edit form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	current model.Profile
	width   int
	height  int
}

// New creates a new profile form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the stored profile. current may be nil
// on first run.
func (m *Model) Start(current *model.Profile) tea.Cmd {
	if current != nil {
		m.current = *current
	} else {
		m.current = model.Profile{}
	}

	m.fb.username = m.current.Username
	m.fb.age = m.current.Age
	m.fb.gender = m.current.Gender
	m.fb.bio = m.current.Bio
	m.fb.avatarPath = ""
	if m.current.DateOfBirth != nil {
		m.fb.dob = m.current.DateOfBirth.Format(dateLayout)
	} else {
		m.fb.dob = ""
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the profile form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ProfileFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the profile form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Profile") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Placeholder("Enter username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
		huh.NewInput().
			Title("Age").
			Placeholder("Enter age").
			Value(&m.fb.age),
		huh.NewInput().
			Title("Date of Birth").
			Placeholder(dateLayout + " (optional)").
			Value(&m.fb.dob).
			Validate(validateOptionalDate),
		huh.NewSelect[string]().
			Title("Gender").
			Options(
				huh.NewOption("Prefer not to say", ""),
				huh.NewOption("Male", "Male"),
				huh.NewOption("Female", "Female"),
				huh.NewOption("Other", "Other"),
			).
			Value(&m.fb.gender),
		huh.NewText().
			Title("Bio").
			Placeholder("Tell us about yourself").
			Value(&m.fb.bio),
		huh.NewInput().
			Title("Profile Photo").
			Placeholder("Path to an image file (optional)").
			Value(&m.fb.avatarPath),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	p := m.current
	p.Username = m.fb.username
	p.Age = m.fb.age
	p.Gender = m.fb.gender
	p.Bio = m.fb.bio

	if s := strings.TrimSpace(m.fb.dob); s != "" {
		if t, err := time.Parse(dateLayout, s); err == nil {
			p.DateOfBirth = &t
		}
	} else {
		p.DateOfBirth = nil
	}

	avatarPath := strings.TrimSpace(m.fb.avatarPath)
	return func() tea.Msg { return ProfileSubmitMsg{Profile: p, AvatarPath: avatarPath} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
