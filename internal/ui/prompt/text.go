package prompt

import (
	"errors"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/pdash/internal/ui/styles"
)

// ErrBlank is reported inline when enter is pressed on an empty field.
var ErrBlank = errors.New("a value is required")

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

// Validator checks the trimmed value before the prompt accepts it.
type Validator func(string) error

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	validate  Validator
	err       error
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if m.err = m.check(m.value()); m.err != nil {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		m.err = nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) value() string {
	return strings.TrimSpace(m.textInput.Value())
}

// check rejects blank input before running the caller's validator.
func (m textInputModel) check(v string) error {
	if v == "" {
		return ErrBlank
	}
	if m.validate != nil {
		return m.validate(v)
	}
	return nil
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	s := m.prompt + "\n" + m.textInput.View()
	if m.err != nil {
		s += "\n" + styles.ErrorStyle.Render(m.err.Error())
	}
	return s
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

// TextInput prompts on stderr until the trimmed input is non-blank and passes
// validate (which may be nil). Validation errors are shown under the field.
func TextInput(prompt, placeholder string, validate Validator) (TextInputResult, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 64
	ti.SetWidth(40)

	model := textInputModel{
		textInput: ti,
		prompt:    prompt,
		validate:  validate,
	}
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     m.value(),
		Cancelled: m.cancelled,
	}, nil
}
