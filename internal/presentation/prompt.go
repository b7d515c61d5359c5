package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptResult carries what the user typed at the filter prompt.
type PromptResult struct {
	// Filter is the entered text; empty means "search all".
	Filter string
	// Quit is set when the user canceled (esc or ctrl+c) instead of
	// submitting.
	Quit bool
}

// promptModel is a minimal bubbletea model wrapping a single text input.
type promptModel struct {
	label  string
	input  textinput.Model
	result PromptResult
	done   bool
}

func newPromptModel(label string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. excel"
	ti.CharLimit = 128
	ti.Width = 48
	ti.Focus()
	return promptModel{label: label, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.result.Filter = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.result.Quit = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", m.label, m.input.View())
}

// PromptFilter runs the interactive filter prompt and returns the entered
// text. An empty submission means "no filter"; esc or ctrl+c sets Quit.
func PromptFilter(label string, in io.Reader, out io.Writer) (PromptResult, error) {
	p := tea.NewProgram(newPromptModel(label), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return PromptResult{}, fmt.Errorf("running filter prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok {
		return PromptResult{}, fmt.Errorf("unexpected prompt model type %T", final)
	}
	return m.result, nil
}
