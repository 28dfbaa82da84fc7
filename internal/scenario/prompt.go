package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
)

// Prompter collects a scenario over a line-oriented terminal. Every field is
// re-prompted until it validates, so only complete scenarios are returned.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// Field prompts until raw input passes ParseField. It only fails when the
// input stream ends.
func (p *Prompter) Field(f Field) (float64, error) {
	for {
		raw, err := p.readLine(f.Prompt)
		if err != nil {
			return 0, err
		}
		v, err := ParseField(f, raw)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, err.(*ValidationError).Reason)
	}
}

// Custom prompts for every entry of Fields.
func (p *Prompter) Custom() (config.ScenarioConfig, error) {
	fmt.Fprintln(p.out, "\nEnter custom simulation values:")
	values := make(map[string]float64, len(Fields))
	for _, f := range Fields {
		v, err := p.Field(f)
		if err != nil {
			return config.ScenarioConfig{}, err
		}
		values[f.Key] = v
	}
	return FromValues("Custom", values), nil
}

var menuChoices = map[string]string{
	"1": "earth",
	"2": "test_spacecraft",
}

// Select shows the scenario menu and returns the chosen scenario. ok is false
// when the operator quits.
func (p *Prompter) Select() (sc config.ScenarioConfig, ok bool, err error) {
	for {
		fmt.Fprintln(p.out, "\nSelect a Test Configuration:")
		fmt.Fprintln(p.out, "1 - Earth")
		fmt.Fprintln(p.out, "2 - Test Spacecraft")
		fmt.Fprintln(p.out, "3 - Custom Input")
		fmt.Fprintln(p.out, "Enter 'quit' to exit")

		raw, err := p.readLine("Enter your choice (1, 2, 3, or 'quit'): ")
		if err != nil {
			return config.ScenarioConfig{}, false, err
		}

		choice := strings.ToLower(strings.TrimSpace(raw))
		switch choice {
		case "quit":
			return config.ScenarioConfig{}, false, nil
		case "3":
			sc, err := p.Custom()
			return sc, err == nil, err
		default:
			if name, found := menuChoices[choice]; found {
				return *config.GetPreset(name), true, nil
			}
			fmt.Fprintln(p.out, "Invalid choice. Please enter 1, 2, 3, or 'quit'.")
		}
	}
}
