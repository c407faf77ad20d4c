package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// INPUT PROMPTS
// Все обязательные и числовые поля перезапрашиваются до валидного ввода.
// ══════════════════════════════════════════════════════════════════════════════

// prompter reads line-oriented user input with inline validation.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line. io.EOF when input ends.
func (p *prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ask prints the prompt and reads one line.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

// askRequired re-prompts until a non-empty value is entered.
func (p *prompter) askRequired(label string) (string, error) {
	for {
		value, err := p.ask(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(p.out, "This field is required. Please enter a value.")
	}
}

// askOptional reads a value that may be empty.
func (p *prompter) askOptional(label string) (string, error) {
	return p.ask(label + " (optional)")
}

// askFloat re-prompts until a number within [min, max] is entered.
// An empty line yields the default value.
func (p *prompter) askFloat(label string, min, max, defaultVal float64) (float64, error) {
	for {
		value, err := p.ask(fmt.Sprintf("%s (%.1f-%.1f)", label, min, max))
		if err != nil {
			return 0, err
		}
		if value == "" {
			return defaultVal, nil
		}

		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a valid number.")
			continue
		}
		if f < min {
			fmt.Fprintf(p.out, "Value must be at least %.1f\n", min)
			continue
		}
		if f > max {
			fmt.Fprintf(p.out, "Value must be at most %.1f\n", max)
			continue
		}
		return f, nil
	}
}

// askInt re-prompts until a non-negative integer is entered.
// An empty line yields the default value.
func (p *prompter) askInt(label string, defaultVal int) (int, error) {
	for {
		value, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		if value == "" {
			return defaultVal, nil
		}

		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			fmt.Fprintln(p.out, "Please enter a valid number.")
			continue
		}
		return n, nil
	}
}

// askDate re-prompts until a valid YYYY-MM-DD date is entered.
func (p *prompter) askDate(label string) (string, error) {
	for {
		value, err := p.askRequired(label + " (YYYY-MM-DD)")
		if err != nil {
			return "", err
		}
		if timeutil.IsValidISODate(value) {
			return value, nil
		}
		fmt.Fprintln(p.out, "Please enter date in YYYY-MM-DD format (e.g., 2000-01-15)")
	}
}
