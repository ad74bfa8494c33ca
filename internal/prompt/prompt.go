// Package prompt collects interactive input. Prompter is the seam between
// the terminal and everything that asks the user a question.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	// ErrNoInput means the input source ran dry before a value was given.
	ErrNoInput = errors.New("no input")
	// ErrTooManyAttempts means AskNonEmpty used up its attempts.
	ErrTooManyAttempts = errors.New("too many empty answers")
)

// Prompter asks one question and returns the raw answer.
type Prompter interface {
	Prompt(label string, secret bool) (string, error)
}

// LinePrompter reads answers one line at a time. It is used when stdin is
// not a terminal and in tests.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Prompt(label string, _ bool) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalPrompter uses promptui, masking secrets.
type TerminalPrompter struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (p TerminalPrompter) Prompt(label string, secret bool) (string, error) {
	pr := promptui.Prompt{
		Label:    label,
		Validate: nonEmpty,
		Stdin:    p.Stdin,
		Stdout:   p.Stdout,
	}
	if secret {
		pr.Mask = '*'
	}
	answer, err := pr.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", ErrNoInput
	}
	return answer, err
}

func nonEmpty(input string) error {
	if input == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}

// AskNonEmpty repeats the question until a non-empty answer arrives.
// maxAttempts <= 0 means no limit.
func AskNonEmpty(p Prompter, label string, secret bool, maxAttempts int) (string, error) {
	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		answer, err := p.Prompt(label, secret)
		if err != nil {
			return "", fmt.Errorf("%s: %w", label, err)
		}
		if answer != "" {
			return answer, nil
		}
	}
	return "", fmt.Errorf("%s: %w", label, ErrTooManyAttempts)
}
