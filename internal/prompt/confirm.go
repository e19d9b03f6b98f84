package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ErrUserDeclined reports that the user answered "n" at the submission
// prompt. Declining is an error so callers cannot accidentally proceed.
var ErrUserDeclined = errors.New("transaction not submitted")

// UnrecognizedInputError reports a confirmation answer that was neither
// "y" nor "n", carrying the offending text.
type UnrecognizedInputError struct {
	Input string
}

func (e *UnrecognizedInputError) Error() string {
	return fmt.Sprintf("expected either 'y' or 'n', got '%s'", e.Input)
}

// Details renders a transaction-specific summary before the prompt.
type Details interface {
	Show()
}

// DetailsFunc adapts a plain function to the Details interface.
type DetailsFunc func()

func (f DetailsFunc) Show() { f() }

// LineReader displays a prompt and blocks until one line of input is
// available. Injected so the gate can be tested without a terminal.
type LineReader func(prompt string) (string, error)

// Gate is the single interactive checkpoint before a real transaction
// is submitted.
type Gate struct {
	out      io.Writer
	readLine LineReader
}

func New(out io.Writer, readLine LineReader) *Gate {
	return &Gate{out: out, readLine: readLine}
}

// NewStdio builds a gate over standard input and the given writer.
func NewStdio(out io.Writer) *Gate {
	reader := bufio.NewReader(os.Stdin)
	return New(out, func(text string) (string, error) {
		fmt.Fprint(out, text)
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		return line, nil
	})
}

// ConfirmSubmission shows the transaction details, prompts with "Y" as
// the marked default, and resolves on the first answer. Empty input and
// "y" approve; "n" declines; anything else is an error carrying the
// input. There is no re-prompt loop.
func (g *Gate) ConfirmSubmission(details Details) error {
	bold := color.New(color.FgHiWhite, color.Bold)
	fmt.Fprintf(g.out, "%s (skip with --skip-confirm or -y)\n", bold.Sprint("Confirm transaction details:"))
	details.Show()

	line, err := g.readLine(fmt.Sprintf("%s (%s/n): ", bold.Sprint("Submit?"), bold.Sprint("Y")))
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch answer := strings.ToLower(strings.TrimSpace(line)); answer {
	case "y", "":
		return nil
	case "n":
		return ErrUserDeclined
	default:
		return &UnrecognizedInputError{Input: answer}
	}
}
