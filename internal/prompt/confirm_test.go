package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func fixedLine(line string) LineReader {
	return func(string) (string, error) {
		return line, nil
	}
}

func TestConfirmSubmissionApproves(t *testing.T) {
	for _, input := range []string{"", "y", "Y", "  y  ", "\n"} {
		gate := New(&bytes.Buffer{}, fixedLine(input))
		if err := gate.ConfirmSubmission(DetailsFunc(func() {})); err != nil {
			t.Fatalf("input %q: expected approval, got %v", input, err)
		}
	}
}

func TestConfirmSubmissionDeclines(t *testing.T) {
	for _, input := range []string{"n", "N", " n "} {
		gate := New(&bytes.Buffer{}, fixedLine(input))
		err := gate.ConfirmSubmission(DetailsFunc(func() {}))
		if !errors.Is(err, ErrUserDeclined) {
			t.Fatalf("input %q: expected ErrUserDeclined, got %v", input, err)
		}
	}
}

func TestConfirmSubmissionUnrecognizedInput(t *testing.T) {
	gate := New(&bytes.Buffer{}, fixedLine("maybe"))
	err := gate.ConfirmSubmission(DetailsFunc(func() {}))
	var unrecognized *UnrecognizedInputError
	if !errors.As(err, &unrecognized) {
		t.Fatalf("expected UnrecognizedInputError, got %v", err)
	}
	if unrecognized.Input != "maybe" {
		t.Fatalf("error should carry the offending input, got %q", unrecognized.Input)
	}
}

func TestConfirmSubmissionShowsDetails(t *testing.T) {
	var buf bytes.Buffer
	shown := false
	gate := New(&buf, fixedLine("y"))
	if err := gate.ConfirmSubmission(DetailsFunc(func() { shown = true })); err != nil {
		t.Fatalf("ConfirmSubmission failed: %v", err)
	}
	if !shown {
		t.Fatal("details callback was not invoked")
	}
	if !strings.Contains(buf.String(), "Confirm transaction details:") {
		t.Fatalf("missing confirmation header: %q", buf.String())
	}
}

func TestConfirmSubmissionPromptText(t *testing.T) {
	var prompt string
	gate := New(&bytes.Buffer{}, func(text string) (string, error) {
		prompt = text
		return "", nil
	})
	if err := gate.ConfirmSubmission(DetailsFunc(func() {})); err != nil {
		t.Fatalf("ConfirmSubmission failed: %v", err)
	}
	if !strings.Contains(prompt, "Submit?") || !strings.Contains(prompt, "(Y/n)") {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
}

func TestConfirmSubmissionReadError(t *testing.T) {
	readErr := errors.New("terminal closed")
	gate := New(&bytes.Buffer{}, func(string) (string, error) {
		return "", readErr
	})
	err := gate.ConfirmSubmission(DetailsFunc(func() {}))
	if !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}
