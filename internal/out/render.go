package out

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// DefaultKeyColWidth is the label column width for status lines.
const DefaultKeyColWidth = 13

var (
	labelColor  = color.New(color.FgMagenta, color.Bold)
	statusColor = color.New(color.FgGreen, color.Bold)
	brightBold  = color.New(color.FgHiWhite, color.Bold)
)

// NameValue prints a single "label value" row with the label
// right-aligned to the given column width.
func NameValue(w io.Writer, width int, label, value string) {
	padded := fmt.Sprintf("%*s", width, label)
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint(padded), value)
}

// DryRunningStatus announces that a dry run of the named message is in
// progress.
func DryRunningStatus(w io.Writer, msg string) {
	padded := fmt.Sprintf("%*s", DefaultKeyColWidth, "Dry-running")
	fmt.Fprintf(w, "%s %s (skip with --skip-dry-run)\n", statusColor.Sprint(padded), brightBold.Sprint(msg))
}

// GasRequiredSuccess reports the gas estimate a successful dry run
// produced.
func GasRequiredSuccess(w io.Writer, gas string) {
	padded := fmt.Sprintf("%*s", DefaultKeyColWidth, "Success!")
	fmt.Fprintf(w, "%s Gas required estimated at %s\n", statusColor.Sprint(padded), color.New(color.FgHiWhite).Sprint(gas))
}
