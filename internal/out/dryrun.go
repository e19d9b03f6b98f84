package out

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gustavo/contract-cli/internal/balance"
	"github.com/gustavo/contract-cli/internal/extrinsics"
)

const storageDepositKey = "Storage Total Deposit"

// MaxKeyColWidth fits the widest label the dry-run report prints.
const MaxKeyColWidth = len(storageDepositKey) + 1

// ErrInvalidDebugEncoding reports a debug-message buffer that is not
// valid UTF-8.
var ErrInvalidDebugEncoding = errors.New("error decoding utf8 debug message bytes")

// Row is one rendered display line of a dry-run report.
type Row struct {
	Label string
	Value string
}

// RenderDryRun renders a dry-run outcome as ordered (label, value) rows:
// the three fixed numeric rows first, then the debug message split into
// lines, with only the first line labeled.
func RenderDryRun(outcome *extrinsics.DryRunOutcome) ([]Row, error) {
	debugRows, err := RenderDryRunDebug(outcome)
	if err != nil {
		return nil, err
	}
	rows := []Row{
		{Label: "Gas Consumed", Value: outcome.GasConsumed.String()},
		{Label: "Gas Required", Value: outcome.GasRequired.String()},
		{Label: storageDepositKey, Value: balance.Format(outcome.StorageDeposit, balance.NativeDecimals)},
	}
	return append(rows, debugRows...), nil
}

// RenderDryRunDebug renders only the debug-message rows, for callers
// that want contract logs without the numeric summary.
func RenderDryRunDebug(outcome *extrinsics.DryRunOutcome) ([]Row, error) {
	if len(outcome.DebugMessage) == 0 {
		return nil, nil
	}
	if !utf8.Valid(outcome.DebugMessage) {
		return nil, ErrInvalidDebugEncoding
	}

	text := strings.TrimSuffix(string(outcome.DebugMessage), "\n")
	rows := make([]Row, 0, 4)
	for i, line := range strings.Split(text, "\n") {
		label := ""
		if i == 0 {
			label = "Debug Message"
		}
		rows = append(rows, Row{Label: label, Value: strings.TrimSuffix(line, "\r")})
	}
	return rows, nil
}

// WriteRows prints rows with labels right-aligned to the given width.
func WriteRows(w io.Writer, width int, rows []Row) {
	for _, row := range rows {
		NameValue(w, width, row.Label, row.Value)
	}
}

// NotExecutedNotice warns that the dry run did not change chain state
// and explains how to submit for real.
func NotExecutedNotice(w io.Writer, command string) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "Your %s call %s been executed.\n", command, bold.Sprint("has not"))
	fmt.Fprintf(w, "To submit the transaction and execute the call on chain, add %s flag to the command.\n", bold.Sprint("-x/--execute"))
}
