package extrinsics

import "fmt"

// Verbosity controls how much status output a command prints around the
// dry-run and submission flow.
type Verbosity int

const (
	VerbosityDefault Verbosity = iota
	VerbosityQuiet
	VerbosityVerbose
)

func NewVerbosity(verbose, quiet bool) (Verbosity, error) {
	if verbose && quiet {
		return VerbosityDefault, fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if quiet {
		return VerbosityQuiet, nil
	}
	if verbose {
		return VerbosityVerbose, nil
	}
	return VerbosityDefault, nil
}

func (v Verbosity) IsQuiet() bool   { return v == VerbosityQuiet }
func (v Verbosity) IsVerbose() bool { return v == VerbosityVerbose }
