// Package cli scans the program's command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// OptionNone is the value of Result.Option when --option is not given.
const OptionNone = "(none)"

// Exit codes reported by Parse.
const (
	ExitOK              = 0
	ExitMissingValue    = 1
	ExitInvalidArgument = 2
)

var (
	ErrMissingValue    = errors.New("missing value")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Result is the outcome of a successful or failed scan.
type Result struct {
	Option string
	Files  []string

	// Proceed is false when the program should exit with ExitCode instead of
	// opening its window (help, version, or a bad argument).
	Proceed  bool
	ExitCode int
}

// Parse scans args (without the program name) left to right. Help and
// version text is written to out.
func Parse(args []string, out io.Writer) (*Result, error) {
	res := &Result{Option: OptionNone, Proceed: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help":
			PrintUsage(out)
			res.Proceed = false
			res.ExitCode = ExitOK
			return res, nil
		case arg == "--version":
			PrintVersion(out)
			res.Proceed = false
			res.ExitCode = ExitOK
			return res, nil
		case arg == "--option":
			if i+1 >= len(args) {
				res.Proceed = false
				res.ExitCode = ExitMissingValue
				return res, fmt.Errorf("%w: %s", ErrMissingValue, arg)
			}
			i++
			res.Option = args[i]
		case strings.HasPrefix(arg, "-"):
			res.Proceed = false
			res.ExitCode = ExitInvalidArgument
			return res, fmt.Errorf("%w: %s", ErrInvalidArgument, arg)
		default:
			res.Files = append(res.Files, arg)
		}
	}

	return res, nil
}
