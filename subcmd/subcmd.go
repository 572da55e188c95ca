// Package subcmd wraps flag.FlagSet with the usage text and positional
// argument handling shared by the cli's commands.
package subcmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingArg is returned by Arg when a required argument is absent.
var ErrMissingArg = errors.New("missing argument")

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		name:    name,
		doc:     doc,
	}
	sc.FlagSet.Usage = func() { sc.PrintUsage(sc.FlagSet.Output()) }
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	name string
	doc  string
	arg  *arg
}

type arg struct {
	name     string
	typename string
	usage    string
	required bool
}

// SetArg documents the positional argument. Arg fails if it is required
// and absent.
func (sc *Subcommand) SetArg(name, typname, usage string, required bool) *Subcommand {
	sc.arg = &arg{name, typname, usage, required}
	return sc
}

// Arg returns the positional arguments joined by spaces, so that queries
// like "king gnu" need no quoting.
func (sc *Subcommand) Arg() (string, error) {
	value := strings.TrimSpace(strings.Join(sc.Args(), " "))
	if value == "" && sc.arg != nil && sc.arg.required {
		sc.PrintUsage(sc.FlagSet.Output())
		return "", fmt.Errorf("%s: %w <%s>", sc.name, ErrMissingArg, sc.arg.name)
	}
	return value, nil
}

func (sc *Subcommand) PrintUsage(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	argSuffix := ""
	if sc.arg != nil {
		argSuffix = fmt.Sprintf(" <%s>", sc.arg.name)
		if !sc.arg.required {
			argSuffix = fmt.Sprintf(" [%s]", sc.arg.name)
		}
	}
	fmt.Fprintf(w, "\n%s\n\n", sc.doc)
	fmt.Fprintf(w, "  oshinavi %s [flags]%s\n\n", sc.name, argSuffix)
	fmt.Fprintf(w, "flags:\n")
	sc.FlagSet.SetOutput(w)
	sc.FlagSet.PrintDefaults()
	if sc.arg != nil {
		fmt.Fprintf(w, "  <%s> %s\n", sc.arg.name, sc.arg.typename)
		fmt.Fprintf(w, "  \t%s\n", sc.arg.usage)
	}
}
