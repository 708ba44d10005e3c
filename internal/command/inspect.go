package command

import (
	"fmt"
	"io"

	"github.com/imarsman/isoutc"
	"github.com/imarsman/isoutc/internal/config"
)

// InspectT prints every conversion stage for each input
type InspectT struct {
	cfg    *config.Config
	inputs []string
	stdin  io.Reader
	stdout io.Writer
}

// Inspect build the inspect subcommand from its arguments
func Inspect(env Env) (Command, error) {
	cfg, inputs, err := settings("inspect", env)
	if err != nil {
		return nil, err
	}

	return InspectT{
		cfg:    cfg,
		inputs: inputs,
		stdin:  env.Stdin,
		stdout: env.Stdout,
	}, nil
}

// Run print the stages, with a blank line between inputs
func (c InspectT) Run() int {
	opts := c.cfg.Options()
	status := 0
	first := true

	err := eachInput(c.inputs, c.stdin, func(in string) {
		if !first {
			fmt.Fprintln(c.stdout)
		}
		first = false

		r, err := isoutc.Inspect(in, opts)
		fmt.Fprintf(c.stdout, "input       %s\n", r.Input)
		fmt.Fprintf(c.stdout, "normalized  %s\n", r.Normalized)
		if err != nil {
			fmt.Fprintf(c.stdout, "error       %v\n", err)
			status = 1
			return
		}
		if r.Offset.Present {
			fmt.Fprintf(c.stdout, "offset      %s (correction %v)\n", r.Offset, r.Offset.Duration())
		} else {
			fmt.Fprintf(c.stdout, "offset      none\n")
		}
		if opts.Precision == isoutc.Microsecond {
			fmt.Fprintf(c.stdout, "fraction    %q (%dus)\n", r.Fraction.Digits, r.Fraction.Microseconds)
		}
		fmt.Fprintf(c.stdout, "base        %s\n", r.Base)
		fmt.Fprintf(c.stdout, "utc         %s\n", r.Timestamp)
		fmt.Fprintf(c.stdout, "source      %s\n", r.SourceTime().Format("2006-01-02T15:04:05.000000-07:00"))
	})
	if err != nil {
		log.Errorf("reading input: %s", err.Error())
		return 1
	}

	return status
}
