package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/imarsman/isoutc"
	"github.com/imarsman/isoutc/internal/config"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ConvertT converts timestamps to UTC, one output line per input
type ConvertT struct {
	cfg    *config.Config
	inputs []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Convert build the convert subcommand from its arguments
func Convert(env Env) (Command, error) {
	cfg, inputs, err := settings("convert", env)
	if err != nil {
		return nil, err
	}

	return ConvertT{
		cfg:    cfg,
		inputs: inputs,
		stdin:  env.Stdin,
		stdout: env.Stdout,
		stderr: env.Stderr,
	}, nil
}

// Run convert every input and print a summary to stderr
func (c ConvertT) Run() int {
	opts := c.cfg.Options()
	s := summary{failures: map[string]int{}}

	err := eachInput(c.inputs, c.stdin, func(in string) {
		s.total++
		ts, err := isoutc.ParseWithOptions(in, opts)
		if err != nil {
			s.fail(err)
			log.Debugf("convert %q: %v", in, err)
			fmt.Fprintf(c.stdout, "ERROR %s: %v\n", in, err)
			return
		}
		line, err := formatTimestamp(ts, c.cfg.Output, opts.Precision)
		if err != nil {
			s.fail(err)
			fmt.Fprintf(c.stdout, "ERROR %s: %v\n", in, err)
			return
		}
		fmt.Fprintln(c.stdout, line)
	})
	if err != nil {
		log.Errorf("reading input: %s", err.Error())
		return 1
	}

	s.print(c.stderr)
	if len(s.failures) > 0 {
		return 1
	}
	return 0
}

func formatTimestamp(ts isoutc.Timestamp, output string, precision isoutc.Precision) (string, error) {
	switch output {
	case config.OutputFields:
		if precision == isoutc.Second {
			return fmt.Sprintf("%d %d %d %d %d %d",
				ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second), nil
		}
		return fmt.Sprintf("%d %d %d %d %d %d %d",
			ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second, ts.Microsecond), nil
	case config.OutputUnix:
		if precision == isoutc.Second {
			return fmt.Sprint(ts.Time().Unix()), nil
		}
		micro, err := ts.UnixMicro()
		if err != nil {
			return "", err
		}
		return fmt.Sprint(micro), nil
	}

	if precision == isoutc.Second {
		return ts.ISO8601(), nil
	}
	return ts.ISO8601Micro(), nil
}

type summary struct {
	total    int
	failures map[string]int // count by error kind
}

func (s *summary) fail(err error) {
	kind := err.Error()
	var pe *isoutc.ParseError
	if errors.As(err, &pe) {
		kind = pe.Err.Error()
	}
	s.failures[kind]++
}

func (s *summary) failed() int {
	var n int
	for _, v := range s.failures {
		n += v
	}
	return n
}

//	converted 1,234 of 1,240 timestamps
//	  malformed offset: 6
func (s *summary) print(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "converted %d of %d timestamps\n", s.total-s.failed(), s.total)

	kinds := maps.Keys(s.failures)
	slices.Sort(kinds)
	for _, k := range kinds {
		p.Fprintf(w, "  %s: %d\n", k, s.failures[k])
	}
}
