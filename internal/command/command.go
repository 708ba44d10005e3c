package command

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/imarsman/isoutc/internal/config"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("isoutc/cmd")

// Command a parsed subcommand ready to run. Run returns the process exit status.
type Command interface {
	Run() int
}

// Env what a subcommand reads from and writes to
type Env struct {
	Args   []string // arguments after the subcommand name
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Commands subcommands by name
var Commands = map[string]func(Env) (Command, error){
	"convert": Convert,
	"inspect": Inspect,
}

// settings register the flags shared by every subcommand, parse them and
// merge them over the config file. Returns the remaining arguments.
func settings(name string, env Env) (*config.Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)

	configF := fs.String("c", "", "YAML config file")
	secondsF := fs.Bool("s", false, "Whole second precision (default: microsecond)")
	strictF := fs.Bool("strict", false, "Reject offsets outside 00:00-23:59")
	formatF := fs.String("f", "", "Output format: iso, fields or unix (default: iso)")

	if err := fs.Parse(env.Args); err != nil {
		return nil, nil, err
	}

	cfg := config.Default()
	if *configF != "" {
		var err error
		cfg, err = config.Load(*configF)
		if err != nil {
			return nil, nil, err
		}
	}

	// Only flags given on the command line override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			if *secondsF {
				cfg.Precision = "second"
			}
		case "strict":
			cfg.Strict = *strictF
		case "f":
			cfg.Output = strings.ToLower(*formatF)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := logging.SetLogLevel("isoutc", cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	if err := logging.SetLogLevel("isoutc/cmd", cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	log.Debugf("%s settings %+v", name, *cfg)

	return cfg, fs.Args(), nil
}

// eachInput call fn for every argument, or for every non blank stdin line
// when there are no arguments.
func eachInput(args []string, stdin io.Reader, fn func(string)) error {
	if len(args) > 0 {
		for _, a := range args {
			fn(a)
		}
		return nil
	}
	if stdin == nil {
		return errors.New("no timestamps given")
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(line)
	}

	return scanner.Err()
}
