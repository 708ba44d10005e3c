package command_test

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imarsman/isoutc/internal/command"
	"github.com/matryer/is"
)

func run(t *testing.T, name string, args []string, stdin string) (status int, stdout, stderr string) {
	t.Helper()
	is := is.New(t)

	var out, errOut bytes.Buffer
	env := command.Env{
		Args:   args,
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	}
	cmd, err := command.Commands[name](env)
	is.NoErr(err) // Command should build

	status = cmd.Run()
	return status, out.String(), errOut.String()
}

func TestConvertArgs(t *testing.T) {
	is := is.New(t)

	status, out, errOut := run(t, "convert", []string{
		"2022-02-20T15:35:30.888777-09:30",
		"2022-02-20",
		"15:35:30",
	}, "")
	is.Equal(status, 0) // All converted
	is.Equal(out, "2022-02-21T01:05:30.888777Z\n2022-02-20T00:00:00.000000Z\n1000-01-01T15:35:30.000000Z\n")
	is.Equal(errOut, "converted 3 of 3 timestamps\n")
}

func TestConvertStdin(t *testing.T) {
	is := is.New(t)

	status, out, _ := run(t, "convert", []string{"-s"}, "2022-02-20T15:35:30.888+09:30\r\n\n   \n15:35:30\n")
	is.Equal(status, 0) // Blank lines skipped
	is.Equal(out, "2022-02-20T06:05:30Z\n1000-01-01T15:35:30Z\n")
}

func TestConvertFailures(t *testing.T) {
	is := is.New(t)

	status, out, errOut := run(t, "convert", []string{
		"-strict",
		"2022-02-20T15:35:30-09:30",
		"bad",
		"2022-02-20T15:35:30+25:00",
		"2022-13-01",
	}, "")
	is.Equal(status, 1) // Some inputs failed

	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(len(lines), 4)
	is.Equal(lines[0], "2022-02-21T01:05:30.000000Z")
	is.True(strings.HasPrefix(lines[1], "ERROR bad: ")) // Failure is reported in place
	is.True(strings.HasPrefix(lines[2], "ERROR 2022-02-20T15:35:30+25:00: "))

	is.Equal(errOut, "converted 1 of 4 timestamps\n"+
		"  malformed base date-time: 2\n"+
		"  offset out of range: 1\n")
}

func TestConvertFormats(t *testing.T) {
	is := is.New(t)

	_, out, _ := run(t, "convert", []string{"-f", "fields", "2022-02-20T15:35:30.888-09:30"}, "")
	is.Equal(out, "2022 2 21 1 5 30 888000\n")

	_, out, _ = run(t, "convert", []string{"-f", "fields", "-s", "2022-02-20T15:35:30.888-09:30"}, "")
	is.Equal(out, "2022 2 21 1 5 30\n")

	_, out, _ = run(t, "convert", []string{"-f", "unix", "1970-01-01T00:00:01.000001Z"}, "")
	is.Equal(out, "1000001\n")

	_, out, _ = run(t, "convert", []string{"-f", "UNIX", "-s", "1970-01-01T01:00:01.000001+01:00"}, "")
	is.Equal(out, "1\n")
}

func TestConvertConfigFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "isoutc.yaml")
	err := os.WriteFile(path, []byte("precision: second\noutput: fields\nlog_level: error\n"), 0o600)
	is.NoErr(err)

	_, out, _ := run(t, "convert", []string{"-c", path, "2022-02-20T15:35:30.888Z"}, "")
	is.Equal(out, "2022 2 20 15 35 30\n") // Settings from file

	_, out, _ = run(t, "convert", []string{"-c", path, "-f", "iso", "2022-02-20T15:35:30.888Z"}, "")
	is.Equal(out, "2022-02-20T15:35:30Z\n") // Flag overrides file
}

func TestBadSettings(t *testing.T) {
	is := is.New(t)

	var errOut bytes.Buffer
	env := command.Env{Args: []string{"-h"}, Stdout: &errOut, Stderr: &errOut}
	_, err := command.Convert(env)
	is.True(errors.Is(err, flag.ErrHelp)) // Help requested

	env.Args = []string{"-f", "xml", "2022-02-20"}
	_, err = command.Convert(env)
	is.True(err != nil) // Unknown output format

	env.Args = []string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}
	_, err = command.Inspect(env)
	is.True(errors.Is(err, os.ErrNotExist)) // Missing config file
}

func TestInspect(t *testing.T) {
	is := is.New(t)

	status, out, _ := run(t, "inspect", []string{"2022-02-20T15:35:30.888+09:30", "15:35:30"}, "")
	is.Equal(status, 0)

	var want = []string{
		"input       2022-02-20T15:35:30.888+09:30",
		"offset      +09:30 (correction -9h30m0s)",
		`fraction    "888" (888000us)`,
		"base        2022-02-20T15:35:30",
		"utc         2022-02-20T06:05:30.888000Z",
		"source      2022-02-20T15:35:30.888000+09:30",
		"normalized  1000-01-01T15:35:30",
		"offset      none",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Logf("missing %q in\n%s", w, out)
		}
		is.True(strings.Contains(out, w)) // Stage is printed
	}

	status, out, _ = run(t, "inspect", []string{"2022-02-30"}, "")
	is.Equal(status, 1) // Bad input
	is.True(strings.Contains(out, "error       isoutc.Inspect: malformed base date-time: day"))
}
