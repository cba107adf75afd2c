/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * The main function
 */

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenPrinting/cups-sub002/internal/ipplog"
	"github.com/OpenPrinting/cups-sub002/ipp"
	"github.com/OpenPrinting/cups-sub002/ippfile"
)

const usageText = `Usage:
    %s mode [options] [input] [output]

Modes are:
    totext      - decode a binary IPP message and emit its text
                  data-file form
    tobinary    - parse a text data-file and emit the binary wire
                  message
    dump        - decode a binary IPP message and pretty-print it
    check       - parse a text data-file and report format/validation
                  errors, without producing output

input and output default to stdin and stdout; either may be "-" to
mean the corresponding standard stream explicitly.

Options are:
    -conf path  - load settings from an ini.v1-syntax file (default:
                  ./ippfile.conf, if present)
    -response   - in dump mode, format the message as a response
                  (status code) instead of a request (operation code)
`

// RunMode selects what main does.
type RunMode int

// Run modes
const (
	RunNone RunMode = iota
	RunToText
	RunToBinary
	RunDump
	RunCheck
)

// RunParameters is the result of parsing os.Args.
type RunParameters struct {
	Mode       RunMode
	ConfPath   string
	Response   bool
	InputPath  string
	OutputPath string
}

func usage() {
	fmt.Printf(usageText, os.Args[0])
	os.Exit(0)
}

func usageError(format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	fmt.Fprintf(os.Stderr, "Try %s -h for more information\n", os.Args[0])
	os.Exit(1)
}

// parseArgv parses program parameters: a leading mode word, then flag
// and positional arguments.
func parseArgv(argv []string) (params RunParameters) {
	positional := 0

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-h" || arg == "-help" || arg == "--help":
			usage()
		case arg == "-conf":
			i++
			if i >= len(argv) {
				usageError("-conf requires a path argument")
			}
			params.ConfPath = argv[i]
		case arg == "-response":
			params.Response = true
		case params.Mode == RunNone && positional == 0:
			switch arg {
			case "totext":
				params.Mode = RunToText
			case "tobinary":
				params.Mode = RunToBinary
			case "dump":
				params.Mode = RunDump
			case "check":
				params.Mode = RunCheck
			default:
				usageError("Invalid mode %q", arg)
			}
			positional++
		case positional == 1:
			params.InputPath = arg
			positional++
		case positional == 2:
			params.OutputPath = arg
			positional++
		default:
			usageError("Unexpected argument %q", arg)
		}
	}

	if params.Mode == RunNone {
		usageError("Missing mode")
	}

	return
}

// openInput opens path for reading, or stdin if path is "" or "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput opens path for writing, or stdout if path is "" or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func main() {
	params := parseArgv(os.Args[1:])

	confPath := params.ConfPath
	if confPath == "" {
		if _, err := os.Stat(ConfFileName); err == nil {
			confPath = ConfFileName
		}
	}
	if err := ConfLoad(confPath); err != nil {
		ipplog.Default.Exit("%s", err)
	}
	ipplog.Default.SetLevels(confLogLevel())

	in, err := openInput(params.InputPath)
	if err != nil {
		ipplog.Default.Exit("%s", err)
	}
	defer in.Close()

	out, err := openOutput(params.OutputPath)
	if err != nil {
		ipplog.Default.Exit("%s", err)
	}
	defer out.Close()

	switch params.Mode {
	case RunToText:
		err = runToText(in, out)
	case RunToBinary:
		err = runToBinary(in, out)
	case RunDump:
		err = runDump(in, out, params.Response)
	case RunCheck:
		err = runCheck(in)
	}

	if err != nil {
		ipplog.Default.Exit("%s", err)
	}
}

// runToText decodes a binary IPP message from in and writes its text
// data-file form to out.
func runToText(in io.Reader, out io.Writer) error {
	msg, err := ipp.Decode(in)
	if err != nil {
		return err
	}

	w := ippfile.NewWriter(out, Conf.WithGroups)
	return w.WriteMessage(msg)
}

// runToBinary parses a text data-file from in and writes the binary
// wire message to out.
func runToBinary(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	group, ok := ipp.TagByName(Conf.Group)
	if !ok || !group.IsGroup() {
		return fmt.Errorf("conf: %q is not a valid default group tag", Conf.Group)
	}

	r := ippfile.NewReader(nil)
	if err := r.SetGroup(group); err != nil {
		return err
	}
	r.OnError = func(file string, line int, err error) bool {
		ipplog.Default.Error("%s:%d: %s", file, line, err)
		return true
	}

	msg, err := r.ReadBytes("<input>", data)
	if err != nil {
		return err
	}

	return ipp.Encode(out, msg)
}

// runDump decodes a binary IPP message from in and pretty-prints it
// to out.
func runDump(in io.Reader, out io.Writer, response bool) error {
	msg, err := ipp.Decode(in)
	if err != nil {
		return err
	}

	f := ipp.NewFormatter()
	if response {
		f.FmtResponse(msg)
	} else {
		f.FmtRequest(msg)
	}
	_, err = f.WriteTo(out)
	return err
}

// runCheck parses a text data-file from in and reports every format or
// validation error found, continuing past each one; it returns an
// error (causing a non-zero exit) if at least one was found.
func runCheck(in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	var problems int
	r := ippfile.NewReader(nil)
	r.OnError = func(file string, line int, err error) bool {
		problems++
		fmt.Fprintf(os.Stderr, "%s:%d: %s\n", file, line, err)
		return true
	}

	msg, err := r.ReadBytes("<input>", data)
	if err != nil {
		return err
	}

	if err := ipp.ValidateMessage(msg); err != nil {
		problems++
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}

	fmt.Fprintln(os.Stderr, "OK")
	return nil
}
