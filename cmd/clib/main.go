// Command clib tests, lists, or extracts CLIB containers.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/meigma/clib"
)

var version = "0.0.0" // set by -ldflags on release builds

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type action int

const (
	actionNone action = iota
	actionTest
	actionList
	actionExtract
)

type cliArgs struct {
	test        *bool
	list        *bool
	extract     *bool
	force       *bool
	version     *bool
	usage       *bool
	directory   *string
	unsafePaths *bool
	logLevel    *string
	file        *string
}

func newApp(stdout, stderr io.Writer) (*kingpin.Application, *cliArgs) {
	app := kingpin.New("clib", "Test, list, or extract CLIB containers.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	// -h is a plain flag so that it can exit nonzero; --help keeps
	// kingpin's behavior but is handled by run's terminate hook.
	app.HelpFlag.Hidden()

	args := &cliArgs{
		test:        app.Flag("test", "Test if FILE is recognized as CLIB").Short('t').Bool(),
		list:        app.Flag("list", "List files").Short('l').Bool(),
		extract:     app.Flag("extract", "Extract files").Short('x').Bool(),
		force:       app.Flag("force", "Force overwrite of output files").Short('f').Bool(),
		version:     app.Flag("version", "Display version").Short('v').Bool(),
		usage:       app.Flag("usage", "Display this help").Short('h').Bool(),
		directory:   app.Flag("directory", "Extract into DIR instead of the working directory").Short('C').Default(".").PlaceHolder("DIR").String(),
		unsafePaths: app.Flag("unsafe-paths", "Allow entry names to write outside the extraction directory").Bool(),
		logLevel:    app.Flag("log-level", "Diagnostic log level").Default("warn").Enum("debug", "info", "warn", "error"),
		file:        app.Arg("file", "CLIB container to read").String(),
	}
	return app, args
}

func (a *cliArgs) action() (action, error) {
	selected := actionNone
	count := 0
	for _, opt := range []struct {
		set bool
		act action
	}{
		{*a.test, actionTest},
		{*a.list, actionList},
		{*a.extract, actionExtract},
	} {
		if opt.set {
			selected = opt.act
			count++
		}
	}
	switch count {
	case 0:
		return actionNone, fmt.Errorf("one of -t, -l or -x is required")
	case 1:
		return selected, nil
	default:
		return actionNone, fmt.Errorf("only one of -t, -l or -x may be given")
	}
}

func run(argv []string, stdout, stderr io.Writer) int {
	app, args := newApp(stdout, stderr)

	terminated := false
	app.Terminate(func(int) { terminated = true })

	if _, err := app.Parse(argv); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", app.Name, err)
		app.Usage(nil)
		return 1
	}
	if terminated {
		return 1
	}
	if *args.usage {
		app.Usage(nil)
		return 1
	}
	if *args.version {
		fmt.Fprintf(stdout, "%s %s\n", app.Name, version)
		return 0
	}
	if *args.file == "" {
		fmt.Fprintln(stdout, "missing file argument")
		app.Usage(nil)
		return 1
	}
	act, err := args.action()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", app.Name, err)
		app.Usage(nil)
		return 1
	}

	logger := newLogger(stderr, *args.logLevel)

	r, err := clib.Open(*args.file, clib.WithLogger(logger))
	if err != nil {
		// The path already leads the message.
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		fmt.Fprintf(stderr, "%s: %v\n", *args.file, err)
		return 1
	}
	defer r.Close()

	switch act {
	case actionTest:
		logger.Info("recognized CLIB container",
			"path", *args.file,
			"archive", r.Archive().Name(),
			"entries", r.Archive().Len(),
		)
		return 0

	case actionList:
		if err := r.Archive().WriteList(stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", app.Name, err)
			return 1
		}
		return 0

	case actionExtract:
		report := r.Extract(
			clib.ExtractWithOverwrite(*args.force),
			clib.ExtractWithDestDir(*args.directory),
			clib.ExtractWithConfinement(!*args.unsafePaths),
		)
		for _, f := range report.Failures {
			fmt.Fprintln(stderr, f.Error())
		}
		if report.Failed() {
			return 1
		}
		return 0
	}
	return 1
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
