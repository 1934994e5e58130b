package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/goforj/godump"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tli/lib/analyzer"
	"github.com/vyPal/tli/lib/diag"
	"github.com/vyPal/tli/lib/interp"
	"github.com/vyPal/tli/lib/parser"
	"github.com/vyPal/tli/lib/project"
	"golang.org/x/term"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a TinyLang program",
		Category:  "run",
		ArgsUsage: "<file>",
		Flags:     runFlags(),
		Action:    run,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Load a program without running it and report likely mistakes",
		Category:  "run",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "dump",
				Aliases: []string{"d"},
				Usage:   "Dump the loaded program",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit with an error if there are any warnings",
			},
		},
		Action: check,
	}, &cli.Command{
		Name:      "fmt",
		Usage:     "Print a program in canonical form",
		Category:  "run",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write the result back to the source file",
			},
		},
		Action: format,
	})
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "The path to the config file",
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.BoolFlag{
			Name:    "trace",
			Aliases: []string{"t"},
			Usage:   "Print each statement to stderr before it runs",
		},
		&cli.IntFlag{
			Name:  "max-steps",
			Usage: "Stop after this many statements (0 for no limit)",
		},
	}
}

// loadSource finds the program to work on: the first argument, or the main
// file named by tliconf.yaml.
func loadSource(c *cli.Context) (string, project.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", project.Config{}, cli.Exit(color.RedString("Error getting current working directory: %s", err), 1)
	}

	confPath := c.String("config")
	conf, found, err := project.Find(cwd, confPath)
	if err != nil {
		return "", conf, cli.Exit(color.RedString("Error reading config: %s", err), 1)
	}
	if found {
		if err := checkVersion(conf); err != nil {
			return "", conf, err
		}
	}

	path := c.Args().First()
	if path == "" {
		if conf.Main == "" {
			return "", conf, cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		base := cwd
		if confPath != "" {
			base = filepath.Dir(confPath)
		}
		path = filepath.Join(base, conf.Main)
	}
	return path, conf, nil
}

func loadProgram(c *cli.Context) (*parser.Program, string, project.Config, error) {
	path, conf, err := loadSource(c)
	if err != nil {
		return nil, "", conf, err
	}
	prog, err := parser.ParseFile(path)
	if err != nil {
		return nil, path, conf, report(c, err)
	}
	return prog, path, conf, nil
}

// report turns an error into the process result. Program errors are printed
// on the program's output stream, like its other output.
func report(c *cli.Context, err error) error {
	var de *diag.Error
	if errors.As(err, &de) {
		color.New(color.FgRed).Fprintln(c.App.Writer, de.Error())
		return cli.Exit("", 1)
	}
	return cli.Exit(color.RedString("Error: %s", err), 1)
}

func run(c *cli.Context) error {
	prog, _, conf, err := loadProgram(c)
	if err != nil {
		return err
	}

	rc := interp.Config{
		Stdin:    c.App.Reader,
		Stdout:   c.App.Writer,
		MaxSteps: conf.Run.MaxSteps,
	}
	if c.IsSet("max-steps") {
		rc.MaxSteps = c.Int("max-steps")
	}
	if c.Bool("trace") || conf.Run.Trace {
		rc.Trace = c.App.ErrWriter
	}
	if conf.Run.Prompt != "" && isTerminal(c.App.Reader) {
		rc.Prompt = conf.Run.Prompt
	}

	in := interp.New(prog, rc)
	err = in.Run()
	if rc.Trace != nil {
		traceSummary(rc.Trace, in)
	}
	if err != nil {
		return report(c, err)
	}
	return nil
}

// traceSummary ends a traced run with the step count and the final value of
// every variable.
func traceSummary(w io.Writer, in *interp.Interpreter) {
	vars := in.Symbols().Vars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	faint := color.New(color.FgHiBlack)
	faint.Fprintf(w, "Steps: %d\n", in.Steps())
	for _, name := range names {
		faint.Fprintf(w, "  %s = %s\n", name, interp.FormatNumber(vars[name]))
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func check(c *cli.Context) error {
	path, _, err := loadSource(c)
	if err != nil {
		return err
	}
	prog, err := parser.ParseFile(path)
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			color.New(color.FgRed).Fprintf(c.App.Writer, "%s: %s\n", path, de.Detail())
			return cli.Exit("", 1)
		}
		return report(c, err)
	}

	if c.Bool("dump") {
		fmt.Fprint(c.App.Writer, godump.DumpStr(prog))
	}

	warnings := analyzer.Analyze(prog)
	warn := color.New(color.FgYellow)
	for _, w := range warnings {
		warn.Fprintf(c.App.Writer, "%s:%s\n", path, w)
	}
	if len(warnings) == 0 {
		color.New(color.FgGreen).Fprintf(c.App.Writer, "%s: ok\n", path)
		return nil
	}
	if c.Bool("strict") {
		return cli.Exit(color.RedString("%d warning(s)", len(warnings)), 1)
	}
	return nil
}

func format(c *cli.Context) error {
	prog, path, _, err := loadProgram(c)
	if err != nil {
		return err
	}
	src := prog.Source()
	if c.Bool("write") {
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			return cli.Exit(color.RedString("Error writing %s: %s", path, err), 1)
		}
		return nil
	}
	fmt.Fprint(c.App.Writer, src)
	return nil
}
