package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tli/lib/project"
	"github.com/vyPal/tli/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "version",
		Usage:    "Print the tli version and check it against the project's requirement",
		Category: "version",
		Flags:    []cli.Flag{configFlag()},
		Action:   printVersion,
	})
}

// checkVersion fails when the running tli does not satisfy the project's
// "tli" requirement.
func checkVersion(conf project.Config) error {
	if conf.Tli == "" {
		return nil
	}
	v, err := util.Parse(version)
	if err != nil {
		return err
	}
	ok, err := v.Satisfies(conf.Tli)
	if err != nil {
		return cli.Exit(color.RedString("Error: invalid tli requirement %q: %s", conf.Tli, err), 1)
	}
	if !ok {
		return cli.Exit(color.RedString("Error: project requires tli %s, this is %s", conf.Tli, version), 1)
	}
	return nil
}

func printVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "tli %s\n", version)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	conf, found, err := project.Find(cwd, c.String("config"))
	if err != nil {
		return cli.Exit(color.RedString("Error reading config: %s", err), 1)
	}
	if !found || conf.Tli == "" {
		return nil
	}
	if err := checkVersion(conf); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.App.Writer, "%s requires tli %s: ok\n", conf.Name, conf.Tli)
	return nil
}
