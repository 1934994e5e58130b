package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tli/lib/compiler"
)

//go:embed c_files/tl_runtime.c
var runtimeSource string

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Compile a TinyLang program to a native executable",
		Category:  "compile",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "The name for the built binary (or .ll file with --emit-llvm, - for stdout)",
			},
			&cli.BoolFlag{
				Name:    "emit-llvm",
				Aliases: []string{"S"},
				Usage:   "Write LLVM IR instead of linking an executable",
			},
			&cli.StringFlag{
				Name:  "cc",
				Value: "clang",
				Usage: "The compiler used to build the IR and the runtime",
			},
			&cli.StringSliceFlag{
				Name:    "clang-args",
				Aliases: []string{"a"},
				Usage: "Pass additional arguments to the compiler. " +
					"Useful for passing flags like -O2 or -g.",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Keep the intermediate build files",
				Aliases: []string{"d"},
			},
		},
		Action: build,
	})
}

func build(c *cli.Context) error {
	prog, path, _, err := loadProgram(c)
	if err != nil {
		return err
	}

	comp := compiler.NewCompiler(prog)
	if err := comp.Compile(); err != nil {
		return cli.Exit(color.RedString("Error compiling: %s", err), 1)
	}
	ll := comp.Module.String()

	outpath := c.String("output")
	if c.Bool("emit-llvm") {
		if outpath == "" || outpath == "-" {
			fmt.Fprint(c.App.Writer, ll)
			return nil
		}
		if err := os.WriteFile(outpath, []byte(ll), 0644); err != nil {
			return cli.Exit(color.RedString("Error writing %s: %s", outpath, err), 1)
		}
		return nil
	}

	if outpath == "" {
		outpath = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if runtime.GOOS == "windows" {
			outpath += ".exe"
		}
	}

	tmpDir, err := os.MkdirTemp("", "tli")
	if err != nil {
		return err
	}
	if c.Bool("debug") {
		color.Yellow("Keeping build files in %s", tmpDir)
	} else {
		defer os.RemoveAll(tmpDir)
	}

	llPath := filepath.Join(tmpDir, "program.ll")
	if err := os.WriteFile(llPath, []byte(ll), 0644); err != nil {
		return err
	}
	rtPath := filepath.Join(tmpDir, "tl_runtime.c")
	if err := os.WriteFile(rtPath, []byte(runtimeSource), 0644); err != nil {
		return err
	}

	args := []string{llPath, rtPath, "-o", outpath}
	if runtime.GOOS != "windows" {
		args = append(args, "-lm")
	}
	args = append(args, c.StringSlice("clang-args")...)

	var stderr bytes.Buffer
	cmd := exec.Command(c.String("cc"), args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Println("stderr:", stderr.String())
		return cli.Exit(color.RedString("Error building %s: %s", outpath, err), 1)
	}

	color.Green("Built %s", outpath)
	return nil
}
