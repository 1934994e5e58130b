package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tli/lib/project"
	"github.com/vyPal/tli/util"
)

const sampleProgram = `let x = 0
loop: let x = x + 1
print "count:", x
if x < 5 goto loop
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new TinyLang project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "The version of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Clone the project from a git repository (url[@branch])",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config without asking",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Ask for every setting not given as a flag (the default on a terminal)",
			},
			&cli.BoolFlag{
				Name:  "no-git",
				Usage: "Don't create a git repository",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:     "info",
		Usage:    "Display the details of the current project",
		Category: "project",
		Flags:    []cli.Flag{configFlag()},
		Action:   projectInfo,
	})
}

func initProject(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	if tmpl := c.String("template"); tmpl != "" {
		if err := cloneTemplate(dir, tmpl); err != nil {
			return cli.Exit(color.RedString("Error cloning template: %s", err), 1)
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	in := bufio.NewReader(c.App.Reader)
	interactive := c.Bool("interactive") || isTerminal(c.App.Reader)
	ask := func(flag, prompt, def string) string {
		if v := c.String(flag); v != "" {
			return v
		}
		if interactive {
			return util.PromptString(in, c.App.Writer, prompt, def)
		}
		return def
	}

	var conf project.Config
	name := ""
	if abs, err := filepath.Abs(dir); err == nil {
		name = filepath.Base(abs)
	}
	conf.CreateDefault(name)
	conf.Name = ask("name", "Project name", conf.Name)
	conf.Version = ask("version", "Project version", conf.Version)
	conf.Main = ask("main", "Main file", conf.Main)
	conf.Author = ask("author", "Author", conf.Author)
	conf.Tli = "^" + version

	confirm := func(question string) bool {
		return util.PromptYN(in, c.App.Writer, question, false)
	}
	saved, err := conf.Save(filepath.Join(dir, project.FileName), c.Bool("force"), confirm)
	if err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", project.FileName, err), 1)
	}
	if !saved {
		color.Yellow("Keeping the existing %s", project.FileName)
		if conf, err = project.Load(dir); err != nil {
			return cli.Exit(color.RedString("Error reading %s: %s", project.FileName, err), 1)
		}
	}

	mainPath := filepath.Join(dir, conf.Main)
	if _, err := os.Stat(mainPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(mainPath, []byte(sampleProgram), 0644); err != nil {
			return err
		}
	}

	if !c.Bool("no-git") {
		if err := commitProject(dir, conf.Author, project.FileName, conf.Main); err != nil {
			return cli.Exit(color.RedString("Error creating git repository: %s", err), 1)
		}
	}

	color.Green("Initialized project %s in %s", conf.Name, dir)
	return nil
}

// commitProject makes dir a git repository, if it isn't one, and commits the
// given files.
func commitProject(dir, author string, files ...string) error {
	repo, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(dir)
	}
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := wt.Add(filepath.ToSlash(f)); err != nil {
			return err
		}
	}

	status, err := wt.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	_, err = wt.Commit("Initialize TinyLang project", &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: strings.ReplaceAll(strings.ToLower(author), " ", ".") + "@localhost",
			When:  time.Now(),
		},
	})
	return err
}

// cloneTemplate clones url[@branch] into dir.
func cloneTemplate(dir, tmpl string) error {
	url, branch, _ := strings.Cut(tmpl, "@")
	opts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if branch != "" {
		opts.SingleBranch = true
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	_, err := git.PlainClone(dir, false, opts)
	return err
}

func projectInfo(c *cli.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	conf, found, err := project.Find(cwd, c.String("config"))
	if err != nil {
		return cli.Exit(color.RedString("Error reading config: %s", err), 1)
	}
	if !found {
		return cli.Exit(color.RedString("Error: no %s in %s", project.FileName, cwd), 1)
	}

	w := c.App.Writer
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintln(w, "                  Project Details                 ")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Name        : %s\n", conf.Name)
	fmt.Fprintf(w, "Version     : %s\n", conf.Version)
	fmt.Fprintf(w, "Main File   : %s\n", conf.Main)
	fmt.Fprintf(w, "Author      : %s\n", conf.Author)
	fmt.Fprintf(w, "Requires    : tli %s\n", conf.Tli)
	fmt.Fprintln(w, "--------------------------------------------------")
	return nil
}
