package main

import (
	"fmt"
	"io"
	"os"

	"crypticoder-go/pkg/config"
	"crypticoder-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// cfg is loaded in the app's Before hook.
var cfg *config.Config

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "crypticoder",
		Usage:     "reversible key-based obfuscation for text and files",
		Version:   fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file `PATH`",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Also print log events to stderr",
			},
			&cli.BoolFlag{
				Name:  "no-journal",
				Usage: "Do not record operations in the journal database",
			},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			serveCommand,
			historyCommand,
		},
	}
}

func setup(c *cli.Context) error {
	loaded, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading configuration: %v", err), 1)
	}
	cfg = loaded

	var tee []io.Writer
	if c.Bool("verbose") {
		tee = append(tee, log.Console())
	}
	if c.Bool("no-journal") {
		if c.Bool("verbose") {
			log.SetStd()
		}
		return nil
	}
	if err := log.Init(cfg.JournalFile, tee...); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening journal: %v", err), 1)
	}
	return nil
}

func teardown(c *cli.Context) error {
	return log.Close()
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
