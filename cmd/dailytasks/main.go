package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/dailytasks/internal/cli"
	"github.com/idilsaglam/dailytasks/internal/config"
	"github.com/idilsaglam/dailytasks/internal/logging"
	"github.com/idilsaglam/dailytasks/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("dailytasks", flag.ContinueOnError)
	fs.SetOutput(ui.ErrOut)
	fs.Usage = cli.PrintHelp

	// Root flags (apply to every subcommand) override config files and env.
	var f config.Config
	fs.StringVar(&f.DBPath, "db", "", "database file")
	fs.StringVar(&f.Theme, "theme", "", "output theme: classic, neon or mono")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn, error or off")
	fs.StringVar(&f.LogFile, "log-file", "", "append logs to this file")
	noColor := fs.Bool("no-color", false, "plain output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := fs.Args()

	// help works even when a config file is broken
	if len(rest) > 0 && isHelp(rest[0]) {
		cli.PrintHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "db":
			cfg.DBPath = f.DBPath
		case "theme":
			cfg.Theme = f.Theme
		case "log-level":
			cfg.LogLevel = f.LogLevel
		case "log-file":
			cfg.LogFile = f.LogFile
		}
	})
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		ui.Fail(err.Error())
		return 2
	}

	ui.SetTheme(cfg.Theme)
	if *noColor {
		ui.SetColorForcing(false, true)
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(rest, cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(ui.ErrOut)
	}
	return code
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "-h", "--help":
		return true
	}
	return false
}
