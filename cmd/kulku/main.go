package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/kulku/internal/app"
	"github.com/five82/kulku/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("kulku", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "config file (default ~/.config/kulku/config.toml)")
	pollSeconds := flags.Int("poll", 0, "itinerary refresh interval in seconds (overrides config)")
	logFile := flags.String("log-file", "", "log file path (overrides config)")
	debug := flags.Bool("debug", false, "log at debug level")
	theme := flags.String("theme", "", fmt.Sprintf("color theme %v (overrides config)", ui.ThemeNames()))

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "kulku: %v\n", err)
		return 2
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "kulku: unexpected argument: %s\n", flags.Arg(0))
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PollSeconds: *pollSeconds,
		LogFile:     *logFile,
		Debug:       *debug,
		Theme:       *theme,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "kulku: %v\n", err)
		return 1
	}
	return 0
}
