package main

import (
	"flag"
	"os"

	"github.com/VishnuSankarIP/todo-client/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configDir := flag.String("config", "", "config directory (default: XDG config dir)")
	serverURL := flag.String("server", "", "API base URL (overrides config file)")
	theme := flag.String("theme", "", "color theme: classic or mono")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		ConfigDir: *configDir,
		ServerURL: *serverURL,
		Theme:     *theme,
		Debug:     *debug,
	})
	os.Exit(code)
}
