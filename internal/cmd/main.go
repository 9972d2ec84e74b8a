package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	return Run(args, ui, nil)
}

// Run is Main with an explicit UI. A non-nil logger replaces the default
// stderr logger.
func Run(args []string, ui cli.Ui, log hclog.Logger) int {
	cliName := args[0]

	if log == nil {
		log = hclog.New(&hclog.LoggerOptions{
			Name:   cliName,
			Output: os.Stderr,
			Level:  hclog.Warn,
		})
	}

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	commands := initCommands(log, ui)

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version.String(),
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc(cliName),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
