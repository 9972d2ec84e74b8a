package candidates

import (
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Browse candidate profiles"
}

func (c *Command) Help() string {
	return `Usage: portalctl candidates <subcommand> [options] [args]

  This command groups subcommands for reading candidate profiles.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
