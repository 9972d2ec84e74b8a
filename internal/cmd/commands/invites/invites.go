package invites

import (
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage team invites"
}

func (c *Command) Help() string {
	return `Usage: portalctl invites <subcommand> [options] [args]

  This command groups subcommands for listing, sending and revoking team
  invites.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
