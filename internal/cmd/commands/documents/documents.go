package documents

import (
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Work with candidate and entity documents"
}

func (c *Command) Help() string {
	return `Usage: portalctl documents <subcommand> [options] [args]

  This command groups subcommands for listing, uploading, opening and
  deleting documents stored behind the gateway.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
