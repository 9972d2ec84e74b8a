package integrations

import (
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect ATS integrations and trigger syncs"
}

func (c *Command) Help() string {
	return `Usage: portalctl integrations <subcommand> [options] <provider>

  This command groups subcommands for ATS integrations such as greenhouse
  or lever. Syncs run on the gateway; portalctl only requests them.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
