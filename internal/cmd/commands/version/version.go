package version

import (
	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the portalctl version"
}

func (c *Command) Help() string {
	return `Usage: portalctl version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("portalctl " + version.String())
	return 0
}
