package invites

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *ListCommand) Synopsis() string {
	return "List team invites"
}

func (c *ListCommand) Help() string {
	return `Usage: portalctl invites list [options]` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invites list", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	invites, err := s.Portal.ListInvites(c.Ctx(), s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing invites: %v", err))
		return 1
	}

	if err := c.Print(s.Output, invites); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
