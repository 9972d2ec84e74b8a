package stats

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type Command struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *Command) Synopsis() string {
	return "Show the admin dashboard summary"
}

func (c *Command) Help() string {
	return `Usage: portalctl stats [options]

  Prints entity counts and gateway-computed figures for the admin
  dashboard.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("stats", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *Command) Run(args []string) int {
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

	stats, err := s.Portal.GetAdminStats(c.Ctx(), s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error getting stats: %v", err))
		return 1
	}

	if err := c.Print(s.Output, stats); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
