package candidates

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type GetCommand struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *GetCommand) Synopsis() string {
	return "Show a candidate"
}

func (c *GetCommand) Help() string {
	return `Usage: portalctl candidates get [options] <id>` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("candidates get", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one candidate id")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	candidate, err := s.Portal.GetCandidate(c.Ctx(), flags.Arg(0), s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error getting candidate: %v", err))
		return 1
	}

	if err := c.Print(s.Output, candidate); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
