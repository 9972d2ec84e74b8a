package integrations

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type SyncCommand struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *SyncCommand) Synopsis() string {
	return "Request an immediate sync"
}

func (c *SyncCommand) Help() string {
	return `Usage: portalctl integrations sync [options] <provider>

  Asks the gateway to sync the integration now and prints the job it
  scheduled.` +
		c.Flags().Help()
}

func (c *SyncCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("integrations sync", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *SyncCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one provider")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	job, err := s.Portal.TriggerSync(c.Ctx(), flags.Arg(0), s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error triggering sync: %v", err))
		return 1
	}

	if err := c.Print(s.Output, job); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
