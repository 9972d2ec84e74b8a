package invites

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type RevokeCommand struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *RevokeCommand) Synopsis() string {
	return "Revoke one or more invites"
}

func (c *RevokeCommand) Help() string {
	return `Usage: portalctl invites revoke [options] <id>...

  Revokes each invite. Every id is attempted; failures are reported
  together at the end.` +
		c.Flags().Help()
}

func (c *RevokeCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invites revoke", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *RevokeCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("expected at least one invite id")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	var result *multierror.Error
	for _, id := range flags.Args() {
		if err := s.Portal.RevokeInvite(c.Ctx(), id, s.Token); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", id, err))
			continue
		}
		ui.Info(fmt.Sprintf("Revoked invite %s", id))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error revoking invites: %v", err))
		return 1
	}
	return 0
}
