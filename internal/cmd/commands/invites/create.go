package invites

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/pkg/portal"
)

type CreateCommand struct {
	*base.Command

	gateway base.GatewayFlags

	flagRole string
}

func (c *CreateCommand) Synopsis() string {
	return "Invite someone to the team"
}

func (c *CreateCommand) Help() string {
	return `Usage: portalctl invites create [options] <email>

  Sends a team invite. Roles are admin, recruiter and viewer.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("invites create", flag.ContinueOnError))
	c.gateway.Register(f)

	f.StringVar(&c.flagRole, "role", portal.RoleRecruiter, "Role granted when the invite is accepted.")

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one email address")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	invite, err := s.Portal.CreateInvite(c.Ctx(), portal.NewInvite{
		Email: flags.Arg(0),
		Role:  c.flagRole,
	}, s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating invite: %v", err))
		return 1
	}

	if err := c.Print(s.Output, invite); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
