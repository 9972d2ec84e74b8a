package candidates

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/pkg/gateway"
	"github.com/talentbridge/portal/pkg/portal"
)

type ListCommand struct {
	*base.Command

	gateway base.GatewayFlags

	flagPage    int
	flagPerPage int
}

type listOutput struct {
	Candidates []portal.Candidate  `json:"candidates" yaml:"candidates"`
	Pagination gateway.Pagination `json:"pagination" yaml:"pagination"`
}

func (c *ListCommand) Synopsis() string {
	return "List candidates"
}

func (c *ListCommand) Help() string {
	return `Usage: portalctl candidates list [options]

  Lists one page of candidates together with the pagination block.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("candidates list", flag.ContinueOnError))
	c.gateway.Register(f)

	f.IntVar(&c.flagPage, "page", 1, "Page number, starting at 1.")
	f.IntVar(&c.flagPerPage, "per-page", 20, "Candidates per page.")

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagPage < 1 || c.flagPerPage < 1 {
		ui.Error("page and per-page must be at least 1")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	candidates, page, err := s.Portal.ListCandidates(c.Ctx(),
		gateway.PageParams{Page: c.flagPage, PerPage: c.flagPerPage}, s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing candidates: %v", err))
		return 1
	}

	if err := c.Print(s.Output, listOutput{Candidates: candidates, Pagination: page}); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
