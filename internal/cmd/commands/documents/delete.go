package documents

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type DeleteCommand struct {
	*base.Command

	gateway base.GatewayFlags
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete one or more documents"
}

func (c *DeleteCommand) Help() string {
	return `Usage: portalctl documents delete [options] <id>...

  Soft-deletes each document. Every id is attempted; failures are reported
  together at the end.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents delete", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("expected at least one document id")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	var result *multierror.Error
	for _, id := range flags.Args() {
		if err := s.Documents.DeleteDocument(c.Ctx(), id, s.Token); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", id, err))
			continue
		}
		ui.Info(fmt.Sprintf("Deleted document %s", id))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error deleting documents: %v", err))
		return 1
	}
	return 0
}
