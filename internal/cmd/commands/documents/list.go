package documents

import (
	"flag"
	"fmt"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/pkg/documents"
)

type ListCommand struct {
	*base.Command

	gateway base.GatewayFlags

	flagEntityType     string
	flagEntityID       string
	flagIncludeDeleted bool
}

func (c *ListCommand) Synopsis() string {
	return "List documents"
}

func (c *ListCommand) Help() string {
	return `Usage: portalctl documents list [options]

  Lists the caller's own documents, or the documents attached to an entity
  when -entity-type and -entity-id are both given. Soft-deleted documents
  are hidden unless -include-deleted is set.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents list", flag.ContinueOnError))
	c.gateway.Register(f)

	f.StringVar(&c.flagEntityType, "entity-type", "", "Entity type, e.g. candidate or application.")
	f.StringVar(&c.flagEntityID, "entity-id", "", "Entity identifier.")
	f.BoolVar(&c.flagIncludeDeleted, "include-deleted", false, "Include soft-deleted documents.")

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if (c.flagEntityType == "") != (c.flagEntityID == "") {
		ui.Error("-entity-type and -entity-id must be used together")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	var docs []documents.Document
	if c.flagEntityType != "" {
		docs, err = s.Documents.ListEntityDocuments(c.Ctx(), c.flagEntityType, c.flagEntityID, s.Token)
	} else {
		docs, err = s.Documents.GetMyDocuments(c.Ctx(), s.Token)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error listing documents: %v", err))
		return 1
	}

	if !c.flagIncludeDeleted {
		visible := docs[:0]
		for _, d := range docs {
			if !d.IsDeleted() {
				visible = append(visible, d)
			}
		}
		docs = visible
	}

	if err := c.Print(s.Output, docs); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
