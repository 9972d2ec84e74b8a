package documents

import (
	"flag"
	"fmt"

	"github.com/pkg/browser"

	"github.com/talentbridge/portal/internal/cmd/base"
)

type OpenCommand struct {
	*base.Command

	// OpenURL launches the browser. Defaults to browser.OpenURL.
	OpenURL func(url string) error

	gateway base.GatewayFlags
}

func (c *OpenCommand) Synopsis() string {
	return "Open a document's download link in the browser"
}

func (c *OpenCommand) Help() string {
	return `Usage: portalctl documents open [options] <id>

  Fetches the document and opens its download URL in the default browser.` +
		c.Flags().Help()
}

func (c *OpenCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents open", flag.ContinueOnError))
	c.gateway.Register(f)
	return f
}

func (c *OpenCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one document id")
		return 1
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	doc, err := s.Documents.GetDocument(c.Ctx(), flags.Arg(0), s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error getting document: %v", err))
		return 1
	}
	if doc.DownloadURL == "" {
		ui.Error(fmt.Sprintf("document %s has no download URL", doc.ID))
		return 1
	}

	open := c.OpenURL
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(doc.DownloadURL); err != nil {
		ui.Error(fmt.Sprintf("error opening browser: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Opened %s", doc.FileName))
	return 0
}
