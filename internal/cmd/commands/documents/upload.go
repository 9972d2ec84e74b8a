package documents

import (
	"flag"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/pkg/documents"
)

type UploadCommand struct {
	*base.Command

	// Fs is the filesystem files are read from. Defaults to the OS.
	Fs afero.Fs

	gateway base.GatewayFlags

	flagEntityType   string
	flagEntityID     string
	flagDocumentType string
	flagName         string
	flagContentType  string
}

func (c *UploadCommand) Synopsis() string {
	return "Upload a document"
}

func (c *UploadCommand) Help() string {
	return `Usage: portalctl documents upload [options] <path>

  Uploads the file at path and attaches it to an entity. The content type is
  guessed from the file extension unless -content-type is given.` +
		c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents upload", flag.ContinueOnError))
	c.gateway.Register(f)

	f.StringVar(&c.flagEntityType, "entity-type", "", "(Required) Entity type, e.g. candidate.")
	f.StringVar(&c.flagEntityID, "entity-id", "", "(Required) Entity identifier.")
	f.StringVar(&c.flagDocumentType, "type", "", "Document type, e.g. resume or offer_letter.")
	f.StringVar(&c.flagName, "name", "", "File name to store. Defaults to the base name of path.")
	f.StringVar(&c.flagContentType, "content-type", "", "Content type of the file.")

	return f
}

func (c *UploadCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		ui.Error("expected exactly one file path")
		return 1
	}
	path := flags.Arg(0)

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	contentType := c.flagContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}

	s, err := c.Session(&c.gateway)
	if err != nil {
		ui.Error(fmt.Sprintf("error configuring gateway: %v", err))
		return 1
	}

	doc, err := s.Documents.UploadFile(c.Ctx(), fs, path, documents.Upload{
		EntityType:   c.flagEntityType,
		EntityID:     c.flagEntityID,
		DocumentType: c.flagDocumentType,
		FileName:     c.flagName,
		ContentType:  contentType,
	}, s.Token)
	if err != nil {
		ui.Error(fmt.Sprintf("error uploading document: %v", err))
		return 1
	}

	if err := c.Print(s.Output, doc); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
