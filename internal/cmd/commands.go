package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/talentbridge/portal/internal/cmd/base"
	"github.com/talentbridge/portal/internal/cmd/commands/candidates"
	"github.com/talentbridge/portal/internal/cmd/commands/documents"
	"github.com/talentbridge/portal/internal/cmd/commands/integrations"
	"github.com/talentbridge/portal/internal/cmd/commands/invites"
	"github.com/talentbridge/portal/internal/cmd/commands/stats"
	"github.com/talentbridge/portal/internal/cmd/commands/version"
)

func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)

	return map[string]cli.CommandFactory{
		"documents": func() (cli.Command, error) {
			return &documents.Command{Command: b}, nil
		},
		"documents list": func() (cli.Command, error) {
			return &documents.ListCommand{Command: b}, nil
		},
		"documents get": func() (cli.Command, error) {
			return &documents.GetCommand{Command: b}, nil
		},
		"documents upload": func() (cli.Command, error) {
			return &documents.UploadCommand{Command: b}, nil
		},
		"documents delete": func() (cli.Command, error) {
			return &documents.DeleteCommand{Command: b}, nil
		},
		"documents open": func() (cli.Command, error) {
			return &documents.OpenCommand{Command: b}, nil
		},
		"candidates": func() (cli.Command, error) {
			return &candidates.Command{Command: b}, nil
		},
		"candidates list": func() (cli.Command, error) {
			return &candidates.ListCommand{Command: b}, nil
		},
		"candidates get": func() (cli.Command, error) {
			return &candidates.GetCommand{Command: b}, nil
		},
		"invites": func() (cli.Command, error) {
			return &invites.Command{Command: b}, nil
		},
		"invites list": func() (cli.Command, error) {
			return &invites.ListCommand{Command: b}, nil
		},
		"invites create": func() (cli.Command, error) {
			return &invites.CreateCommand{Command: b}, nil
		},
		"invites revoke": func() (cli.Command, error) {
			return &invites.RevokeCommand{Command: b}, nil
		},
		"integrations": func() (cli.Command, error) {
			return &integrations.Command{Command: b}, nil
		},
		"integrations get": func() (cli.Command, error) {
			return &integrations.GetCommand{Command: b}, nil
		},
		"integrations sync": func() (cli.Command, error) {
			return &integrations.SyncCommand{Command: b}, nil
		},
		"stats": func() (cli.Command, error) {
			return &stats.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
