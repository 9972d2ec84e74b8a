package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"

	"github.com/talentbridge/portal/internal/version"
)

func TestRun_Version(t *testing.T) {
	for _, args := range [][]string{
		{"portalctl", "version"},
		{"portalctl", "-v"},
		{"portalctl", "-version"},
	} {
		ui := cli.NewMockUi()
		code := Run(args, ui, hclog.NewNullLogger())
		assert.Equal(t, 0, code)
		assert.Contains(t, ui.OutputWriter.String(), version.Version)
	}
}

func TestInitCommands(t *testing.T) {
	commands := initCommands(hclog.NewNullLogger(), cli.NewMockUi())

	for _, name := range []string{
		"documents list", "documents get", "documents upload", "documents delete", "documents open",
		"candidates list", "candidates get",
		"invites list", "invites create", "invites revoke",
		"integrations get", "integrations sync",
		"stats", "version",
	} {
		factory, ok := commands[name]
		if !assert.True(t, ok, name) {
			continue
		}
		c, err := factory()
		assert.NoError(t, err)
		assert.NotEmpty(t, c.Synopsis(), name)
		assert.NotEmpty(t, c.Help(), name)
	}
}

func TestRun_GroupShowsHelp(t *testing.T) {
	ui := cli.NewMockUi()
	code := Run([]string{"portalctl", "documents"}, ui, hclog.NewNullLogger())
	assert.Equal(t, 1, code)
}
