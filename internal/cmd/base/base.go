// Package base holds what every portalctl command shares: the logger and UI,
// flag handling, gateway session setup and output rendering.
package base

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"gopkg.in/yaml.v3"

	"github.com/talentbridge/portal/internal/config"
	"github.com/talentbridge/portal/pkg/documents"
	"github.com/talentbridge/portal/pkg/gateway"
	"github.com/talentbridge/portal/pkg/portal"
)

// Command is embedded by every portalctl command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Env replaces the process environment when non-nil.
	Env gateway.Env

	// Context is the parent context for gateway calls.
	Context context.Context
}

// NewCommand returns a Command with a background context.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:     log,
		UI:      ui,
		Context: context.Background(),
	}
}

// Ctx returns the command context.
func (c *Command) Ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.Usage = func() {}
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for inclusion in a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return strings.TrimRight(b.String(), "\n")
}

// GatewayFlags are the connection flags shared by commands that call the
// gateway.
type GatewayFlags struct {
	Config  string
	EnvFile string
	Token   string
	Output  string
	Context string
}

// Register adds the gateway flags to f.
func (g *GatewayFlags) Register(f *FlagSet) {
	f.StringVar(&g.Config, "config", "", "Path to a portalctl HCL config file.")
	f.StringVar(&g.EnvFile, "env-file", config.DefaultDotenvFile, "Dotenv file read under the process environment.")
	f.StringVar(&g.Token, "token", "", "Bearer token. Defaults to $"+config.EnvToken+".")
	f.StringVar(&g.Output, "output", "", "Output format: yaml or json.")
	f.StringVar(&g.Context, "context", "", "Execution context: server or browser. Defaults to $"+config.EnvExecutionContext+".")
}

// Session is a configured gateway connection.
type Session struct {
	Config    *config.Config
	Client    *gateway.Client
	Token     string
	Output    string
	Documents *documents.Service
	Portal    *portal.Service
}

// Session loads configuration and builds the gateway client.
func (c *Command) Session(g *GatewayFlags) (*Session, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Env != nil {
		var env gateway.Env
		env, err = config.Environment(c.Env, "")
		if err == nil {
			cfg, err = config.LoadWithEnv(g.Config, env)
		}
	} else {
		cfg, err = config.Load(g.Config, g.EnvFile)
	}
	if err != nil {
		return nil, err
	}

	c.Log.SetLevel(cfg.Level())

	ec, err := cfg.ExecutionContext()
	if g.Context != "" {
		ec, err = gateway.ParseExecutionContext(g.Context)
	}
	if err != nil {
		return nil, err
	}

	gc, err := cfg.GatewayConfig(ec, c.Log)
	if err != nil {
		return nil, err
	}
	client, err := gateway.New(gc)
	if err != nil {
		return nil, fmt.Errorf("error creating gateway client: %w", err)
	}
	c.Log.Debug("gateway client ready", "base_url", client.BaseURL(), "context", ec.String())

	token := g.Token
	if token == "" {
		token = cfg.Token()
	}
	output := g.Output
	if output == "" {
		output = cfg.Output
	}

	return &Session{
		Config:    cfg,
		Client:    client,
		Token:     token,
		Output:    output,
		Documents: documents.NewService(client, c.Log),
		Portal:    portal.NewService(client, c.Log),
	}, nil
}

// Print renders v in the requested format to the UI.
func (c *Command) Print(format string, v any) error {
	var out []byte
	switch strings.ToLower(format) {
	case "", "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		out = buf.Bytes()
	case "json":
		var err error
		out, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	c.UI.Output(strings.TrimRight(string(out), "\n"))
	return nil
}
