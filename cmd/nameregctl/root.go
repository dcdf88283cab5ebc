package main

import (
	"fmt"
	"strings"

	"github.com/danmuck/nameregistry/internal/config"
	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type cli struct {
	configPath string
	program    string
	output     string
	messageID  uint64
	cfg        config.ClientConfig
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "nameregctl",
		Short:         "Build name registry requests",
		Long:          "Builds name registry request payloads and their ordered account lists for submission to the execution host.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "client config file (TOML)")
	flags.StringVar(&c.program, "program", "", "name registry program identity (base58), overrides config")
	flags.StringVarP(&c.output, "output", "o", "", "output format: json|hex|base64|frame, overrides config")
	flags.Uint64Var(&c.messageID, "message-id", 1, "message id stamped on frame output")

	root.AddCommand(
		c.createCommand(),
		c.updateCommand(),
		c.transferCommand(),
		c.deleteCommand(),
		c.reallocCommand(),
		c.decodeCommand(),
		c.recordCommand(),
		c.inspectCommand(),
	)
	return root
}

func (c *cli) resolve() error {
	logging.ConfigureRuntime()

	cfg := config.DefaultClientConfig()
	if c.configPath != "" {
		loaded, err := config.LoadClientConfig(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if v := strings.TrimSpace(c.program); v != "" {
		id, err := identity.Parse(v)
		if err != nil {
			return fmt.Errorf("parse --program: %w", err)
		}
		cfg.ProgramID = id
	}
	if v := strings.TrimSpace(c.output); v != "" {
		cfg.Output = strings.ToLower(v)
	}
	if err := config.ValidateClientConfig(cfg); err != nil {
		return err
	}
	if !logging.ResolveLevel(cfg.LogLevel) {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("ignoring unknown log level")
	}
	c.cfg = cfg
	log.Debug().
		Stringer("program_id", cfg.ProgramID).
		Str("output", cfg.Output).
		Msg("nameregctl: config resolved")
	return nil
}

// requiredID parses a mandatory identity flag.
func requiredID(name, raw string) (identity.Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return identity.Identity{}, fmt.Errorf("--%s is required", name)
	}
	id, err := identity.Parse(strings.TrimSpace(raw))
	if err != nil {
		return identity.Identity{}, fmt.Errorf("parse --%s: %w", name, err)
	}
	return id, nil
}

// optionalID parses an identity flag that may be left empty.
func optionalID(name, raw string) (*identity.Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := requiredID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// payerID falls back to the configured payer.
func (c *cli) payerID(raw string) (identity.Identity, error) {
	if strings.TrimSpace(raw) == "" && c.cfg.Payer != nil {
		return *c.cfg.Payer, nil
	}
	return requiredID("payer", raw)
}
