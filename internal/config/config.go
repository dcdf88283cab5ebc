package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/nameregistry/internal/identity"
)

// Output formats for built requests.
const (
	OutputJSON   = "json"
	OutputHex    = "hex"
	OutputBase64 = "base64"
	OutputFrame  = "frame"
)

// DefaultProgramID is the name service program on the reference host.
const DefaultProgramID = "namesLPneVptA9Z5rqUDD9tMTWEJwofgaYwp8cawRkX"

// ClientConfig drives request building from the command line.
type ClientConfig struct {
	ProgramID identity.Identity
	Payer     *identity.Identity
	Output    string
	// LogLevel is empty unless log_level is set; NAMEREG_LOG_LEVEL wins over it.
	LogLevel string
}

type fileConfig struct {
	ProgramID string `toml:"program_id"`
	Payer     string `toml:"payer"`
	Output    string `toml:"output"`
	LogLevel  string `toml:"log_level"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ProgramID: identity.MustParse(DefaultProgramID),
		Output:    OutputJSON,
	}
}

// LoadClientConfig applies the keys defined in path over the defaults.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("program_id") {
		id, err := identity.Parse(strings.TrimSpace(raw.ProgramID))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse program_id: %w", err)
		}
		cfg.ProgramID = id
	}
	if meta.IsDefined("payer") {
		if v := strings.TrimSpace(raw.Payer); v != "" {
			id, err := identity.Parse(v)
			if err != nil {
				return ClientConfig{}, fmt.Errorf("parse payer: %w", err)
			}
			cfg.Payer = &id
		}
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	if cfg.ProgramID.IsPlaceholder() {
		return fmt.Errorf("client config missing program_id")
	}
	switch cfg.Output {
	case OutputJSON, OutputHex, OutputBase64, OutputFrame:
	default:
		return fmt.Errorf("client config unknown output %q", cfg.Output)
	}
	return nil
}
