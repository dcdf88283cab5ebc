package main

import (
	"flag"

	"github.com/danmuck/nameregistry/internal/config"
	"github.com/danmuck/nameregistry/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", "client", "config kind: client")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to cmd/nameregctl/config.toml)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *kind != "client" {
		log.Fatal().Str("kind", *kind).Msg("unknown kind")
	}

	if *validate {
		path := *input
		if path == "" {
			path = "cmd/nameregctl/config.toml"
		}
		if _, err := config.LoadClientConfig(path); err != nil {
			log.Fatal().Err(err).Msg("validate failed")
		}
		log.Info().Str("kind", *kind).Str("path", path).Msg("validated config")
		return
	}

	target := *output
	if target == "" {
		target = "cmd/nameregctl/config.toml"
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("write template failed")
	}
	log.Info().Str("kind", *kind).Str("path", target).Msg("wrote config template")
}
