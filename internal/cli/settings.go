package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/config"
	"github.com/archiefkit/mdto/internal/logging"
	"github.com/archiefkit/mdto/pkg/mdto"
)

// settings is the resolved runtime configuration for one invocation:
// project file, environment and flags merged in precedence order.
type settings struct {
	cfg     *config.ProjectConfig
	log     mdto.Logger
	verbose bool
	quiet   bool
}

// resolveSettings merges the configuration sources. Precedence, lowest
// to highest: mdto.yaml, MDTO_* environment variables (a .env file is
// loaded first when present), command line flags.
func resolveSettings(cmd *cobra.Command) (*settings, error) {
	_ = godotenv.Load()

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	verbose := cfg.Verbose
	if cmd.Flags().Changed("verbose") {
		verbose, _ = cmd.Flags().GetBool("verbose")
	}
	quiet := cfg.Quiet
	if cmd.Flags().Changed("quiet") {
		quiet, _ = cmd.Flags().GetBool("quiet")
	}

	return &settings{
		cfg:     cfg,
		log:     logging.NewConsoleLogger(verbose, quiet),
		verbose: verbose,
		quiet:   quiet,
	}, nil
}

func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading --config %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.ProjectConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// stringSetting resolves one string option: the flag when given,
// otherwise the configured value.
func stringSetting(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// boolSetting resolves one bool option the same way.
func boolSetting(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}
