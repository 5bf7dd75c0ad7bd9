package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/voiceofchrist/churchsite/internal/bootstrap"
	"github.com/voiceofchrist/churchsite/internal/config"
)

// cliState is shared by every subcommand
type cliState struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

// load reads the config once per invocation
func (s *cliState) load() error {
	if s.cfg != nil {
		return nil
	}
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(s.configPath)
	if err != nil {
		return err
	}
	s.cfg, s.logger = cfg, lgr
	return nil
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "vocctl",
		Short:         "Operate the Voice of Christ API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&state.configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	root.AddCommand(
		newMigrateCmd(state),
		newSeedCmd(state),
		newCreateAdminCmd(state),
		newHashPasswordCmd(),
		newLocalCmd(state),
	)
	return root
}
