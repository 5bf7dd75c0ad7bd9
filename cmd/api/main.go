package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/voiceofchrist/churchsite/internal/bootstrap"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
	"github.com/voiceofchrist/churchsite/internal/server"
)

// @title Voice of Christ API
// @version 1.0
// @description Public site data and admin back office for the Voice of Christ church
// @termsOfService http://swagger.io/terms/

// @contact.name Church Office
// @contact.email admin@voiceofchrist.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Serve the Voice of Christ API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(cmd.Context(), configPath)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to initialize server")
				return err
			}
			if err := srv.Run(cmd.Context()); err != nil {
				logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
				return err
			}
			logger.Info().Msg("Application finished gracefully.")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
