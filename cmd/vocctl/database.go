package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voiceofchrist/churchsite/internal/app/migrations"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/bootstrap"
	"github.com/voiceofchrist/churchsite/internal/db"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
	"github.com/voiceofchrist/churchsite/internal/seed"
)

func newMigrateCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := state.load(); err != nil {
				return err
			}
			database, err := db.NewPostgresDB(cmd.Context(), state.cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			return migrations.NewMigrator(database.Pool, state.logger).Migrate(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the migrations embedded in this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := migrations.List(migrations.Files())
			if err != nil {
				return err
			}
			for _, m := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Version, m.Name)
			}
			return nil
		},
	})
	return cmd
}

func newSeedCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default content into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := state.load(); err != nil {
				return err
			}
			database, err := db.NewPostgresDB(cmd.Context(), state.cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			repos := repositories.NewRepositories(database.Pool)
			return seed.CreateDefaultData(cmd.Context(), repos, bootstrap.AdminFromConfig(state.cfg), time.Now().UTC(), state.logger)
		},
	}
}

func newCreateAdminCmd(state *cliState) *cobra.Command {
	var admin seed.Admin

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin.Username = strings.TrimSpace(admin.Username)
			if admin.Username == "" || admin.Password == "" {
				return fmt.Errorf("--username and --password are required")
			}
			if err := state.load(); err != nil {
				return err
			}

			hash, err := auth.HashPassword(admin.Password)
			if err != nil {
				return err
			}

			database, err := db.NewPostgresDB(cmd.Context(), state.cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			a := &models.Admin{
				Username:     admin.Username,
				PasswordHash: hash,
				Email:        admin.Email,
				FullName:     admin.FullName,
				IsActive:     true,
				CreatedAt:    time.Now().UTC(),
			}
			if err := repositories.NewAdminRepository(database.Pool).Create(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", a.Username, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&admin.Username, "username", "", "login name")
	cmd.Flags().StringVar(&admin.Password, "password", "", "password")
	cmd.Flags().StringVar(&admin.Email, "email", "", "email address")
	cmd.Flags().StringVar(&admin.FullName, "full-name", "", "display name")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPasswordWithCost(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", auth.BcryptCost, "bcrypt work factor")
	return cmd
}
