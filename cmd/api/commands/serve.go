package commands

import (
	"github.com/campulist/campulist/internal/pkg/logger"
	"github.com/campulist/campulist/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	srv, err := server.NewServer(configPath)
	if err != nil {
		return err
	}
	if err := srv.Run(cmd.Context()); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		return err
	}
	logger.Info().Msg("Application finished gracefully.")
	return nil
}
