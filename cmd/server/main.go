package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"notes-backend/internal/config"
	"notes-backend/internal/logger"
	"notes-backend/internal/server"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "notes-server",
	Short: "Notes Backend API: gRPC service with HTTP/JSON gateway",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC server and the HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "config.yml", "path to config file")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// Без подкоманды запускаем serve
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return fmt.Errorf("error loading env file: %w", err)
	}

	appConfig, err := config.InitConfig[config.Config](configFile)
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	appConfig.SetDefaults()

	log := logger.New(appConfig.Logger, os.Stdout).With().
		Str("app", appConfig.App.Name).
		Str("version", appConfig.App.Version).
		Logger()

	srv, err := server.NewServer(appConfig, log)
	if err != nil {
		return err
	}
	if err := srv.Initialize(context.Background()); err != nil {
		_ = srv.Shutdown()
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	select {
	case err := <-errChan:
		log.Error().Err(err).Msg("Server error")
		_ = srv.Shutdown()
		return err
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	}

	if err := srv.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("Shutdown finished with errors")
		return err
	}
	log.Info().Msg("Notes Backend stopped")
	return nil
}
