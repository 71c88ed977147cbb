package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetscore/server/config"
	"github.com/fleetscore/server/internal/database"
	"github.com/fleetscore/server/internal/http"
	"github.com/fleetscore/server/internal/http/handlers"
	"github.com/fleetscore/server/internal/traces"
	"github.com/fleetscore/server/pkg/platform"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func loadConfiguration() (*config.Configuration, error) {
	file, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("fail to read configuration file: %w", err)
	}
	var configuration config.Configuration
	if err := yaml.Unmarshal(file, &configuration); err != nil {
		return nil, fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	return &configuration, nil
}

func buildServerCmd(logger *slog.Logger) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Runs the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			err := runServer(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return serverCmd
}

func runServer(logger *slog.Logger) error {
	config, err := loadConfiguration()
	if err != nil {
		return err
	}
	stopTraces, err := traces.Setup(context.Background(), config.Tracing)
	if err != nil {
		return err
	}
	store, err := database.New(logger, config.Database)
	if err != nil {
		return err
	}
	registry := prometheus.DefaultRegisterer.(*prometheus.Registry)
	platformService, err := platform.New(logger, store, registry)
	if err != nil {
		return err
	}
	handlersBuilder := handlers.NewBuilder(platformService)
	server, err := http.NewServer(logger, config.HTTP, registry, handlersBuilder)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				err := server.Stop()
				if err != nil {
					errChan <- err
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				errChan <- stopTraces(ctx)
				cancel()
			}

		}
	}()
	exitErr := <-errChan
	return exitErr
}
