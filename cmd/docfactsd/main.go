// Command docfactsd serves the upload-and-extract form.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/export"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
	"github.com/joseph-ayodele/docfacts/internal/server"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (default $DOCFACTS_CONFIG)")
	flag.Parse()

	cfg, err := common.LoadConfig(common.LoadOptions{ConfigFile: *configFile, EnvFiles: []string{".env"}})
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("config invalid", "error", err)
		os.Exit(2)
	}

	logger := common.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if !cfg.HasCredential() {
		logger.Warn("model credential missing; AI extraction disabled", "credential", cfg.CredentialName())
	}

	proc, err := pipeline.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	srv, err := server.NewServer(cfg, proc, export.NewService(logger), logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
