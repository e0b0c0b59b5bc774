package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/yurifrl/finscore/pkg/config"
	"github.com/yurifrl/finscore/pkg/server"
	"github.com/yurifrl/finscore/pkg/service"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "finscore",
	})

	flags := pflag.NewFlagSet("finscore-server", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "Config file (default is config.yaml)")
	flags.String("addr", "0.0.0.0:3000", "Listen address")
	flags.String("log-level", "info", "Log level")
	flags.String("precedence", "classifier", "Category precedence: classifier or upstream")
	flags.String("rules", "", "YAML file with classifier rules")
	flags.Int("max-input-bytes", 1<<20, "Maximum bytes of text parsed per request")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger.SetLevel(cfg.Level())

	analyzer, err := service.FromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build analyzer", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, analyzer)
	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
