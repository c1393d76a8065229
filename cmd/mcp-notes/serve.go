package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/brbranch/notes_mcp/internal/bootstrap"
	"github.com/brbranch/notes_mcp/internal/config"
	"github.com/brbranch/notes_mcp/internal/jsonrpc"
	"github.com/brbranch/notes_mcp/internal/logging"
	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/transport/http"
	"github.com/brbranch/notes_mcp/internal/transport/stdio"
)

// runServe はserveコマンドを実行
func runServe(ctx context.Context, opts *Options) error {
	cfg, err := bootstrap.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	var written string
	if opts.WriteConfig {
		if written, err = bootstrap.WriteConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.ResolveDataPaths(cfg); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log, opts.Debug)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)
	if written != "" {
		slog.Info("config written", "path", written)
	}

	jsonrpc.ServerVersion = version

	services, cleanup, err := bootstrap.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("starting mcp-notes",
		"version", version,
		"transport", cfg.TransportDefaults.DefaultTransport,
		"store", cfg.Store.Type,
	)

	switch cfg.TransportDefaults.DefaultTransport {
	case model.TransportStdio:
		server := stdio.New(services.Handler)
		// list_changed通知はstdoutへ
		_, unsubscribe := services.Hub.Subscribe(server.Send)
		defer unsubscribe()
		return server.Run(ctx)
	case model.TransportHTTP:
		httpConfig := http.Config{
			Addr:        net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(cfg.HTTP.Port)),
			CORSOrigins: cfg.HTTP.CORSOrigins,
		}
		server := http.New(services.Handler, httpConfig, http.WithSubscriber(services.Hub))
		return server.Run(ctx)
	default:
		return fmt.Errorf("unknown transport: %s", cfg.TransportDefaults.DefaultTransport)
	}
}
