package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/brbranch/notes_mcp/internal/model"
)

// Options はserveコマンドのオプション
// 空文字・0はフラグ未指定（設定ファイルの値を使う）
type Options struct {
	Transport  string
	Host       string
	Port       int
	ConfigPath  string
	Debug       bool
	WriteConfig bool
}

// serveFunc はserveの実処理
type serveFunc func(ctx context.Context, opts *Options) error

// newRootCommand はCLIのルートコマンドを返す
// サブコマンドなしで起動した場合はserveとして動く
func newRootCommand(serve serveFunc) *cli.Command {
	action := func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() > 0 {
			return fmt.Errorf("unknown command: %s", cmd.Args().First())
		}
		opts, err := optionsFromCommand(cmd)
		if err != nil {
			return err
		}
		return serve(ctx, opts)
	}

	return &cli.Command{
		Name:    "mcp-notes",
		Usage:   "Minimal MCP note server",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Usage:   "Transport type: stdio, http (default: from config, stdio)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "HTTP host (default: from config, 127.0.0.1)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP port (default: from config, 8765)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: ~/.mcp-notes/config.json)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write the effective config to the config path before serving",
			},
		},
		Action: action,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the MCP server (stdio or HTTP)",
				Action: action,
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(cmd.Root().Writer, "mcp-notes version %s\n", version)
					return err
				},
			},
		},
	}
}

// optionsFromCommand はフラグからOptionsを組み立てて検証する
func optionsFromCommand(cmd *cli.Command) (*Options, error) {
	opts := &Options{
		ConfigPath:  cmd.String("config"),
		Debug:       cmd.Bool("debug"),
		WriteConfig: cmd.Bool("write-config"),
	}

	// 環境変数・設定ファイルより明示フラグを優先するため、未指定なら空のまま
	if cmd.IsSet("transport") {
		opts.Transport = cmd.String("transport")
		if opts.Transport != model.TransportStdio && opts.Transport != model.TransportHTTP {
			return nil, fmt.Errorf("invalid transport: %s (must be stdio or http)", opts.Transport)
		}
	}
	if cmd.IsSet("host") {
		opts.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		opts.Port = int(cmd.Int("port"))
		if opts.Port < 1 || opts.Port > 65535 {
			return nil, fmt.Errorf("invalid port: %d (must be 1-65535)", opts.Port)
		}
	}

	return opts, nil
}

// apply は指定されたフラグで設定を上書きする
func (o *Options) apply(cfg *model.Config) {
	if o.Transport != "" {
		cfg.TransportDefaults.DefaultTransport = o.Transport
	}
	if o.Host != "" {
		cfg.HTTP.Host = o.Host
	}
	if o.Port != 0 {
		cfg.HTTP.Port = o.Port
	}
}
