// Package main provides the CLI entry point for the xlsmcp server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"xlsmcp/pkg/config"
	"xlsmcp/pkg/mcpserver"
	"xlsmcp/pkg/tools"
)

const version = "0.1.0"

var (
	configPath string
	filesDir   string
	port       int
	envFile    string
	logFile    string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsmcp",
		Short: "MCP server for manipulating Excel workbooks",
		Long: `xlsmcp serves a fixed catalog of Excel manipulation tools over the
Model Context Protocol: reading and writing cell data, formatting, formulas,
charts, pivot tables, JSON import/export, and format conversion.

By default the server speaks MCP over stdio. With --port it serves
streamable HTTP instead.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&filesDir, "files-dir", "", "Base directory for Excel files (overrides config)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Serve MCP over HTTP on this port instead of stdio")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file in addition to stderr")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Flags take precedence over file and environment.
	if cmd.Flags().Changed("files-dir") {
		cfg.FilesDir = filesDir
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(cfg.FilesDir, 0o755); err != nil {
		return fmt.Errorf("create files dir: %w", err)
	}

	server := mcpserver.New("xlsmcp", version, logger)
	server.Register(tools.New(cfg.FilesDir, logger).Tools()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Port > 0 {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("serving MCP over HTTP",
			zap.String("addr", addr),
			zap.String("files_dir", cfg.FilesDir))
		return server.ListenAndServe(ctx, addr)
	}

	logger.Info("serving MCP over stdio", zap.String("files_dir", cfg.FilesDir))
	return server.Serve(ctx, os.Stdin, os.Stdout)
}

// newLogger builds the process logger. Logs go to stderr because stdout
// carries the MCP stdio transport; an optional log file is added on top.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
