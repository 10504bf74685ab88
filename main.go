// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"DemoLab/DemoServer/config"
	"DemoLab/DemoServer/memory"
)

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "demoserver",
	Short: "Demo web server with mock sessions, a quote proxy, a counter and an MCP endpoint",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig := zap.NewProductionConfig()
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var memoryFile string

var memoryCheckCmd = &cobra.Command{
	Use:   "memory-check",
	Short: "Write a test entity to the MCP memory server and read the graph back",
	RunE:  runMemoryCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	memoryCheckCmd.Flags().StringVar(&memoryFile, "memory-file", "", "memory storage file (default from config)")

	rootCmd.AddCommand(serveCmd, memoryCheckCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	generated, err := cfg.EnsureSessionSecret()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("No session secret configured; using a random one. Sessions will not survive a restart.")
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Serve(ctx)
}

func runMemoryCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if memoryFile != "" {
		cfg.Memory.FilePath = memoryFile
	}

	transport, err := memory.NewCommandTransport(cfg.Memory.Command, cfg.Memory.Args, cfg.Memory.FilePath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	report, err := memory.NewChecker(logger).Run(ctx, transport, nil)
	if errors.Is(err, memory.ErrToolsMissing) {
		logger.Error("create_entities or read_graph not found; check the memory server", zap.Strings("tools", report.Tools))
		return err
	}
	if err != nil {
		return err
	}

	return printReport(cmd, report)
}

func printReport(cmd *cobra.Command, report *memory.Report) error {
	out := cmd.OutOrStdout()
	for _, section := range []struct {
		title string
		value any
	}{
		{"Written", report.Created},
		{"Graph", report.Graph},
	} {
		data, err := json.MarshalIndent(section.value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s:\n%s\n", section.title, data)
	}
	return nil
}
