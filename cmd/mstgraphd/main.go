// Command mstgraphd serves the MST graph protocol over TCP, behind
// either the Pipeline (Active-Object) or Leader-Follower concurrency
// core, selected by --core.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mstgraphd/internal/config"
	"github.com/katalvlaran/mstgraphd/internal/graphstate"
	"github.com/katalvlaran/mstgraphd/internal/pipeline"
	"github.com/katalvlaran/mstgraphd/internal/server"
	"github.com/katalvlaran/mstgraphd/internal/shutdown"
	"github.com/katalvlaran/mstgraphd/internal/telemetry"
)

func main() {
	var yamlPath string
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "mstgraphd",
		Short: "TCP server for building MSTs and answering graph queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	root.Flags().StringVar(&yamlPath, "config", "", "path to a YAML config file")
	config.BindFlags(root.Flags(), &cfg)

	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(yamlPath)
		if err != nil {
			return err
		}
		// Flags already parsed onto cfg at this point win over the file/env
		// layers Load just computed, except for fields a flag never
		// touched — those still want the file/env value. Since BindFlags
		// seeded flag defaults from Default() (not loaded), re-apply
		// anything the user didn't pass explicitly.
		if !cmd.Flags().Changed("listen") {
			cfg.ListenAddr = loaded.ListenAddr
		}
		if !cmd.Flags().Changed("core") {
			cfg.Core = loaded.Core
		}
		if !cmd.Flags().Changed("pool-size") {
			cfg.PoolSize = loaded.PoolSize
		}
		if !cmd.Flags().Changed("log-level") {
			cfg.LogLevel = loaded.LogLevel
		}
		if !cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = loaded.MetricsAddr
		}

		return cfg.Validate()
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mstgraphd:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	metrics := telemetry.New()

	ln, err := server.Listen(cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("mstgraphd: listen: %w", err)
	}

	co := shutdown.New(log)

	if cfg.MetricsAddr != "" {
		metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler()}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", "error", err)
			}
		}()
		co.Register(closerFunc(func() error { return metricsSrv.Close() }))
	}

	state := graphstate.New()

	switch cfg.Core {
	case config.CorePipeline:
		p := pipeline.New(state)
		srv := server.NewPipelineServer(ln, p, telemetry.Component(log, "pipeline-server"), metrics)
		co.Register(closerFunc(func() error { p.Close(); return nil }))
		co.Register(srv)

		log.Info("mstgraphd listening", "addr", cfg.ListenAddr, "core", cfg.Core)
		go func() {
			if err := srv.Serve(); err != nil {
				log.Error("pipeline server stopped", "error", err)
			}
		}()

	case config.CoreLF:
		lfSrv, err := server.NewLFServer(ln, state, cfg.PoolSize, telemetry.Component(log, "lf-server"), metrics)
		if err != nil {
			return err
		}
		co.Register(lfSrv)
		lfSrv.Start()
		log.Info("mstgraphd listening", "addr", cfg.ListenAddr, "core", cfg.Core, "pool_size", cfg.PoolSize)

	default:
		return fmt.Errorf("mstgraphd: unknown core %q", cfg.Core)
	}

	ctx, stop := shutdown.NotifyContext()
	defer stop()
	co.Wait(ctx)

	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
