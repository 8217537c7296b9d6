package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mumbaisim/config"
	"mumbaisim/logger"
	"mumbaisim/recorder"
	"mumbaisim/simulator"
	"mumbaisim/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "mumbaisim",
		Short:        "Mumbai traffic simulation with CSV sensor logging",
		RunE:         runSimulation,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.toml", "path to the TOML config file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closer, err := logger.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	net := simulator.BuildRingNetwork(cfg.Network)
	fleet := simulator.NewFleet(cfg.Vehicle, net)
	hazards := simulator.NewHazardGenerator(cfg.Hazard, net)

	csvWriter := recorder.NewCSVWriter(cfg.Simulation.OutputDir, cfg.Simulation.CSVAppendMode)
	if !csvWriter.InitializeFiles() {
		// Recorder failures are never fatal; the run continues without
		// file output.
		slog.Warn("csv recorder unavailable, continuing without file output")
	}
	sinks := []recorder.Sink{csvWriter}

	if cfg.Storage.Enabled {
		st, err := store.Open(cfg.Storage.Path)
		if err != nil {
			slog.Error("failed to open sqlite store", "path", cfg.Storage.Path, "error", err)
		} else {
			defer func() { _ = st.Close() }()
			sinks = append(sinks, st)
		}
	}

	slog.Info("starting simulation",
		"steps", cfg.Simulation.Steps,
		"vehicles", cfg.Vehicle.Count,
		"cells", cfg.Network.NumCells,
		"append_mode", cfg.Simulation.CSVAppendMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := simulator.NewEngine(cfg, net, fleet, hazards, sinks...)
	if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
