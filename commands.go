package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"skirmish/agent"
	"skirmish/communication"
	"skirmish/communication/client"
	"skirmish/communication/server"
	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments"
	"skirmish/gamemaster"
	"skirmish/player"
	"skirmish/searcher"
)

var (
	cfg config.Config

	configPath string
	plyLimit   int
	logLevel   string

	snapshotPath string
	scenario     string
	agentURL     string

	plyLimits []int
	scenarios []string
	numGames  int
	outputDir string

	rootCmd = &cobra.Command{
		Use:               "skirmish",
		Short:             "Alpha-beta planner for footmen hunting archers",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	decideCmd = &cobra.Command{
		Use:   "decide",
		Short: "Plans one turn for a snapshot read from a file or stdin",
		RunE:  runDecide,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serves the agent over HTTP",
		RunE:  runServe,
	}
	environmentCmd = &cobra.Command{
		Use:         "environment",
		Short:       "Hosts a local scenario over HTTP",
		RunE:        runEnvironment,
		Annotations: map[string]string{"search": "none"},
	}
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Plays the footmen against a remote environment",
		RunE:  runPlay,
	}
	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Plays one local match against random archers",
		RunE:  runSimulate,
	}
	experimentCmd = &cobra.Command{
		Use:         "experiment",
		Short:       "Sweeps ply limits over scenarios and writes CSV records",
		RunE:        runExperiment,
		Annotations: map[string]string{"search": "none"},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().IntVar(&plyLimit, "ply", 0, "search depth in plies, overrides the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")

	decideCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot JSON file, stdin when empty")
	for _, cmd := range []*cobra.Command{environmentCmd, simulateCmd} {
		cmd.Flags().StringVar(&scenario, "scenario", "2v2", "one of the built-in scenarios")
	}
	simulateCmd.Flags().StringVar(&agentURL, "agent-url", "", "plan with a remote agent server instead of in-process")

	experimentCmd.Flags().IntSliceVar(&plyLimits, "plies", []int{1, 2, 3, 4}, "ply limits to compare")
	experimentCmd.Flags().StringSliceVar(&scenarios, "scenarios", gamemaster.ScenarioNames(), "scenarios to play")
	experimentCmd.Flags().IntVar(&numGames, "games", 10, "games per ply limit and scenario")
	experimentCmd.Flags().StringVar(&outputDir, "out", "experiments", "directory for the records")

	rootCmd.AddCommand(decideCmd, serveCmd, environmentCmd, playCmd, simulateCmd, experimentCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ply") {
		cfg.PlyLimit = plyLimit
	}
	if cmd.Annotations["search"] == "none" || (cmd.Name() == "simulate" && agentURL != "") {
		return cfg.ValidateWithoutSearch()
	}
	return cfg.Validate()
}

func agentOptions() ([]agent.Option, error) {
	verbosity, err := searcher.ParseVerbosity(cfg.Trace)
	if err != nil {
		return nil, err
	}
	options := []agent.Option{agent.WithRanges(cfg.MeleeRange, cfg.RangedRange)}
	if verbosity != searcher.VerbosityOff {
		options = append(options, agent.WithTracer(searcher.NewLogTracer(log.Logger, verbosity)))
	}
	if cfg.StrictTargets {
		options = append(options, agent.WithPolicy(agent.RejectNoTarget))
	}
	return options, nil
}

func newAgent() (*agent.AlphaBeta, error) {
	options, err := agentOptions()
	if err != nil {
		return nil, err
	}
	return agent.NewAlphaBeta(cfg.PlyLimit, options...)
}

func runDecide(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if snapshotPath != "" {
		f, err := os.Open(snapshotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var snapshot communication.Snapshot
	if err := json.NewDecoder(in).Decode(&snapshot); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	a, err := newAgent()
	if err != nil {
		return err
	}
	decision, err := a.FindMove(snapshot)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(decision)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newAgent()
	if err != nil {
		return err
	}
	return agent.NewServer(a).Start(cfg.Server.Addr)
}

func runEnvironment(cmd *cobra.Command, args []string) error {
	env, err := gamemaster.NewScenario(scenario, cfg.Simulation.Width, cfg.Simulation.Height)
	if err != nil {
		return err
	}
	return server.NewEnvironmentServer(env).Start(cfg.Environment.Addr)
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newAgent()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := client.NewClient("http://" + cfg.Environment.Addr)
	decisions, err := player.NewController(env, a).Play(ctx, cfg.Simulation.Turns)
	log.Info().Msgf("Played %d turns", len(decisions))
	return err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	env, err := gamemaster.NewScenario(scenario, cfg.Simulation.Width, cfg.Simulation.Height)
	if err != nil {
		return err
	}
	// A remote agent reports its own ply limit in the turn metrics
	var a agent.Agent
	label := cfg.PlyLimit
	if agentURL != "" {
		a = engine.NewRemoteAgent(agentURL)
		label = 0
	} else if a, err = newAgent(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := engine.LocalEngine(env, a, engine.NewRandomOpponent(cfg.Simulation.Seed),
		engine.WithScenario(scenario, label),
		engine.WithMaxTurns(cfg.Simulation.Turns),
	)
	game, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "game %s: winner %q after %d turns in %s\n", game.ID, game.Winner, game.TotalTurns, game.Duration)
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	options, err := agentOptions()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir, err := experiments.Run(ctx, experiments.Setup{
		Name:      "ply_sweep",
		OutputDir: outputDir,
		PlyLimits: plyLimits,
		Scenarios: scenarios,
		NumGames:  numGames,
		Width:     cfg.Simulation.Width,
		Height:    cfg.Simulation.Height,
		MaxTurns:  cfg.Simulation.Turns,
		Seed:      cfg.Simulation.Seed,
		Agent:     options,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", dir)
	return nil
}
