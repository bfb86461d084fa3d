package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/debtsim/payoff-calculator/internal/calculation"
	"github.com/debtsim/payoff-calculator/internal/config"
	"github.com/debtsim/payoff-calculator/internal/output"
)

type options struct {
	configPath   string
	formatName   string
	outputPath   string
	verbose      bool
	mcRuns       int
	mcSeed       int64
	mcVolatility float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "debtsim",
		Short: "Simulate paying off a loan aggressively vs investing excess cash",
		Long: `debtsim runs a month-by-month simulation of an amortizing loan alongside
an optional savings balance, under the payment strategy described in a YAML
plan file. It reports the full monthly series, compares named strategy
variations, and can randomize investment returns for a Monte Carlo view.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML plan file (required)")
	cmd.Flags().StringVarP(&opts.formatName, "format", "f", "console", "output format: console, csv, json, pdf")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "write output to this file instead of stdout (pdf always writes a file)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().IntVar(&opts.mcRuns, "montecarlo", 0, "run N Monte Carlo simulations with randomized returns")
	cmd.Flags().Int64Var(&opts.mcSeed, "seed", 0, "Monte Carlo random seed (0 picks one from the clock)")
	cmd.Flags().Float64Var(&opts.mcVolatility, "volatility", 0.15, "annual volatility of investment returns for Monte Carlo")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func run(opts *options) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	engineLog := zapAdapter{logger.Sugar()}

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(opts.configPath)
	if err != nil {
		return err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(engineLog)

	result, err := engine.RunPlan(&input.Plan)
	if err != nil {
		return err
	}
	report := &output.Report{Result: result}

	if len(input.Strategies) > 0 {
		comparison, err := engine.RunStrategies(input.Plan, input.Strategies)
		if err != nil {
			return err
		}
		report.Comparison = comparison
	}

	if mcCfg, ok := monteCarloConfig(opts, input); ok {
		sim := calculation.NewMonteCarloSimulator(mcCfg)
		sim.Logger = engineLog
		mcResult, err := sim.Run(&input.Plan)
		if err != nil {
			return err
		}
		report.MonteCarlo = mcResult
	}

	return writeReport(opts, report, engineLog)
}

// monteCarloConfig merges the CLI flags with the plan file's monte_carlo
// section; flags win.
func monteCarloConfig(opts *options, input *config.Input) (calculation.MonteCarloConfig, bool) {
	cfg := calculation.MonteCarloConfig{}
	if input.MonteCarlo != nil {
		cfg.NumSimulations = input.MonteCarlo.NumSimulations
		cfg.Seed = input.MonteCarlo.Seed
		cfg.AnnualVolatility = decimal.NewFromFloat(input.MonteCarlo.AnnualVolatility)
	}
	if opts.mcRuns > 0 {
		cfg.NumSimulations = opts.mcRuns
		cfg.AnnualVolatility = decimal.NewFromFloat(opts.mcVolatility)
	}
	if opts.mcSeed != 0 {
		cfg.Seed = opts.mcSeed
	}
	return cfg, cfg.NumSimulations > 0
}

func writeReport(opts *options, report *output.Report, log calculation.Logger) error {
	formatter := output.GetFormatterByName(opts.formatName)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q (known: console, csv, json, pdf)", opts.formatName)
	}

	// Binary formats always go to a file.
	if opts.outputPath == "" && formatter.Name() == "pdf" {
		filename, err := output.WriteFormatted(formatter, report, "pdf")
		if err != nil {
			return err
		}
		log.Infof("wrote %s", filename)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	if opts.outputPath == "" || opts.outputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.outputPath, data, 0644); err != nil {
		return err
	}
	log.Infof("wrote %s", opts.outputPath)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// zapAdapter bridges the engine's Logger interface onto zap.
type zapAdapter struct {
	s *zap.SugaredLogger
}

func (z zapAdapter) Debugf(format string, args ...any) { z.s.Debugf(format, args...) }
func (z zapAdapter) Infof(format string, args ...any)  { z.s.Infof(format, args...) }
func (z zapAdapter) Warnf(format string, args ...any)  { z.s.Warnf(format, args...) }
func (z zapAdapter) Errorf(format string, args ...any) { z.s.Errorf(format, args...) }
