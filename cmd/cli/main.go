package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yurifrl/finscore/pkg/config"
	"github.com/yurifrl/finscore/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "finscore",
	Short: "Extract transactions from SMS and statements and score financial health",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

// setup loads configuration for cmd and wires the logger and analyzer.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, *service.Analyzer, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "finscore",
		Level:           cfg.Level(),
	})

	analyzer, err := service.FromConfig(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, analyzer, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("precedence", "classifier", "Category precedence: classifier or upstream")
	pf.String("rules", "", "YAML file with classifier rules")
	pf.Int("max-input-bytes", 1<<20, "Maximum bytes of text parsed per input")

	// Filter flags (global)
	pf.StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	pf.StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	pf.Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	pf.Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	pf.StringVar(&cliFilters.sender, "sender", "", "Filter by sender (case insensitive)")
	pf.StringVar(&cliFilters.txType, "type", "", "Filter by type (credit, debit, unknown)")
	pf.StringVar(&cliFilters.category, "category", "", "Filter by category")

	rootCmd.AddCommand(parseCmd, scoreCmd, batchCmd, pushCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
