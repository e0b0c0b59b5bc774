package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yurifrl/finscore/pkg/executors"
	"github.com/yurifrl/finscore/pkg/plan"
	"github.com/yurifrl/finscore/pkg/reader"
	"github.com/yurifrl/finscore/pkg/service"
	"github.com/yurifrl/finscore/pkg/ynab"
)

var pushCmd = &cobra.Command{
	Use:   "push [flags] <file>",
	Short: "Push classified transactions of a statement to a YNAB account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, analyzer, err := setup(cmd)
		if err != nil {
			return err
		}
		if cfg.YNAB.Token == "" {
			return fmt.Errorf("ynab token is required (FINSCORE_YNAB_TOKEN)")
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		exec := executors.New(logger, ynab.New(cfg.YNAB.Token).Transaction())
		return sync(exec, logger, analyzer, args[0], cfg.YNAB.BudgetID, cfg.YNAB.AccountID, !dryRun)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <plan_file>",
	Short: "Score every statement of a YAML plan and preview or push it to YNAB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, analyzer, err := setup(cmd)
		if err != nil {
			return err
		}
		push, _ := cmd.Flags().GetBool("push")

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print(os.Stdout)

		token := p.Token(cfg.YNAB.Token)
		if token == "" || p.YNAB.BudgetID == "" {
			logger.Info("no YNAB budget or token configured, scoring only")
			for _, st := range p.Statements {
				text, err := reader.ReadFile(p.Path(st))
				if err != nil {
					logger.Warn("failed to read statement", "file", st.File, "error", err)
					continue
				}
				fmt.Printf("\n== %s\n", st.File)
				printReport(os.Stdout, analyzer.Analyze(text))
			}
			return nil
		}

		exec := executors.New(logger, ynab.New(token).Transaction())
		for _, st := range p.Statements {
			accountID, err := p.AccountID(st)
			if err != nil {
				return err
			}
			fmt.Printf("\n== %s -> %s\n", st.File, st.Account)
			if err := sync(exec, logger, analyzer, p.Path(st), p.YNAB.BudgetID, accountID, push); err != nil {
				logger.Warn("failed to sync statement", "file", st.File, "error", err)
			}
		}
		return nil
	},
}

// sync classifies the statement at path and plans, or applies, it against
// the YNAB account.
func sync(exec *executors.Executor, logger *log.Logger, analyzer *service.Analyzer, path, budgetID, accountID string, create bool) error {
	text, err := reader.ReadFile(path)
	if err != nil {
		return err
	}
	txs, format := analyzer.Classified(text)
	logger.Debug("classified statement", "file", path, "format", format, "transactions", len(txs))

	run := exec.Plan
	if create {
		run = exec.Apply
	}
	report, err := run(budgetID, accountID, txs)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)
	return nil
}

func init() {
	pushCmd.Flags().String("budget", "", "YNAB budget id")
	pushCmd.Flags().String("account", "", "YNAB account id")
	pushCmd.Flags().Bool("dry-run", false, "Only show what would be created")
	batchCmd.Flags().Bool("push", false, "Create missing transactions in YNAB")
}
