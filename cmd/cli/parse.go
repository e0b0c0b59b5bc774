package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yurifrl/finscore/pkg/csv"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/reader"
	"github.com/yurifrl/finscore/pkg/service"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <path|glob|dir>",
	Short: "Extract and classify transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, analyzer, err := setup(cmd)
		if err != nil {
			return err
		}
		filter, err := cliFilters.toFilter()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		raw, _ := cmd.Flags().GetBool("raw")

		files, err := expandInputs(args[0])
		if err != nil {
			return err
		}

		var all []models.Transaction
		for _, file := range files {
			text, err := reader.ReadFile(file)
			if err != nil {
				logger.Warn("failed to read file", "file", file, "error", err)
				continue
			}
			parse := analyzer.Classified
			if raw {
				parse = analyzer.Parse
			}
			txs, detected := parse(text)
			logger.Debug("parsed file", "file", file, "format", detected, "transactions", len(txs))
			all = append(all, txs...)
		}

		return writeTransactions(os.Stdout, format, apply(all, filter.Func()))
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <dir>",
	Short: "Write a classified CSV next to each statement in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, analyzer, err := setup(cmd)
		if err != nil {
			return err
		}
		filter, err := cliFilters.toFilter()
		if err != nil {
			return err
		}

		processor := service.NewProcessor(analyzer, logger, cfg.OutputPath, filter.Func())
		written, err := processor.ProcessDirectory(args[0])
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Println(path)
		}
		return nil
	},
}

func writeTransactions(w io.Writer, format string, txs []models.Transaction) error {
	switch format {
	case "json":
		if txs == nil {
			txs = []models.Transaction{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(txs)
	case "csv":
		return csv.Write(w, models.Header, txs, nil)
	case "table":
		printTable(w, txs)
		return nil
	default:
		return fmt.Errorf("unknown format %q, want table, json or csv", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	debitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

func printTable(w io.Writer, txs []models.Transaction) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s | %-10s | %-7s | %12s | %-10s | %s", "Date", "Sender", "Type", "Amount", "Category", "Message")))
	for _, tx := range txs {
		amount := "-"
		if tx.HasAmount() {
			amount = fmt.Sprintf("%.2f", tx.Value())
		}
		line := fmt.Sprintf("%-10s | %-10s | %-7s | %12s | %-10s | %s", tx.Date, truncate(tx.Sender, 10), tx.Type, amount, tx.Category, truncate(tx.Message, 60))
		switch tx.Type {
		case models.Credit:
			fmt.Fprintln(w, creditStyle.Render(line))
		case models.Debit:
			fmt.Fprintln(w, debitStyle.Render(line))
		default:
			fmt.Fprintln(w, mutedStyle.Render(line))
		}
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d transaction(s)", len(txs))))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	parseCmd.Flags().StringP("format", "f", "table", "Output format: table, json or csv")
	parseCmd.Flags().Bool("raw", false, "Skip classification")
	convertCmd.Flags().StringP("output", "o", "", "Output directory (default is next to each input)")
	rootCmd.AddCommand(convertCmd)
}
