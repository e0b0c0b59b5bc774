package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/parser"
	"github.com/yurifrl/finscore/pkg/reader"
	"github.com/yurifrl/finscore/pkg/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score [flags] <path|glob|dir>",
	Short: "Score financial health and print loan and SIP advice",
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
		asJSON, _ := cmd.Flags().GetBool("json")
		dump, _ := cmd.Flags().GetBool("dump")

		files, err := expandInputs(args[0])
		if err != nil {
			return err
		}

		var (
			all    []models.Transaction
			format parser.Format
		)
		for i, file := range files {
			text, err := reader.ReadFile(file)
			if err != nil {
				logger.Warn("failed to read file", "file", file, "error", err)
				continue
			}
			txs, detected := analyzer.Classified(text)
			// mixed inputs report no single format
			if i == 0 {
				format = detected
			} else if detected != format {
				format = ""
			}
			all = append(all, txs...)
		}

		report := analyzer.Summarize(format, apply(all, filter.Func()))
		if dump {
			pp.Fprintln(os.Stderr, report)
		}
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(os.Stdout, report)
		return nil
	},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fairStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	poorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 75:
		return goodStyle
	case score >= 50:
		return fairStyle
	default:
		return poorStyle
	}
}

func ratio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func printReport(w io.Writer, r service.Report) {
	m := r.Metrics
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Score"), scoreStyle(r.Score).Render(fmt.Sprintf("%d/100", r.Score)))
	fmt.Fprintf(w, "Transactions: %d", len(r.Transactions))
	if r.Format != "" {
		fmt.Fprintf(w, " (%s)", r.Format)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("\nMetrics"))
	fmt.Fprintf(w, "  Income       %12.2f\n", m.Income)
	fmt.Fprintf(w, "  Expense      %12.2f\n", m.Expense)
	fmt.Fprintf(w, "  EMI          %12.2f\n", m.EMI)
	fmt.Fprintf(w, "  Investment   %12.2f\n", m.Investment)
	fmt.Fprintf(w, "  Savings      %12.2f\n", m.Savings)
	fmt.Fprintf(w, "  DTI %s | Savings rate %s | Outgo ratio %s\n", ratio(m.DTI), ratio(m.SavingsRate), ratio(m.OutgoRatio))

	loan := r.Advice.Loan
	fmt.Fprintln(w, titleStyle.Render("\nLoan"))
	fmt.Fprintf(w, "  %s\n", loan.Reason)
	if loan.CanTakeLoan {
		fmt.Fprintf(w, "  Suggested new EMI: %.2f\n", loan.SuggestedNewEMI)
		for _, opt := range loan.ApproxLoanAmounts {
			fmt.Fprintf(w, "    %2d years: %12.2f\n", opt.TenureYears, opt.ApproxLoanAmount)
		}
	}

	sip := r.Advice.SIP
	fmt.Fprintln(w, titleStyle.Render("\nSIP"))
	fmt.Fprintf(w, "  %s\n", sip.Reason)
	if sip.ShouldInvest {
		fmt.Fprintf(w, "  Suggested SIP: %.2f (%s)\n", sip.SuggestedSIP, sip.RiskProfile)
	}

	if len(r.Advice.Tips) > 0 {
		fmt.Fprintln(w, titleStyle.Render("\nTips"))
		for _, tip := range r.Advice.Tips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the report as JSON")
	scoreCmd.Flags().Bool("dump", false, "Dump the full report to stderr")
}
