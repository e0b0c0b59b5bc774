package executors

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/yurifrl/finscore/pkg/models"
)

// Plan compares txs with what the account already holds in YNAB without
// writing anything.
func (e *Executor) Plan(budgetID, accountID string, txs []models.Transaction) (*Report, error) {
	if budgetID == "" || accountID == "" {
		return nil, fmt.Errorf("budget id and account id are required")
	}

	payloads, skipped := Payloads(accountID, txs)
	if skipped > 0 {
		e.logger.Info("skipping transactions that cannot be posted", "count", skipped)
	}

	remote, err := e.ynab.GetTransactionsByAccount(budgetID, accountID)
	if err != nil {
		return nil, fmt.Errorf("error fetching remote transactions: %w", err)
	}

	report := BuildReport(payloads, remote)
	report.Skipped = skipped
	e.logger.Debug("plan report", "total", len(report.Items), "in_sync", report.InSyncCount(), "to_add", report.MissingCount())
	return report, nil
}

// Print writes a human-readable preview of r.
func (r *Report) Print(w io.Writer) {
	syncedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	addedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green

	for _, entry := range r.Items {
		p := entry.Payload
		line := fmt.Sprintf("%s | %-30s | %10.2f | %s", p.Date.Format("2006-01-02"), deref(p.PayeeName), float64(p.Amount)/1000, deref(p.ImportID))
		if entry.Status == Synced {
			fmt.Fprintln(w, syncedStyle.Render("= "+line))
			continue
		}
		fmt.Fprintln(w, addedStyle.Render("+ "+line))
	}

	if r.MissingCount() == 0 {
		fmt.Fprintf(w, "\nPlan: All %d transaction(s) are in sync", r.InSyncCount())
	} else {
		fmt.Fprintf(w, "\nPlan: %d transaction(s) will be added, %d already in sync", r.MissingCount(), r.InSyncCount())
	}
	if r.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", r.Skipped)
	}
	fmt.Fprintln(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
