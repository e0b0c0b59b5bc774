package executors

import (
	"fmt"

	"github.com/yurifrl/finscore/pkg/models"
)

// Apply creates in YNAB the transactions of txs that the account does not
// hold yet and returns the plan it acted on.
func (e *Executor) Apply(budgetID, accountID string, txs []models.Transaction) (*Report, error) {
	report, err := e.Plan(budgetID, accountID, txs)
	if err != nil {
		return nil, err
	}

	batch := report.Payloads()
	if len(batch) == 0 {
		e.logger.Info("nothing to create", "account_id", accountID, "in_sync", report.InSyncCount())
		return report, nil
	}

	if err := e.ynab.CreateTransactions(budgetID, batch); err != nil {
		return nil, fmt.Errorf("failed to create transactions: %w", err)
	}
	e.logger.Info("created transactions", "count", len(batch), "account_id", accountID)
	return report, nil
}
