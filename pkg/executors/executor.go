package executors

import (
	"io"

	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/charmbracelet/log"
)

// TransactionService is the part of the YNAB API the executor talks to.
//
//go:generate mockgen -destination=mocks/mock_transaction_service.go -package=mocks -source=executor.go TransactionService
type TransactionService interface {
	GetTransactionsByAccount(budgetID, accountID string) ([]*transaction.Transaction, error)
	CreateTransactions(budgetID string, payloads []transaction.PayloadTransaction) error
}

type Executor struct {
	logger *log.Logger
	ynab   TransactionService
}

func New(logger *log.Logger, ynab TransactionService) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{
		logger: logger,
		ynab:   ynab,
	}
}
