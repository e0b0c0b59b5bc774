package ynab

import (
	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api/transaction"
)

// YNABClient narrows the YNAB SDK to what pushing parsed transactions needs.
type YNABClient struct {
	client ynab.ClientServicer
}

type TransactionService struct {
	original *transaction.Service
}

func New(token string) *YNABClient {
	return &YNABClient{
		client: ynab.NewClient(token),
	}
}

func (c *YNABClient) Transaction() *TransactionService {
	return &TransactionService{original: c.client.Transaction()}
}

// GetTransactionsByAccount lists the account's existing transactions, used to
// find import ids that were already pushed.
func (ts *TransactionService) GetTransactionsByAccount(budgetID, accountID string) ([]*transaction.Transaction, error) {
	return ts.original.GetTransactionsByAccount(budgetID, accountID, nil)
}

// CreateTransactions creates multiple transactions in one API call
func (ts *TransactionService) CreateTransactions(budgetID string, payloads []transaction.PayloadTransaction) error {
	if len(payloads) == 0 {
		return nil
	}
	_, err := ts.original.CreateTransactions(budgetID, payloads)
	return err
}
