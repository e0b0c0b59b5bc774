package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the direction of a cash flow.
type Type string

const (
	Credit  Type = "credit"
	Debit   Type = "debit"
	Unknown Type = "unknown"
)

// Category is the spending bucket assigned to a transaction.
type Category string

const (
	CategoryIncome   Category = "income"
	CategoryEMI      Category = "emi"
	CategoryShopping Category = "shopping"
	CategoryBills    Category = "bills"
	CategoryTransfer Category = "transfer"
	CategoryUPI      Category = "upi"
	CategoryATM      Category = "atm"
	CategoryOther    Category = "other"

	// Only produced by the mini-statement parser.
	CategoryInvestment Category = "investment"
	CategoryExpense    Category = "expense"
)

// Categories is the closed set the classifier assigns from, in priority order.
var Categories = []Category{
	CategoryIncome,
	CategoryEMI,
	CategoryShopping,
	CategoryBills,
	CategoryTransfer,
	CategoryUPI,
	CategoryATM,
	CategoryOther,
}

// IsClassifierCategory reports whether c belongs to the classifier's closed set.
func IsClassifierCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction is a single record extracted from raw financial text.
// A nil Amount means no amount was found; it is distinct from zero.
type Transaction struct {
	Message  string   `json:"message"`
	Amount   *float64 `json:"amount"`
	Type     Type     `json:"type"`
	Date     string   `json:"date,omitempty"`
	Sender   string   `json:"sender,omitempty"`
	Category Category `json:"category,omitempty"`
}

// HasAmount reports whether an amount was extracted.
func (t Transaction) HasAmount() bool {
	return t.Amount != nil
}

// Value returns the amount, or zero when absent.
func (t Transaction) Value() float64 {
	if t.Amount == nil {
		return 0
	}
	return *t.Amount
}

// Fields renders the record as a CSV row.
func (t Transaction) Fields() []string {
	amount := ""
	if t.Amount != nil {
		amount = strconv.FormatFloat(*t.Amount, 'f', 2, 64)
	}
	return []string{t.Date, t.Sender, string(t.Type), amount, string(t.Category), t.Message}
}

// Header matches the column order of Fields.
var Header = []string{"Date", "Sender", "Type", "Amount", "Category", "Message"}

// Float returns a pointer to v, for building records with a known amount.
func Float(v float64) *float64 {
	return &v
}

// Builder assembles a Transaction, defaulting Type to Unknown.
type Builder struct {
	tx Transaction
}

func NewTransaction(message string) *Builder {
	return &Builder{tx: Transaction{Message: strings.TrimSpace(message), Type: Unknown}}
}

func (b *Builder) SetAmount(amount float64, ok bool) *Builder {
	if ok {
		b.tx.Amount = Float(amount)
	}
	return b
}

func (b *Builder) SetType(t Type) *Builder {
	b.tx.Type = t
	return b
}

func (b *Builder) SetDate(date string, ok bool) *Builder {
	if ok {
		b.tx.Date = date
	}
	return b
}

func (b *Builder) SetSender(sender string) *Builder {
	b.tx.Sender = sender
	return b
}

func (b *Builder) SetCategory(c Category) *Builder {
	b.tx.Category = c
	return b
}

// Build validates the record. The message must be non-empty and the amount,
// when present, non-negative.
func (b *Builder) Build() (Transaction, error) {
	if b.tx.Message == "" {
		return Transaction{}, fmt.Errorf("empty message")
	}
	if b.tx.Amount != nil && *b.tx.Amount < 0 {
		return Transaction{}, fmt.Errorf("negative amount %.2f", *b.tx.Amount)
	}
	if b.tx.Type == "" {
		b.tx.Type = Unknown
	}
	return b.tx, nil
}
