package parser

import (
	"regexp"
	"strings"

	"github.com/yurifrl/finscore/pkg/extract"
	"github.com/yurifrl/finscore/pkg/models"
)

var (
	debitKeywords = []string{
		"debited",
		"debit",
		"deducted",
		"spent",
		"paid",
		"withdrawn",
		"sent",
	}
	creditKeywords = []string{
		"credited",
		"received",
		"received a payment of",
		"deposit",
		"deposit of",
		"inward",
		"salary",
		"refund",
	}

	// HDFC: ..., AX-HDFCBK- ...
	senderPrefix = regexp.MustCompile(`^([A-Z0-9-]{2,20})[:-]`)
)

// ParseLines is the catch-all: every non-empty line becomes a record, with
// whatever amount, date, direction and sender can be read from it.
func (p *Parser) ParseLines(text string) []models.Transaction {
	var transactions []models.Transaction
	for _, line := range nonEmptyLines(text) {
		amount, hasAmount := extract.Amount(line)
		date, hasDate := extract.Date(line)

		var sender string
		if m := senderPrefix.FindStringSubmatch(line); m != nil {
			sender = m[1]
		}

		tx, ok := p.build(models.NewTransaction(line).
			SetAmount(amount, hasAmount).
			SetType(lineDirection(strings.ToLower(line))).
			SetDate(date, hasDate).
			SetSender(sender), FormatLines)
		if ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

func lineDirection(lower string) models.Type {
	isDebit := containsAny(lower, debitKeywords...)
	isCredit := containsAny(lower, creditKeywords...)
	switch {
	case isDebit && !isCredit:
		return models.Debit
	case isCredit && !isDebit:
		return models.Credit
	case strings.Contains(lower, "paid") || strings.Contains(lower, " to "):
		return models.Debit
	case containsAny(lower, "salary", "credited", "received"):
		return models.Credit
	default:
		return models.Unknown
	}
}
