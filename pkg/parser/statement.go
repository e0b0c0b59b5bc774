package parser

import (
	"regexp"
	"strings"

	"github.com/yurifrl/finscore/pkg/extract"
	"github.com/yurifrl/finscore/pkg/models"
)

var (
	// 05 Nov 2025, as printed in the first column of exported statements.
	statementDate   = regexp.MustCompile(`(?i)\b\d{1,2} (?:` + monthNames + `) \d{4}\b`)
	statementAmount = regexp.MustCompile(`\b\d[\d,]*\.\d{2}\b`)
)

// Column header rows repeated on every page.
var statementNoise = regexp.MustCompile(`(?i)` + strings.Join([]string{
	`date credit balance`,
	`debit credit balance`,
	`withdrawal deposit balance`,
	`value date description`,
	`date narration`,
	`date description`,
	`date particulars`,
}, "|"))

// ParseStatement reads whitespace-normalized statement text as consecutive
// blocks, each starting at a DD MON YYYY token. Fewer than two tokens means
// the text is not a statement. Only the first decimal number of a block is
// used; the rest are balances.
func (p *Parser) ParseStatement(text string) []models.Transaction {
	normalized := normalizeSpace(text)
	locs := statementDate.FindAllStringIndex(normalized, -1)
	if len(locs) < 2 {
		return nil
	}

	var transactions []models.Transaction
	for i, loc := range locs {
		end := len(normalized)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body, ok := statementRow(normalized[loc[1]:end])
		if !ok {
			p.logger.Debug("skipping header block", "format", FormatStatement, "block", normalized[loc[0]:end])
			continue
		}
		lower := strings.ToLower(body)

		number := statementAmount.FindString(body)
		if number == "" {
			p.logger.Debug("skipping block without amount", "format", FormatStatement, "block", body)
			continue
		}
		amount, ok := extract.Number(number)
		if !ok {
			continue
		}

		date, hasDate := extract.Date(normalized[loc[0]:loc[1]])
		tx, ok := p.build(models.NewTransaction(body).
			SetAmount(amount, true).
			SetType(statementDirection(lower)).
			SetDate(date, hasDate), FormatStatement)
		if ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

// statementRow cuts a block at a page header that follows the row. Blocks
// that are only header text are dropped.
func statementRow(text string) (string, bool) {
	row := strings.TrimSpace(text)
	if loc := statementNoise.FindStringIndex(row); loc != nil {
		row = strings.TrimSpace(row[:loc[0]])
	}
	return row, row != ""
}

func statementDirection(lower string) models.Type {
	padded := " " + lower + " "
	switch {
	case containsAny(padded, "upi/cr", "/cr/", " transfer from "):
		return models.Credit
	case containsAny(padded, "upi/dr", "/dr/", " transfer to "):
		return models.Debit
	default:
		return models.Debit
	}
}
