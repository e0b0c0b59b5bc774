package parser

import (
	"regexp"
	"strings"

	"github.com/yurifrl/finscore/pkg/extract"
	"github.com/yurifrl/finscore/pkg/models"
)

const gluedSender = "SMS"

// Start of each message in a blob of concatenated alerts.
var gluedAnchor = regexp.MustCompile(`(?i)you have received a payment of rs|\bdebit\s+rs`)

// ParseGlued re-segments alerts pasted without separators. Each segment runs
// from one anchor to the next anchor or the end of text; the anchor decides
// the direction. Segments are returned in text order.
func (p *Parser) ParseGlued(text string) []models.Transaction {
	normalized := normalizeSpace(text)
	locs := gluedAnchor.FindAllStringIndex(normalized, -1)

	var transactions []models.Transaction
	for i, loc := range locs {
		end := len(normalized)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segment := strings.TrimSpace(normalized[loc[0]:end])

		typ := models.Debit
		if strings.HasPrefix(strings.ToLower(segment), "you have received") {
			typ = models.Credit
		}

		amount, hasAmount := extract.Amount(segment)
		date, hasDate := extract.Date(segment)
		tx, ok := p.build(models.NewTransaction(segment).
			SetAmount(amount, hasAmount).
			SetType(typ).
			SetDate(date, hasDate).
			SetSender(gluedSender), FormatGlued)
		if ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}
