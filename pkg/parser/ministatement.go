package parser

import (
	"regexp"
	"strings"

	"github.com/yurifrl/finscore/pkg/extract"
	"github.com/yurifrl/finscore/pkg/models"
)

var (
	miniOpening = regexp.MustCompile(`(?i)opening balance`)
	miniClosing = regexp.MustCompile(`(?i)closing balance`)
	miniBalance = regexp.MustCompile(`(?i)(?:opening|closing) balance`)
	miniSummary = regexp.MustCompile(`(?i)statement summary|account summary|transaction summary`)
	miniDate    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2}\b`)
)

type categoryRule struct {
	category models.Category
	keywords []string
}

// Mini statements carry their own category table; it knows investment and
// expense buckets that the general classifier does not.
var miniStatementRules = []categoryRule{
	{models.CategoryIncome, []string{"salary", "sal cr", "payroll", "stipend", "interest", "cash dep", "refund", "dividend"}},
	{models.CategoryEMI, []string{"emi", "loan", "nach", "ach d", "ecs", "instalment"}},
	{models.CategoryInvestment, []string{"sip", "mutual fund", "mf/", "zerodha", "groww", "ppf", "nps", "rd inst"}},
	{models.CategoryExpense, []string{"pos", "atm", "upi", "bill", "recharge", "purchase", "withdrawal"}},
}

// ParseMiniStatement handles pasted mini statements: rows keyed by DD/MM/YY
// between an Opening Balance and a Closing Balance line. Both markers must
// be present.
func (p *Parser) ParseMiniStatement(text string) []models.Transaction {
	if !miniOpening.MatchString(text) || !miniClosing.MatchString(text) {
		return nil
	}

	normalized := normalizeSpace(text)
	if loc := miniSummary.FindStringIndex(normalized); loc != nil {
		normalized = normalized[:loc[0]]
	}

	locs := miniDate.FindAllStringIndex(normalized, -1)
	var transactions []models.Transaction
	for i, loc := range locs {
		end := len(normalized)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		row, ok := miniRow(normalized[loc[1]:end])
		if !ok {
			continue
		}
		lower := strings.ToLower(row)

		amount, ok := extract.Amount(row)
		if !ok {
			p.logger.Debug("skipping row without amount", "format", FormatMiniStatement, "row", row)
			continue
		}

		typ := miniDirection(lower)
		date, hasDate := extract.Date(normalized[loc[0]:loc[1]])
		tx, ok := p.build(models.NewTransaction(row).
			SetAmount(amount, true).
			SetType(typ).
			SetDate(date, hasDate).
			SetCategory(miniCategory(lower, typ)), FormatMiniStatement)
		if ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

// miniRow trims a row at any balance line that follows it. Rows that are
// themselves balance lines are dropped.
func miniRow(text string) (string, bool) {
	row := strings.TrimSpace(text)
	if loc := miniBalance.FindStringIndex(row); loc != nil {
		if loc[0] == 0 {
			return "", false
		}
		row = strings.TrimSpace(row[:loc[0]])
	}
	return row, row != ""
}

func miniDirection(lower string) models.Type {
	padded := " " + lower + " "
	if containsAny(padded, " cr ", "cash dep", "interest") {
		return models.Credit
	}
	return models.Debit
}

func miniCategory(lower string, typ models.Type) models.Category {
	for _, rule := range miniStatementRules {
		if containsAny(lower, rule.keywords...) {
			return rule.category
		}
	}
	if typ == models.Credit {
		return models.CategoryIncome
	}
	return models.CategoryExpense
}
