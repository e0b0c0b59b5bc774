package parser

import (
	"regexp"
	"strings"

	"github.com/yurifrl/finscore/pkg/extract"
	"github.com/yurifrl/finscore/pkg/models"
)

const monthNames = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

// PhonePe app statement layout, one field per line:
//
//	Nov 05, 2025
//	10:42 am
//	Paid to Swiggy
//	Transaction ID T2511051042...
//	DEBIT
//	₹250
const phonePeSender = "PhonePe"

var (
	phonePeHeader = regexp.MustCompile(`(?i)^(?:` + monthNames + `)[a-z]*\.?\s+\d{1,2},\s*\d{4}$`)
	phonePeTime   = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(?:am|pm)$`)
	phonePeDesc   = regexp.MustCompile(`(?i)^(paid to|received from)\s+\S`)
	phonePeMarker = regexp.MustCompile(`(?i)^(debit|credit)\b`)
)

// ParsePhonePe splits the text into blocks headed by a "Mon DD, YYYY" line.
// A block without an amount, or with neither a description nor a
// DEBIT/CREDIT marker, is skipped.
func (p *Parser) ParsePhonePe(text string) []models.Transaction {
	var blocks [][]string
	var current []string
	for _, line := range nonEmptyLines(text) {
		if phonePeHeader.MatchString(line) {
			if current != nil {
				blocks = append(blocks, current)
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		blocks = append(blocks, current)
	}

	var transactions []models.Transaction
	for _, block := range blocks {
		if tx, ok := p.phonePeBlock(block); ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}

func (p *Parser) phonePeBlock(block []string) (models.Transaction, bool) {
	var (
		description string
		marked      bool
		amount      float64
		hasAmount   bool
	)
	typ := models.Unknown

	for _, line := range block[1:] {
		if phonePeTime.MatchString(line) {
			continue
		}
		if description == "" && phonePeDesc.MatchString(line) {
			description = line
			continue
		}
		if m := phonePeMarker.FindStringSubmatch(line); m != nil && !marked {
			marked = true
			typ = directionOf(m[1])
		}
		if !hasAmount {
			amount, hasAmount = extract.Amount(line)
		}
	}

	if !hasAmount {
		p.logger.Debug("skipping block without amount", "format", FormatPhonePe, "header", block[0])
		return models.Transaction{}, false
	}
	if description == "" && !marked {
		return models.Transaction{}, false
	}

	if !marked {
		if strings.HasPrefix(strings.ToLower(description), "paid to") {
			typ = models.Debit
		} else {
			typ = models.Credit
		}
	}

	message := description
	if message == "" {
		message = strings.Join(block, " ")
	}
	date, hasDate := extract.Date(block[0])

	return p.build(models.NewTransaction(message).
		SetAmount(amount, true).
		SetType(typ).
		SetDate(date, hasDate).
		SetSender(phonePeSender), FormatPhonePe)
}

func directionOf(marker string) models.Type {
	if strings.EqualFold(marker, "credit") {
		return models.Credit
	}
	return models.Debit
}
