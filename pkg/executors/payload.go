package executors

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"

	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/yurifrl/finscore/pkg/models"
)

const (
	importPrefix  = "FS"
	maxPayeeRunes = 50
	maxMemoRunes  = 200
)

// ImportID identifies a transaction for YNAB's server-side dedupe. The
// occurrence separates identical records within one push. YNAB caps import
// ids at 36 characters.
func ImportID(tx models.Transaction, occurrence int) string {
	key := fmt.Sprintf("%s|%s|%.2f|%s", tx.Date, strings.ToLower(tx.Message), tx.Value(), tx.Type)
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%x:%d", importPrefix, sum[:8], occurrence)
}

// Milliunits converts the amount to YNAB milliunits, negative for debits.
func Milliunits(tx models.Transaction) int64 {
	v := int64(math.Round(tx.Value() * 1000))
	if tx.Type == models.Debit {
		return -v
	}
	return v
}

// Payloads converts records into YNAB payloads. Records without a date, an
// amount or a known direction cannot be posted and are skipped.
func Payloads(accountID string, txs []models.Transaction) (payloads []transaction.PayloadTransaction, skipped int) {
	seen := make(map[string]int, len(txs))
	for _, tx := range txs {
		if tx.Date == "" || !tx.HasAmount() || tx.Type == models.Unknown {
			skipped++
			continue
		}
		date, err := api.DateFromString(tx.Date)
		if err != nil {
			skipped++
			continue
		}

		base := ImportID(tx, 0)
		seen[base]++
		importID := ImportID(tx, seen[base])

		payee := tx.Sender
		if payee == "" {
			payee = tx.Message
		}
		payee = truncate(payee, maxPayeeRunes)
		memo := truncate(tx.Message, maxMemoRunes)

		payloads = append(payloads, transaction.PayloadTransaction{
			AccountID: accountID,
			Date:      date,
			Amount:    Milliunits(tx),
			Cleared:   transaction.ClearingStatusCleared,
			Approved:  true,
			PayeeName: &payee,
			Memo:      &memo,
			ImportID:  &importID,
		})
	}
	return payloads, skipped
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
