package executors

import (
	"strings"

	"github.com/brunomvsouza/ynab.go/api/transaction"
)

// Equal reports whether a remote transaction without an import id, such as
// one entered by hand, is the same as payload p. Date, amount in milliunits
// and the normalised payee must all agree.
func Equal(p transaction.PayloadTransaction, remote *transaction.Transaction) bool {
	if remote == nil {
		return false
	}
	if p.Amount != remote.Amount {
		return false
	}
	if p.Date.Format("2006-01-02") != remote.Date.Format("2006-01-02") {
		return false
	}
	return normalizePayee(deref(p.PayeeName)) == normalizePayee(deref(remote.PayeeName))
}

func normalizePayee(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
