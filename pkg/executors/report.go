package executors

import (
	"github.com/brunomvsouza/ynab.go/api/transaction"
)

// Status indicates the reconciliation result for a local transaction.
type Status int

const (
	Synced Status = iota
	ToAdd
)

// Entry links a payload with the remote transaction it matched, if any.
type Entry struct {
	Payload transaction.PayloadTransaction
	Remote  *transaction.Transaction // nil when status == ToAdd
	Status  Status
}

type Report struct {
	Items   []Entry
	Skipped int
	toSync  []transaction.PayloadTransaction
}

// BuildReport matches payloads against remote transactions by import id,
// falling back to Equal for remote transactions that carry none. Each remote
// transaction matches at most one payload.
func BuildReport(payloads []transaction.PayloadTransaction, remote []*transaction.Transaction) *Report {
	idx := make(map[string]*transaction.Transaction, len(remote))
	var manual []*transaction.Transaction
	for _, rt := range remote {
		switch {
		case rt == nil:
		case rt.ImportID != nil:
			idx[*rt.ImportID] = rt
		default:
			manual = append(manual, rt)
		}
	}

	used := make(map[*transaction.Transaction]bool)
	report := &Report{Items: make([]Entry, 0, len(payloads))}
	for _, p := range payloads {
		var found *transaction.Transaction
		if p.ImportID != nil {
			found = idx[*p.ImportID]
		}
		if found == nil {
			for _, rt := range manual {
				if !used[rt] && Equal(p, rt) {
					found = rt
					used[rt] = true
					break
				}
			}
		}
		status := ToAdd
		if found != nil {
			status = Synced
		}
		report.Items = append(report.Items, Entry{Payload: p, Remote: found, Status: status})
		if status == ToAdd {
			report.toSync = append(report.toSync, p)
		}
	}
	return report
}

// InSyncCount returns how many payloads already exist remotely.
func (r *Report) InSyncCount() int {
	return len(r.Items) - len(r.toSync)
}

// MissingCount returns how many payloads still need to be created.
func (r *Report) MissingCount() int {
	return len(r.toSync)
}

// Payloads returns the payloads missing remotely.
func (r *Report) Payloads() []transaction.PayloadTransaction {
	return r.toSync
}
