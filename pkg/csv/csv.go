package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/yurifrl/finscore/pkg/models"
)

// Record is anything that renders as one CSV row.
type Record interface {
	Fields() []string
}

type FilterFunc[T Record] func(T) bool

// Write renders header and the records accepted by filter to out. A nil
// filter accepts everything.
func Write[T Record](out io.Writer, header []string, records []T, filter FilterFunc[T]) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		if err := w.Write(r.Fields()); err != nil {
			return fmt.Errorf("error writing csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Create is Write into a buffer.
func Create[T Record](header []string, records []T, filter FilterFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, header, records, filter); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filter holds the transaction filters shared by the CLI and the directory
// processor. Zero values disable a filter.
type Filter struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
	MinAmount float64
	MaxAmount float64
	Sender    string
	Type      models.Type
	Category  models.Category
}

// Func converts f into a FilterFunc. Records without a date are dropped
// only when a date bound is set.
func (f Filter) Func() FilterFunc[models.Transaction] {
	return func(t models.Transaction) bool {
		// ISO dates compare correctly as strings
		if f.StartDate != "" && (t.Date == "" || t.Date < f.StartDate) {
			return false
		}
		if f.EndDate != "" && (t.Date == "" || t.Date > f.EndDate) {
			return false
		}
		if f.MinAmount != 0 && t.Value() < f.MinAmount {
			return false
		}
		if f.MaxAmount != 0 && t.Value() > f.MaxAmount {
			return false
		}
		if f.Sender != "" && !strings.Contains(strings.ToLower(t.Sender), strings.ToLower(f.Sender)) {
			return false
		}
		if f.Type != "" && t.Type != f.Type {
			return false
		}
		if f.Category != "" && t.Category != f.Category {
			return false
		}
		return true
	}
}
