package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yurifrl/finscore/pkg/csv"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/reader"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	sender    string
	txType    string
	category  string
}

func (f *filters) toFilter() (csv.Filter, error) {
	for _, d := range []string{f.startDate, f.endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return csv.Filter{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
	}

	t := models.Type(strings.ToLower(f.txType))
	switch t {
	case "", models.Credit, models.Debit, models.Unknown:
	default:
		return csv.Filter{}, fmt.Errorf("invalid type %q", f.txType)
	}

	return csv.Filter{
		StartDate: f.startDate,
		EndDate:   f.endDate,
		MinAmount: f.minAmount,
		MaxAmount: f.maxAmount,
		Sender:    f.sender,
		Type:      t,
		Category:  models.Category(strings.ToLower(f.category)),
	}, nil
}

// apply keeps the records accepted by f.
func apply(txs []models.Transaction, f csv.FilterFunc[models.Transaction]) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// expandInputs resolves a path, glob or directory to the supported files it
// names.
func expandInputs(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files found matching pattern %s", pattern)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, match)
			continue
		}
		entries, err := os.ReadDir(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && reader.Supported(entry.Name()) {
				files = append(files, filepath.Join(match, entry.Name()))
			}
		}
	}
	return files, nil
}
