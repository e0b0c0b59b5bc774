package service

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurifrl/finscore/pkg/advice"
	"github.com/yurifrl/finscore/pkg/classifier"
	"github.com/yurifrl/finscore/pkg/config"
	"github.com/yurifrl/finscore/pkg/csv"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/parser"
)

const alert = "HDFC: Your account credited with INR 12000 on 01-Nov-2025. Salary received."

func TestAnalyzeSingleAlert(t *testing.T) {
	report := NewAnalyzer(nil, nil, nil, nil).Analyze(alert)

	assert.Equal(t, parser.FormatLines, report.Format)
	require.Len(t, report.Transactions, 1)
	tx := report.Transactions[0]
	assert.Equal(t, models.Credit, tx.Type)
	assert.Equal(t, 12000.0, tx.Value())
	assert.Equal(t, "2025-11-01", tx.Date)
	assert.Equal(t, models.CategoryIncome, tx.Category)

	// pure inflow
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, 12000.0, report.Metrics.Income)
	assert.True(t, report.Advice.Loan.CanTakeLoan)
}

func TestAnalyzeEmpty(t *testing.T) {
	report := NewAnalyzer(nil, nil, nil, nil).Analyze("   ")

	assert.Equal(t, 20, report.Score)
	assert.Nil(t, report.Metrics.DTI)
	assert.False(t, report.Advice.Loan.CanTakeLoan)

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"transactions":[]`)
	assert.Contains(t, string(body), `"dti":null`)
}

func TestAnalyzeUpstreamPrecedence(t *testing.T) {
	text := "Opening Balance Rs 100.00\n01/11/25 SIP GROWW Rs 1,000.00\nClosing Balance Rs 0.00"
	c := classifier.New(nil, classifier.WithPrecedence(classifier.PrecedenceUpstream))

	txs, format := NewAnalyzer(nil, nil, c, nil).Classified(text)

	assert.Equal(t, parser.FormatMiniStatement, format)
	require.Len(t, txs, 1)
	assert.Equal(t, models.CategoryInvestment, txs[0].Category)
}

func TestProcessDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "alerts.txt"), []byte(alert+"\nAXIS: Rs.150.00 debited for electricity bill on 05-Nov-2025\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.md"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.txt"), []byte{0xff, 0xfe}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(in, "nested"), 0o755))

	filter := csv.Filter{Type: models.Debit}.Func()
	p := NewProcessor(NewAnalyzer(nil, nil, nil, nil), log.New(os.Stderr), out, filter)

	written, err := p.ProcessDirectory(in)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "alerts-finscore.csv")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Sender,Type,Amount,Category,Message", lines[0])
	assert.Equal(t, "2025-11-05,AXIS,debit,150.00,bills,AXIS: Rs.150.00 debited for electricity bill on 05-Nov-2025", lines[1])
}

func TestProcessDirectoryMissing(t *testing.T) {
	p := NewProcessor(NewAnalyzer(nil, nil, nil, nil), log.New(os.Stderr), "", nil)
	_, err := p.ProcessDirectory(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDetermineOutputPath(t *testing.T) {
	p := &Processor{}
	assert.Equal(t, "/in/sms-finscore.csv", p.determineOutputPath("/in/sms.txt", "sms.txt"))

	p.outputPath = "/out"
	assert.Equal(t, "/out/sms-finscore.csv", p.determineOutputPath("/in/sms.txt", "sms.txt"))
}

func TestFromConfig(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("rules:\n  - category: bills\n    keywords: [salary]\n"), 0o644))

	cfg := &config.Config{
		Parser:     config.ParserConfig{MaxInputBytes: parser.DefaultMaxInputBytes},
		Classifier: config.ClassifierConfig{Precedence: "classifier", RulesFile: rules},
		Advice:     advice.DefaultConfig(),
	}
	a, err := FromConfig(cfg, log.New(io.Discard))
	require.NoError(t, err)

	txs, _ := a.Classified(alert)
	require.Len(t, txs, 1)
	assert.Equal(t, models.CategoryBills, txs[0].Category)

	cfg.Classifier.RulesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = FromConfig(cfg, log.New(io.Discard))
	assert.ErrorContains(t, err, "classifier rules")
}
