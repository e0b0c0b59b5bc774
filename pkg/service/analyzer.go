package service

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/finscore/pkg/advice"
	"github.com/yurifrl/finscore/pkg/classifier"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/parser"
	"github.com/yurifrl/finscore/pkg/scoring"
)

// Report is the full result for one piece of text.
type Report struct {
	Format       parser.Format        `json:"format"`
	Score        int                  `json:"score"`
	Metrics      scoring.Metrics      `json:"metrics"`
	Transactions []models.Transaction `json:"transactions"`
	Advice       advice.Advice        `json:"advice"`
}

// Analyzer runs text through parse, classify, score and advise. It holds
// only configuration and is safe for concurrent use.
type Analyzer struct {
	logger     *log.Logger
	parser     *parser.Parser
	classifier *classifier.Classifier
	advisor    *advice.Advisor
}

func NewAnalyzer(logger *log.Logger, p *parser.Parser, c *classifier.Classifier, a *advice.Advisor) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if p == nil {
		p = parser.New(logger)
	}
	if c == nil {
		c = classifier.New(logger)
	}
	if a == nil {
		a = advice.New(advice.DefaultConfig())
	}
	return &Analyzer{logger: logger, parser: p, classifier: c, advisor: a}
}

// Parse extracts records without classifying them.
func (a *Analyzer) Parse(text string) ([]models.Transaction, parser.Format) {
	return a.parser.Parse(text)
}

// Classified extracts and classifies records.
func (a *Analyzer) Classified(text string) ([]models.Transaction, parser.Format) {
	txs, format := a.parser.Parse(text)
	return a.classifier.Classify(txs), format
}

func (a *Analyzer) Analyze(text string) Report {
	txs, format := a.Classified(text)
	return a.Summarize(format, txs)
}

// Summarize scores already classified records, possibly gathered from
// several inputs.
func (a *Analyzer) Summarize(format parser.Format, txs []models.Transaction) Report {
	result := scoring.Score(txs)
	a.logger.Debug("analyzed transactions", "format", format, "transactions", len(txs), "score", result.Score)

	if txs == nil {
		txs = []models.Transaction{}
	}
	return Report{
		Format:       format,
		Score:        result.Score,
		Metrics:      result.Metrics,
		Transactions: txs,
		Advice:       a.advisor.Build(result.Metrics),
	}
}
