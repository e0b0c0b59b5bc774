package parser

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/finscore/pkg/models"
)

// Format names the layout a strategy recognises.
type Format string

const (
	FormatPhonePe       Format = "phonepe"
	FormatStatement     Format = "statement"
	FormatMiniStatement Format = "ministatement"
	FormatGlued         Format = "glued_sms"
	FormatLines         Format = "lines"
)

// DefaultMaxInputBytes bounds the text handed to the strategies.
const DefaultMaxInputBytes = 1 << 20

// Strategy turns raw text into transactions, or returns nothing when the
// text is not in its layout.
type Strategy struct {
	Format Format
	Parse  func(text string) []models.Transaction
}

type Parser struct {
	logger        *log.Logger
	maxInputBytes int
}

type Option func(*Parser)

// WithMaxInputBytes overrides DefaultMaxInputBytes. Non-positive values are ignored.
func WithMaxInputBytes(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxInputBytes = n
		}
	}
}

func New(logger *log.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Parser{
		logger:        logger,
		maxInputBytes: DefaultMaxInputBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Strategies returns the format strategies in dispatch priority order.
func (p *Parser) Strategies() []Strategy {
	return []Strategy{
		{Format: FormatPhonePe, Parse: p.ParsePhonePe},
		{Format: FormatStatement, Parse: p.ParseStatement},
		{Format: FormatMiniStatement, Parse: p.ParseMiniStatement},
		{Format: FormatGlued, Parse: p.ParseGlued},
		{Format: FormatLines, Parse: p.ParseLines},
	}
}

// Parse runs the strategies in priority order and returns the output of the
// first one that produced anything, together with its format.
func (p *Parser) Parse(text string) ([]models.Transaction, Format) {
	if strings.TrimSpace(text) == "" {
		return nil, ""
	}
	text = p.bound(text)

	txs, format := Dispatch(text, p.Strategies())
	if format == "" {
		p.logger.Debug("no format matched", "bytes", len(text))
		return nil, ""
	}
	p.logger.Debug("format matched", "format", format, "transactions", len(txs))
	return txs, format
}

// Dispatch is a first-non-empty fold over strategies. Later strategies never
// run once an earlier one returned a record.
func Dispatch(text string, strategies []Strategy) ([]models.Transaction, Format) {
	for _, s := range strategies {
		if txs := s.Parse(text); len(txs) > 0 {
			return txs, s.Format
		}
	}
	return nil, ""
}

func (p *Parser) bound(text string) string {
	if len(text) <= p.maxInputBytes {
		return text
	}
	cut := p.maxInputBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	p.logger.Warn("input truncated", "bytes", len(text), "limit", p.maxInputBytes)
	return text[:cut]
}

// build finalises a record, logging and dropping it when invalid.
func (p *Parser) build(b *models.Builder, format Format) (models.Transaction, bool) {
	tx, err := b.Build()
	if err != nil {
		p.logger.Debug("error building transaction", "format", format, "error", err)
		return models.Transaction{}, false
	}
	return tx, true
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
