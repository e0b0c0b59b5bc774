// Package classifier assigns a spending category to each transaction by
// keyword matching over its message.
package classifier

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/finscore/pkg/models"
	"gopkg.in/yaml.v3"
)

// Rule maps a category to the keywords that select it. Rules are tried in
// slice order and keywords in their listed order; the first hit wins.
type Rule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// DefaultRules is the built-in table. "other" has no keywords and is the
// fallback.
var DefaultRules = []Rule{
	{Category: models.CategoryIncome, Keywords: []string{"salary", "credited", "payroll", "salary credited"}},
	{Category: models.CategoryEMI, Keywords: []string{"emi", "loan", "instalment"}},
	{Category: models.CategoryShopping, Keywords: []string{"flipkart", "amazon", "myntra", "bigbazaar", "zomato", "paytm", "swiggy", "booking"}},
	{Category: models.CategoryBills, Keywords: []string{"electricity", "water bill", "bill", "recharge"}},
	{Category: models.CategoryTransfer, Keywords: []string{"transfer", "neft", "imps", "rtgs"}},
	{Category: models.CategoryUPI, Keywords: []string{"upi", "gpay", "phonepe", "paytm", "bhim"}},
	{Category: models.CategoryATM, Keywords: []string{"atm", "withdraw"}},
	{Category: models.CategoryOther},
}

// Precedence decides who wins when a strategy already set a category.
type Precedence string

const (
	// PrecedenceClassifier always overwrites the incoming category.
	PrecedenceClassifier Precedence = "classifier"
	// PrecedenceUpstream keeps a non-empty, non-other incoming category.
	PrecedenceUpstream Precedence = "upstream"
)

// ParsePrecedence accepts "classifier", "upstream" or "" (classifier).
func ParsePrecedence(s string) (Precedence, error) {
	switch p := Precedence(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PrecedenceClassifier, nil
	case PrecedenceClassifier, PrecedenceUpstream:
		return p, nil
	default:
		return "", fmt.Errorf("unknown category precedence %q", s)
	}
}

type Classifier struct {
	logger     *log.Logger
	rules      []Rule
	precedence Precedence
}

type Option func(*Classifier)

func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

func WithPrecedence(p Precedence) Option {
	return func(c *Classifier) {
		c.precedence = p
	}
}

func New(logger *log.Logger, opts ...Option) *Classifier {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Classifier{
		logger:     logger,
		rules:      DefaultRules,
		precedence: PrecedenceClassifier,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns a categorized copy of txs. A missing amount becomes zero.
// The input slice and its records are left untouched.
func (c *Classifier) Classify(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, c.classify(tx))
	}
	return out
}

func (c *Classifier) classify(tx models.Transaction) models.Transaction {
	tx.Amount = models.Float(tx.Value())

	if c.precedence == PrecedenceUpstream && tx.Category != "" && tx.Category != models.CategoryOther {
		c.logger.Debug("keeping upstream category", "category", tx.Category, "message", tx.Message)
		return tx
	}

	tx.Category = c.Match(tx.Message)
	if tx.Category == models.CategoryOther {
		switch tx.Type {
		case models.Credit:
			tx.Category = models.CategoryIncome
		case models.Debit:
			tx.Category = models.CategoryShopping
		}
	}
	return tx
}

// Match returns the category of the first rule with a keyword contained in
// message, or other.
func (c *Classifier) Match(message string) models.Category {
	lower := strings.ToLower(message)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads an ordered rule table from a YAML file:
//
//	rules:
//	  - category: income
//	    keywords: [salary, payroll]
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rules file has no rules")
	}
	for i, rule := range file.Rules {
		if !models.IsClassifierCategory(rule.Category) {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, rule.Category)
		}
	}
	return file.Rules, nil
}
