package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type YNABConfig struct {
	BudgetID string            `yaml:"budget_id"`
	TokenEnv string            `yaml:"token_env"`
	Accounts map[string]string `yaml:"accounts"`
}

// Plan is a batch of statement files to score and, optionally, push to YNAB.
//
//	ynab:
//	  budget_id: 1a2b...
//	  token_env: YNAB_TOKEN
//	  accounts:
//	    hdfc: 9f8e...
//	statements:
//	  - file: sms/november.txt
//	    account: hdfc
type Plan struct {
	YNAB       YNABConfig  `yaml:"ynab"`
	Statements []Statement `yaml:"statements"`

	dir string
}

type Statement struct {
	File    string `yaml:"file"`
	Account string `yaml:"account"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Statements) == 0 {
		return nil, fmt.Errorf("plan has no statements")
	}
	for i, st := range p.Statements {
		if st.File == "" {
			return nil, fmt.Errorf("statement %d has no file", i+1)
		}
	}
	p.dir = filepath.Dir(path)
	return &p, nil
}

// Path resolves a statement file relative to the plan file.
func (p *Plan) Path(st Statement) string {
	if filepath.IsAbs(st.File) {
		return st.File
	}
	return filepath.Join(p.dir, st.File)
}

// AccountID maps the statement's account alias to a YNAB account id.
func (p *Plan) AccountID(st Statement) (string, error) {
	if st.Account == "" {
		return "", fmt.Errorf("statement %s has no account", st.File)
	}
	id, ok := p.YNAB.Accounts[st.Account]
	if !ok {
		return "", fmt.Errorf("statement %s: unknown account %q", st.File, st.Account)
	}
	return id, nil
}

// Token reads the YNAB token from the environment variable named by the plan,
// falling back to fallback.
func (p *Plan) Token(fallback string) string {
	if p.YNAB.TokenEnv != "" {
		if token := os.Getenv(p.YNAB.TokenEnv); token != "" {
			return token
		}
	}
	return fallback
}

func (p *Plan) Print(w io.Writer) {
	fmt.Fprintf(w, "YNAB budget: %s\n", p.YNAB.BudgetID)
	for i, st := range p.Statements {
		fmt.Fprintf(w, "[%d] file=%s account=%s\n", i+1, st.File, st.Account)
	}
}
