package service

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/finscore/pkg/advice"
	"github.com/yurifrl/finscore/pkg/classifier"
	"github.com/yurifrl/finscore/pkg/config"
	"github.com/yurifrl/finscore/pkg/parser"
)

// FromConfig wires an Analyzer from cfg, loading custom classifier rules
// when a rules file is configured.
func FromConfig(cfg *config.Config, logger *log.Logger) (*Analyzer, error) {
	opts := []classifier.Option{classifier.WithPrecedence(cfg.Precedence())}
	if cfg.Classifier.RulesFile != "" {
		rules, err := classifier.LoadRules(cfg.Classifier.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("error loading classifier rules: %w", err)
		}
		logger.Debug("loaded classifier rules", "path", cfg.Classifier.RulesFile, "rules", len(rules))
		opts = append(opts, classifier.WithRules(rules))
	}

	return NewAnalyzer(
		logger,
		parser.New(logger, parser.WithMaxInputBytes(cfg.Parser.MaxInputBytes)),
		classifier.New(logger, opts...),
		advice.New(cfg.Advice),
	), nil
}
