package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/finscore/pkg/csv"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/reader"
)

const outputSuffix = "-finscore.csv"

// Processor converts every supported statement in a directory into a CSV of
// classified transactions.
type Processor struct {
	analyzer   *Analyzer
	logger     *log.Logger
	outputPath string
	filter     csv.FilterFunc[models.Transaction]
}

func NewProcessor(analyzer *Analyzer, logger *log.Logger, outputPath string, filter csv.FilterFunc[models.Transaction]) *Processor {
	return &Processor{
		analyzer:   analyzer,
		logger:     logger,
		outputPath: outputPath,
		filter:     filter,
	}
}

// ProcessDirectory processes each file in dir. Failures are logged per file
// and do not stop the others; the returned slice lists the CSVs written.
func (p *Processor) ProcessDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var written []string
	for _, entry := range entries {
		out, err := p.processEntry(dir, entry)
		if err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
			continue
		}
		if out != "" {
			written = append(written, out)
		}
	}

	return written, nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) (string, error) {
	if entry.IsDir() || strings.HasSuffix(entry.Name(), outputSuffix) || !reader.Supported(entry.Name()) {
		return "", nil
	}

	inputPath := filepath.Join(dir, entry.Name())
	outFile := p.determineOutputPath(inputPath, entry.Name())

	p.logger.Info("processing file", "path", inputPath, "type", reader.DetectType(inputPath))

	if err := p.ProcessFile(inputPath, outFile); err != nil {
		return "", err
	}

	p.logger.Info("processed file successfully", "input", inputPath, "output", outFile)
	return outFile, nil
}

func (p *Processor) determineOutputPath(inputPath, fileName string) string {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	if p.outputPath != "" {
		return filepath.Join(p.outputPath, baseName+outputSuffix)
	}
	return strings.TrimSuffix(inputPath, ext) + outputSuffix
}

// ProcessFile writes the classified transactions of inputPath to outputPath.
func (p *Processor) ProcessFile(inputPath, outputPath string) error {
	text, err := reader.ReadFile(inputPath)
	if err != nil {
		return err
	}

	transactions, format := p.analyzer.Classified(text)
	p.logger.Debug("parsed file", "path", inputPath, "format", format, "transactions", len(transactions))

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer output.Close()

	if err := csv.Write(output, models.Header, transactions, p.filter); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	return nil
}
