// Package reader turns uploaded statement files into plain text for the
// parser.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/ledongthuc/pdf"
)

type FileType string

const (
	Text FileType = "text"
	PDF  FileType = "pdf"
	XLS  FileType = "xls"
)

// ErrUnsupported is returned for content that cannot be turned into text.
var ErrUnsupported = errors.New("unsupported file")

const maxXLSRows = 5000

// DetectType picks the reader from the file extension. Anything that is not
// a PDF or an XLS workbook is read as text.
func DetectType(name string) FileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF
	case ".xls":
		return XLS
	default:
		return Text
	}
}

// Supported reports whether a directory scan should pick up name.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".sms", ".csv", ".pdf", ".xls":
		return true
	}
	return false
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return Read(filepath.Base(path), data)
}

// Read extracts the text of data, using name only to pick the format.
func Read(name string, data []byte) (string, error) {
	switch DetectType(name) {
	case PDF:
		return readPDF(data)
	case XLS:
		return readXLS(data)
	default:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupported, name)
		}
		return string(data), nil
	}
}

func readPDF(data []byte) (text string, err error) {
	defer recoverUnsupported("pdf", &err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnsupported, err)
	}

	if rows := pdfRows(r); strings.TrimSpace(rows) != "" {
		return rows, nil
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("error extracting pdf text: %w", err)
	}
	return string(out), nil
}

// pdfRows rebuilds one line per text row so that line-oriented strategies
// still see the statement layout.
func pdfRows(r *pdf.Reader) string {
	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func readXLS(data []byte) (text string, err error) {
	defer recoverUnsupported("xls", &err)

	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return "", fmt.Errorf("%w: xls: %v", ErrUnsupported, err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return "", fmt.Errorf("no data found in sheet")
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// recoverUnsupported turns a decoder panic on malformed input into ErrUnsupported.
func recoverUnsupported(format string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrUnsupported, format, r)
	}
}
