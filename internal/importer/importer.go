// Package importer converts uploaded bank statement spreadsheets into
// normalized row records. Parsing is a pure transform from bytes to rows; all
// persistence happens downstream in the import pipeline.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
)

// Row is one normalized data row from an uploaded statement file. PostDate is
// kept as the raw cell text; date parsing is the pipeline's concern.
type Row struct {
	PostDate    string
	Number      string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Parse converts raw spreadsheet bytes into normalized rows. Files with a .csv
// extension go through the CSV codec; everything else is treated as XLSX, where
// the first sheet is authoritative.
func Parse(data []byte, fileName string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return parseCSV(data)
	}
	return parseXLSX(data)
}

// Recognized column headers, matched case-insensitively against the first row.
const (
	colPostDate    = "post date"
	colNumber      = "check"
	colDescription = "description"
	colDebit       = "debit"
	colCredit      = "credit"
)

type columnIndex struct {
	date        int
	number      int
	description int
	debit       int
	credit      int
}

func mapHeader(header []string) columnIndex {
	idx := columnIndex{date: -1, number: -1, description: -1, debit: -1, credit: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case colPostDate:
			idx.date = i
		case colNumber:
			idx.number = i
		case colDescription:
			idx.description = i
		case colDebit:
			idx.debit = i
		case colCredit:
			idx.credit = i
		}
	}
	return idx
}

func (idx columnIndex) recognized() bool {
	return idx.date >= 0 || idx.number >= 0 || idx.description >= 0 || idx.debit >= 0 || idx.credit >= 0
}

// buildRows maps raw records (header first) to normalized rows.
func buildRows(records [][]string) ([]Row, error) {
	if len(records) <= 1 {
		return nil, apperrors.ErrEmptyDocument
	}

	idx := mapHeader(records[0])
	if !idx.recognized() {
		return nil, fmt.Errorf("%w: no recognized columns in header", apperrors.ErrInvalidDocument)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			PostDate:    cell(rec, idx.date),
			Number:      cell(rec, idx.number),
			Description: cell(rec, idx.description),
			Debit:       coerceAmount(cell(rec, idx.debit)),
			Credit:      coerceAmount(cell(rec, idx.credit)),
		})
	}
	return rows, nil
}

// cell returns the trimmed value at index i, or "" for missing cells.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// coerceAmount parses a monetary cell. Empty and non-numeric cells become
// zero; coercion never fails.
func coerceAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}
