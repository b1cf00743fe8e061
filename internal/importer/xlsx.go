package importer

import (
	"bytes"
	"fmt"

	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/xuri/excelize/v2"
)

// parseXLSX reads an Excel workbook. The first sheet is authoritative; other
// sheets are ignored.
func parseXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidDocument, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrEmptyDocument
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidDocument, err)
	}
	return buildRows(records)
}
