package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/statementdesk/bank_recon_app/internal/apperrors"
)

// parseCSV reads a comma-separated statement export. Rows may have ragged
// widths; missing trailing cells default to empty.
func parseCSV(data []byte) ([]Row, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidDocument, err)
	}
	return buildRows(records)
}
