// Package excel reads and writes sample batches as tabular files: a header
// row of variable keys followed by one numeric column per variable. Both
// xlsx and csv are handled so externally generated copula draws can be fed
// in from whatever tool produced them.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gocopula/domain/core"
	"gocopula/domain/sample"
	apperrors "gocopula/internal/errors"
	"gocopula/ports"
)

// BatchReader reads a sample batch from an xlsx or csv file
type BatchReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewBatchReader creates a reader for the given path; the extension decides
// the format
func NewBatchReader(filePath string) *BatchReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &BatchReader{filePath: filePath, fileType: fileType, sheet: "Sheet1"}
}

// SetSheet overrides the worksheet name used for xlsx files
func (r *BatchReader) SetSheet(sheet string) {
	r.sheet = sheet
}

var (
	_ ports.BatchReaderPort  = (*BatchReader)(nil)
	_ ports.CopulaSourcePort = (*BatchReader)(nil)
)

// ReadBatch loads the file into a sample batch
func (r *BatchReader) ReadBatch(ctx context.Context) (*sample.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.IOError(fmt.Sprintf("file not found: %s", r.filePath), err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, apperrors.InvalidInput("unsupported file type: " + r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return rowsToBatch(rows)
}

// CopulaSamples satisfies the copula source port: the file's contents are
// the externally generated copula draws.
func (r *BatchReader) CopulaSamples(ctx context.Context) (*sample.Batch, error) {
	return r.ReadBatch(ctx)
}

func (r *BatchReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("failed to read sheet %s", r.sheet), err)
	}
	return rows, nil
}

func (r *BatchReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.IOError("failed to open CSV file", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, apperrors.IOError("failed to parse CSV file", err)
	}
	return records, nil
}

// rowsToBatch converts a header row plus data rows into column-major
// batch form. Short rows and blank cells are rejected; a batch must be a
// complete rectangle before it can be ranked.
func rowsToBatch(rows [][]string) (*sample.Batch, error) {
	if len(rows) < 2 {
		return nil, apperrors.InvalidInput("file must contain a header row and at least one data row")
	}

	header := rows[0]
	keys := make([]core.VariableKey, 0, len(header))
	for _, h := range header {
		key, err := core.ParseVariableKey(strings.TrimSpace(h))
		if err != nil {
			return nil, apperrors.InvalidInput("header contains an empty variable key")
		}
		keys = append(keys, key)
	}

	columns := make([][]float64, len(keys))
	for i := range columns {
		columns[i] = make([]float64, 0, len(rows)-1)
	}

	for rowIdx, row := range rows[1:] {
		if len(row) < len(keys) {
			return nil, apperrors.InvalidInput(
				fmt.Sprintf("row %d has %d cells, expected %d", rowIdx+2, len(row), len(keys)))
		}
		for colIdx := range keys {
			cell := strings.TrimSpace(row[colIdx])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, apperrors.InvalidInput(
					fmt.Sprintf("row %d column %s: not a number: %q", rowIdx+2, keys[colIdx], cell))
			}
			columns[colIdx] = append(columns[colIdx], v)
		}
	}

	return sample.FromColumns(keys, columns)
}
