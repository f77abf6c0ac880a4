package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gocopula/domain/sample"
	apperrors "gocopula/internal/errors"
	"gocopula/ports"
)

// BatchWriter writes a sample batch as an xlsx file with a header row
type BatchWriter struct {
	filePath string
	sheet    string
}

// NewBatchWriter creates a writer targeting the given path
func NewBatchWriter(filePath string) *BatchWriter {
	return &BatchWriter{filePath: filePath, sheet: "Sheet1"}
}

var _ ports.BatchWriterPort = (*BatchWriter)(nil)

// WriteBatch emits the batch, one variable per column
func (w *BatchWriter) WriteBatch(ctx context.Context, batch *sample.Batch) error {
	if batch == nil {
		return apperrors.InvalidInput("batch is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for colIdx, key := range batch.Keys() {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return apperrors.IOError("failed to build cell coordinate", err)
		}
		if err := f.SetCellValue(w.sheet, cell, key.String()); err != nil {
			return apperrors.IOError("failed to write header cell", err)
		}

		for rowIdx, v := range batch.ColumnAt(colIdx) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return apperrors.IOError("failed to build cell coordinate", err)
			}
			if err := f.SetCellValue(w.sheet, cell, v); err != nil {
				return apperrors.IOError(fmt.Sprintf("failed to write cell %s", cell), err)
			}
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return apperrors.IOError(fmt.Sprintf("failed to save %s", w.filePath), err)
	}
	return nil
}
