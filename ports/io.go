package ports

import (
	"context"

	"gocopula/domain/sample"
)

// BatchReaderPort loads a sample batch from a tabular source
// (header row of variable keys, one numeric column per variable)
type BatchReaderPort interface {
	ReadBatch(ctx context.Context) (*sample.Batch, error)
}

// BatchWriterPort emits a sample batch to a tabular sink
type BatchWriterPort interface {
	WriteBatch(ctx context.Context, batch *sample.Batch) error
}
