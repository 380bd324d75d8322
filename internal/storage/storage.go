package storage

import (
	"context"
	"io"
)

// FinalDocStore persists approved final documents. Save returns the path
// recorded on the BRD row and later used to serve the file back.
type FinalDocStore interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}
