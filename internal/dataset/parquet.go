// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes ds as one Parquet file with the Record schema.
func WriteParquet(w io.Writer, ds *Dataset) error {
	pw := parquet.NewGenericWriter[Record](w, parquet.SchemaOf(Record{}))
	if _, err := pw.Write(ds.Records()); err != nil {
		return fmt.Errorf("WriteParquet: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("WriteParquet: %w", err)
	}

	return nil
}

// ReadParquet reads a file written by WriteParquet; size is its length in bytes.
func ReadParquet(r io.ReaderAt, size int64) (*Dataset, error) {
	recs, err := parquet.Read[Record](r, size)
	if err != nil {
		return nil, fmt.Errorf("ReadParquet: %v: %w", err, ErrMalformed)
	}

	return FromRecords(recs)
}
