// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const csvFixedCols = 4 // run_id, family, sample, point

func csvHeader(d, dim int) []string {
	h := make([]string, 0, csvFixedCols+d+dim)
	h = append(h, "run_id", "family", "sample", "point")
	for j := 0; j < d; j++ {
		h = append(h, "x"+strconv.Itoa(j))
	}
	for j := 0; j < dim; j++ {
		h = append(h, "v"+strconv.Itoa(j))
	}

	return h
}

// WriteCSV writes a header and one row per Record. Floats use the shortest
// representation that round-trips exactly.
func WriteCSV(w io.Writer, ds *Dataset) error {
	_, d, dim := ds.Dims()
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(d, dim)); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	row := make([]string, csvFixedCols+d+dim)
	for _, r := range ds.Records() {
		row[0], row[1] = r.RunID, r.Family
		row[2] = strconv.FormatInt(r.Sample, 10)
		row[3] = strconv.FormatInt(r.Point, 10)
		for j, v := range append(r.Pos, r.Value...) {
			row[csvFixedCols+j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}

	return nil
}

// parseHeader returns d and D from the x*/v* column counts.
func parseHeader(h []string) (d, dim int, err error) {
	if len(h) < csvFixedCols || strings.Join(h[:csvFixedCols], ",") != "run_id,family,sample,point" {
		return 0, 0, fmt.Errorf("header %v: %w", h, ErrMalformed)
	}
	for _, c := range h[csvFixedCols:] {
		switch {
		case strings.HasPrefix(c, "x") && dim == 0:
			d++
		case strings.HasPrefix(c, "v"):
			dim++
		default:
			return 0, 0, fmt.Errorf("header column %q: %w", c, ErrMalformed)
		}
	}

	return d, dim, nil
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: header: %v: %w", err, ErrMalformed)
	}
	d, dim, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}
	cr.FieldsPerRecord = len(header)
	cr.ReuseRecord = true

	var recs []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadCSV: line %d: %v: %w", line, err, ErrMalformed)
		}
		rec := Record{RunID: row[0], Family: row[1], Pos: make([]float64, d), Value: make([]float64, dim)}
		if rec.Sample, err = strconv.ParseInt(row[2], 10, 64); err != nil {
			return nil, fmt.Errorf("ReadCSV: line %d: sample: %v: %w", line, err, ErrMalformed)
		}
		if rec.Point, err = strconv.ParseInt(row[3], 10, 64); err != nil {
			return nil, fmt.Errorf("ReadCSV: line %d: point: %v: %w", line, err, ErrMalformed)
		}
		for j := 0; j < d+dim; j++ {
			v, err := strconv.ParseFloat(row[csvFixedCols+j], 64)
			if err != nil {
				return nil, fmt.Errorf("ReadCSV: line %d: column %s: %v: %w", line, header[csvFixedCols+j], err, ErrMalformed)
			}
			if j < d {
				rec.Pos[j] = v
			} else {
				rec.Value[j-d] = v
			}
		}
		recs = append(recs, rec)
	}

	return FromRecords(recs)
}
