// SPDX-License-Identifier: MIT

// Package dataset stores batches of sampled vector fields that share one point set.
//
// Every row of the on-disk table is one (sample, point) pair:
//
//	run_id, family, sample, point, pos[0..d), value[0..D)
//
// CSV and Parquet carry the same rows; Parquet stores pos and value as
// repeated DOUBLE columns.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/vecgp/matrix"
)

// Sentinel errors.
var (
	ErrUnknownFormat = errors.New("dataset: unknown format")
	ErrMalformed     = errors.New("dataset: malformed table")
	ErrShape         = fmt.Errorf("dataset: %w", matrix.ErrDimensionMismatch)
)

// Format selects the file encoding.
type Format int

const (
	CSV Format = iota
	Parquet
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Parquet:
		return "parquet"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "csv" and "parquet" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "parquet", "pq":
		return Parquet, nil
	default:
		return CSV, fmt.Errorf("ParseFormat(%q): %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return CSV, fmt.Errorf("FormatFromPath(%q): no extension: %w", path, ErrUnknownFormat)
	}

	return ParseFormat(ext)
}

// Dataset is a set of fields sampled at the same n×d points.
// Every field is n×D.
type Dataset struct {
	RunID  uuid.UUID
	Family string
	Points *matrix.Dense
	Fields []*matrix.Dense
}

// New checks shapes and stamps a fresh random run id.
func New(family string, points *matrix.Dense, fields []*matrix.Dense) (*Dataset, error) {
	if points == nil {
		return nil, fmt.Errorf("New: points: %w", matrix.ErrNilMatrix)
	}
	dim := -1
	for s, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("New: field %d: %w", s, matrix.ErrNilMatrix)
		}
		if f.Rows() != points.Rows() {
			return nil, fmt.Errorf("New: field %d has %d rows, points %d: %w", s, f.Rows(), points.Rows(), ErrShape)
		}
		if dim >= 0 && f.Cols() != dim {
			return nil, fmt.Errorf("New: field %d has %d columns, want %d: %w", s, f.Cols(), dim, ErrShape)
		}
		dim = f.Cols()
	}

	return &Dataset{RunID: uuid.New(), Family: family, Points: points, Fields: fields}, nil
}

// Dims returns the point count n, the point dimension d and the field dimension D.
// D is 0 for a dataset without fields.
func (ds *Dataset) Dims() (n, d, dim int) {
	n, d = ds.Points.Shape()
	if len(ds.Fields) > 0 {
		dim = ds.Fields[0].Cols()
	}

	return n, d, dim
}

// Record is one table row.
type Record struct {
	RunID  string    `parquet:"run_id"`
	Family string    `parquet:"family"`
	Sample int64     `parquet:"sample"`
	Point  int64     `parquet:"point"`
	Pos    []float64 `parquet:"pos"`
	Value  []float64 `parquet:"value"`
}

// Records flattens the dataset sample-major, point-minor.
func (ds *Dataset) Records() []Record {
	n, _, _ := ds.Dims()
	run := ds.RunID.String()
	out := make([]Record, 0, n*len(ds.Fields))
	for s, f := range ds.Fields {
		for p := 0; p < n; p++ {
			pos, _ := ds.Points.RowView(p)
			val, _ := f.RowView(p)
			out = append(out, Record{
				RunID:  run,
				Family: ds.Family,
				Sample: int64(s),
				Point:  int64(p),
				Pos:    append([]float64(nil), pos...),
				Value:  append([]float64(nil), val...),
			})
		}
	}

	return out
}

// FromRecords rebuilds a dataset. Rows may come in any order but every
// (sample, point) pair in [0,S)×[0,n) must appear exactly once, with one run id
// and consistent positions across samples.
func FromRecords(recs []Record) (*Dataset, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("FromRecords: no rows: %w", ErrMalformed)
	}
	first := recs[0]
	run, err := uuid.Parse(first.RunID)
	if err != nil {
		return nil, fmt.Errorf("FromRecords: run id %q: %v: %w", first.RunID, err, ErrMalformed)
	}
	d, dim := len(first.Pos), len(first.Value)
	var samples, n int64
	total := int64(len(recs))
	for _, r := range recs {
		if r.RunID != first.RunID || r.Family != first.Family {
			return nil, fmt.Errorf("FromRecords: mixed runs %s/%s: %w", first.RunID, r.RunID, ErrMalformed)
		}
		// A complete table has S·n rows, so neither index can reach len(recs).
		if r.Sample < 0 || r.Point < 0 || r.Sample >= total || r.Point >= total {
			return nil, fmt.Errorf("FromRecords: index (%d,%d) outside [0,%d): %w", r.Sample, r.Point, total, ErrMalformed)
		}
		if len(r.Pos) != d || len(r.Value) != dim {
			return nil, fmt.Errorf("FromRecords: row (%d,%d) widths %d/%d, want %d/%d: %w",
				r.Sample, r.Point, len(r.Pos), len(r.Value), d, dim, ErrShape)
		}
		samples = max(samples, r.Sample+1)
		n = max(n, r.Point+1)
	}
	if samples*n != total {
		return nil, fmt.Errorf("FromRecords: %d rows for %d samples × %d points: %w", len(recs), samples, n, ErrMalformed)
	}

	points, err := matrix.NewZeros(int(n), d)
	if err != nil {
		return nil, err
	}
	fields := make([]*matrix.Dense, samples)
	for s := range fields {
		if fields[s], err = matrix.NewZeros(int(n), dim); err != nil {
			return nil, err
		}
	}
	seen := make([]bool, samples*n)
	for _, r := range recs {
		k := r.Sample*n + r.Point
		if seen[k] {
			return nil, fmt.Errorf("FromRecords: duplicate row (%d,%d): %w", r.Sample, r.Point, ErrMalformed)
		}
		seen[k] = true
		if r.Sample == 0 {
			for j, v := range r.Pos {
				if err = points.Set(int(r.Point), j, v); err != nil {
					return nil, fmt.Errorf("FromRecords: %w", err)
				}
			}
		}
		for j, v := range r.Value {
			if err = fields[r.Sample].Set(int(r.Point), j, v); err != nil {
				return nil, fmt.Errorf("FromRecords: %w", err)
			}
		}
	}
	// Positions must not drift between samples.
	for _, r := range recs {
		for j, v := range r.Pos {
			if p, _ := points.At(int(r.Point), j); p != v {
				return nil, fmt.Errorf("FromRecords: point %d moves in sample %d: %w", r.Point, r.Sample, ErrMalformed)
			}
		}
	}

	return &Dataset{RunID: run, Family: first.Family, Points: points, Fields: fields}, nil
}

// Write encodes ds into path, creating or truncating it.
func Write(path string, ds *Dataset, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("dataset: %w", cerr)
		}
	}()

	switch f {
	case CSV:
		return WriteCSV(file, ds)
	case Parquet:
		return WriteParquet(file, ds)
	default:
		return fmt.Errorf("Write: %s: %w", f, ErrUnknownFormat)
	}
}

// Read decodes the dataset stored at path.
func Read(path string, f Format) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer file.Close()

	switch f {
	case CSV:
		return ReadCSV(file)
	case Parquet:
		info, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		return ReadParquet(file, info.Size())
	default:
		return nil, fmt.Errorf("Read: %s: %w", f, ErrUnknownFormat)
	}
}
