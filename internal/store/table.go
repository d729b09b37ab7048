// Package store persists each record type as a header + rows csv file.
package store

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ufcstats.internal.store")

// ErrColumnMismatch is returned when a file's header (or a record's width)
// does not match the configured column names.
var ErrColumnMismatch = errors.New("column mismatch")

// Table is one csv file holding records of type T. A file that does not
// exist reads as an empty table.
type Table[T any] struct {
	Path    string
	Columns []string

	encode func(T) []string
	decode func([]string) (T, error)
}

func NewTable[T any](path string, columns []string, encode func(T) []string, decode func([]string) (T, error)) *Table[T] {
	return &Table[T]{
		Path:    path,
		Columns: columns,
		encode:  encode,
		decode:  decode,
	}
}

func (t *Table[T]) Read(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Table.Read", trace.WithAttributes(
		attribute.String("path", t.Path),
	))
	defer span.End()

	rows, err := t.read(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read table")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

func (t *Table[T]) read(ctx context.Context) ([]T, error) {
	f, err := os.Open(t.Path)
	if os.IsNotExist(err) {
		slog.DebugContext(ctx, "table file does not exist yet", "path", t.Path)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", t.Path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", t.Path)
	}
	if !slices.Equal(header, t.Columns) {
		return nil, errors.Mark(
			errors.Newf("%s: header %q, configured %q", t.Path, header, t.Columns),
			ErrColumnMismatch,
		)
	}
	reader.FieldsPerRecord = len(t.Columns)

	var rows []T
	for {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", t.Path), ErrColumnMismatch)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", t.Path)
		}
		row, err := t.decode(values)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(err, "%s line %d", t.Path, line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write replaces the table with `rows`. The file is written next to its
// destination and renamed over it, so readers never see a partial table.
func (t *Table[T]) Write(ctx context.Context, rows []T) error {
	ctx, span := tracer.Start(ctx, "Table.Write", trace.WithAttributes(
		attribute.String("path", t.Path),
		attribute.Int("rows", len(rows)),
	))
	defer span.End()

	err := t.write(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write table")
		return err
	}
	slog.DebugContext(ctx, "wrote table", "path", t.Path, "rows", len(rows))
	return nil
}

func (t *Table[T]) write(rows []T) error {
	dir := filepath.Dir(t.Path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.Path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", t.Path)
	}
	defer os.Remove(tmp.Name())

	err = t.encodeAll(tmp, rows)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Sync()
	if err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync %s", tmp.Name())
	}
	err = tmp.Close()
	if err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	err = os.Rename(tmp.Name(), t.Path)
	if err != nil {
		return errors.Wrapf(err, "rename %s", tmp.Name())
	}
	return nil
}

func (t *Table[T]) encodeAll(w io.Writer, rows []T) error {
	writer := csv.NewWriter(w)
	err := writer.Write(t.Columns)
	if err != nil {
		return errors.Wrapf(err, "write header of %s", t.Path)
	}
	for i, row := range rows {
		values := t.encode(row)
		if len(values) != len(t.Columns) {
			return errors.Mark(
				errors.Newf("%s row %d: %d values for %d columns", t.Path, i, len(values), len(t.Columns)),
				ErrColumnMismatch,
			)
		}
		err = writer.Write(values)
		if err != nil {
			return errors.Wrapf(err, "write %s", t.Path)
		}
	}
	writer.Flush()
	return errors.Wrapf(writer.Error(), "flush %s", t.Path)
}
