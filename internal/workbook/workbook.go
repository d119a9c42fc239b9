// Package workbook serializes the three-sheet ledger document to and from
// xlsx bytes. The codec deals in raw string cells only: row-level coercion
// (dates, amounts, statuses) belongs to the ledger store.
package workbook

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the persisted document.
const (
	SheetMovements = "Movimientos"
	SheetConcepts  = "Conceptos"
	SheetFixed     = "Fijos"
)

// Column headers per sheet, in persisted order. No index column is written.
var (
	MovementColumns = []string{"Fecha", "Concepto", "Categoría", "Detalle", "Monto", "Estado"}
	ConceptColumns  = []string{"Concepto", "Categoría", "Tipo"}
	FixedColumns    = []string{"Concepto", "Monto_Est", "Categoría"}
)

// Document carries the raw data rows of the three sheets, header rows
// excluded. Every row is padded to its sheet's column count.
type Document struct {
	Movements [][]string
	Concepts  [][]string
	Fixed     [][]string
}

// DecodeError reports a structurally unreadable document: bytes that are
// not an xlsx workbook, or a workbook missing a required sheet. Individual
// cell values never cause a DecodeError.
type DecodeError struct {
	Sheet string // empty when the whole container is unreadable
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("decode workbook: sheet %s: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("decode workbook: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrMissingSheet marks a required sheet absent from the workbook.
var ErrMissingSheet = fmt.Errorf("required sheet missing")

// Encode writes the document as a single xlsx workbook with deterministic
// sheet and column order.
func Encode(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMovements); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	if err := writeSheet(f, SheetMovements, MovementColumns, doc.Movements); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		name    string
		columns []string
		rows    [][]string
	}{
		{SheetConcepts, ConceptColumns, doc.Concepts},
		{SheetFixed, FixedColumns, doc.Fixed},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.columns, s.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the workbook back into a Document. It fails with a
// *DecodeError when the container is unreadable or a required sheet is
// missing, independent of row content.
func Decode(data []byte) (Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Document{}, &DecodeError{Err: err}
	}
	defer f.Close()

	var doc Document
	for _, s := range []struct {
		name    string
		columns []string
		dst     *[][]string
	}{
		{SheetMovements, MovementColumns, &doc.Movements},
		{SheetConcepts, ConceptColumns, &doc.Concepts},
		{SheetFixed, FixedColumns, &doc.Fixed},
	} {
		rows, err := readSheet(f, s.name, len(s.columns))
		if err != nil {
			return Document{}, err
		}
		*s.dst = rows
	}
	return doc, nil
}

func writeSheet(f *excelize.File, name string, columns []string, rows [][]string) error {
	if err := f.SetSheetRow(name, "A1", &columns); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		padded := padRow(row, len(columns))
		if err := f.SetSheetRow(name, cell, &padded); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}

func readSheet(f *excelize.File, name string, width int) ([][]string, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, &DecodeError{Sheet: name, Err: ErrMissingSheet}
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, &DecodeError{Sheet: name, Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, padRow(row, width))
	}
	return out, nil
}

// padRow fixes a row to exactly width cells. The xlsx reader drops trailing
// empty cells, so short rows are common on load.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
