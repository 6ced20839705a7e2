package core

// reader.go parses a delimited upload into raw records.
//
// The parse is pure: a header row is required, required columns must be
// present, and any extra columns are tolerated and ignored downstream.
// Input bytes are BOM-stripped and UTF-8 sanitized first, since files
// exported from Windows tooling routinely carry both problems.

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"
)

// RequiredColumns is the fixed column contract for uploads. rating and
// review_count cells may be empty, but the columns must exist.
var RequiredColumns = []string{
	"product_id",
	"product_name",
	"category",
	"price",
	"quantity_sold",
	"rating",
	"review_count",
}

// HeaderIndex maps lowercased column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// ReadRaw parses delimited text into raw records plus the observed
// column names in file order. It returns a *FormatError if the input is
// empty, not parseable as CSV, or missing a required column.
func ReadRaw(r io.Reader) ([]RawRecord, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, &FormatError{Reason: "read input", Err: err}
	}

	data = sanitizeInput(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, &FormatError{Reason: "parse delimited text", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil, &FormatError{Reason: "empty file, header row required"}
	}

	header := rows[0]
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	idx := MakeHeaderIndex(header)
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, &FormatError{Reason: "missing required column " + col}
		}
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		records = append(records, RawRecord{
			ProductID:    cellAt(row, idx, "product_id"),
			ProductName:  cellAt(row, idx, "product_name"),
			Category:     cellAt(row, idx, "category"),
			Price:        cellAt(row, idx, "price"),
			QuantitySold: cellAt(row, idx, "quantity_sold"),
			Rating:       cellAt(row, idx, "rating"),
			ReviewCount:  cellAt(row, idx, "review_count"),
		})
	}

	return records, columns, nil
}

// cellAt returns the trimmed cell for a column, or "" when the row is
// shorter than the header.
func cellAt(row []string, idx HeaderIndex, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeInput strips a UTF-8 BOM and replaces invalid UTF-8 sequences
// with the replacement character.
func sanitizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.Write(data[:size])
			data = data[size:]
		}
	}
	return buf.Bytes()
}
