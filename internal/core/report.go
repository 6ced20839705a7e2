package core

// report.go serializes datasets to delimited text and reads them back.
//
// Writers emit to an io.Writer; all-or-nothing publishing is the
// store's responsibility (temp file plus atomic rename), so a failed
// write never leaves a partial artifact behind.

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CleanedHeader is the column order of a serialized cleaned dataset.
var CleanedHeader = []string{
	"product_id", "product_name", "category",
	"price", "quantity_sold", "rating", "review_count",
}

// SummaryHeader is the column order of a serialized summary report.
var SummaryHeader = []string{
	"category", "total_revenue", "top_product", "top_product_quantity_sold",
}

// WriteCleanedCSV serializes cleaned records with the canonical header.
// review_count is an empty cell when absent.
func WriteCleanedCSV(w io.Writer, records []CleanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CleanedHeader); err != nil {
		return err
	}
	for _, r := range records {
		review := ""
		if r.ReviewCount != nil {
			review = strconv.FormatInt(*r.ReviewCount, 10)
		}
		row := []string{
			r.ProductID,
			r.ProductName,
			r.Category,
			strconv.FormatInt(r.Price, 10),
			strconv.FormatInt(r.QuantitySold, 10),
			strconv.FormatInt(r.Rating, 10),
			review,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV serializes summary rows, one line per category.
func WriteSummaryCSV(w io.Writer, rows []CategorySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, s := range rows {
		row := []string{
			s.Category,
			strconv.FormatInt(s.TotalRevenue, 10),
			s.TopProduct,
			strconv.FormatInt(s.TopProductQuantitySold, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCleanedCSV parses a serialized cleaned dataset back into records.
// The artifact is produced by WriteCleanedCSV, so a malformed file is a
// *FormatError rather than a silent skip.
func ReadCleanedCSV(r io.Reader) ([]CleanRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: "parse cleaned dataset", Err: err}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Reason: "cleaned dataset missing header"}
	}

	idx := MakeHeaderIndex(rows[0])
	for _, col := range CleanedHeader[:6] {
		if _, ok := idx[col]; !ok {
			return nil, &FormatError{Reason: "cleaned dataset missing column " + col}
		}
	}

	records := make([]CleanRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		price, ok1 := parseInt(cellAt(row, idx, "price"))
		quantity, ok2 := parseInt(cellAt(row, idx, "quantity_sold"))
		rating, ok3 := parseInt(cellAt(row, idx, "rating"))
		if !ok1 || !ok2 || !ok3 {
			return nil, &FormatError{Reason: "unresolved numeric value in cleaned dataset at row " + strconv.Itoa(i+2)}
		}
		rec := CleanRecord{
			ProductID:    cellAt(row, idx, "product_id"),
			ProductName:  cellAt(row, idx, "product_name"),
			Category:     cellAt(row, idx, "category"),
			Price:        price,
			QuantitySold: quantity,
			Rating:       rating,
		}
		if v, ok := parseInt(cellAt(row, idx, "review_count")); ok {
			rec.ReviewCount = &v
		}
		records = append(records, rec)
	}
	return records, nil
}
