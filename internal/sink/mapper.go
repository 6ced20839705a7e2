// Package sink maps serialized cleaned datasets into persistence
// records and loads them into PostgreSQL in a single transaction.
package sink

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/spf13/cast"

	"salespipe/internal/core"
)

// ProductRecord is the persistence shape of one cleaned row. Price and
// Rating are decimals in the store even though the cleaned dataset
// carries integers; Rating and ReviewCount are nullable.
type ProductRecord struct {
	ProductID    string
	ProductName  string
	Category     string
	Price        pgtype.Numeric
	QuantitySold int64
	Rating       pgtype.Numeric
	ReviewCount  pgtype.Int8
}

// requiredFields must be present and non-empty (numeric ones also
// parseable) in the serialized form; anything less aborts the batch.
var requiredFields = []string{"product_id", "product_name", "category", "price", "quantity_sold"}

// MapDataset parses a serialized cleaned dataset into persistence
// records. Mapping is 1:1 with no aggregation. The whole batch fails
// with a *core.IngestionError if any row cannot be mapped.
func MapDataset(r io.Reader) ([]ProductRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &core.IngestionError{Reason: "parse cleaned dataset", Err: err}
	}
	if len(rows) == 0 {
		return nil, &core.IngestionError{Reason: "cleaned dataset missing header"}
	}

	idx := core.MakeHeaderIndex(rows[0])
	for _, field := range requiredFields {
		if _, ok := idx[field]; !ok {
			return nil, &core.IngestionError{Reason: "missing column " + field}
		}
	}

	records := make([]ProductRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := mapRow(row, idx)
		if err != nil {
			return nil, &core.IngestionError{Line: i + 2, Reason: "map row", Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func mapRow(row []string, idx core.HeaderIndex) (ProductRecord, error) {
	rec := ProductRecord{
		ProductID:   cell(row, idx, "product_id"),
		ProductName: cell(row, idx, "product_name"),
		Category:    cell(row, idx, "category"),
	}

	for _, field := range requiredFields[:3] {
		if cell(row, idx, field) == "" {
			return ProductRecord{}, &fieldError{field: field, reason: "empty"}
		}
	}

	price, err := toNumeric(cell(row, idx, "price"))
	if err != nil || !price.Valid {
		return ProductRecord{}, &fieldError{field: "price", reason: "not a decimal"}
	}
	rec.Price = price

	quantity, err := cast.ToInt64E(cell(row, idx, "quantity_sold"))
	if err != nil {
		return ProductRecord{}, &fieldError{field: "quantity_sold", reason: "not an integer"}
	}
	rec.QuantitySold = quantity

	// Optional fields map to NULL when empty.
	if raw := cell(row, idx, "rating"); raw != "" {
		rating, err := toNumeric(raw)
		if err != nil {
			return ProductRecord{}, &fieldError{field: "rating", reason: "not a decimal"}
		}
		rec.Rating = rating
	}
	if raw := cell(row, idx, "review_count"); raw != "" {
		count, err := cast.ToInt64E(raw)
		if err != nil {
			return ProductRecord{}, &fieldError{field: "review_count", reason: "not an integer"}
		}
		rec.ReviewCount = pgtype.Int8{Int64: count, Valid: true}
	}

	return rec, nil
}

func cell(row []string, idx core.HeaderIndex, field string) string {
	pos, ok := idx[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func toNumeric(s string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return "field " + e.field + ": " + e.reason
}
