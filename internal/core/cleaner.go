package core

// cleaner.go transforms raw records into a cleaned dataset.
//
// Imputation policy, in order:
//
//  1. Missing/unparseable price is replaced by the median of all
//     parseable prices in the input.
//  2. Missing/unparseable quantity_sold gets the same median-fill
//     policy, applied independently.
//  3. Missing rating is replaced by the mean rating within the same
//     category. A category with no rated rows leaves it unresolved.
//  4. A row is admitted only if price, quantity_sold and rating are all
//     resolved; the three are then truncated to integers and
//     review_count is coerced when present.
//
// The three imputations are independent passes over the original raw
// column values, not sequential transforms: substitution statistics are
// computed once, before any row is modified. Rows that cannot be
// resolved are dropped, never an error; an input that drops every row
// still yields a valid empty dataset.

import "sort"

// cleanStats holds the substitution statistics computed from the
// original raw values.
type cleanStats struct {
	priceMedian    *float64
	quantityMedian *float64
	ratingMean     map[string]float64
}

// computeStats derives the imputation statistics from raw records.
// Medians are nil when no value in the column is parseable.
func computeStats(records []RawRecord) cleanStats {
	var prices, quantities []float64
	ratingSum := make(map[string]float64)
	ratingCount := make(map[string]int)

	for _, r := range records {
		if v, ok := parseNumeric(r.Price); ok {
			prices = append(prices, v)
		}
		if v, ok := parseNumeric(r.QuantitySold); ok {
			quantities = append(quantities, v)
		}
		if v, ok := parseNumeric(r.Rating); ok {
			ratingSum[r.Category] += v
			ratingCount[r.Category]++
		}
	}

	stats := cleanStats{ratingMean: make(map[string]float64, len(ratingSum))}
	stats.priceMedian = median(prices)
	stats.quantityMedian = median(quantities)
	for cat, sum := range ratingSum {
		stats.ratingMean[cat] = sum / float64(ratingCount[cat])
	}
	return stats
}

// median returns the median of values, averaging the two middle values
// for even-length input. Returns nil for empty input.
func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}

// Clean applies imputation and admission to raw records, preserving
// input order. Dropped is the number of rows that could not be
// resolved.
func Clean(records []RawRecord) (cleaned []CleanRecord, dropped int) {
	stats := computeStats(records)

	cleaned = make([]CleanRecord, 0, len(records))
	for _, r := range records {
		price, ok := resolve(r.Price, stats.priceMedian)
		if !ok {
			dropped++
			continue
		}
		quantity, ok := resolve(r.QuantitySold, stats.quantityMedian)
		if !ok {
			dropped++
			continue
		}
		rating, ok := resolveRating(r.Rating, r.Category, stats.ratingMean)
		if !ok {
			dropped++
			continue
		}

		rec := CleanRecord{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     r.Category,
			Price:        truncate(price),
			QuantitySold: truncate(quantity),
			Rating:       truncate(rating),
		}
		if v, ok := parseInt(r.ReviewCount); ok {
			rec.ReviewCount = &v
		}
		cleaned = append(cleaned, rec)
	}
	return cleaned, dropped
}

// resolve returns the parsed value, falling back to the column
// substitute when the cell is missing or unparseable. ok is false when
// neither exists.
func resolve(raw string, substitute *float64) (float64, bool) {
	if v, ok := parseNumeric(raw); ok {
		return v, true
	}
	if substitute == nil {
		return 0, false
	}
	return *substitute, true
}

// resolveRating is resolve with a per-category substitute.
func resolveRating(raw, category string, means map[string]float64) (float64, bool) {
	if v, ok := parseNumeric(raw); ok {
		return v, true
	}
	m, ok := means[category]
	return m, ok
}
