package core

// aggregator.go derives the per-category summary from a cleaned
// dataset.
//
// This is a single grouped reduction over the dataset's row order, not
// a join: each category accumulates a revenue sum and tracks the
// maximum quantity_sold together with the product name of the first row
// achieving it. First occurrence wins on ties, so the selection is
// deterministic for a given dataset order.

import "sort"

type categoryAccum struct {
	revenue    int64
	maxQty     int64
	topProduct string
}

// Summarize groups cleaned records by category (case-sensitive, no
// normalization) and computes the summary rows. Categories are emitted
// in lexical order; callers must not rely on anything beyond "one row
// per distinct category". An empty dataset yields an empty summary.
func Summarize(records []CleanRecord) []CategorySummary {
	accum := make(map[string]*categoryAccum)
	for _, r := range records {
		a, ok := accum[r.Category]
		if !ok {
			a = &categoryAccum{maxQty: r.QuantitySold, topProduct: r.ProductName}
			accum[r.Category] = a
		} else if r.QuantitySold > a.maxQty {
			// Strict comparison keeps the first occurrence on ties.
			a.maxQty = r.QuantitySold
			a.topProduct = r.ProductName
		}
		a.revenue += r.Price
	}

	categories := make([]string, 0, len(accum))
	for cat := range accum {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	rows := make([]CategorySummary, 0, len(categories))
	for _, cat := range categories {
		a := accum[cat]
		rows = append(rows, CategorySummary{
			Category:               cat,
			TotalRevenue:           a.revenue,
			TopProduct:             a.topProduct,
			TopProductQuantitySold: a.maxQty,
		})
	}
	return rows
}
