package core

import (
	"reflect"
	"testing"
)

// rawRow is a shorthand constructor for test input.
func rawRow(id, name, cat, price, qty, rating, reviews string) RawRecord {
	return RawRecord{
		ProductID:    id,
		ProductName:  name,
		Category:     cat,
		Price:        price,
		QuantitySold: qty,
		Rating:       rating,
		ReviewCount:  reviews,
	}
}

func TestClean_MedianAndCategoryMeanImputation(t *testing.T) {
	// Row 1 misses its rating, row 2 misses its price. The price median
	// over {100, 50} is 75; the cat1 mean rating over {4} is 4.
	raw := []RawRecord{
		rawRow("p1", "A", "cat1", "100", "5", "", "10"),
		rawRow("p2", "B", "cat1", "", "9", "4", "20"),
		rawRow("p3", "C", "cat2", "50", "3", "5", "5"),
	}

	cleaned, dropped := Clean(raw)

	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(cleaned) != 3 {
		t.Fatalf("len(cleaned) = %d, want 3", len(cleaned))
	}

	want := []struct {
		price, qty, rating int64
	}{
		{100, 5, 4},
		{75, 9, 4},
		{50, 3, 5},
	}
	for i, w := range want {
		got := cleaned[i]
		if got.Price != w.price || got.QuantitySold != w.qty || got.Rating != w.rating {
			t.Errorf("row %d = (%d, %d, %d), want (%d, %d, %d)",
				i, got.Price, got.QuantitySold, got.Rating, w.price, w.qty, w.rating)
		}
	}
}

func TestClean_MedianOddCount(t *testing.T) {
	raw := []RawRecord{
		rawRow("p1", "A", "c", "10", "1", "3", ""),
		rawRow("p2", "B", "c", "20", "1", "3", ""),
		rawRow("p3", "C", "c", "90", "1", "3", ""),
		rawRow("p4", "D", "c", "", "1", "3", ""),
	}

	cleaned, _ := Clean(raw)
	if len(cleaned) != 4 {
		t.Fatalf("len(cleaned) = %d, want 4", len(cleaned))
	}
	if cleaned[3].Price != 20 {
		t.Errorf("imputed price = %d, want median 20", cleaned[3].Price)
	}
}

func TestClean_RatingMeanIsPerCategory(t *testing.T) {
	// cat1 has ratings {2, 4}; cat2 has {5}. The missing cat1 rating
	// must use the cat1 mean (3), never a global mean.
	raw := []RawRecord{
		rawRow("p1", "A", "cat1", "10", "1", "2", ""),
		rawRow("p2", "B", "cat1", "10", "1", "4", ""),
		rawRow("p3", "C", "cat1", "10", "1", "", ""),
		rawRow("p4", "D", "cat2", "10", "1", "5", ""),
	}

	cleaned, dropped := Clean(raw)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if cleaned[2].Rating != 3 {
		t.Errorf("imputed rating = %d, want cat1 mean 3", cleaned[2].Rating)
	}
}

func TestClean_DropsUnresolvableRows(t *testing.T) {
	tests := []struct {
		name        string
		raw         []RawRecord
		wantKept    int
		wantDropped int
	}{
		{
			name: "no category peers to impute rating from",
			raw: []RawRecord{
				rawRow("p1", "A", "lonely", "10", "1", "", ""),
			},
			wantKept:    0,
			wantDropped: 1,
		},
		{
			name: "all prices missing leaves no substitute",
			raw: []RawRecord{
				rawRow("p1", "A", "c", "", "1", "3", ""),
				rawRow("p2", "B", "c", "", "1", "4", ""),
			},
			wantKept:    0,
			wantDropped: 2,
		},
		{
			name: "unparseable quantity falls back to median of the rest",
			raw: []RawRecord{
				rawRow("p1", "A", "c", "10", "6", "3", ""),
				rawRow("p2", "B", "c", "10", "junk", "4", ""),
			},
			wantKept:    2,
			wantDropped: 0,
		},
		{
			name:        "empty input",
			raw:         nil,
			wantKept:    0,
			wantDropped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, dropped := Clean(tt.raw)
			if len(cleaned) != tt.wantKept {
				t.Errorf("kept = %d, want %d", len(cleaned), tt.wantKept)
			}
			if dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", dropped, tt.wantDropped)
			}
		})
	}
}

func TestClean_TruncatesNotRounds(t *testing.T) {
	raw := []RawRecord{
		rawRow("p1", "A", "c", "99.99", "4.7", "4.6", "12.8"),
	}

	cleaned, _ := Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("len(cleaned) = %d, want 1", len(cleaned))
	}

	got := cleaned[0]
	if got.Price != 99 || got.QuantitySold != 4 || got.Rating != 4 {
		t.Errorf("got (%d, %d, %d), want truncated (99, 4, 4)",
			got.Price, got.QuantitySold, got.Rating)
	}
	if got.ReviewCount == nil || *got.ReviewCount != 12 {
		t.Errorf("ReviewCount = %v, want 12", got.ReviewCount)
	}
}

func TestClean_ReviewCountOptional(t *testing.T) {
	raw := []RawRecord{
		rawRow("p1", "A", "c", "10", "1", "3", ""),
		rawRow("p2", "B", "c", "10", "1", "3", "junk"),
		rawRow("p3", "C", "c", "10", "1", "3", "7"),
	}

	cleaned, dropped := Clean(raw)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0; review_count must never drop a row", dropped)
	}
	if cleaned[0].ReviewCount != nil || cleaned[1].ReviewCount != nil {
		t.Error("missing/unparseable review_count should stay nil")
	}
	if cleaned[2].ReviewCount == nil || *cleaned[2].ReviewCount != 7 {
		t.Errorf("ReviewCount = %v, want 7", cleaned[2].ReviewCount)
	}
}

func TestClean_StatsComeFromOriginalValues(t *testing.T) {
	// The quantity median must be computed over the original parseable
	// quantities only, untouched by price imputation on the same rows.
	raw := []RawRecord{
		rawRow("p1", "A", "c", "", "10", "3", ""),
		rawRow("p2", "B", "c", "50", "30", "3", ""),
		rawRow("p3", "C", "c", "70", "", "3", ""),
	}

	cleaned, _ := Clean(raw)
	if len(cleaned) != 3 {
		t.Fatalf("len(cleaned) = %d, want 3", len(cleaned))
	}
	if cleaned[0].Price != 60 {
		t.Errorf("imputed price = %d, want median(50,70) = 60", cleaned[0].Price)
	}
	if cleaned[2].QuantitySold != 20 {
		t.Errorf("imputed quantity = %d, want median(10,30) = 20", cleaned[2].QuantitySold)
	}
}

func TestClean_Deterministic(t *testing.T) {
	raw := []RawRecord{
		rawRow("p1", "A", "cat1", "100", "5", "", "10"),
		rawRow("p2", "B", "cat1", "", "9", "4", "20"),
		rawRow("p3", "C", "cat2", "50", "3", "5", "5"),
	}

	first, _ := Clean(raw)
	second, _ := Clean(raw)
	if !reflect.DeepEqual(first, second) {
		t.Error("cleaning the same input twice must yield identical row content")
	}
}
