package core

// demo.go generates a sample product-sales CSV so callers can exercise
// the pipeline without hunting for a dataset. A fraction of rows get
// blank rating and review_count cells to demonstrate the imputation and
// admission rules.

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
)

var demoProducts = []string{
	"Smartphone", "Laptop", "Tablet", "Smartwatch", "Bluetooth Speaker",
	"Gaming Console", "Smart TV", "Digital Camera", "Drone", "Portable Charger",
	"Router", "Headphones", "Projector", "Printer", "Monitor", "Keyboard",
	"Mouse", "Webcam",
}

var demoCategories = []string{
	"Mobile Phones", "Computers", "Audio", "Wearable Tech", "Gaming",
	"Home Entertainment", "Camera", "Accessories",
}

// WriteDemoCSV writes n generated rows with the upload column contract.
func WriteDemoCSV(w io.Writer, n int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		rating := strconv.Itoa(1 + rand.Intn(5))
		review := strconv.Itoa(1 + rand.Intn(5000))
		// Sprinkle missing optionals to exercise imputation.
		if rand.Intn(10) == 0 {
			rating = ""
		}
		if rand.Intn(10) == 0 {
			review = ""
		}

		row := []string{
			fmt.Sprintf("p%04d", i+1),
			demoProducts[rand.Intn(len(demoProducts))],
			demoCategories[rand.Intn(len(demoCategories))],
			strconv.Itoa(20 + rand.Intn(1981)),
			strconv.Itoa(10 + rand.Intn(991)),
			rating,
			review,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
