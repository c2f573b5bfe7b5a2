package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/nueva/stats/time"
)

func ExampleCorrelation() {
	left := []float32{0.5, -0.5, 0.25, -0.25}
	right := []float32{-0.5, 0.5, -0.25, 0.25}

	r, ok := timestats.Correlation(left, right)
	fmt.Printf("%.2f %v\n", r, ok)

	_, ok = timestats.Correlation(left, []float32{0.1, 0.1, 0.1, 0.1})
	fmt.Println(ok)

	// Output:
	// -1.00 true
	// false
}
