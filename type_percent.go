package folio

import (
	"fmt"
	"math"
)

// Percent is a return or share expressed in percent (5.0 means 5%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := float64(p - q)
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsNaN reports whether the percent is undefined.
func (p Percent) IsNaN() bool { return math.IsNaN(float64(p)) }

func (p Percent) String() string {
	if p.IsNaN() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if p.IsNaN() {
		return "N/A"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
