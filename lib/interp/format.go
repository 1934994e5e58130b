package interp

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a value the way print shows it: the shortest digits
// that read back to the same float64, always with a fractional part in fixed
// notation ("3.0", "0.25"), switching to exponent notation ("1e+16",
// "1.5e-05") when the decimal exponent is below -4 or at least 16.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
