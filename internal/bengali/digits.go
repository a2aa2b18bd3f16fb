// Package bengali maps Bengali-script decimal digits to ASCII.
package bengali

// Bengali decimal digit range, U+09E6 (০) through U+09EF (৯).
const (
	digitZero = '০'
	digitNine = '৯'
)

// Digits replaces every Bengali decimal digit in s with its ASCII
// equivalent at the same position. All other runes pass through
// unchanged. Idempotent: the output contains no Bengali digits.
func Digits(s string) string {
	hasBengali := false
	for _, r := range s {
		if r >= digitZero && r <= digitNine {
			hasBengali = true
			break
		}
	}
	if !hasBengali {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= digitZero && r <= digitNine {
			r = '0' + (r - digitZero)
		}
		out = append(out, r)
	}
	return string(out)
}
