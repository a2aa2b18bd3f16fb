// Package validate checks extracted records for completeness.
package validate

import (
	"strings"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/extract"
)

// Check returns the fields a record is missing or malformed in:
// an empty result means the record is valid and eligible for export.
// Phone is counted present only when it is exactly 11 digits; the
// extractor already reduced it to digits, so a length check suffices.
func Check(r extract.Record) []constants.Field {
	var defects []constants.Field
	if strings.TrimSpace(r.Name) == "" {
		defects = append(defects, constants.FieldName)
	}
	if r.Phone == "" || len(r.Phone) != constants.PhoneDigits {
		defects = append(defects, constants.FieldPhone)
	}
	if r.Address == "" {
		defects = append(defects, constants.FieldAddress)
	}
	if r.Amount == "" {
		defects = append(defects, constants.FieldAmount)
	}
	return defects
}
