package constants

// Field names a record can be flagged for during validation.
// Stable values (these exact strings appear in diagnostics and export headers).
type Field string

const (
	FieldName    Field = "Name"
	FieldPhone   Field = "Phone"
	FieldAddress Field = "Address"
	FieldAmount  Field = "Amount"
	FieldNote    Field = "Note"
)

// DeliveryHome is the only delivery type the intake flow produces.
const DeliveryHome = "Home"

// PhoneDigits is the required digit count for a Bangladeshi mobile number.
const PhoneDigits = 11

// FieldsAsStrings converts a defect list into plain strings for diagnostics.
func FieldsAsStrings(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
