// Package export turns validated records into a numbered tabular export.
package export

import (
	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/extract"
	"github.com/bdcommerce/order-extractor/internal/validate"
)

// Row is a valid record with its assigned 1-based invoice number.
type Row struct {
	Invoice int
	Record  extract.Record
}

// Rejected is a record that failed validation, reported with the
// 1-based index of its originating block and the missing fields.
type Rejected struct {
	BlockIndex int
	Record     extract.Record
	Missing    []constants.Field
}

// Assemble partitions records (in block order) into export rows and
// rejections. Valid rows are numbered 1..K by position in that order,
// so invoice numbers stay contiguous: rejected records are skipped, not
// left as gaps.
func Assemble(recs []extract.Record) ([]Row, []Rejected) {
	var rows []Row
	var rejected []Rejected
	for i, r := range recs {
		if missing := validate.Check(r); len(missing) > 0 {
			rejected = append(rejected, Rejected{BlockIndex: i + 1, Record: r, Missing: missing})
			continue
		}
		rows = append(rows, Row{Invoice: len(rows) + 1, Record: r})
	}
	return rows, rejected
}
