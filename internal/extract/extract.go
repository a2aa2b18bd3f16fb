// Package extract derives order records from per-customer blocks.
package extract

import (
	"strings"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/patterns"
	"github.com/bdcommerce/order-extractor/internal/segment"
)

// Record is one customer order derived from a single block. Absent data
// is the empty string; extraction never fails on malformed input.
type Record struct {
	Name         string
	Address      string
	Phone        string
	Amount       string
	Note         string
	DeliveryType string
}

type Extractor struct {
	lib *patterns.Library
}

func New(lib *patterns.Library) *Extractor {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Extractor{lib: lib}
}

// Extract walks the block's lines once, in order, capturing each field
// the first time its rule matches. Captured fields are never
// overwritten and earlier lines are not rescanned, so a field whose
// marker and data are non-adjacent in an unanticipated way is missed.
// That limitation is deliberate; it keeps the pass linear and
// deterministic under reordering of unrelated lines.
func (e *Extractor) Extract(b segment.Block) Record {
	var (
		name      string
		phone     string
		note      string
		amount    string
		addresses []string
		orderSeen bool
	)

	for i, line := range b.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name == "" && (i == 0 || e.lib.ContainsNameMarker(line)) {
			name = e.lib.StripNameMarker(line)
		}

		if phone == "" {
			if p, ok := e.lib.FindPhone(line); ok {
				phone = p
			}
		}

		// An "order in district X" line is an order line, not an address.
		if e.lib.IsAddressLine(line) && !e.lib.IsOrderLine(line) {
			addresses = append(addresses, line)
		}

		if !orderSeen && e.lib.IsOrderLine(line) {
			orderSeen = true
			for j := i + 1; j < len(b.Lines); j++ {
				if next := strings.TrimSpace(b.Lines[j]); next != "" {
					note = next
					amount = e.lib.FindAmount(next)
					break
				}
			}
		}
	}

	return Record{
		Name:         strings.TrimSpace(name),
		Address:      strings.Join(addresses, "\n"),
		Phone:        phone,
		Amount:       amount,
		Note:         note,
		DeliveryType: constants.DeliveryHome,
	}
}
