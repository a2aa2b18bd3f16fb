// Package patterns holds the bilingual keyword table driving field
// extraction. Markers live in one configuration table (instead of being
// scattered through the extractor) so keyword sets can be extended
// without touching extraction logic.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bdcommerce/order-extractor/internal/bengali"
)

// Library is the set of recognized marker tokens per field, in both
// scripts, plus the compiled matchers derived from them.
type Library struct {
	NameMarkers    []string
	AddressMarkers []string
	OrderMarkers   []string
	AmountUnits    []string

	nameStart  *regexp.Regexp // block-opening name marker, anchored
	nameStrip  *regexp.Regexp // marker plus trailing colon/punctuation
	phoneCC    *regexp.Regexp // +88 prefix followed by 11 digits
	phoneBare  *regexp.Regexp // a run of exactly 11 digits
	amountUnit *regexp.Regexp // number immediately followed by a unit token
	digitRun   *regexp.Regexp
}

// Default returns the built-in marker set for Bengali/English order text.
func Default() *Library {
	lib := &Library{
		NameMarkers:    []string{"নাম", "আপনার নাম", "name", "nam"},
		AddressMarkers: []string{"জেলা", "থানা", "এলাকা", "ঠিকানা", "এলাকার নাম", "address", "area"},
		OrderMarkers:   []string{"অর্ডার", "অডার", "order"},
		AmountUnits:    []string{"টাকা", "taka", "tk"},
	}
	lib.compile()
	return lib
}

func (l *Library) compile() {
	name := alternation(l.NameMarkers)
	l.nameStart = regexp.MustCompile(`(?i)^\s*(?:` + name + `)`)
	l.nameStrip = regexp.MustCompile(`(?i)^\s*(?:` + name + `)\s*[:：]?\s*`)
	l.phoneCC = regexp.MustCompile(`\+88(\d{11})`)
	l.phoneBare = regexp.MustCompile(`(?:^|[^0-9])(\d{11})(?:[^0-9]|$)`)
	l.amountUnit = regexp.MustCompile(`(?i)(\d+)\s*(?:` + alternation(l.AmountUnits) + `)`)
	l.digitRun = regexp.MustCompile(`\d+`)
}

// alternation joins quoted markers longest-first so that e.g.
// "আপনার নাম" is preferred over its suffix "নাম" when stripping.
func alternation(markers []string) string {
	sorted := make([]string, len(markers))
	copy(sorted, markers)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, m := range sorted {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return strings.Join(quoted, "|")
}

// HasNameMarker reports whether the line begins with a name marker.
// Used by the segmenter to detect the start of a new customer.
func (l *Library) HasNameMarker(line string) bool {
	return l.nameStart.MatchString(line)
}

// ContainsNameMarker reports whether the line mentions a name marker
// anywhere. Used by the extractor's name rule.
func (l *Library) ContainsNameMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range l.NameMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// StripNameMarker removes a leading name marker and any following
// colon/punctuation from the line.
func (l *Library) StripNameMarker(line string) string {
	return strings.TrimSpace(l.nameStrip.ReplaceAllString(line, ""))
}

// IsAddressLine reports whether the line mentions an address marker.
func (l *Library) IsAddressLine(line string) bool {
	return containsAny(line, l.AddressMarkers)
}

// IsOrderLine reports whether the line mentions an order marker.
func (l *Library) IsOrderLine(line string) bool {
	return containsAny(line, l.OrderMarkers)
}

func containsAny(line string, markers []string) bool {
	lower := strings.ToLower(line)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// FindPhone extracts an 11-digit phone number from the line, handling
// Bengali digits and an optional +88 country-code prefix. The +88 form
// is tried first so the prefix is not swallowed by the bare-digit rule.
func (l *Library) FindPhone(line string) (string, bool) {
	ascii := bengali.Digits(line)
	if m := l.phoneCC.FindStringSubmatch(ascii); m != nil {
		return m[1], true
	}
	if m := l.phoneBare.FindStringSubmatch(ascii); m != nil {
		return m[1], true
	}
	return "", false
}

// FindAmount derives the order amount from a note line: first a number
// immediately followed by a currency-unit token, else the first run of
// digits anywhere in the note. The fallback can capture an unrelated
// number (a quantity, a phone fragment) when no unit-qualified number
// exists; that ambiguity is intentional and documented, not corrected.
func (l *Library) FindAmount(note string) string {
	ascii := bengali.Digits(note)
	if m := l.amountUnit.FindStringSubmatch(ascii); m != nil {
		return m[1]
	}
	return l.digitRun.FindString(ascii)
}

// validate rejects empty or blank marker entries before compilation.
func (l *Library) validate() error {
	groups := map[string][]string{
		"name_markers":    l.NameMarkers,
		"address_markers": l.AddressMarkers,
		"order_markers":   l.OrderMarkers,
		"amount_units":    l.AmountUnits,
	}
	for key, markers := range groups {
		if len(markers) == 0 {
			return fmt.Errorf("%s: at least one marker required", key)
		}
		for _, m := range markers {
			if strings.TrimSpace(m) == "" {
				return fmt.Errorf("%s: blank marker", key)
			}
		}
	}
	return nil
}
