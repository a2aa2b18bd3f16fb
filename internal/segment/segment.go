// Package segment splits raw multi-customer input into per-customer blocks.
package segment

import (
	"regexp"
	"strings"

	"github.com/bdcommerce/order-extractor/internal/patterns"
)

// Block is the contiguous lines attributed to one prospective customer.
// Lines are trimmed and non-empty; Index is the 1-based position of the
// block in the input.
type Block struct {
	Index int
	Lines []string
}

type Segmenter struct {
	lib *patterns.Library
}

func New(lib *patterns.Library) *Segmenter {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Segmenter{lib: lib}
}

var (
	reCRLF      = regexp.MustCompile(`\r\n?`)
	reBlankRun  = regexp.MustCompile(`\n\s*\n\s*\n+`)
	reSeparator = regexp.MustCompile(`\n\s*\n`)
)

// Split turns one raw multi-customer string into an ordered sequence of
// blocks. Whitespace-only input yields nil.
//
// Blank-line separation in pasted text does not reliably align with
// customer boundaries, so segments are re-merged: a segment starts a new
// customer only if one of its first two lines begins with a name marker;
// otherwise its lines are folded into the block being accumulated. This
// is a recovery heuristic for noisy input, not a correctness guarantee.
func (s *Segmenter) Split(input string) []Block {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	normalized := reCRLF.ReplaceAllString(input, "\n")
	normalized = reBlankRun.ReplaceAllString(normalized, "\n\n")
	segments := reSeparator.Split(strings.TrimSpace(normalized), -1)

	var blocks []Block
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, Block{Index: len(blocks) + 1, Lines: current})
			current = nil
		}
	}

	for _, seg := range segments {
		lines := cleanLines(seg)
		if len(lines) == 0 {
			continue
		}
		if s.startsNewCustomer(lines) && len(current) > 0 {
			flush()
			current = lines
		} else {
			current = append(current, lines...)
		}
	}
	flush()

	// Degenerate input with no separators and no markers still yields
	// one block rather than dropping the data.
	if len(blocks) == 0 {
		if lines := cleanLines(input); len(lines) > 0 {
			blocks = append(blocks, Block{Index: 1, Lines: lines})
		}
	}
	return blocks
}

// startsNewCustomer reports whether one of the first two lines of a
// segment begins with a name marker.
func (s *Segmenter) startsNewCustomer(lines []string) bool {
	limit := len(lines)
	if limit > 2 {
		limit = 2
	}
	for _, line := range lines[:limit] {
		if s.lib.HasNameMarker(line) {
			return true
		}
	}
	return false
}

func cleanLines(seg string) []string {
	var out []string
	for _, line := range strings.Split(seg, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
