package segment

import (
	"strings"
	"testing"
)

func TestSplitBlankInput(t *testing.T) {
	s := New(nil)
	for _, in := range []string{"", "   ", "\n\n\n", " \t \r\n  "} {
		if got := s.Split(in); len(got) != 0 {
			t.Errorf("Split(%q) = %d blocks, want 0", in, len(got))
		}
	}
}

func TestSplitTwoCustomers(t *testing.T) {
	s := New(nil)
	input := "নাম: Rahim\nমোবাইল: 01712345678\n\nনাম: Karim\nমোবাইল: 01898765432"
	blocks := s.Split(input)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Index != 1 || blocks[1].Index != 2 {
		t.Errorf("block indexes = %d, %d; want 1, 2", blocks[0].Index, blocks[1].Index)
	}
	if blocks[0].Lines[0] != "নাম: Rahim" {
		t.Errorf("first block starts with %q", blocks[0].Lines[0])
	}
	if blocks[1].Lines[0] != "নাম: Karim" {
		t.Errorf("second block starts with %q", blocks[1].Lines[0])
	}
}

func TestSplitCollapsesBlankRuns(t *testing.T) {
	s := New(nil)
	single := "নাম: A\nphone\n\nনাম: B\nphone"
	triple := "নাম: A\nphone\n\n\n\nনাম: B\nphone"
	a, b := s.Split(single), s.Split(triple)
	if len(a) != len(b) {
		t.Fatalf("single blank: %d blocks, triple blank: %d blocks", len(a), len(b))
	}
	for i := range a {
		if strings.Join(a[i].Lines, "|") != strings.Join(b[i].Lines, "|") {
			t.Errorf("block %d differs between single and triple blank separation", i+1)
		}
	}
}

func TestSplitWindowsLineEndings(t *testing.T) {
	s := New(nil)
	input := "নাম: A\r\nphone\r\n\r\nনাম: B\r\nphone"
	if got := s.Split(input); len(got) != 2 {
		t.Errorf("CRLF input: got %d blocks, want 2", len(got))
	}
	old := "নাম: A\rphone\r\rনাম: B\rphone"
	if got := s.Split(old); len(got) != 2 {
		t.Errorf("CR input: got %d blocks, want 2", len(got))
	}
}

// An unmarked segment is folded into the accumulating block. This
// recovers an address separated from its customer by a stray blank line.
func TestSplitMergesUnmarkedSegment(t *testing.T) {
	s := New(nil)
	input := "নাম: Rahim\nমোবাইল: 01712345678\n\nজেলা: Dhaka\n\nনাম: Karim"
	blocks := s.Split(input)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	joined := strings.Join(blocks[0].Lines, "\n")
	if !strings.Contains(joined, "জেলা: Dhaka") {
		t.Errorf("address segment not merged into first block: %q", joined)
	}
}

// The same heuristic over-merges genuinely unrelated text when it
// carries no name marker. That is accepted behavior, not a bug.
func TestSplitOverMergesUnrelatedSegment(t *testing.T) {
	s := New(nil)
	input := "নাম: Rahim\nমোবাইল: 01712345678\n\nsome unrelated paragraph\nwith two lines"
	blocks := s.Split(input)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 (over-merge)", len(blocks))
	}
	if len(blocks[0].Lines) != 4 {
		t.Errorf("merged block has %d lines, want 4", len(blocks[0].Lines))
	}
}

func TestSplitFallbackSingleBlock(t *testing.T) {
	s := New(nil)
	input := "just a single line with no markers"
	blocks := s.Split(input)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Lines[0] != input {
		t.Errorf("fallback block lines = %v", blocks[0].Lines)
	}
}

// A block that is only a name-marker line still comes through; it fails
// validation downstream instead of being silently dropped here.
func TestSplitMarkerOnlyBlockSurvives(t *testing.T) {
	s := New(nil)
	input := "নাম: Rahim\n01712345678\nজেলা: Dhaka\nঅর্ডার\n৫০০ টাকা\n\nনাম: Karim"
	blocks := s.Split(input)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(blocks[1].Lines) != 1 {
		t.Errorf("marker-only block has %d lines, want 1", len(blocks[1].Lines))
	}
}

func TestSplitNameMarkerOnSecondLine(t *testing.T) {
	s := New(nil)
	input := "নাম: Rahim\n01712345678\n\nwrapped address line\nনাম: Karim\n01898765432"
	blocks := s.Split(input)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[1].Lines[0] != "wrapped address line" {
		t.Errorf("second block should start with the wrapped line, got %q", blocks[1].Lines[0])
	}
}
