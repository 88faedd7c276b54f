package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(100, 10)
	if got := s.Split(""); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100, 10)
	got := s.Split("short text")
	if len(got) != 1 || got[0] != "short text" {
		t.Fatalf("expected single chunk, got %v", got)
	}
}

func TestSplitOverlappingWindows(t *testing.T) {
	s := NewSplitter(10, 4)
	got := s.Split("abcdefghijklmnopqrst")

	if len(got) < 2 {
		t.Fatalf("expected multiple chunks, got %v", got)
	}
	if got[0] != "abcdefghij" {
		t.Fatalf("unexpected first chunk: %q", got[0])
	}
	// Step is size minus overlap, so chunk 2 starts at rune 6.
	if !strings.HasPrefix(got[1], "ghij") {
		t.Fatalf("expected overlap carried into second chunk, got %q", got[1])
	}
}

func TestSplitRuneBoundaries(t *testing.T) {
	s := NewSplitter(3, 1)
	got := s.Split("日本語のテキスト")

	for _, chunk := range got {
		if len([]rune(chunk)) > 3 {
			t.Fatalf("chunk %q exceeds rune size", chunk)
		}
		if !strings.ContainsAny(chunk, "日本語のテキスト") {
			t.Fatalf("chunk %q split mid-character", chunk)
		}
	}
}

func TestNewSplitterClampsBadOverlap(t *testing.T) {
	s := NewSplitter(100, 200)
	if s.Overlap >= s.ChunkSize {
		t.Fatalf("overlap %d must stay below chunk size %d", s.Overlap, s.ChunkSize)
	}

	s = NewSplitter(0, -5)
	if s.ChunkSize != 4000 || s.Overlap != 0 {
		t.Fatalf("expected defaults for bad inputs, got size=%d overlap=%d", s.ChunkSize, s.Overlap)
	}
}
