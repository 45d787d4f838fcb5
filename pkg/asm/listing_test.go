package asm

import (
	"strings"
	"testing"
)

func TestListing(t *testing.T) {
	prog, err := Parse("load,147\nrotr\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := Listing(prog)

	wants := []string{
		"command 0: LOAD_CONST(147)",
		"opcode: 231 (0xE7)",
		"operand: 147 (0x93)",
		"bytes: 0xE7, 0x93, 0x00, 0x00",
		"command 1: ROTATE_RIGHT()",
		"opcode: 145 (0x91)",
		"bytes: 0x91",
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("Listing missing %q in:\n%s", w, got)
		}
	}

	// the operand line only appears for opcodes that carry one
	rotrBlock := got[strings.Index(got, "command 1"):]
	if strings.Contains(rotrBlock, "operand:") {
		t.Errorf("ROTATE_RIGHT block has an operand line:\n%s", rotrBlock)
	}
}

func TestListingEmpty(t *testing.T) {
	if got := Listing(nil); got != "" {
		t.Errorf("Listing(nil) = %q; want empty", got)
	}
}
