package asm

import (
	"fmt"
	"strings"

	"uvmasm/pkg/isa"
)

// Listing renders a parsed program as a human-readable table: one
// block per instruction with its opcode id, operand, and encoded
// bytes. Used by the dump modes of the CLIs, never by the binary
// output path.
func Listing(prog []isa.Instruction) string {
	var b strings.Builder
	for i, in := range prog {
		fmt.Fprintf(&b, "command %d: %s\n", i, in)
		fmt.Fprintf(&b, "  opcode: %d (0x%02X)\n", uint8(in.Op), uint8(in.Op))
		if in.Op.HasOperand() {
			fmt.Fprintf(&b, "  operand: %d (0x%X)\n", in.Operand, in.Operand)
		}
		fmt.Fprintf(&b, "  bytes: %s\n", hexBytes(in.Encode()))
	}
	return b.String()
}

func hexBytes(enc []byte) string {
	parts := make([]string, len(enc))
	for i, v := range enc {
		parts[i] = fmt.Sprintf("0x%02X", v)
	}
	return strings.Join(parts, ", ")
}
