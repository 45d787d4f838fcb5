// Package isa defines the instruction set of the teaching virtual
// machine: four opcodes with fixed numeric ids, fixed operand
// bit-widths, and fixed encoded lengths.
package isa

import "fmt"

type Opcode uint8

const (
	OpLoadConst Opcode = 231
	OpReadMem   Opcode = 61
	OpWriteMem  Opcode = 125
	OpRotr      Opcode = 145
)

// Operand limits. Constants carry 21 bits, memory offsets and
// addresses carry 13 bits; values above these are rejected at parse
// time, never masked.
const (
	MaxConst      uint32 = 0x1FFFFF
	MaxMemOperand uint32 = 0x1FFF
)

// Name returns the canonical tag for the opcode.
func (op Opcode) Name() string {
	switch op {
	case OpLoadConst:
		return "LOAD_CONST"
	case OpReadMem:
		return "READ_MEM"
	case OpWriteMem:
		return "WRITE_MEM"
	case OpRotr:
		return "ROTATE_RIGHT"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(op))
}

// HasOperand reports whether the opcode takes a numeric operand.
func (op Opcode) HasOperand() bool {
	return op != OpRotr
}

// OperandMax returns the largest operand value the opcode's encoding
// can hold. Zero for opcodes without an operand.
func (op Opcode) OperandMax() uint32 {
	switch op {
	case OpLoadConst:
		return MaxConst
	case OpReadMem, OpWriteMem:
		return MaxMemOperand
	}
	return 0
}

// EncodedLen returns the encoded size in bytes: one opcode byte plus
// three operand bytes for LOAD_CONST, two for the memory opcodes,
// none for ROTATE_RIGHT.
func (op Opcode) EncodedLen() int {
	switch op {
	case OpLoadConst:
		return 4
	case OpReadMem, OpWriteMem:
		return 3
	}
	return 1
}

// Instruction is one assembled command. Operand is meaningful only
// when Op.HasOperand(); it has already been range-checked by the
// parser and fits Op.OperandMax().
type Instruction struct {
	Op      Opcode
	Operand uint32
}

func (in Instruction) String() string {
	if in.Op.HasOperand() {
		return fmt.Sprintf("%s(%d)", in.Op.Name(), in.Operand)
	}
	return in.Op.Name() + "()"
}

// Encode produces the instruction's byte sequence: the opcode id
// first, then the operand little-endian in the remaining bytes with
// the unused high bits zero. The result is always exactly
// Op.EncodedLen() bytes.
func (in Instruction) Encode() []byte {
	out := make([]byte, in.Op.EncodedLen())
	out[0] = byte(in.Op)
	v := in.Operand
	for i := 1; i < len(out); i++ {
		out[i] = byte(v & 0xFF)
		v >>= 8
	}
	return out
}
