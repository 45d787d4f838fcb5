// Package asm translates line-oriented source text into the binary
// instruction stream of the teaching VM. Parsing and encoding are pure
// functions; all I/O lives in the callers.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"uvmasm/pkg/isa"
)

// mnemonics maps every accepted spelling, lower-cased, to its opcode.
// Both the short form and the canonical tag are recognized.
var mnemonics = map[string]isa.Opcode{
	"load":       isa.OpLoadConst,
	"load_const": isa.OpLoadConst,
	"read":       isa.OpReadMem,
	"read_mem":   isa.OpReadMem,
	"write":      isa.OpWriteMem,
	"write_mem":  isa.OpWriteMem,
	"rotr":       isa.OpRotr,
	"ror":        isa.OpRotr,
}

type ErrorKind int

const (
	UnknownMnemonic ErrorKind = iota
	MissingOperand
	InvalidOperand
	OperandOutOfRange
)

// LineError is one parse failure tied to its 1-based source line.
// Mnemonic is set for every kind; Field holds the offending operand
// text for InvalidOperand, Value and Max the rejected value and the
// opcode's limit for OperandOutOfRange.
type LineError struct {
	Line     int
	Kind     ErrorKind
	Mnemonic string
	Field    string
	Value    uint64
	Max      uint32
}

func (e LineError) Error() string {
	switch e.Kind {
	case UnknownMnemonic:
		return fmt.Sprintf("unknown instruction on line %d: %s", e.Line, e.Mnemonic)
	case MissingOperand:
		return fmt.Sprintf("%s expects an operand on line %d", e.Mnemonic, e.Line)
	case InvalidOperand:
		return fmt.Sprintf("invalid operand on line %d: %s", e.Line, e.Field)
	case OperandOutOfRange:
		return fmt.Sprintf("operand out of range on line %d: %d (max %d)", e.Line, e.Value, e.Max)
	}
	return fmt.Sprintf("parse error on line %d", e.Line)
}

// AssemblyError collects every LineError from one pass over the
// source. Parsing never stops at the first failure, so the user sees
// all mistakes at once.
type AssemblyError struct {
	Errors []LineError
}

func (e *AssemblyError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors, first: %s", len(e.Errors), e.Errors[0].Error())
}

// parseLine parses one physical line. ok is false for blank and
// comment lines, which produce no instruction.
func parseLine(raw string, lineNo int) (in isa.Instruction, ok bool, perr *LineError) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return isa.Instruction{}, false, nil
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" {
		return isa.Instruction{}, false, nil
	}

	op, known := mnemonics[strings.ToLower(fields[0])]
	if !known {
		return isa.Instruction{}, false, &LineError{Line: lineNo, Kind: UnknownMnemonic, Mnemonic: fields[0]}
	}

	in = isa.Instruction{Op: op}
	if !op.HasOperand() {
		// rotr takes no operand; extra fields are ignored.
		return in, true, nil
	}

	if len(fields) < 2 || fields[1] == "" {
		return isa.Instruction{}, false, &LineError{Line: lineNo, Kind: MissingOperand, Mnemonic: op.Name()}
	}
	value, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return isa.Instruction{}, false, &LineError{Line: lineNo, Kind: InvalidOperand, Mnemonic: op.Name(), Field: fields[1]}
	}
	if value > uint64(op.OperandMax()) {
		return isa.Instruction{}, false, &LineError{Line: lineNo, Kind: OperandOutOfRange, Mnemonic: op.Name(), Value: value, Max: op.OperandMax()}
	}

	in.Operand = uint32(value)
	return in, true, nil
}

// Parse turns the whole source into an ordered instruction list. Every
// line is parsed even after a failure; if any line failed the result
// is nil and the error is an *AssemblyError carrying all of them.
func Parse(source string) ([]isa.Instruction, error) {
	lines := strings.Split(source, "\n")

	prog := make([]isa.Instruction, 0, len(lines))
	var errs []LineError
	for i, raw := range lines {
		in, ok, perr := parseLine(raw, i+1)
		if perr != nil {
			errs = append(errs, *perr)
			continue
		}
		if !ok {
			continue
		}
		prog = append(prog, in)
	}

	if len(errs) > 0 {
		return nil, &AssemblyError{Errors: errs}
	}
	return prog, nil
}

// Assemble parses the source and concatenates each instruction's
// encoding in source order. On any parse error no bytes are produced.
// An empty program assembles to an empty byte slice.
func Assemble(source string) ([]byte, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return EncodeProgram(prog), nil
}

// EncodeProgram concatenates the encodings of an already validated
// program. Instruction N starts at the sum of the encoded lengths of
// instructions 0..N-1.
func EncodeProgram(prog []isa.Instruction) []byte {
	size := 0
	for _, in := range prog {
		size += in.Op.EncodedLen()
	}
	out := make([]byte, 0, size)
	for _, in := range prog {
		out = append(out, in.Encode()...)
	}
	return out
}
