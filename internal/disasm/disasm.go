// Package disasm decodes x86-64 machine code into renderable,
// syntax-classified lines. The decoder and Intel-syntax formatter come
// from golang.org/x/arch; call targets are annotated through an
// address resolver supplied by the caller.
package disasm

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"

	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// ErrNoSection reports that the requested containing section does not
// exist in the image.
var ErrNoSection = errors.New("section not found")

// Line is one row of disassembly output: either a decoded instruction
// with its classified tokens, or a plain message (for addresses that
// fall outside the containing section).
type Line struct {
	PC      uint64
	Tokens  []Token
	Message string
}

// Instruction returns the concatenated token text, the canonical
// Intel-syntax form of the instruction.
func (l Line) Instruction() string {
	var b strings.Builder
	for _, t := range l.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Text renders the full line: message lines verbatim, instruction
// lines as pad, 16-digit upper-case instruction pointer, pad, text.
func (l Line) Text() string {
	if l.Message != "" {
		return l.Message
	}
	return fmt.Sprintf("    %016X    %s", l.PC, l.Instruction())
}

// OutOfRange builds the marker line emitted when an address/size pair
// does not fit inside its section.
func OutOfRange(addr uint64) Line {
	return Line{PC: addr, Message: fmt.Sprintf("Symbol out of range: %08X", addr)}
}

// Disassemble decodes size bytes starting at virtual address addr
// inside the named section (".text" or ".plt"). res may be nil, in
// which case call targets stay numeric. A truncated trailing
// instruction is dropped, matching the decoder contract.
func Disassemble(f *elffile.File, res *elffile.Resolver, section string, addr, size uint64) ([]Line, error) {
	sec := f.Section(section)
	if sec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSection, section)
	}
	if addr < sec.Addr || addr+size < addr || addr+size > sec.Addr+sec.Size {
		return []Line{OutOfRange(addr)}, nil
	}
	data := f.SectionBytes(sec)
	if data == nil {
		return []Line{OutOfRange(addr)}, nil
	}

	offset := addr - sec.Addr
	code := data[offset : offset+size]

	var lines []Line
	pc := addr
	for len(code) > 0 {
		inst, err := x86asm.Decode(code, 64)
		if err != nil {
			break
		}
		text := x86asm.IntelSyntax(inst, pc, callLookup(res, inst.Op))
		lines = append(lines, Line{PC: pc, Tokens: Lex(text)})
		code = code[inst.Len:]
		pc += uint64(inst.Len)
	}
	return lines, nil
}

// callLookup narrows symbolization to near and far calls, so data
// references and branches are not decorated with spurious names.
func callLookup(res *elffile.Resolver, op x86asm.Op) x86asm.SymLookup {
	if res == nil {
		return nil
	}
	switch op {
	case x86asm.CALL, x86asm.LCALL:
		return res.Lookup
	}
	return nil
}
