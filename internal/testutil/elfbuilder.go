// Package testutil builds small synthetic ELF images for tests.
//
// The builder emits 64-bit little-endian files laid out as: ELF
// header, optional PT_INTERP program header, section data blobs, the
// section header string table, then the section header table. That is
// enough for debug/elf to parse headers, sections, symbol tables and
// segments.
package testutil

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Section describes one section to place in the image. Offset is
// assigned by the builder.
type Section struct {
	Name    string
	Type    elf.SectionType
	Flags   elf.SectionFlag
	Addr    uint64
	Data    []byte
	Entsize uint64
	Link    uint32
	Info    uint32
}

// Builder accumulates sections and emits the serialized image.
type Builder struct {
	Type    elf.Type
	Machine elf.Machine
	Entry   uint64

	sections []Section
	interp   string
}

// NewBuilder returns a builder for an x86-64 executable.
func NewBuilder() *Builder {
	return &Builder{Type: elf.ET_EXEC, Machine: elf.EM_X86_64}
}

// AddSection appends a section and returns its section header index.
// Index 0 is the null section, so the first added section is index 1.
func (b *Builder) AddSection(s Section) int {
	b.sections = append(b.sections, s)
	return len(b.sections)
}

// SetInterp adds a PT_INTERP segment naming path as the dynamic
// interpreter.
func (b *Builder) SetInterp(path string) {
	b.interp = path
}

const (
	ehsize    = 64
	phentsize = 56
	shentsize = 64
)

// Bytes serializes the image.
func (b *Builder) Bytes() []byte {
	le := binary.LittleEndian

	// Section name string table, appended as the last section.
	shstr := NewStrTab()
	nameOffs := make([]uint32, len(b.sections))
	for i, s := range b.sections {
		nameOffs[i] = uint32(shstr.Add(s.Name))
	}
	shstrNameOff := uint32(shstr.Add(".shstrtab"))

	phnum := 0
	if b.interp != "" {
		phnum = 1
	}

	// Assign data offsets, 8-byte aligned.
	off := uint64(ehsize + phnum*phentsize)
	align := func() {
		if rem := off % 8; rem != 0 {
			off += 8 - rem
		}
	}
	dataOffs := make([]uint64, len(b.sections))
	for i, s := range b.sections {
		align()
		dataOffs[i] = off
		off += uint64(len(s.Data))
	}
	align()
	interpOff := off
	if b.interp != "" {
		off += uint64(len(b.interp)) + 1
	}
	align()
	shstrOff := off
	off += uint64(len(shstr.Bytes()))
	align()
	shoff := off

	shnum := len(b.sections) + 2 // null + sections + .shstrtab
	shstrndx := len(b.sections) + 1

	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, le, v) }

	// ELF header.
	buf.Write([]byte(elf.ELFMAG))
	buf.WriteByte(byte(elf.ELFCLASS64))
	buf.WriteByte(byte(elf.ELFDATA2LSB))
	buf.WriteByte(byte(elf.EV_CURRENT))
	buf.Write(make([]byte, 9)) // ABI + padding
	w(uint16(b.Type))
	w(uint16(b.Machine))
	w(uint32(elf.EV_CURRENT))
	w(b.Entry)
	if phnum > 0 {
		w(uint64(ehsize)) // phoff
	} else {
		w(uint64(0))
	}
	w(shoff)
	w(uint32(0)) // flags
	w(uint16(ehsize))
	w(uint16(phentsize))
	w(uint16(phnum))
	w(uint16(shentsize))
	w(uint16(shnum))
	w(uint16(shstrndx))

	// Program headers.
	if b.interp != "" {
		sz := uint64(len(b.interp)) + 1
		w(uint32(elf.PT_INTERP))
		w(uint32(elf.PF_R))
		w(interpOff)
		w(interpOff) // vaddr
		w(interpOff) // paddr
		w(sz)        // filesz
		w(sz)        // memsz
		w(uint64(1)) // align
	}

	// Section data.
	pad := func(target uint64) {
		for uint64(buf.Len()) < target {
			buf.WriteByte(0)
		}
	}
	for i, s := range b.sections {
		pad(dataOffs[i])
		buf.Write(s.Data)
	}
	if b.interp != "" {
		pad(interpOff)
		buf.WriteString(b.interp)
		buf.WriteByte(0)
	}
	pad(shstrOff)
	buf.Write(shstr.Bytes())

	// Section header table.
	pad(shoff)
	writeShdr := func(name uint32, s Section, off, size uint64) {
		w(name)
		w(uint32(s.Type))
		w(uint64(s.Flags))
		w(s.Addr)
		w(off)
		w(size)
		w(s.Link)
		w(s.Info)
		w(uint64(1)) // addralign
		w(s.Entsize)
	}
	writeShdr(0, Section{}, 0, 0) // null section
	for i, s := range b.sections {
		writeShdr(nameOffs[i], s, dataOffs[i], uint64(len(s.Data)))
	}
	writeShdr(shstrNameOff, Section{Type: elf.SHT_STRTAB}, shstrOff, uint64(len(shstr.Bytes())))

	return buf.Bytes()
}

// StrTab builds an ELF string table: a NUL byte followed by
// NUL-terminated strings.
type StrTab struct {
	buf  bytes.Buffer
	offs map[string]uint64
}

// NewStrTab returns a string table containing only the initial NUL.
func NewStrTab() *StrTab {
	st := &StrTab{offs: map[string]uint64{"": 0}}
	st.buf.WriteByte(0)
	return st
}

// Add interns s and returns its offset.
func (st *StrTab) Add(s string) uint64 {
	if off, ok := st.offs[s]; ok {
		return off
	}
	off := uint64(st.buf.Len())
	st.offs[s] = off
	st.buf.WriteString(s)
	st.buf.WriteByte(0)
	return off
}

// Bytes returns the serialized table.
func (st *StrTab) Bytes() []byte { return st.buf.Bytes() }

// Sym describes one symbol table entry.
type Sym struct {
	Name  string
	Value uint64
	Size  uint64
	Info  byte
	Other byte
	Shndx uint16
}

// SymData serializes a 64-bit symbol table. It interns names into st
// and prepends the mandatory null entry, so serialize before adding
// st's bytes as the string table section.
func SymData(st *StrTab, syms []Sym) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.Write(make([]byte, 24)) // null symbol
	for _, s := range syms {
		_ = binary.Write(&buf, le, uint32(st.Add(s.Name)))
		buf.WriteByte(s.Info)
		buf.WriteByte(s.Other)
		_ = binary.Write(&buf, le, s.Shndx)
		_ = binary.Write(&buf, le, s.Value)
		_ = binary.Write(&buf, le, s.Size)
	}
	return buf.Bytes()
}

// Rela describes one 64-bit RELA relocation.
type Rela struct {
	Off    uint64
	Sym    uint32
	Type   uint32
	Addend int64
}

// RelaData serializes 64-bit RELA entries.
func RelaData(relas []Rela) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	for _, r := range relas {
		_ = binary.Write(&buf, le, r.Off)
		_ = binary.Write(&buf, le, uint64(r.Sym)<<32|uint64(r.Type))
		_ = binary.Write(&buf, le, r.Addend)
	}
	return buf.Bytes()
}

// Dyn describes one dynamic array entry.
type Dyn struct {
	Tag elf.DynTag
	Val uint64
}

// DynData serializes 64-bit dynamic entries and appends DT_NULL.
func DynData(entries []Dyn) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	for _, d := range entries {
		_ = binary.Write(&buf, le, uint64(d.Tag))
		_ = binary.Write(&buf, le, d.Val)
	}
	_ = binary.Write(&buf, le, uint64(elf.DT_NULL))
	_ = binary.Write(&buf, le, uint64(0))
	return buf.Bytes()
}
