// Package elffile provides read-only structured access to an ELF
// executable image held in memory.
//
// The package wraps debug/elf for header, section and symbol parsing
// and adds raw accessors for the pieces debug/elf does not expose:
// PLT relocations, the dynamic array and the dynamic string table.
// All returned byte slices are subslices of the image buffer.
package elffile

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrBadMagic indicates the buffer does not start with \x7fELF.
	ErrBadMagic = errors.New("bad magic number, not an ELF file")
	// ErrBadClass indicates an invalid EI_CLASS byte.
	ErrBadClass = errors.New("invalid ELF class")
	// ErrBadData indicates an invalid EI_DATA (endianness) byte.
	ErrBadData = errors.New("invalid ELF data encoding")
	// ErrTruncated indicates the buffer is too small to hold the header.
	ErrTruncated = errors.New("truncated ELF header")
)

// File is an opened ELF image. The embedded *elf.File provides the
// parsed header, section and segment views; the raw buffer backs
// SectionBytes and the raw table parsers.
type File struct {
	*elf.File

	data []byte
}

// Open parses the ELF image held in data. A malformed container is
// fatal here; after a successful Open every missing optional section
// reports absence instead of failing.
func Open(data []byte) (*File, error) {
	if len(data) < elf.EI_NIDENT {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:4], []byte(elf.ELFMAG)) {
		return nil, ErrBadMagic
	}
	switch elf.Class(data[elf.EI_CLASS]) {
	case elf.ELFCLASS32, elf.ELFCLASS64:
	default:
		return nil, ErrBadClass
	}
	switch elf.Data(data[elf.EI_DATA]) {
	case elf.ELFDATA2LSB, elf.ELFDATA2MSB:
	default:
		return nil, ErrBadData
	}

	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse ELF: %w", err)
	}
	return &File{File: ef, data: data}, nil
}

// Size returns the length of the underlying image buffer.
func (f *File) Size() int { return len(f.data) }

// SectionBytes returns the subslice [Offset, Offset+Size) of the image
// buffer for s. It returns nil for nil, NOBITS or out-of-bounds
// sections.
func (f *File) SectionBytes(s *elf.Section) []byte {
	if s == nil || s.Type == elf.SHT_NOBITS {
		return nil
	}
	end := s.Offset + s.Size
	if end < s.Offset || end > uint64(len(f.data)) {
		return nil
	}
	return f.data[s.Offset:end]
}

// SymbolTable returns the static symbol table in file order, or false
// if the file has none. Names are already resolved against .strtab.
func (f *File) SymbolTable() ([]elf.Symbol, bool) {
	syms, err := f.Symbols()
	if err != nil {
		return nil, false
	}
	return syms, true
}

// DynamicSymbolTable returns the dynamic symbol table in file order,
// or false if the file has none.
func (f *File) DynamicSymbolTable() ([]elf.Symbol, bool) {
	syms, err := f.DynamicSymbols()
	if err != nil {
		return nil, false
	}
	return syms, true
}

// DynEntry is one (tag, value) pair from the dynamic array.
type DynEntry struct {
	Tag elf.DynTag
	Val uint64
}

// DynamicArray returns the entries of the .dynamic section up to and
// excluding DT_NULL, or false if the section is absent.
func (f *File) DynamicArray() ([]DynEntry, bool) {
	sec := f.Section(".dynamic")
	data := f.SectionBytes(sec)
	if data == nil {
		return nil, false
	}

	var entries []DynEntry
	bo := f.ByteOrder
	if f.Class == elf.ELFCLASS64 {
		for len(data) >= 16 {
			tag := elf.DynTag(bo.Uint64(data[0:8]))
			if tag == elf.DT_NULL {
				break
			}
			entries = append(entries, DynEntry{Tag: tag, Val: bo.Uint64(data[8:16])})
			data = data[16:]
		}
	} else {
		for len(data) >= 8 {
			tag := elf.DynTag(bo.Uint32(data[0:4]))
			if tag == elf.DT_NULL {
				break
			}
			entries = append(entries, DynEntry{Tag: tag, Val: uint64(bo.Uint32(data[4:8]))})
			data = data[8:]
		}
	}
	return entries, true
}

// DynString returns the NUL-terminated string at offset off in the
// dynamic string table.
func (f *File) DynString(off uint64) (string, bool) {
	return f.strtabString(".dynstr", off)
}

func (f *File) strtabString(section string, off uint64) (string, bool) {
	data := f.SectionBytes(f.Section(section))
	if data == nil || off >= uint64(len(data)) {
		return "", false
	}
	rest := data[off:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", false
	}
	return string(rest[:end]), true
}

// Interpreter returns the NUL-trimmed contents of the PT_INTERP
// segment, typically the path of the dynamic linker.
func (f *File) Interpreter() (string, bool) {
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}
		end := prog.Off + prog.Filesz
		if end < prog.Off || end > uint64(len(f.data)) {
			return "", false
		}
		s := strings.TrimRight(string(f.data[prog.Off:end]), "\x00")
		if s == "" {
			return "", false
		}
		return s, true
	}
	return "", false
}

// CompilerInfo returns the contents of the .comment section as UTF-8,
// with the NUL separators between producer strings replaced by
// newlines. It reports false if the section is missing or not valid
// UTF-8.
func (f *File) CompilerInfo() (string, bool) {
	data := f.SectionBytes(f.Section(".comment"))
	if data == nil || !utf8.Valid(data) {
		return "", false
	}
	s := strings.Trim(string(data), "\x00")
	if s == "" {
		return "", false
	}
	return strings.ReplaceAll(s, "\x00", "\n"), true
}
