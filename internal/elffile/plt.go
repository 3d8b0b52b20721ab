package elffile

import "debug/elf"

// Reloc is one relocation against the PLT, independent of whether the
// file uses REL or RELA entries.
type Reloc struct {
	Off      uint64
	SymIndex uint32
	Type     uint32
	Addend   int64
}

// PLTRelocations returns the relocations that populate the procedure
// linkage table, read from .rela.plt (or .rel.plt on REL targets), in
// file order. It reports false when neither section exists.
func (f *File) PLTRelocations() ([]Reloc, bool) {
	sec := f.Section(".rela.plt")
	if sec == nil {
		sec = f.Section(".rel.plt")
	}
	data := f.SectionBytes(sec)
	if data == nil {
		return nil, false
	}

	withAddend := sec.Type == elf.SHT_RELA
	bo := f.ByteOrder

	var relocs []Reloc
	if f.Class == elf.ELFCLASS64 {
		size := 16
		if withAddend {
			size = 24
		}
		for len(data) >= size {
			info := bo.Uint64(data[8:16])
			r := Reloc{
				Off:      bo.Uint64(data[0:8]),
				SymIndex: uint32(info >> 32),
				Type:     uint32(info),
			}
			if withAddend {
				r.Addend = int64(bo.Uint64(data[16:24]))
			}
			relocs = append(relocs, r)
			data = data[size:]
		}
	} else {
		size := 8
		if withAddend {
			size = 12
		}
		for len(data) >= size {
			info := bo.Uint32(data[4:8])
			r := Reloc{
				Off:      uint64(bo.Uint32(data[0:4])),
				SymIndex: info >> 8,
				Type:     info & 0xff,
			}
			if withAddend {
				r.Addend = int64(int32(bo.Uint32(data[8:12])))
			}
			relocs = append(relocs, r)
			data = data[size:]
		}
	}
	return relocs, true
}

// PLTEntry is a synthesized procedure-linkage-table entry. The address
// points at the trampoline for one imported function.
type PLTEntry struct {
	Name string
	Addr uint64
	Size uint64
}

// PLTEntries synthesizes one entry per PLT relocation. The i-th
// relocation maps to address plt.Addr + (i+1)*plt.Entsize; slot 0 is
// the PLT header stub and has no relocation. Names come from the
// dynamic symbol table and carry an "@plt" suffix.
func (f *File) PLTEntries() ([]PLTEntry, bool) {
	plt := f.Section(".plt")
	if plt == nil {
		return nil, false
	}
	relocs, ok := f.PLTRelocations()
	if !ok {
		return nil, false
	}
	dynsyms, _ := f.DynamicSymbolTable()

	entries := make([]PLTEntry, 0, len(relocs))
	for i, r := range relocs {
		var name string
		// debug/elf omits the initial null symbol, so dynamic symbol
		// index n lands at dynsyms[n-1].
		if r.SymIndex >= 1 && uint64(r.SymIndex) <= uint64(len(dynsyms)) {
			name = dynsyms[r.SymIndex-1].Name
		}
		entries = append(entries, PLTEntry{
			Name: name + "@plt",
			Addr: plt.Addr + (uint64(i)+1)*plt.Entsize,
			Size: plt.Entsize,
		})
	}
	return entries, true
}
