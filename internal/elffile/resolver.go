package elffile

// Resolver answers "what symbol lives at address A?" for call-target
// annotation. It owns its own address map, so it does not keep the
// image alive beyond construction.
type Resolver struct {
	names map[uint64]string
}

// NewResolver builds the address map from the static symbol table and
// the synthesized PLT entries. Static symbols insert first, later
// duplicates overwriting earlier ones; PLT entries insert last and
// therefore win collisions with static symbols.
func NewResolver(f *File) *Resolver {
	names := make(map[uint64]string)

	if syms, ok := f.SymbolTable(); ok {
		for _, sym := range syms {
			if sym.Name != "" {
				names[sym.Value] = sym.Name
			}
		}
	}
	if entries, ok := f.PLTEntries(); ok {
		for _, e := range entries {
			names[e.Addr] = e.Name
		}
	}
	return &Resolver{names: names}
}

// Lookup reports the symbol at exactly addr. The second result is the
// symbol base address, equal to addr on a hit, matching the
// x86asm.SymLookup contract.
func (r *Resolver) Lookup(addr uint64) (string, uint64) {
	if name, ok := r.names[addr]; ok {
		return name, addr
	}
	return "", 0
}

// Len returns the number of mapped addresses.
func (r *Resolver) Len() int { return len(r.names) }
