package disasm

import "fmt"

// Kind classifies a piece of instruction text for syntax coloring.
// It never changes the text itself.
type Kind uint8

const (
	KindOther Kind = iota
	KindDirective
	KindKeyword
	KindPrefix
	KindMnemonic
	KindRegister
	KindNumber
	KindPunct
)

// Token is one classified piece of a formatted instruction.
// Concatenating a line's tokens reproduces the formatter output
// exactly, whitespace included.
type Token struct {
	Text string
	Kind Kind
}

var prefixWords = map[string]bool{
	"lock": true, "rep": true, "repe": true, "repz": true,
	"repne": true, "repnz": true, "bnd": true, "notrack": true,
	"xacquire": true, "xrelease": true,
	"data16": true, "data32": true, "addr16": true, "addr32": true,
	"cs": true, "ss": true, "ds": true, "es": true, "fs": true, "gs": true,
}

var keywordWords = map[string]bool{
	"ptr": true, "byte": true, "word": true, "dword": true,
	"qword": true, "tbyte": true, "fword": true, "xmmword": true,
	"ymmword": true, "zmmword": true, "offset": true, "short": true,
	"near": true, "far": true,
}

var directiveWords = map[string]bool{
	"db": true, "dw": true, "dd": true, "dq": true,
}

var registerWords = buildRegisterSet()

func buildRegisterSet() map[string]bool {
	set := make(map[string]bool)
	add := func(names ...string) {
		for _, n := range names {
			set[n] = true
		}
	}

	add("al", "cl", "dl", "bl", "ah", "ch", "dh", "bh", "spl", "bpl", "sil", "dil")
	base := []string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
	for _, r := range base {
		add(r, "e"+r, "r"+r)
	}
	for i := 8; i < 16; i++ {
		r := fmt.Sprintf("r%d", i)
		add(r, r+"b", r+"w", r+"d")
	}
	add("cs", "ss", "ds", "es", "fs", "gs", "rip", "eip")
	for i := 0; i < 8; i++ {
		add(fmt.Sprintf("st%d", i), fmt.Sprintf("mm%d", i), fmt.Sprintf("k%d", i), fmt.Sprintf("tr%d", i))
	}
	for i := 0; i < 32; i++ {
		add(fmt.Sprintf("xmm%d", i), fmt.Sprintf("ymm%d", i), fmt.Sprintf("zmm%d", i))
	}
	for i := 0; i < 16; i++ {
		add(fmt.Sprintf("cr%d", i), fmt.Sprintf("dr%d", i))
	}
	return set
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '@' || c == '.':
		return true
	}
	return false
}

// Lex splits a formatted Intel-syntax instruction into classified
// tokens. The first word that is not a known prefix is the mnemonic;
// everything after it is operand text.
func Lex(text string) []Token {
	var tokens []Token
	seenMnemonic := false

	for i := 0; i < len(text); {
		j := i
		if isWordByte(text[i]) {
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			word := text[i:j]
			tokens = append(tokens, Token{Text: word, Kind: classify(word, &seenMnemonic)})
		} else {
			for j < len(text) && !isWordByte(text[j]) {
				j++
			}
			tokens = append(tokens, Token{Text: text[i:j], Kind: KindPunct})
		}
		i = j
	}
	return tokens
}

func classify(word string, seenMnemonic *bool) Kind {
	if !*seenMnemonic {
		if prefixWords[word] {
			return KindPrefix
		}
		*seenMnemonic = true
		return KindMnemonic
	}
	switch {
	case keywordWords[word]:
		return KindKeyword
	case registerWords[word]:
		return KindRegister
	case word[0] >= '0' && word[0] <= '9':
		return KindNumber
	case directiveWords[word]:
		return KindDirective
	}
	return KindOther
}
