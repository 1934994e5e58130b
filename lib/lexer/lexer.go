package tllex

import (
	"io"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

// Definition splits TinyLang source into whitespace separated words.
//
// The language has no token classes beyond "word": keywords, operators,
// numbers and quoted text are all told apart later by the parser, so the
// only job of the lexer is to find word boundaries and remember where each
// word came from.
var (
	Definition = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Word", Pattern: `[^` + spaceClass + `]+`},
		{Name: "Whitespace", Pattern: `[` + spaceClass + `]+`},
	})

	wordType = Definition.Symbols()["Word"]
)

// spaceClass matches the runes IsSpace accepts.
const spaceClass = `\s\v\x1c-\x1f\x{85}\p{Z}`

// IsSpace reports whether r separates words: Unicode white space plus the
// ASCII file, group, record and unit separators.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

// Line holds the words of one physical source line.
type Line struct {
	Number int
	Tokens []lexer.Token
}

// Words returns the text of every token on the line.
func (l Line) Words() []string {
	words := make([]string, len(l.Tokens))
	for i, tok := range l.Tokens {
		words[i] = tok.Value
	}
	return words
}

// Empty reports whether the line has no words.
func (l Line) Empty() bool {
	return len(l.Tokens) == 0
}

// Lex reads all of r and splits it into lines of words.
func Lex(filename string, r io.Reader) ([]Line, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LexString(filename, string(src))
}

// LexString splits src into lines of words. Every physical line gets an
// entry, including blank ones, so that the result can be indexed by line
// number.
func LexString(filename, src string) ([]Line, error) {
	lines := make([]Line, CountLines(src))
	for i := range lines {
		lines[i].Number = i + 1
	}

	lex, err := Definition.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	for _, tok := range tokens {
		if tok.Type != wordType {
			continue
		}
		idx := tok.Pos.Line - 1
		lines[idx].Tokens = append(lines[idx].Tokens, tok)
	}
	return lines, nil
}

// CountLines returns the number of physical lines in src. A trailing newline
// does not start a new line.
func CountLines(src string) int {
	if src == "" {
		return 0
	}
	n := strings.Count(src, "\n")
	if !strings.HasSuffix(src, "\n") {
		n++
	}
	return n
}
