package scene

import (
	"io"
	"strings"

	"github.com/google/shlex"
)

// lineTokens lazily splits one data line into whitespace separated words.
// A '#' at the start of a word comments out the rest of the line.
type lineTokens struct {
	lex *shlex.Lexer
}

func tokenize(line string) *lineTokens {
	return &lineTokens{lex: shlex.NewLexer(strings.NewReader(line))}
}

// next returns the next word; ok is false once the line is exhausted.
func (t *lineTokens) next() (tok string, ok bool, err error) {
	tok, err = t.lex.Next()
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tok, true, nil
}
