/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Token lexer for the IPP data-file grammar
 */
package ippfile

import (
	"fmt"
)

// tokenKind classifies a single lexer token.
type tokenKind int

// Token kinds
const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokLBrace
	tokRBrace
	tokComma
)

// token is one lexical unit: a bareword, a quoted string, or one of the
// self-contained delimiters { } ,
type token struct {
	kind   tokenKind
	text   string
	quoted bool
	line   int
}

// lexer tokenizes an in-memory data-file buffer. The whole file is
// held in memory because the grammar needs a full (line, offset) pair
// saved and restored for one token of look-ahead, not just a single
// pushed-back byte.
type lexer struct {
	data []byte
	pos  int
	line int

	savedPos  int
	savedLine int
}

// newLexer creates a lexer over data, with a 1-based line counter.
func newLexer(data []byte) *lexer {
	return &lexer{data: data, line: 1}
}

// Save remembers the current (line, offset) pair; the grammar needs
// only one slot, so a second Save before Restore simply overwrites the
// first.
func (lx *lexer) Save() {
	lx.savedPos = lx.pos
	lx.savedLine = lx.line
}

// Restore returns the lexer to the position remembered by Save.
func (lx *lexer) Restore() {
	lx.pos = lx.savedPos
	lx.line = lx.savedLine
}

func (lx *lexer) getc() (byte, bool) {
	if lx.pos >= len(lx.data) {
		return 0, false
	}
	c := lx.data[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
	}
	return c, true
}

func (lx *lexer) ungetc() {
	if lx.pos == 0 {
		return
	}
	lx.pos--
	if lx.data[lx.pos] == '\n' {
		lx.line--
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n':
		return true
	}
	return false
}

func isWordStop(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', ',', '#', '"', '\'':
		return true
	}
	return false
}

// Next returns the next token, skipping whitespace and "# ..."
// comments. CR is tolerated and silently discarded, so DOS-style line
// endings read the same as plain LF.
func (lx *lexer) Next() (token, error) {
	for {
		c, ok := lx.getc()
		if !ok {
			return token{kind: tokEOF, line: lx.line}, nil
		}
		if c == '\r' || isSpace(c) {
			continue
		}
		if c == '#' {
			for {
				c2, ok2 := lx.getc()
				if !ok2 || c2 == '\n' {
					break
				}
			}
			continue
		}

		line := lx.line
		switch c {
		case '{':
			return token{kind: tokLBrace, text: "{", line: line}, nil
		case '}':
			return token{kind: tokRBrace, text: "}", line: line}, nil
		case ',':
			return token{kind: tokComma, text: ",", line: line}, nil
		case '"', '\'':
			return lx.readQuoted(c, line)
		default:
			lx.ungetc()
			return lx.readWord(line)
		}
	}
}

// readQuoted consumes a quoted string started by quote, expanding
// backslash escapes: \a \b \f \n \r \t \v map to their ASCII control
// codes, and \x (any other character) maps to the literal character x.
func (lx *lexer) readQuoted(quote byte, line int) (token, error) {
	var buf []byte
	for {
		c, ok := lx.getc()
		if !ok {
			return token{}, fmt.Errorf("line %d: unterminated quoted string", line)
		}
		if c == quote {
			return token{kind: tokString, text: string(buf), quoted: true, line: line}, nil
		}
		if c == '\\' {
			c2, ok2 := lx.getc()
			if !ok2 {
				return token{}, fmt.Errorf("line %d: unterminated quoted string", line)
			}
			switch c2 {
			case 'a':
				buf = append(buf, '\a')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'v':
				buf = append(buf, '\v')
			default:
				buf = append(buf, c2)
			}
			continue
		}
		buf = append(buf, c)
	}
}

// readWord consumes an unquoted token up to the next whitespace,
// delimiter, comment, or quote start. A comment seen while not inside
// a quoted string terminates the current token.
func (lx *lexer) readWord(line int) (token, error) {
	var buf []byte
	for {
		c, ok := lx.getc()
		if !ok {
			break
		}
		if isWordStop(c) {
			lx.ungetc()
			break
		}
		buf = append(buf, c)
	}
	if len(buf) == 0 {
		// Can only happen if readWord is called positioned on a stop
		// character; defensive, not expected given Next's dispatch.
		return token{}, fmt.Errorf("line %d: empty token", line)
	}
	return token{kind: tokWord, text: string(buf), line: line}, nil
}
