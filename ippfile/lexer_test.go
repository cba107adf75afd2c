/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Lexer tests
 */
package ippfile

import "testing"

func TestLexerBasicTokens(t *testing.T) {
	lx := newLexer([]byte(`ATTR keyword media $size, { } # comment
NEXT`))

	want := []struct {
		kind tokenKind
		text string
	}{
		{tokWord, "ATTR"},
		{tokWord, "keyword"},
		{tokWord, "media"},
		{tokWord, "$size"},
		{tokComma, ","},
		{tokLBrace, "{"},
		{tokRBrace, "}"},
		{tokWord, "NEXT"},
		{tokEOF, ""},
	}

	for i, w := range want {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("token %d: %s", i, err)
		}
		if tok.kind != w.kind || tok.text != w.text {
			t.Fatalf("token %d = (%v, %q), want (%v, %q)", i, tok.kind, tok.text, w.kind, w.text)
		}
	}
}

func TestLexerQuotedStringEscapes(t *testing.T) {
	lx := newLexer([]byte(`"hello\tworld\n\\\"quoted\""`))
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("Next: %s", err)
	}
	if tok.kind != tokString || !tok.quoted {
		t.Fatalf("kind=%v quoted=%v, want tokString, true", tok.kind, tok.quoted)
	}
	want := "hello\tworld\n\\\"quoted\""
	if tok.text != want {
		t.Fatalf("text = %q, want %q", tok.text, want)
	}
}

func TestLexerUnterminatedQuotedString(t *testing.T) {
	lx := newLexer([]byte(`"unterminated`))
	_, err := lx.Next()
	if err == nil {
		t.Fatal("Next() on unterminated string succeeded, want error")
	}
}

func TestLexerSaveRestore(t *testing.T) {
	lx := newLexer([]byte(`one two three`))
	first, _ := lx.Next()
	lx.Save()
	second, _ := lx.Next()
	lx.Restore()
	secondAgain, _ := lx.Next()

	if first.text != "one" || second.text != "two" || secondAgain.text != "two" {
		t.Fatalf("Save/Restore did not replay the same token: %q %q %q", first.text, second.text, secondAgain.text)
	}
	third, _ := lx.Next()
	if third.text != "three" {
		t.Fatalf("token after Restore+replay = %q, want three", third.text)
	}
}

func TestLexerLineTracking(t *testing.T) {
	lx := newLexer([]byte("one\ntwo\nthree"))
	first, _ := lx.Next()
	second, _ := lx.Next()
	third, _ := lx.Next()
	if first.line != 1 || second.line != 2 || third.line != 3 {
		t.Fatalf("lines = %d, %d, %d, want 1, 2, 3", first.line, second.line, third.line)
	}
}

func TestLexerCommentTerminatesWord(t *testing.T) {
	lx := newLexer([]byte("abc#comment\ndef"))
	first, _ := lx.Next()
	second, _ := lx.Next()
	if first.text != "abc" || second.text != "def" {
		t.Fatalf("first=%q second=%q, want abc, def", first.text, second.text)
	}
}

func TestLexerCRTolerated(t *testing.T) {
	lx := newLexer([]byte("one\r\ntwo"))
	first, _ := lx.Next()
	second, _ := lx.Next()
	if first.text != "one" || second.text != "two" {
		t.Fatalf("first=%q second=%q, want one, two", first.text, second.text)
	}
}
