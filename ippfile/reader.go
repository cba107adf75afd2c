/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Data-file directive parser: DEFINE, DEFINE-DEFAULT, GROUP, ATTR,
 * ATTR-IF-DEFINED, ATTR-IF-NOT-DEFINED, MEMBER
 */
package ippfile

import (
	"fmt"
	"os"

	"github.com/OpenPrinting/cups-sub002/ipp"
)

// ErrorFunc is the caller-supplied error callback: called with the
// offending file name, 1-based line number, and error;
// returning true means "continue parsing past this error", false means
// "stop now".
type ErrorFunc func(file string, line int, err error) (cont bool)

// TokenFunc is the user-defined callback for any directive keyword the
// reader doesn't itself implement. It receives the Reader (so the
// callback can itself consume further tokens from the same stream) and
// the directive word already read; it returns handled=true if it
// recognized and consumed the directive.
type TokenFunc func(r *Reader, directive string) (handled bool, err error)

// Filter is the attribute-name predicate consulted while reading:
// attributes it rejects are parsed (so the stream stays in sync) but
// never attached to the message.
type Filter func(name string) bool

// Reader parses one data file into an *ipp.Message.
type Reader struct {
	OnError   ErrorFunc
	TokenFunc TokenFunc
	Filter    Filter
	Resolver  Resolver

	file  string
	lex   *lexer
	vars  *Scope
	msg   *ipp.Message
	group ipp.Tag
}

// NewReader creates a Reader. If parent is non-nil, the new Reader's
// variables fall back to parent's, modeling an included/nested data
// file.
func NewReader(parent *Reader) *Reader {
	r := &Reader{group: ipp.TagOperationGroup}
	if parent != nil {
		r.vars = NewScope(parent.vars)
		r.Resolver = parent.Resolver
	} else {
		r.vars = NewScope(nil)
	}
	return r
}

// Vars returns the Reader's current variable scope, e.g. so a
// TokenFunc can read or seed variables before delegating back.
func (r *Reader) Vars() *Scope { return r.vars }

// SetGroup changes the group attributes are attached to until the next
// GROUP directive. New Readers start in the operation group.
func (r *Reader) SetGroup(tag ipp.Tag) error {
	if !tag.IsGroup() {
		return fmt.Errorf("ippfile: %s is not an attribute group tag", tag)
	}
	r.group = tag
	return nil
}

// Save remembers the current stream position (one slot, like the
// lexer's own look-ahead), so a TokenFunc can peek at a token and put
// it back with Restore.
func (r *Reader) Save() { r.lex.Save() }

// Restore returns the stream to the position remembered by Save.
func (r *Reader) Restore() { r.lex.Restore() }

// SetVar binds a variable directly (bypassing DEFINE/DEFINE-DEFAULT),
// honoring the "uri" sibling-key decomposition like DEFINE does.
func (r *Reader) SetVar(name, value string) error {
	s2, err := r.vars.WithVar(name, value, r.Resolver)
	if err != nil {
		return err
	}
	r.vars = s2
	return nil
}

// Message returns the message being built, for a TokenFunc that wants
// to add attributes itself (e.g. implementing a VERSION/OPERATION/
// REQUEST-ID directive outside this grammar's fixed set).
func (r *Reader) Message() *ipp.Message { return r.msg }

// Line returns the 1-based line the reader is currently positioned at,
// for a TokenFunc building its own error messages.
func (r *Reader) Line() int { return r.lex.line }

// Next exposes the lexer's next raw token to a TokenFunc, expanding
// variable references through Expand when asExpand is true.
func (r *Reader) Next(asExpand bool) (string, error) {
	tok, err := r.lex.Next()
	if err != nil {
		return "", err
	}
	if tok.kind == tokEOF {
		return "", fmt.Errorf("unexpected end of file")
	}
	if !asExpand {
		return tok.text, nil
	}
	return r.vars.Expand(tok.text)
}

// ReadFile reads and parses the data file at path.
func (r *Reader) ReadFile(path string) (*ipp.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(path, data)
}

// ReadBytes parses data as if it came from a file named name (used in
// error messages).
func (r *Reader) ReadBytes(name string, data []byte) (*ipp.Message, error) {
	r.file = name
	r.lex = newLexer(data)
	r.msg = &ipp.Message{Version: ipp.DefaultVersion}
	if err := r.run(); err != nil {
		return nil, err
	}
	return r.msg, nil
}

func (r *Reader) run() error {
	for {
		tok, err := r.lex.Next()
		if err != nil {
			if e := r.reportErr(err); e != nil {
				return e
			}
			return nil
		}
		if tok.kind == tokEOF {
			return nil
		}
		if tok.kind != tokWord {
			if e := r.reportErr(fmt.Errorf("unexpected token %q, expected a directive", tok.text)); e != nil {
				return e
			}
			continue
		}

		var derr error
		switch tok.text {
		case "DEFINE":
			derr = r.doDefine(false)
		case "DEFINE-DEFAULT":
			derr = r.doDefine(true)
		case "GROUP":
			derr = r.doGroup()
		case "ATTR":
			derr = r.doAttr()
		case "ATTR-IF-DEFINED":
			derr = r.doAttrIf(true)
		case "ATTR-IF-NOT-DEFINED":
			derr = r.doAttrIf(false)
		case "MEMBER":
			derr = r.reportErr(fmt.Errorf("MEMBER directive outside a collection"))
		default:
			handled := false
			if r.TokenFunc != nil {
				var cberr error
				handled, cberr = r.TokenFunc(r, tok.text)
				if cberr != nil {
					derr = r.reportErr(cberr)
				}
			}
			if !handled && derr == nil {
				derr = r.reportErr(fmt.Errorf("unknown directive %q", tok.text))
			}
		}
		if derr != nil {
			return derr
		}
	}
}

// reportErr records err on the message's LastError handle and invokes
// OnError: a true return means "continue", in which case
// reportErr itself returns nil so run()'s caller keeps parsing.
func (r *Reader) reportErr(err error) error {
	line := 0
	if r.lex != nil {
		line = r.lex.line
	}
	if r.msg != nil {
		r.msg.Last().SetLast(ipp.KindFormatError, "%s", err)
	}
	if r.OnError != nil && r.OnError(r.file, line, err) {
		return nil
	}
	return fmt.Errorf("%s:%d: %w", r.file, line, err)
}

func (r *Reader) nextWord() (token, error) {
	tok, err := r.lex.Next()
	if err != nil {
		return token{}, err
	}
	if tok.kind != tokWord {
		return token{}, fmt.Errorf("unexpected token %q", tok.text)
	}
	return tok, nil
}

func (r *Reader) doDefine(onlyIfUnset bool) error {
	nameTok, err := r.nextWord()
	if err != nil {
		return r.reportErr(fmt.Errorf("DEFINE: %w", err))
	}
	valTok, err := r.lex.Next()
	if err != nil {
		return r.reportErr(fmt.Errorf("DEFINE %s: %w", nameTok.text, err))
	}
	if valTok.kind == tokEOF || valTok.kind == tokLBrace || valTok.kind == tokRBrace || valTok.kind == tokComma {
		return r.reportErr(fmt.Errorf("DEFINE %s: missing value", nameTok.text))
	}

	if onlyIfUnset {
		if _, ok := r.vars.Get(nameTok.text); ok {
			return nil
		}
	}

	expanded, err := r.vars.Expand(valTok.text)
	if err != nil {
		return r.reportErr(err)
	}
	s2, err := r.vars.WithVar(nameTok.text, expanded, r.Resolver)
	if err != nil {
		return r.reportErr(err)
	}
	r.vars = s2
	return nil
}

func (r *Reader) doGroup() error {
	tok, err := r.nextWord()
	if err != nil {
		return r.reportErr(fmt.Errorf("GROUP: %w", err))
	}
	tag, ok := ipp.TagByName(tok.text)
	if !ok || !tag.IsGroup() {
		return r.reportErr(fmt.Errorf("GROUP: %q is not a valid attribute group tag", tok.text))
	}
	// Spec 9's resolution of the "GROUP issued twice" open question:
	// always open a fresh Group, even if tag repeats the running one.
	r.group = tag
	r.msg.Groups.Add(ipp.Group{Tag: tag})
	return nil
}

func (r *Reader) doAttr() error {
	tag, name, err := r.readSyntaxAndName("ATTR")
	if err != nil {
		return r.reportErr(err)
	}
	attr, err := r.parseAttrBody(tag, name)
	if err != nil {
		return r.reportErr(err)
	}
	if err := ipp.ValidateAttribute(attr); err != nil {
		return r.reportErr(err)
	}
	return r.addAttr(attr)
}

func (r *Reader) doAttrIf(wantDefined bool) error {
	varTok, err := r.nextWord()
	if err != nil {
		return r.reportErr(fmt.Errorf("ATTR-IF-[NOT-]DEFINED: %w", err))
	}
	_, defined := r.vars.Get(varTok.text)

	tag, name, err := r.readSyntaxAndName("ATTR-IF-[NOT-]DEFINED")
	if err != nil {
		return r.reportErr(err)
	}
	attr, err := r.parseAttrBody(tag, name)
	if err != nil {
		return r.reportErr(err)
	}
	if defined != wantDefined {
		return nil
	}
	if err := ipp.ValidateAttribute(attr); err != nil {
		return r.reportErr(err)
	}
	return r.addAttr(attr)
}

func (r *Reader) readSyntaxAndName(directive string) (ipp.Tag, string, error) {
	syntaxTok, err := r.nextWord()
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", directive, err)
	}
	tag, ok := syntaxToTag(syntaxTok.text)
	if !ok {
		return 0, "", fmt.Errorf("%s: %q is not a recognized value syntax", directive, syntaxTok.text)
	}
	nameTok, err := r.nextWord()
	if err != nil {
		return 0, "", fmt.Errorf("%s %s: %w", directive, syntaxTok.text, err)
	}
	return tag, nameTok.text, nil
}

// parseAttrBody parses the value (or value list, or collection body)
// following an ATTR/MEMBER's syntax and name, regardless of whether
// the caller will ultimately keep the result: ATTR-IF-[NOT-]DEFINED
// and the attribute Filter both need the stream to stay in sync even
// when the parsed attribute is discarded.
func (r *Reader) parseAttrBody(tag ipp.Tag, name string) (ipp.Attribute, error) {
	if tag.Type() == ipp.TypeVoid {
		return ipp.MakeOutOfBand(name, tag)
	}

	first, err := r.readValue(tag)
	if err != nil {
		return ipp.Attribute{}, fmt.Errorf("%s: %w", name, err)
	}
	attr := ipp.MakeAttr(name, tag, first)
	if err := r.readAdditionalValues(tag, &attr); err != nil {
		return ipp.Attribute{}, fmt.Errorf("%s: %w", name, err)
	}
	return attr, nil
}

// readAdditionalValues implements the single-token comma look-ahead:
// after a value, a comma means another value follows; anything else is
// left for the outer parser via Save/Restore. A comma with nothing
// real after it (EOF, another comma, or a closing brace) is a stray
// trailing comma, rejected as a format error rather than silently
// consumed.
func (r *Reader) readAdditionalValues(tag ipp.Tag, attr *ipp.Attribute) error {
	for {
		r.lex.Save()
		tok, err := r.lex.Next()
		if err != nil {
			return err
		}
		if tok.kind != tokComma {
			r.lex.Restore()
			return nil
		}

		r.lex.Save()
		peek, err := r.lex.Next()
		if err != nil {
			return err
		}
		if peek.kind == tokComma || peek.kind == tokEOF || peek.kind == tokRBrace {
			return fmt.Errorf("stray trailing comma")
		}
		r.lex.Restore()

		v, err := r.readValue(tag)
		if err != nil {
			return err
		}
		attr.Values.Add(tag, v)
	}
}

// readValue reads one value for tag: a nested collection for
// TagBeginCollection, otherwise a single token parsed per tag's
// syntax, after variable expansion.
func (r *Reader) readValue(tag ipp.Tag) (ipp.Value, error) {
	if tag == ipp.TagBeginCollection {
		return r.readCollection()
	}

	tok, err := r.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokEOF {
		return nil, fmt.Errorf("unexpected end of file, expected a value")
	}
	if tok.kind != tokWord && tok.kind != tokString {
		return nil, fmt.Errorf("unexpected token %q, expected a value", tok.text)
	}

	expanded, err := r.vars.Expand(tok.text)
	if err != nil {
		return nil, err
	}

	switch tag.Type() {
	case ipp.TypeInteger:
		return parseIntegerValue(expanded)
	case ipp.TypeBoolean:
		return parseBooleanValue(expanded)
	case ipp.TypeRange:
		return parseRangeValue(expanded)
	case ipp.TypeResolution:
		return parseResolutionValue(expanded)
	case ipp.TypeDateTime:
		return parseDateTimeValue(expanded)
	case ipp.TypeTextWithLang:
		return parseTextWithLangValue(expanded)
	case ipp.TypeBinary:
		return parseOctetStringValue(expanded, tok.quoted)
	default:
		return ipp.String(expanded), nil
	}
}

// readCollection parses "{ MEMBER ... }" into an ipp.Collection.
func (r *Reader) readCollection() (ipp.Value, error) {
	tok, err := r.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokLBrace {
		return nil, fmt.Errorf("unexpected token %q, expected '{'", tok.text)
	}

	var col ipp.Collection
	for {
		tok, err = r.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRBrace {
			return col, nil
		}
		if tok.kind == tokEOF {
			return nil, fmt.Errorf("unterminated collection, missing '}'")
		}
		if tok.kind != tokWord || tok.text != "MEMBER" {
			return nil, fmt.Errorf("unexpected token %q inside collection, expected MEMBER or '}'", tok.text)
		}

		tag, name, err := r.readSyntaxAndName("MEMBER")
		if err != nil {
			return nil, err
		}
		attr, err := r.parseAttrBody(tag, name)
		if err != nil {
			return nil, err
		}
		col.Add(attr)
	}
}

// addAttr attaches attr to the currently open group, honoring Filter
// and the same one-attribute-per-name-per-group invariant the binary
// decoder enforces.
func (r *Reader) addAttr(attr ipp.Attribute) error {
	if r.Filter != nil && !r.Filter(attr.Name) {
		return nil
	}

	if len(r.msg.Groups) == 0 || r.msg.Groups[len(r.msg.Groups)-1].Tag != r.group {
		r.msg.Groups.Add(ipp.Group{Tag: r.group})
	}
	g := &r.msg.Groups[len(r.msg.Groups)-1]
	if _, dup := g.Attrs.ByName(attr.Name); dup {
		return r.reportErr(fmt.Errorf("%w: %q", ipp.ErrDuplicateName, attr.Name))
	}
	g.Add(attr)
	return nil
}
