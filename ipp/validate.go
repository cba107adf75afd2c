/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Per-value syntactic validation
 */
package ipp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Length limits for variable-length string syntaxes (RFC 8011 section
// 5.1), in bytes of encoded UTF-8 (or ASCII for the constrained
// syntaxes below).
const (
	maxKeywordLen   = 255
	maxURILen       = 1023
	maxURISchemeLen = 63
	maxCharsetLen   = 40
	maxLanguageLen  = 63
	maxMimeTypeLen  = 255
	maxNameLen      = 255
	maxTextLen      = 1023
	maxOctetLen     = 32767
)

// Validate checks a single (tag, value) pair against the syntax rules
// implied by tag, returning a non-nil error describing the first
// violation found. It does not re-check structural invariants already
// enforced by decode (field sizes, value counts); it checks the
// *content* rules layered on top: keyword charset, URI shape, length
// ceilings, and the tighter date-time UTC-offset bound.
func Validate(tag Tag, v Value) error {
	switch tag {
	case TagKeyword:
		return validateKeyword(mustString(v))
	case TagURI:
		return validateURI(mustString(v))
	case TagURIScheme:
		return validateLen("uriScheme", mustString(v), maxURISchemeLen)
	case TagCharset:
		return validateCharset(mustString(v))
	case TagLanguage:
		return validateLanguage(mustString(v))
	case TagMimeType:
		return validateMimeType(mustString(v))
	case TagName, TagMemberName:
		return validateUTF8Len("name", mustString(v), maxNameLen)
	case TagText:
		return validateUTF8Len("text", mustString(v), maxTextLen)
	case TagString:
		if b, ok := v.(Binary); ok && len(b) > maxOctetLen {
			return fmt.Errorf("octetString exceeds %d bytes", maxOctetLen)
		}
	case TagDateTime:
		return validateDateTime(v.(Time))
	case TagResolution:
		return validateResolution(v.(Resolution))
	case TagRange:
		return validateRange(v.(Range))
	case TagTextLang:
		tl := v.(TextWithLang)
		if err := validateLanguage(tl.Lang); err != nil {
			return err
		}
		// The language tag counts against the text bound (RFC 8011:
		// the bound covers the value including its language field).
		return validateUTF8Len("text", tl.Text, maxTextLen-len(tl.Lang))
	case TagNameLang:
		tl := v.(TextWithLang)
		if err := validateLanguage(tl.Lang); err != nil {
			return err
		}
		return validateUTF8Len("name", tl.Text, maxNameLen-len(tl.Lang))
	case TagBeginCollection:
		if col, ok := v.(Collection); ok {
			for _, member := range Attributes(col) {
				if err := ValidateAttribute(member); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func mustString(v Value) string {
	switch s := v.(type) {
	case String:
		return string(s)
	case BorrowedString:
		return string(s)
	default:
		return v.String()
	}
}

// validateKeyword enforces RFC 8011's keyword charset: letters, digits,
// '-', '.', '_', no embedded spaces, and a non-digit first character.
func validateKeyword(s string) error {
	if err := validateLen("keyword", s, maxKeywordLen); err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("keyword must not be empty")
	}
	if s[0] >= '0' && s[0] <= '9' {
		return fmt.Errorf("keyword %q must not start with a digit", s)
	}
	for i, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '.' || r == '_'
		if !ok {
			return fmt.Errorf("keyword %q: invalid character %q at offset %d", s, r, i)
		}
	}
	return nil
}

// validateURI requires an RFC 3986 absolute URI: parseable, with a
// scheme, within the length bound.
func validateURI(s string) error {
	if err := validateLen("uri", s, maxURILen); err != nil {
		return err
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("uri %q: %s", s, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("uri %q has no scheme", s)
	}
	return nil
}

// validateCharset enforces the charset syntax: 1-40 characters of
// letters, digits, '-', '.', '_'.
func validateCharset(s string) error {
	if err := validateLen("charset", s, maxCharsetLen); err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("charset must not be empty")
	}
	for i, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '.' || r == '_'
		if !ok {
			return fmt.Errorf("charset %q: invalid character %q at offset %d", s, r, i)
		}
	}
	return nil
}

// validateLanguage enforces a BCP-47-shaped natural-language tag:
// alphanumeric subtags of 1-8 characters separated by single hyphens,
// the first purely alphabetic, 1-63 characters total.
func validateLanguage(s string) error {
	if err := validateLen("naturalLanguage", s, maxLanguageLen); err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("naturalLanguage must not be empty")
	}
	for i, sub := range strings.Split(s, "-") {
		if len(sub) < 1 || len(sub) > 8 {
			return fmt.Errorf("naturalLanguage %q: bad subtag length", s)
		}
		for _, r := range sub {
			alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			digit := r >= '0' && r <= '9'
			if !alpha && !(digit && i > 0) {
				return fmt.Errorf("naturalLanguage %q: invalid character %q", s, r)
			}
		}
	}
	return nil
}

// mime token characters: RFC 2045 tokens minus the specials.
func isMimeTokenChar(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	switch r {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

func isMimeToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isMimeTokenChar(r) {
			return false
		}
	}
	return true
}

// validateMimeType enforces "type/subtype[;param=value]*" with token
// characters only.
func validateMimeType(s string) error {
	if err := validateLen("mimeMediaType", s, maxMimeTypeLen); err != nil {
		return err
	}

	parts := strings.Split(s, ";")
	typ, sub, ok := strings.Cut(parts[0], "/")
	if !ok || !isMimeToken(typ) || !isMimeToken(sub) {
		return fmt.Errorf("mimeMediaType %q: want type/subtype", s)
	}
	for _, param := range parts[1:] {
		name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !isMimeToken(name) || !isMimeToken(strings.Trim(value, `"`)) {
			return fmt.Errorf("mimeMediaType %q: bad parameter %q", s, param)
		}
	}
	return nil
}

func validateLen(syntax, s string, max int) error {
	if len(s) > max {
		return fmt.Errorf("%s exceeds %d bytes (got %d)", syntax, max, len(s))
	}
	return nil
}

func validateUTF8Len(syntax, s string, max int) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s is not valid UTF-8", syntax)
	}
	return validateLen(syntax, s, max)
}

// validateDateTime applies a bound the wire format cannot express
// structurally: the single UTC-hour-offset byte allows 0-255 and decode
// only rejects what doesn't fit the RFC 2579 field layout, but a
// conformant UTC offset never reaches 14 hours. The narrower check
// belongs here, not in decode, so a structurally valid value can still
// be decoded and inspected before being rejected as out of range.
func validateDateTime(t Time) error {
	_, zone := t.Zone()
	hours := zone / 3600
	if hours < 0 {
		hours = -hours
	}
	if hours >= 14 {
		return fmt.Errorf("dateTime UTC offset of %d hours is out of range (must be < 14)", hours)
	}
	return nil
}

func validateResolution(r Resolution) error {
	if r.Xres <= 0 || r.Yres <= 0 {
		return fmt.Errorf("resolution %s must have positive x and y", r)
	}
	if r.Units != UnitsDpi && r.Units != UnitsDpcm {
		return fmt.Errorf("resolution %s has unrecognized units", r)
	}
	return nil
}

func validateRange(r Range) error {
	if r.Lower > r.Upper {
		return fmt.Errorf("range %s has lower bound greater than upper bound", r)
	}
	return nil
}

// ValidateAttribute validates every value of attr against the tag it
// was decoded or constructed with, stopping at the first bad value.
// Collection values are validated recursively, member by member.
func ValidateAttribute(attr Attribute) error {
	for i, v := range attr.Values {
		if err := Validate(v.T, v.V); err != nil {
			return fmt.Errorf("%s[%d]: %w", attr.Name, i, err)
		}
	}
	return nil
}

// ValidateMessage validates every attribute of every group in m.
func ValidateMessage(m *Message) error {
	for _, g := range m.Groups {
		for _, attr := range g.Attrs {
			if err := ValidateAttribute(attr); err != nil {
				return err
			}
		}
	}
	return nil
}
