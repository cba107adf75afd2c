/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * ATTR/MEMBER syntax keywords and per-tag value parsing
 */
package ippfile

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/OpenPrinting/cups-sub002/ipp"
)

// syntaxAliases maps the ATTR/MEMBER syntax keyword (lower-cased) to
// the Tag it selects. Unlike ipp.TagByName it has no "0x..." hex
// fallback; it also accepts the short forms "text"/"name" for the
// without-language tags
// and "range" for rangeOfInteger, the way hand-written data files do.
var syntaxAliases = map[string]ipp.Tag{
	"integer":             ipp.TagInteger,
	"enum":                ipp.TagEnum,
	"boolean":             ipp.TagBoolean,
	"octetstring":         ipp.TagString,
	"datetime":            ipp.TagDateTime,
	"resolution":          ipp.TagResolution,
	"rangeofinteger":      ipp.TagRange,
	"range":               ipp.TagRange,
	"collection":          ipp.TagBeginCollection,
	"textwithlanguage":    ipp.TagTextLang,
	"namewithlanguage":    ipp.TagNameLang,
	"text":                ipp.TagText,
	"textwithoutlanguage": ipp.TagText,
	"name":                ipp.TagName,
	"namewithoutlanguage": ipp.TagName,
	"keyword":             ipp.TagKeyword,
	"uri":                 ipp.TagURI,
	"urischeme":           ipp.TagURIScheme,
	"charset":             ipp.TagCharset,
	"naturallanguage":     ipp.TagLanguage,
	"mimemediatype":       ipp.TagMimeType,
	"memberattrname":      ipp.TagMemberName,
	"unsupported":         ipp.TagUnsupportedValue,
	"unknown":             ipp.TagUnknown,
	"no-value":            ipp.TagNoValue,
	"not-settable":        ipp.TagNotSettable,
	"delete-attribute":    ipp.TagDeleteAttr,
	"admin-define":        ipp.TagAdminDefine,
	"default":             ipp.TagDefault,
}

// syntaxNames is syntaxAliases' canonical reverse, used by Writer to
// emit one preferred keyword per tag rather than whichever alias
// happened to be read.
var syntaxNames = map[ipp.Tag]string{
	ipp.TagInteger:          "integer",
	ipp.TagEnum:             "enum",
	ipp.TagBoolean:          "boolean",
	ipp.TagString:           "octetString",
	ipp.TagDateTime:         "dateTime",
	ipp.TagResolution:       "resolution",
	ipp.TagRange:            "rangeOfInteger",
	ipp.TagBeginCollection:  "collection",
	ipp.TagTextLang:         "textWithLanguage",
	ipp.TagNameLang:         "nameWithLanguage",
	ipp.TagText:             "text",
	ipp.TagName:             "name",
	ipp.TagKeyword:          "keyword",
	ipp.TagURI:              "uri",
	ipp.TagURIScheme:        "uriScheme",
	ipp.TagCharset:          "charset",
	ipp.TagLanguage:         "naturalLanguage",
	ipp.TagMimeType:         "mimeMediaType",
	ipp.TagMemberName:       "memberAttrName",
	ipp.TagUnsupportedValue: "unsupported",
	ipp.TagUnknown:          "unknown",
	ipp.TagNoValue:          "no-value",
	ipp.TagNotSettable:      "not-settable",
	ipp.TagDeleteAttr:       "delete-attribute",
	ipp.TagAdminDefine:      "admin-define",
	ipp.TagDefault:          "default",
}

// syntaxToTag resolves an ATTR/MEMBER syntax keyword to a Tag,
// case-insensitively.
func syntaxToTag(name string) (ipp.Tag, bool) {
	tag, ok := syntaxAliases[strings.ToLower(name)]
	return tag, ok
}

// tagSyntaxName is syntaxToTag's inverse, used when writing.
func tagSyntaxName(tag ipp.Tag) string {
	if name, ok := syntaxNames[tag]; ok {
		return name
	}
	return tag.String()
}

var rangeRe = regexp.MustCompile(`^(-?[0-9]+)-(-?[0-9]+)$`)
var resolutionRe = regexp.MustCompile(`(?i)^([0-9]+)(?:x([0-9]+))?(dpi|dpcm|dpc)$`)

// parseIntegerValue parses decimal or "0x..." hex, locale-independent.
func parseIntegerValue(s string) (ipp.Value, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return ipp.Integer(int32(n)), nil
}

// parseBooleanValue parses case-insensitive "true"/"false".
func parseBooleanValue(s string) (ipp.Value, error) {
	switch strings.ToLower(s) {
	case "true":
		return ipp.Boolean(true), nil
	case "false":
		return ipp.Boolean(false), nil
	}
	return nil, fmt.Errorf("invalid boolean %q, must be true or false", s)
}

// parseRangeValue parses "<lower>-<upper>".
func parseRangeValue(s string) (ipp.Value, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid rangeOfInteger %q, want lower-upper", s)
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	return ipp.Range{Lower: lo, Upper: hi}, nil
}

// parseResolutionValue parses "<x>[x<y>]{dpi|dpc|dpcm}"; a missing y
// defaults to x.
func parseResolutionValue(s string) (ipp.Value, error) {
	m := resolutionRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid resolution %q, want NxNdpi or NxNdpcm", s)
	}
	x, _ := strconv.Atoi(m[1])
	y := x
	if m[2] != "" {
		y, _ = strconv.Atoi(m[2])
	}
	var units ipp.Units
	switch strings.ToLower(m[3]) {
	case "dpi":
		units = ipp.UnitsDpi
	case "dpc", "dpcm":
		units = ipp.UnitsDpcm
	}
	return ipp.Resolution{Xres: x, Yres: y, Units: units}, nil
}

// parseDateTimeValue parses either an RFC-3339-shaped literal
// "YYYY-MM-DDThh:mm:ss[+-]HHMM", truncating fractional seconds to
// deci-seconds, or a leading "P" period expression resolving to
// "now + delta".
func parseDateTimeValue(s string) (ipp.Value, error) {
	if strings.HasPrefix(s, "P") || strings.HasPrefix(s, "p") {
		d, err := parsePeriod(s)
		if err != nil {
			return nil, err
		}
		return ipp.Time{Time: time.Now().Add(d)}, nil
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.9-0700",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05.9Z0700",
		"2006-01-02T15:04:05Z0700",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			// Truncate fractional seconds to deci-second resolution,
			// matching the 11-octet wire representation.
			deci := (t.Nanosecond() / 100000000) * 100000000
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(),
				t.Second(), deci, t.Location())
			return ipp.Time{Time: t}, nil
		}
	}
	return nil, fmt.Errorf("invalid dateTime %q", s)
}

// parsePeriod parses an ISO-8601-style period expression following a
// leading 'P': digits followed by one of Y, M, D, then optionally 'T'
// followed by digits and H, M, S. M means month before 'T' and minute
// after it.
func parsePeriod(s string) (time.Duration, error) {
	s = s[1:]
	var total time.Duration
	afterT := false
	num := ""
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num += string(c)
		case c == 'T' || c == 't':
			afterT = true
		case c == 'Y' || c == 'y':
			n, err := periodNum(num)
			if err != nil {
				return 0, err
			}
			total += time.Duration(n) * 365 * 24 * time.Hour
			num = ""
		case c == 'D' || c == 'd':
			n, err := periodNum(num)
			if err != nil {
				return 0, err
			}
			total += time.Duration(n) * 24 * time.Hour
			num = ""
		case c == 'H' || c == 'h':
			n, err := periodNum(num)
			if err != nil {
				return 0, err
			}
			total += time.Duration(n) * time.Hour
			num = ""
		case c == 'M' || c == 'm':
			n, err := periodNum(num)
			if err != nil {
				return 0, err
			}
			if afterT {
				total += time.Duration(n) * time.Minute
			} else {
				total += time.Duration(n) * 30 * 24 * time.Hour
			}
			num = ""
		case c == 'S' || c == 's':
			n, err := periodNum(num)
			if err != nil {
				return 0, err
			}
			total += time.Duration(n) * time.Second
			num = ""
		default:
			return 0, fmt.Errorf("invalid period expression %q", "P"+s)
		}
	}
	return total, nil
}

func periodNum(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("period expression missing a number before a unit letter")
	}
	return strconv.Atoi(s)
}

var octetStringRawCharset = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// parseOctetStringValue parses either "< hex digits >" (an even count)
// or a raw quoted/unquoted string.
func parseOctetStringValue(tok string, quoted bool) (ipp.Value, error) {
	if !quoted && strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
		hexDigits := strings.TrimSpace(tok[1 : len(tok)-1])
		if len(hexDigits)%2 != 0 {
			return nil, fmt.Errorf("octetString hex literal %q has an odd digit count", tok)
		}
		b, err := hex.DecodeString(hexDigits)
		if err != nil {
			return nil, fmt.Errorf("invalid octetString hex literal %q: %w", tok, err)
		}
		return ipp.Binary(b), nil
	}
	if !quoted && !octetStringRawCharset.MatchString(tok) {
		return nil, fmt.Errorf("unquoted octetString %q uses characters outside [A-Za-z0-9_-]", tok)
	}
	return ipp.Binary([]byte(tok)), nil
}

// parseTextWithLangValue parses a "lang:text" value for the
// *-with-language syntaxes. The data-file grammar has no canonical
// spelling for this variant, so this package settles on a single
// colon-separated convention (see DESIGN.md), used identically for
// reading and writing.
func parseTextWithLangValue(tok string) (ipp.Value, error) {
	lang, text, ok := strings.Cut(tok, ":")
	if !ok {
		return nil, fmt.Errorf("textWithLanguage/nameWithLanguage value %q must be \"lang:text\"", tok)
	}
	return ipp.TextWithLang{Lang: lang, Text: text}, nil
}
