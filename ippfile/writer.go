/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Data-file emitter: the write side of the ATTR/MEMBER/GROUP grammar
 */
package ippfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenPrinting/cups-sub002/ipp"
)

// Writer emits a Message as a data file the Reader can parse back.
type Writer struct {
	// Filter is the same attribute-name predicate the Reader honors:
	// top-level attributes it rejects are not emitted. Collection
	// members are not filtered; the predicate applies to whole
	// attributes, matching the read side.
	Filter Filter

	w          io.Writer
	withGroups bool
	haveGroup  bool
	lastGroup  ipp.Tag
}

// NewWriter creates a Writer. withGroups selects whether GROUP
// directives are emitted at all.
func NewWriter(w io.Writer, withGroups bool) *Writer {
	return &Writer{w: w, withGroups: withGroups}
}

// WriteMessage emits every group of m in wire order.
func (wr *Writer) WriteMessage(m *ipp.Message) error {
	for _, g := range m.Groups {
		if err := wr.WriteGroup(g); err != nil {
			return err
		}
	}
	return nil
}

// WriteGroup emits one group: a GROUP directive (if requested and the
// tag differs from the currently running group) followed by its
// attributes.
func (wr *Writer) WriteGroup(g ipp.Group) error {
	if wr.withGroups && (!wr.haveGroup || wr.lastGroup != g.Tag) {
		if _, err := fmt.Fprintf(wr.w, "GROUP %s\n", g.Tag); err != nil {
			return err
		}
		wr.lastGroup = g.Tag
		wr.haveGroup = true
	}
	for _, attr := range g.Attrs {
		if wr.Filter != nil && !wr.Filter(attr.Name) {
			continue
		}
		if err := wr.WriteAttribute(attr, 0); err != nil {
			return err
		}
	}
	return nil
}

// WriteAttribute emits one attribute as an ATTR line (or a MEMBER
// line when depth > 0, i.e. nested inside a collection), recursing
// through nested collections with 4-space-per-level indent.
func (wr *Writer) WriteAttribute(attr ipp.Attribute, depth int) error {
	if len(attr.Values) == 0 {
		return fmt.Errorf("ippfile: attribute %q has no values", attr.Name)
	}

	pad := strings.Repeat("    ", depth)
	directive := "ATTR"
	if depth > 0 {
		directive = "MEMBER"
	}
	tag := attr.Values[0].T

	if tag == ipp.TagBeginCollection {
		if _, err := fmt.Fprintf(wr.w, "%s%s collection %s {\n", pad, directive, attr.Name); err != nil {
			return err
		}
		for i, v := range attr.Values {
			if i > 0 {
				if _, err := fmt.Fprintf(wr.w, "%s}, {\n", pad); err != nil {
					return err
				}
			}
			col, _ := v.V.(ipp.Collection)
			for _, member := range ipp.Attributes(col) {
				if err := wr.WriteAttribute(member, depth+1); err != nil {
					return err
				}
			}
		}
		_, err := fmt.Fprintf(wr.w, "%s}\n", pad)
		return err
	}

	if tag.Type() == ipp.TypeVoid {
		_, err := fmt.Fprintf(wr.w, "%s%s %s %s\n", pad, directive, tagSyntaxName(tag), attr.Name)
		return err
	}

	if _, err := fmt.Fprintf(wr.w, "%s%s %s %s ", pad, directive, tagSyntaxName(tag), attr.Name); err != nil {
		return err
	}
	for i, v := range attr.Values {
		if i > 0 {
			if _, err := io.WriteString(wr.w, ","); err != nil {
				return err
			}
		}
		if err := wr.writeValueText(tag, v.V); err != nil {
			return err
		}
	}
	_, err := io.WriteString(wr.w, "\n")
	return err
}

func (wr *Writer) writeValueText(tag ipp.Tag, v ipp.Value) error {
	switch tag.Type() {
	case ipp.TypeInteger:
		_, err := io.WriteString(wr.w, v.String())
		return err
	case ipp.TypeBoolean:
		_, err := io.WriteString(wr.w, v.String())
		return err
	case ipp.TypeRange:
		_, err := io.WriteString(wr.w, v.String())
		return err
	case ipp.TypeResolution:
		_, err := io.WriteString(wr.w, v.String())
		return err
	case ipp.TypeDateTime:
		return wr.writeDateTime(v.(ipp.Time))
	case ipp.TypeTextWithLang:
		tl := v.(ipp.TextWithLang)
		_, err := io.WriteString(wr.w, quoteString(tl.Lang+":"+tl.Text))
		return err
	case ipp.TypeBinary:
		b := v.(ipp.Binary)
		_, err := fmt.Fprintf(wr.w, "<%x>", []byte(b))
		return err
	default:
		_, err := io.WriteString(wr.w, quoteString(v.String()))
		return err
	}
}

func (wr *Writer) writeDateTime(t ipp.Time) error {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	deci := t.Nanosecond() / 100000000
	_, zone := t.Zone()
	sign := byte('+')
	if zone < 0 {
		zone = -zone
		sign = '-'
	}
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%d%c%02d%02d",
		year, int(month), day, hour, min, sec, deci, sign, zone/3600, (zone/60)%60)
	_, err := io.WriteString(wr.w, s)
	return err
}

// quoteString re-quotes s, escaping only backslash and double-quote.
func quoteString(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
