/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Pretty-printing of messages, for logs and debugging
 */
package ipp

import (
	"bytes"
	"fmt"
	"io"
)

// Formatter accumulates a human-readable rendering of IPP messages,
// groups and attributes. It's a thin wrapper around a bytes.Buffer with
// indent tracking, built for the common case of formatting a whole
// request or response at once, not as a general-purpose log writer.
type Formatter struct {
	buf    bytes.Buffer
	indent string
}

// NewFormatter creates an empty Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Reset discards accumulated output, keeping the current indent.
func (f *Formatter) Reset() { f.buf.Reset() }

// SetIndent sets the string prepended to every line (e.g. "    ").
func (f *Formatter) SetIndent(indent string) { f.indent = indent }

// Bytes returns the accumulated output.
func (f *Formatter) Bytes() []byte { return f.buf.Bytes() }

// String returns the accumulated output.
func (f *Formatter) String() string { return f.buf.String() }

// WriteTo writes the accumulated output to w.
func (f *Formatter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.buf.Bytes())
	return int64(n), err
}

// Printf appends a formatted, indented line.
func (f *Formatter) Printf(format string, args ...interface{}) {
	f.buf.WriteString(f.indent)
	fmt.Fprintf(&f.buf, format, args...)
	f.buf.WriteByte('\n')
}

// FmtRequest formats m as a request: version, operation name, request
// id, then its groups.
func (f *Formatter) FmtRequest(m *Message) {
	f.Printf("IPP/%s, request id %d", m.Version, m.RequestID)
	f.Printf("  %s", Op(m.Code))
	f.FmtGroups(m.Groups)
}

// FmtResponse formats m as a response: version, status name, request
// id, then its groups.
func (f *Formatter) FmtResponse(m *Message) {
	f.Printf("IPP/%s, request id %d", m.Version, m.RequestID)
	f.Printf("  %s", Status(m.Code))
	f.FmtGroups(m.Groups)
}

// FmtGroups formats a whole Groups slice, one group at a time, in wire
// order (a group tag repeated after another group prints twice, the
// same way the decoder keeps such groups separate).
func (f *Formatter) FmtGroups(groups Groups) {
	for _, g := range groups {
		f.FmtGroup(g)
	}
}

// FmtGroup formats one group: its tag as a header line, then its
// attributes indented one level deeper.
func (f *Formatter) FmtGroup(g Group) {
	f.Printf("GROUP %s", g.Tag)
	saved := f.indent
	f.indent += "    "
	f.FmtAttributes(g.Attrs)
	f.indent = saved
}

// FmtAttributes formats a whole Attributes slice.
func (f *Formatter) FmtAttributes(attrs Attributes) {
	for _, attr := range attrs {
		f.FmtAttribute(attr)
	}
}

// FmtAttribute formats one attribute as "tag name = values", resolving
// enum values to their symbolic name via EnumName and decoding operation
// ids via Op.String when the attribute is operations-supported.
func (f *Formatter) FmtAttribute(attr Attribute) {
	if len(attr.Values) == 0 {
		f.Printf("%s", attr.Name)
		return
	}

	tag := attr.Values[0].T
	f.Printf("%s %s = %s", tag, attr.Name, f.fmtValues(attr.Name, attr.Values))
}

func (f *Formatter) fmtValues(attrName string, values Values) string {
	var buf bytes.Buffer
	for i, v := range values {
		if i != 0 {
			buf.WriteByte(',')
		}
		if v.T == TagEnum {
			if iv, ok := v.V.(Integer); ok {
				if attrName == "operations-supported" {
					buf.WriteString(Op(iv).String())
					continue
				}
				if name := EnumName(attrName, int32(iv)); name != "" {
					buf.WriteString(name)
					continue
				}
			}
		}
		buf.WriteString(v.V.String())
	}
	return buf.String()
}
