/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Writer tests, including the parse -> write -> re-parse round trip
 */
package ippfile

import (
	"strings"
	"testing"

	"github.com/OpenPrinting/cups-sub002/ipp"
)

func TestWriterEmitsGroupOncePerRun(t *testing.T) {
	m := &ipp.Message{}
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("copies", ipp.TagInteger, ipp.Integer(1)))
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("job-priority", ipp.TagInteger, ipp.Integer(50)))

	var buf strings.Builder
	w := NewWriter(&buf, true)
	if err := w.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}

	out := buf.String()
	if strings.Count(out, "GROUP") != 1 {
		t.Errorf("GROUP directive emitted %d times for one contiguous group, want 1:\n%s", strings.Count(out, "GROUP"), out)
	}
}

func TestWriterWithoutGroupsOmitsDirective(t *testing.T) {
	m := &ipp.Message{}
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("copies", ipp.TagInteger, ipp.Integer(1)))

	var buf strings.Builder
	w := NewWriter(&buf, false)
	if err := w.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}
	if strings.Contains(buf.String(), "GROUP") {
		t.Errorf("GROUP directive emitted with withGroups=false:\n%s", buf.String())
	}
}

func TestWriterCollectionIndent(t *testing.T) {
	m := &ipp.Message{}
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttrCollection("media-col",
		ipp.MakeAttr("media-type", ipp.TagKeyword, ipp.String("stationery")),
	))

	var buf strings.Builder
	w := NewWriter(&buf, false)
	if err := w.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ATTR collection media-col {") {
		t.Errorf("missing collection header:\n%s", out)
	}
	if !strings.Contains(out, "    MEMBER keyword media-type") {
		t.Errorf("missing indented MEMBER line:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "}") {
		t.Errorf("missing closing brace:\n%s", out)
	}
}

// TestParseWriteReparseRoundTrip is the text-codec round-trip invariant:
// parsing a data file, writing it back out, and re-parsing it must
// produce an equal message.
func TestParseWriteReparseRoundTrip(t *testing.T) {
	data := `GROUP job-attributes-tag
ATTR integer copies 3
ATTR keyword media a4
ATTR collection media-col {
    MEMBER integer x-dimension 21000
    MEMBER integer y-dimension 29700
}
ATTR integer page-ranges 1,3,5
`
	r1 := NewReader(nil)
	m1, err := r1.ReadBytes("orig.ipp", []byte(data))
	if err != nil {
		t.Fatalf("first ReadBytes: %s", err)
	}

	var buf strings.Builder
	w := NewWriter(&buf, true)
	if err := w.WriteMessage(m1); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}

	r2 := NewReader(nil)
	m2, err := r2.ReadBytes("rewritten.ipp", []byte(buf.String()))
	if err != nil {
		t.Fatalf("second ReadBytes:\n%s\nerror: %s", buf.String(), err)
	}

	if !m1.Equal(m2) {
		t.Errorf("round trip mismatch.\nfirst parse groups: %+v\nrewritten text:\n%s\nsecond parse groups: %+v",
			m1.Groups, buf.String(), m2.Groups)
	}
}

func TestWriterHonorsFilter(t *testing.T) {
	m := &ipp.Message{}
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("copies", ipp.TagInteger, ipp.Integer(1)))
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("media", ipp.TagKeyword, ipp.String("a4")))

	var buf strings.Builder
	w := NewWriter(&buf, false)
	w.Filter = func(name string) bool { return name != "copies" }
	if err := w.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}

	out := buf.String()
	if strings.Contains(out, "copies") {
		t.Errorf("filtered-out attribute emitted:\n%s", out)
	}
	if !strings.Contains(out, "media") {
		t.Errorf("non-filtered attribute missing:\n%s", out)
	}
}

func TestWriterQuotesTextValues(t *testing.T) {
	m := &ipp.Message{}
	m.AddAttr(ipp.TagJobGroup, ipp.MakeAttr("job-name", ipp.TagName, ipp.String(`a "quoted" name`)))

	var buf strings.Builder
	w := NewWriter(&buf, false)
	if err := w.WriteMessage(m); err != nil {
		t.Fatalf("WriteMessage: %s", err)
	}
	if !strings.Contains(buf.String(), `\"quoted\"`) {
		t.Errorf("quotes not escaped in output:\n%s", buf.String())
	}
}
