/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Reader (data-file parser) tests
 */
package ippfile

import (
	"strings"
	"testing"

	"github.com/OpenPrinting/cups-sub002/ipp"
)

func TestReaderDefineThenAttr(t *testing.T) {
	data := `DEFINE size "iso_a4_210x297mm"
ATTR keyword media $size
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}

	attr, _, ok := msg.FindAttr("media")
	if !ok {
		t.Fatal("media attribute not found")
	}
	if len(attr.Values) != 1 || attr.Values[0].V.String() != "iso_a4_210x297mm" {
		t.Fatalf("media = %+v, want one value iso_a4_210x297mm", attr.Values)
	}
}

func TestReaderDefineDefaultDoesNotOverwrite(t *testing.T) {
	data := `DEFINE size "a4"
DEFINE-DEFAULT size "letter"
ATTR keyword media $size
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	attr, _, _ := msg.FindAttr("media")
	if attr.Values[0].V.String() != "a4" {
		t.Errorf("media = %q, want a4 (DEFINE-DEFAULT must not overwrite)", attr.Values[0].V.String())
	}
}

func TestReaderMultiValuedAttribute(t *testing.T) {
	data := `ATTR integer page-ranges 1,3,5`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	attr, _, _ := msg.FindAttr("page-ranges")
	if len(attr.Values) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(attr.Values))
	}
}

func TestReaderStrayTrailingCommaRejected(t *testing.T) {
	data := `ATTR integer page-ranges 1,3,`
	r := NewReader(nil)
	_, err := r.ReadBytes("test.ipp", []byte(data))
	if err == nil {
		t.Fatal("ReadBytes with a stray trailing comma succeeded, want error")
	}
}

func TestReaderGroupDirective(t *testing.T) {
	data := `GROUP job-attributes-tag
ATTR integer copies 3
GROUP printer-attributes-tag
ATTR keyword printer-state-reasons none
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	if len(msg.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(msg.Groups))
	}
	if msg.Groups[0].Tag != ipp.TagJobGroup || msg.Groups[1].Tag != ipp.TagPrinterGroup {
		t.Errorf("group tags = %s, %s", msg.Groups[0].Tag, msg.Groups[1].Tag)
	}
}

func TestReaderGroupReopenedOnRepeat(t *testing.T) {
	data := `GROUP job-attributes-tag
ATTR integer copies 3
GROUP printer-attributes-tag
ATTR keyword printer-state-reasons none
GROUP job-attributes-tag
ATTR integer job-priority 50
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	if len(msg.Groups) != 3 {
		t.Fatalf("len(Groups) = %d, want 3 (repeated GROUP reopens a fresh group)", len(msg.Groups))
	}
}

func TestReaderAttrIfDefined(t *testing.T) {
	data := `DEFINE flag yes
ATTR-IF-DEFINED flag integer present 1
ATTR-IF-DEFINED missing integer absent 1
ATTR-IF-NOT-DEFINED missing integer alsopresent 1
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	if _, _, ok := msg.FindAttr("present"); !ok {
		t.Error("present attribute (ATTR-IF-DEFINED on a defined var) missing")
	}
	if _, _, ok := msg.FindAttr("absent"); ok {
		t.Error("absent attribute (ATTR-IF-DEFINED on an undefined var) unexpectedly present")
	}
	if _, _, ok := msg.FindAttr("alsopresent"); !ok {
		t.Error("alsopresent attribute (ATTR-IF-NOT-DEFINED on an undefined var) missing")
	}
}

func TestReaderCollectionWithMembers(t *testing.T) {
	data := `ATTR collection media-col {
    MEMBER integer x-dimension 21000
    MEMBER integer y-dimension 29700
}
`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	attr, _, ok := msg.FindAttr("media-col")
	if !ok {
		t.Fatal("media-col not found")
	}
	col := attr.Values[0].V.(ipp.Collection)
	if len(col) != 2 || col[0].Name != "x-dimension" || col[1].Name != "y-dimension" {
		t.Fatalf("media-col members = %+v", col)
	}
}

func TestReaderFilterRejectsAttribute(t *testing.T) {
	data := `ATTR integer copies 3
ATTR keyword media a4
`
	r := NewReader(nil)
	r.Filter = func(name string) bool { return name != "copies" }
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	if _, _, ok := msg.FindAttr("copies"); ok {
		t.Error("filtered-out attribute copies is present")
	}
	if _, _, ok := msg.FindAttr("media"); !ok {
		t.Error("non-filtered attribute media is missing")
	}
}

func TestReaderTokenFuncHandlesUnknownDirective(t *testing.T) {
	data := `CUSTOM-DIRECTIVE hello`
	r := NewReader(nil)
	var seen string
	r.TokenFunc = func(rd *Reader, directive string) (bool, error) {
		if directive != "CUSTOM-DIRECTIVE" {
			return false, nil
		}
		word, err := rd.Next(false)
		if err != nil {
			return false, err
		}
		seen = word
		return true, nil
	}
	_, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	if seen != "hello" {
		t.Errorf("TokenFunc saw %q, want hello", seen)
	}
}

func TestReaderUnknownDirectiveIsError(t *testing.T) {
	r := NewReader(nil)
	_, err := r.ReadBytes("test.ipp", []byte(`NOT-A-REAL-DIRECTIVE foo`))
	if err == nil {
		t.Fatal("ReadBytes with an unhandled directive succeeded, want error")
	}
}

func TestReaderOnErrorContinues(t *testing.T) {
	data := `ATTR integer copies notanumber
ATTR integer job-priority 50
`
	r := NewReader(nil)
	var errs []string
	r.OnError = func(file string, line int, err error) bool {
		errs = append(errs, err.Error())
		return true
	}
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes (with continuing OnError): %s", err)
	}
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if _, _, ok := msg.FindAttr("job-priority"); !ok {
		t.Error("parsing did not continue past the reported error")
	}
}

func TestReaderMemberOutsideCollectionIsError(t *testing.T) {
	r := NewReader(nil)
	_, err := r.ReadBytes("test.ipp", []byte(`MEMBER integer x 1`))
	if err == nil {
		t.Fatal("top-level MEMBER succeeded, want error")
	}
}

func TestReaderNestedReaderInheritsParentVars(t *testing.T) {
	parent := NewReader(nil)
	parent.ReadBytes("parent.ipp", []byte(`DEFINE size a4`))

	child := NewReader(parent)
	msg, err := child.ReadBytes("child.ipp", []byte(`ATTR keyword media $size`))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	attr, _, ok := msg.FindAttr("media")
	if !ok || attr.Values[0].V.String() != "a4" {
		t.Errorf("child did not inherit parent's size variable: %+v, %v", attr, ok)
	}
}

func TestReaderDuplicateNameInGroupIsError(t *testing.T) {
	data := `ATTR integer copies 1
ATTR integer copies 2
`
	r := NewReader(nil)
	_, err := r.ReadBytes("test.ipp", []byte(data))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("ReadBytes with duplicate attribute name = %v, want a duplicate-name error", err)
	}
}

func TestReaderOutOfBandValueSyntax(t *testing.T) {
	data := `ATTR no-value job-hold-until`
	r := NewReader(nil)
	msg, err := r.ReadBytes("test.ipp", []byte(data))
	if err != nil {
		t.Fatalf("ReadBytes: %s", err)
	}
	attr, _, ok := msg.FindAttr("job-hold-until")
	if !ok || attr.Values[0].V.Type() != ipp.TypeVoid {
		t.Fatalf("job-hold-until = %+v, %v, want out-of-band void value", attr, ok)
	}
}
