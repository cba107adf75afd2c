/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Enum registry tests
 */
package ipp

import "testing"

func TestEnumNameValueRoundTrip(t *testing.T) {
	for attr, table := range enumNames {
		for value, name := range table {
			got := EnumName(attr, int32(value))
			if got != name {
				t.Errorf("EnumName(%q, %d) = %q, want %q", attr, value, got, name)
			}
			v, ok := EnumValue(attr, name)
			if !ok || v != int32(value) {
				t.Errorf("EnumValue(%q, %q) = %d, %v, want %d, true", attr, name, v, ok, value)
			}
		}
	}
}

func TestEnumValueCaseInsensitive(t *testing.T) {
	v, ok := EnumValue("job-state", "PROCESSING")
	if !ok || v != 5 {
		t.Errorf("EnumValue(job-state, PROCESSING) = %d, %v, want 5, true", v, ok)
	}
}

func TestEnumNameUnknownAttrOrValue(t *testing.T) {
	if got := EnumName("not-an-enum-attr", 3); got != "" {
		t.Errorf("EnumName(unknown attr) = %q, want empty", got)
	}
	if got := EnumName("job-state", 999); got != "" {
		t.Errorf("EnumName(job-state, 999) = %q, want empty", got)
	}
	if _, ok := EnumValue("not-an-enum-attr", "anything"); ok {
		t.Error("EnumValue(unknown attr) = true, want false")
	}
}

func TestEnumDisjointVendorRange(t *testing.T) {
	// finishings draws from both a low base range and the
	// 0x40000000 vendor-specific range folded into one table.
	if got := EnumName("finishings", 0x40000000); got != "vendor-specific-finishing" {
		t.Errorf("EnumName(finishings, 0x40000000) = %q, want vendor-specific-finishing", got)
	}
	if got := EnumName("finishings", 3); got != "none" {
		t.Errorf("EnumName(finishings, 3) = %q, want none", got)
	}
}
