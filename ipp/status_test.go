/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Status code tests
 */
package ipp

import "testing"

func TestStatusNameRoundTrip(t *testing.T) {
	for status, name := range statusNames {
		got := status.String()
		if got != name {
			t.Errorf("Status(0x%x).String() = %q, want %q", uint16(status), got, name)
		}
		back, ok := StatusByName(name)
		if !ok || back != status {
			t.Errorf("StatusByName(%q) = 0x%x, %v, want 0x%x, true", name, uint16(back), ok, uint16(status))
		}
	}
}

func TestStatusHexFallback(t *testing.T) {
	status := Status(0x09ab)
	name := status.String()
	if name != "0x09ab" {
		t.Fatalf("Status(0x09ab).String() = %q, want \"0x09ab\"", name)
	}
	got, ok := StatusByName(name)
	if !ok || got != status {
		t.Errorf("StatusByName(%q) = 0x%x, %v, want 0x09ab, true", name, uint16(got), ok)
	}
}

func TestStatusClassPredicates(t *testing.T) {
	tests := []struct {
		status                        Status
		success, clientErr, serverErr bool
	}{
		{StatusOk, true, false, false},
		{StatusOkConflicting, true, false, false},
		{StatusErrorNotFound, false, true, false},
		{StatusErrorBusy, false, false, true},
		{StatusRedirectionOtherSite, false, false, false},
	}
	for _, test := range tests {
		if got := test.status.IsSuccess(); got != test.success {
			t.Errorf("%s.IsSuccess() = %v, want %v", test.status, got, test.success)
		}
		if got := test.status.IsClientError(); got != test.clientErr {
			t.Errorf("%s.IsClientError() = %v, want %v", test.status, got, test.clientErr)
		}
		if got := test.status.IsServerError(); got != test.serverErr {
			t.Errorf("%s.IsServerError() = %v, want %v", test.status, got, test.serverErr)
		}
	}
}

func TestInternalStatusCodesDoNotCollideWithRFC(t *testing.T) {
	// Internal-only codes (spec 4.A) live at 0x1000+ specifically so they
	// can never be confused with a real RFC 8011 / CUPS wire status.
	for _, s := range []Status{StatusInternalCodecError, StatusInternalValidationError, StatusInternalCancelled} {
		if s < 0x1000 {
			t.Errorf("internal status %s = 0x%x, want >= 0x1000", s, uint16(s))
		}
	}
}
