/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * requested-attributes expansion tests
 */
package ipp

import "testing"

func TestExpandRequestedAttrsGroupName(t *testing.T) {
	names, all := ExpandRequestedAttrs([]string{"job-description"})
	if all {
		t.Fatal("all = true for a single group name")
	}
	found := false
	for _, n := range names {
		if n == "job-state" {
			found = true
		}
	}
	if !found {
		t.Errorf("ExpandRequestedAttrs(job-description) = %v, missing job-state", names)
	}
}

func TestExpandRequestedAttrsAll(t *testing.T) {
	names, all := ExpandRequestedAttrs([]string{"job-description", "all"})
	if !all {
		t.Error("all = false when \"all\" present among tokens")
	}
	if names != nil {
		t.Errorf("names = %v, want nil when all=true", names)
	}
}

func TestExpandRequestedAttrsDedup(t *testing.T) {
	names, _ := ExpandRequestedAttrs([]string{"job-id", "job-id", "job-name"})
	if len(names) != 2 {
		t.Fatalf("ExpandRequestedAttrs dedup failed: %v", names)
	}
}

func TestExpandRequestedAttrsLiteralAndGroupMixed(t *testing.T) {
	names, all := ExpandRequestedAttrs([]string{"printer-name", "job-template"})
	if all {
		t.Fatal("all = true, want false")
	}
	hasLiteral, hasGroup := false, false
	for _, n := range names {
		if n == "printer-name" {
			hasLiteral = true
		}
		if n == "copies" {
			hasGroup = true
		}
	}
	if !hasLiteral || !hasGroup {
		t.Errorf("names = %v, want both printer-name and copies (from job-template)", names)
	}
}

func TestDefaultRequestedAttrs(t *testing.T) {
	names, ok := DefaultRequestedAttrs(OpGetJobs)
	if !ok || len(names) != 2 || names[0] != "job-id" || names[1] != "job-uri" {
		t.Fatalf("DefaultRequestedAttrs(Get-Jobs) = %v, %v, want [job-id job-uri], true", names, ok)
	}

	names, ok = DefaultRequestedAttrs(OpGetDocuments)
	if !ok || len(names) != 1 || names[0] != "document-number" {
		t.Fatalf("DefaultRequestedAttrs(Get-Documents) = %v, %v, want [document-number], true", names, ok)
	}

	_, ok = DefaultRequestedAttrs(OpPrintJob)
	if ok {
		t.Error("DefaultRequestedAttrs(Print-Job) = true, want false (no special default)")
	}
}

func TestRequestedAttrsAbsentUsesOperationDefault(t *testing.T) {
	req := NewRequest(DefaultVersion, OpGetJobs, 1)
	names, all := RequestedAttrs(req)
	if all || len(names) != 2 {
		t.Fatalf("RequestedAttrs(Get-Jobs, absent) = %v, %v, want [job-id job-uri], false", names, all)
	}

	req = NewRequest(DefaultVersion, OpGetPrinterAttributes, 1)
	names, all = RequestedAttrs(req)
	if !all || names != nil {
		t.Fatalf("RequestedAttrs(Get-Printer-Attributes, absent) = %v, %v, want nil, true", names, all)
	}
}

func TestRequestedAttrsAllKeyword(t *testing.T) {
	req := NewRequest(DefaultVersion, OpGetJobs, 1)
	req.AddAttr(TagOperationGroup,
		MakeAttr("requested-attributes", TagKeyword, String("all")))

	names, all := RequestedAttrs(req)
	if !all || names != nil {
		t.Fatalf("RequestedAttrs(all) = %v, %v, want nil, true", names, all)
	}
}

func TestRequestedAttrsExpandsTokens(t *testing.T) {
	req := NewRequest(DefaultVersion, OpGetPrinterAttributes, 1)
	req.AddAttr(TagOperationGroup,
		MakeAttr("requested-attributes", TagKeyword,
			String("printer-description"), String("media-col-database")))

	names, all := RequestedAttrs(req)
	if all {
		t.Fatal("all = true, want false")
	}
	hasExpanded, hasLiteral := false, false
	for _, n := range names {
		if n == "printer-state" {
			hasExpanded = true
		}
		if n == "media-col-database" {
			hasLiteral = true
		}
	}
	if !hasExpanded || !hasLiteral {
		t.Errorf("names = %v, want printer-state (expanded) and media-col-database (literal)", names)
	}
}
