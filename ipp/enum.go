/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Enum value registries, keyed by attribute name
 *
 * Unlike Tag, Op and Status, a TagEnum value's symbolic name depends on
 * which attribute it belongs to: job-state 5 is "processing", but
 * orientation-requested 5 is "landscape". So the registry here is
 * indexed first by attribute name, then by integer value.
 */
package ipp

import "strings"

// enumNames holds the known attribute-name -> (value -> symbolic name)
// tables. Two attributes, document-state and finishings, each draw from
// two disjoint numeric ranges (a base range starting low, and a vendor
// range starting at 0x40000000); both ranges are folded into the same
// map per attribute, since the numeric value alone disambiguates.
var enumNames = map[string]map[int]string{
	"job-state": {
		3: "pending",
		4: "pending-held",
		5: "processing",
		6: "processing-stopped",
		7: "canceled",
		8: "aborted",
		9: "completed",
	},
	"printer-state": {
		3: "idle",
		4: "processing",
		5: "stopped",
	},
	"system-state": {
		3: "idle",
		4: "processing",
		5: "stopped",
	},
	"resource-state": {
		3: "pending",
		4: "available",
		5: "installed",
		6: "canceled",
		7: "aborted",
	},
	"document-state": {
		3:          "pending",
		5:          "processing",
		6:          "processing-stopped",
		7:          "canceled",
		8:          "aborted",
		9:          "completed",
		0x40000000: "vendor-specific-document-state",
	},
	"orientation-requested": {
		3: "portrait",
		4: "landscape",
		5: "reverse-landscape",
		6: "reverse-portrait",
		7: "none",
	},
	"print-quality": {
		3: "draft",
		4: "normal",
		5: "high",
	},
	"finishings": {
		3:          "none",
		4:          "staple",
		5:          "punch",
		6:          "cover",
		7:          "bind",
		8:          "saddle-stitch",
		9:          "edge-stitch",
		10:         "fold",
		11:         "trim",
		12:         "bale",
		13:         "booklet-maker",
		14:         "jog-offset",
		20:         "staple-top-left",
		21:         "staple-bottom-left",
		22:         "staple-top-right",
		23:         "staple-bottom-right",
		24:         "edge-stitch-left",
		25:         "edge-stitch-top",
		26:         "edge-stitch-right",
		27:         "edge-stitch-bottom",
		28:         "staple-dual-left",
		29:         "staple-dual-top",
		30:         "staple-dual-right",
		31:         "staple-dual-bottom",
		0x40000000: "vendor-specific-finishing",
	},
	"operations-supported": nil, // values are Op codes, not a local enum
}

// EnumName returns the symbolic name of value for the named attribute,
// or "" if attr isn't a registered enum attribute or value isn't in its
// table (the caller falls back to a bare integer in that case).
func EnumName(attr string, value int32) string {
	table := enumNames[attr]
	if table == nil {
		return ""
	}
	return table[int(value)]
}

// EnumValue is the reverse of EnumName: the symbolic name for the named
// attribute maps back to its integer value, case-insensitively.
func EnumValue(attr string, name string) (value int32, ok bool) {
	table := enumNames[attr]
	if table == nil {
		return 0, false
	}
	lower := strings.ToLower(name)
	for v, n := range table {
		if strings.ToLower(n) == lower {
			return int32(v), true
		}
	}
	return 0, false
}
