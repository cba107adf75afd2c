/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * IPP messages
 */
package ipp

import "fmt"

// Code carries either an Op (request) or a Status (response) on the
// wire; both are 16-bit.
type Code uint16

// Version is a packed (major, minor) protocol version.
type Version uint16

// DefaultVersion is the version new messages should claim absent a
// specific requirement: IPP/2.0.
const DefaultVersion Version = 0x0200

// MakeVersion packs major.minor into a Version.
func MakeVersion(major, minor uint8) Version {
	return Version(major)<<8 | Version(minor)
}

// Major returns the major part of v.
func (v Version) Major() uint8 { return uint8(v >> 8) }

// Minor returns the minor part of v.
func (v Version) Minor() uint8 { return uint8(v) }

// String renders v as "major.minor".
func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major(), v.Minor()) }

// Message is a single IPP request or response: a version, either an
// operation or a status Code, a request-id, and an ordered sequence of
// attribute Groups.
//
// Groups is the sole representation of a message's attributes:
// repeated groups with the same tag, separated by attributes of
// another group, are preserved rather than coalesced, so there is no
// tag-indexed shortcut here the way there might be in a simpler
// design.
type Message struct {
	Version   Version
	Code      Code
	RequestID uint32
	Groups    Groups

	le LastError
}

// NewRequest creates an empty request message.
func NewRequest(v Version, op Op, id uint32) *Message {
	return &Message{Version: v, Code: Code(op), RequestID: id}
}

// NewResponse creates an empty response for the given request, copying
// version and request-id and leaving Groups empty for the caller to
// fill in.
func NewResponse(req *Message, status Status) *Message {
	return &Message{Version: req.Version, Code: Code(status), RequestID: req.RequestID}
}

// Reset restores m to its initial, empty state.
func (m *Message) Reset() {
	*m = Message{}
}

// Last returns the handle recording m's most recent failure.
func (m *Message) Last() *LastError { return &m.le }

// Equal checks byte-exact equality of header and groups.
func (m *Message) Equal(m2 *Message) bool {
	return m.Version == m2.Version && m.Code == m2.Code &&
		m.RequestID == m2.RequestID && m.Groups.Equal(m2.Groups)
}

// AddAttr appends attr to the currently open Group, opening a new one
// if none is open yet or if the running group has a different tag. A
// group reopened with the same tag after another group stays a fresh
// Group rather than merging into the earlier one, so AddAttr only
// reuses the group that is open *right now*.
func (m *Message) AddAttr(tag Tag, attr Attribute) error {
	if _, dup := m.lastGroup(tag).Attrs.ByName(attr.Name); dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, attr.Name)
	}

	if len(m.Groups) == 0 || m.Groups[len(m.Groups)-1].Tag != tag {
		m.Groups.Add(Group{Tag: tag})
	}
	m.Groups[len(m.Groups)-1].Add(attr)
	return nil
}

// lastGroup returns the currently open group if its tag matches, or
// the zero Group otherwise; used only to check for duplicate names
// within the group AddAttr is about to extend.
func (m *Message) lastGroup(tag Tag) Group {
	if len(m.Groups) == 0 {
		return Group{}
	}
	last := m.Groups[len(m.Groups)-1]
	if last.Tag == tag {
		return last
	}
	return Group{}
}

// FindAttr returns the first attribute named name in any group,
// searching groups in wire order.
func (m *Message) FindAttr(name string) (attr Attribute, group Tag, ok bool) {
	for _, g := range m.Groups {
		if a, found := g.Attrs.ByName(name); found {
			return a, g.Tag, true
		}
	}
	return Attribute{}, TagZero, false
}

// DeleteAttr removes the first attribute named name from any group.
func (m *Message) DeleteAttr(name string) bool {
	for i := range m.Groups {
		if m.Groups[i].Attrs.DeleteByName(name) {
			return true
		}
	}
	return false
}

// WireLen returns the number of bytes the binary encoder would emit
// for m: header, then each group tag byte plus its attribute entries,
// then the end-of-attributes byte.
// It does not count any transport/HTTP framing around the message.
func (m *Message) WireLen() int {
	n := 2 + 2 + 4 // version + code + request-id
	for _, g := range m.Groups {
		n++ // group tag
		for _, attr := range g.Attrs {
			if len(attr.Values) > 0 {
				// Only the first value's entry carries the name.
				n += len(attr.Name) + attr.Values.WireLen()
			}
		}
	}
	n++ // end-of-attributes tag
	return n
}
