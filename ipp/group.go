/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Attribute groups
 */
package ipp

// Group is a contiguous, tagged run of attributes: one "GROUP" section
// on the wire. Messages keep an ordered slice of these rather than one
// bucket per tag, because a group tag may legitimately appear more than
// once in the same message and the decoder must not coalesce separate
// occurrences into one.
type Group struct {
	Tag   Tag
	Attrs Attributes
}

// Groups is an ordered sequence of Group, the entire attribute section
// of a Message.
type Groups []Group

// Add appends attr to g.
func (g *Group) Add(attr Attribute) { g.Attrs.Add(attr) }

// Equal checks byte-exact equality of tag and attributes.
func (g Group) Equal(g2 Group) bool {
	return g.Tag == g2.Tag && g.Attrs.Equal(g2.Attrs)
}

// Add appends g to groups.
func (groups *Groups) Add(g Group) { *groups = append(*groups, g) }

// Equal checks byte-exact, order-sensitive equality.
func (groups Groups) Equal(groups2 Groups) bool {
	if len(groups) != len(groups2) {
		return false
	}
	for i, g := range groups {
		if !g.Equal(groups2[i]) {
			return false
		}
	}
	return true
}

// ByTag returns the first group with the given tag, or ok=false.
func (groups Groups) ByTag(tag Tag) (g Group, ok bool) {
	for _, g := range groups {
		if g.Tag == tag {
			return g, true
		}
	}
	return Group{}, false
}
