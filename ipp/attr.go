/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Attribute values and attributes
 */
package ipp

import (
	"bytes"
	"fmt"
	"sort"
)

// Values is an ordered sequence of (Tag, Value) pairs: the payload of
// an Attribute. All elements of a non-out-of-band attribute share the
// same Tag.
type Values []struct {
	T Tag
	V Value
}

// Add appends a (t, v) pair.
func (values *Values) Add(t Tag, v Value) {
	*values = append(*values, struct {
		T Tag
		V Value
	}{t, v})
}

// String renders Values for display: a single value prints bare,
// several print space-separated (the formatter and the text codec
// writer use commas instead).
func (values Values) String() string {
	if len(values) == 1 {
		return values[0].V.String()
	}
	var buf bytes.Buffer
	for i, v := range values {
		if i != 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(v.V.String())
	}
	return buf.String()
}

// Clone makes a shallow copy: same Value instances, new backing slice.
func (values Values) Clone() Values {
	if values == nil {
		return nil
	}
	v2 := make(Values, len(values))
	copy(v2, values)
	return v2
}

// DeepCopy makes a deep copy, recursing into Collection values.
func (values Values) DeepCopy() Values {
	if values == nil {
		return nil
	}
	v2 := make(Values, len(values))
	for i := range values {
		v2[i].T = values[i].T
		v2[i].V = values[i].V.DeepCopy()
	}
	return v2
}

// Equal performs a byte-exact comparison (nil and empty are distinct).
func (values Values) Equal(values2 Values) bool {
	if len(values) != len(values2) {
		return false
	}
	if (values == nil) != (values2 == nil) {
		return false
	}
	for i, v := range values {
		v2 := values2[i]
		if v.T != v2.T || !ValueEqual(v.V, v2.V) {
			return false
		}
	}
	return true
}

// Similar performs a logical comparison (see ValueSimilar).
func (values Values) Similar(values2 Values) bool {
	if len(values) != len(values2) {
		return false
	}
	for i, v := range values {
		v2 := values2[i]
		if v.T != v2.T || !ValueSimilar(v.V, v2.V) {
			return false
		}
	}
	return true
}

// WireLen returns the number of bytes the binary encoder would spend on
// this Values slice as additional values of an already-named attribute
// (tag byte + zero-length name + length-prefixed value, per value; a
// collection value also counts its member entries and end entry).
func (values Values) WireLen() int {
	n := 0
	for _, v := range values {
		if col, ok := v.V.(Collection); ok && v.T == TagBeginCollection {
			n += 1 + 2 + 0 + 2 // begin-collection entry
			for _, member := range col {
				n += 1 + 2 + 0 + 2 + len(member.Name) // memberAttrName entry
				n += member.Values.WireLen()
			}
			n += 1 + 2 + 0 + 2 // end-collection entry
			continue
		}
		data, err := v.V.encode()
		if err != nil {
			continue
		}
		n += 1 + 2 + 0 + 2 + len(data)
	}
	return n
}

// Attribute is a named, typed, non-empty sequence of values.
type Attribute struct {
	Name   string
	Values Values
}

// MakeAttr builds an Attribute with one or more values sharing tag.
func MakeAttr(name string, tag Tag, val1 Value, values ...Value) Attribute {
	attr := Attribute{Name: name}
	attr.Values.Add(tag, val1)
	for _, v := range values {
		attr.Values.Add(tag, v)
	}
	return attr
}

// MakeOutOfBand builds an out-of-band Attribute (no value bytes).
func MakeOutOfBand(name string, tag Tag) (Attribute, error) {
	if tag.Type() != TypeVoid {
		return Attribute{}, fmt.Errorf("%s: not an out-of-band tag", tag)
	}
	return MakeAttr(name, tag, Void{}), nil
}

// MakeAttrCollection builds an Attribute whose value is a Collection
// made of the given member attributes.
func MakeAttrCollection(name string, member1 Attribute, members ...Attribute) Attribute {
	col := make(Collection, len(members)+1)
	col[0] = member1
	copy(col[1:], members)
	return MakeAttr(name, TagBeginCollection, col)
}

// Equal checks byte-exact equality: same name, same Values.
func (a Attribute) Equal(a2 Attribute) bool {
	return a.Name == a2.Name && a.Values.Equal(a2.Values)
}

// Similar checks logical equality: same name, Similar Values.
func (a Attribute) Similar(a2 Attribute) bool {
	return a.Name == a2.Name && a.Values.Similar(a2.Values)
}

// DeepCopy makes a deep copy of a, taking ownership of all value
// storage.
func (a Attribute) DeepCopy() Attribute {
	a2 := a
	a2.Values = a2.Values.DeepCopy()
	return a2
}

// QuickCopy makes a shallow copy whose String values are borrowed:
// the copy shares storage with a, so a must outlive the copy.
func (a Attribute) QuickCopy() Attribute {
	a2 := Attribute{Name: a.Name, Values: make(Values, len(a.Values))}
	for i, v := range a.Values {
		if s, ok := v.V.(String); ok {
			a2.Values[i] = struct {
				T Tag
				V Value
			}{v.T, BorrowedString(s)}
		} else {
			a2.Values[i] = v
		}
	}
	return a2
}

// DeleteValue removes the value at index i. An attribute always keeps
// at least one value; to remove the last one, delete the whole
// attribute instead.
func (a *Attribute) DeleteValue(i int) error {
	if len(a.Values) <= 1 {
		return fmt.Errorf("%w: cannot delete the only remaining value of %q", ErrInternal, a.Name)
	}
	if i < 0 || i >= len(a.Values) {
		return fmt.Errorf("%w: value index %d out of range for %q", ErrInternal, i, a.Name)
	}
	a.Values = append(a.Values[:i], a.Values[i+1:]...)
	return nil
}

// unpack decodes a single wire value of the given tag into a, appending
// it to a.Values. tag determines the concrete Value type constructed,
// mirroring the tag-driven dispatch the binary decoder needs.
func (a *Attribute) unpack(tag Tag, value []byte) error {
	var val Value

	switch tag.Type() {
	case TypeVoid, TypeCollection:
		val = Void{}
	case TypeInteger:
		val = Integer(0)
	case TypeBoolean:
		val = Boolean(false)
	case TypeString:
		val = String("")
	case TypeDateTime:
		val = Time{}
	case TypeResolution:
		val = Resolution{}
	case TypeRange:
		val = Range{}
	case TypeTextWithLang:
		val = TextWithLang{}
	case TypeBinary:
		val = Binary(nil)
	default:
		return fmt.Errorf("%s: unsupported tag type %s", tag, tag.Type())
	}

	val, err := val.decode(value)
	if err != nil {
		return fmt.Errorf("%s: %s", tag, err)
	}

	a.Values.Add(tag, val)
	return nil
}

// Attributes is an ordered sequence of Attribute, the contents of one
// attribute group.
type Attributes []Attribute

// Add appends attr.
func (attrs *Attributes) Add(attr Attribute) { *attrs = append(*attrs, attr) }

// Clone makes a shallow copy.
func (attrs Attributes) Clone() Attributes {
	a2 := make(Attributes, len(attrs))
	copy(a2, attrs)
	return a2
}

// DeepCopy makes a deep copy.
func (attrs Attributes) DeepCopy() Attributes {
	a2 := make(Attributes, len(attrs))
	for i := range attrs {
		a2[i] = attrs[i].DeepCopy()
	}
	return a2
}

// Equal checks byte-exact, order-sensitive equality.
func (attrs Attributes) Equal(attrs2 Attributes) bool {
	if len(attrs) != len(attrs2) {
		return false
	}
	for i, a := range attrs {
		if !a.Equal(attrs2[i]) {
			return false
		}
	}
	return true
}

// Similar checks logical equality: same set of attributes (any order),
// Similar values.
func (attrs Attributes) Similar(attrs2 Attributes) bool {
	if len(attrs) != len(attrs2) {
		return false
	}

	s1 := attrs.Clone()
	sort.SliceStable(s1, func(i, j int) bool { return s1[i].Name < s1[j].Name })
	s2 := attrs2.Clone()
	sort.SliceStable(s2, func(i, j int) bool { return s2[i].Name < s2[j].Name })

	for i, a1 := range s1 {
		if !a1.Similar(s2[i]) {
			return false
		}
	}
	return true
}

// ByName returns the first attribute named name, or ok=false.
func (attrs Attributes) ByName(name string) (attr Attribute, ok bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// DeleteByName removes the first attribute named name, reporting
// whether one was found.
func (attrs *Attributes) DeleteByName(name string) bool {
	for i, a := range *attrs {
		if a.Name == name {
			*attrs = append((*attrs)[:i], (*attrs)[i+1:]...)
			return true
		}
	}
	return false
}
