/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Binary wire encoder
 */
package ipp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encoder writes a Message in the IPP binary wire format.
// Encoding never blocks on input the way decoding can, so Encoder has
// no CodecState machine of its own; it does carry a LastError handle
// for symmetry with Decoder and the rest of the package.
type Encoder struct {
	cancel func() bool
	le     LastError
}

// NewEncoder creates an Encoder. cancel, if non-nil, is polled between
// groups so a very large message can still be aborted promptly.
func NewEncoder(cancel func() bool) *Encoder {
	return &Encoder{cancel: cancel}
}

// Last returns the handle recording the Encoder's most recent failure.
func (e *Encoder) Last() *LastError { return &e.le }

// Encode writes m to w in the binary wire format.
func (e *Encoder) Encode(w io.Writer, m *Message) error {
	var buf bytes.Buffer
	buf.Grow(m.WireLen())

	var hdr [8]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(m.Version))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(m.Code))
	binary.BigEndian.PutUint32(hdr[4:8], m.RequestID)
	buf.Write(hdr[:])

	for _, g := range m.Groups {
		if e.cancel != nil && e.cancel() {
			e.le.SetLast(KindCancelled, "%s", ErrCancelled)
			return e.le.Err()
		}
		buf.WriteByte(byte(g.Tag))
		for _, attr := range g.Attrs {
			if err := e.encodeAttr(&buf, attr); err != nil {
				e.le.SetLast(KindFormatError, "%s: %s", attr.Name, err)
				return e.le.Err()
			}
		}
	}

	buf.WriteByte(byte(TagEnd))

	_, err := w.Write(buf.Bytes())
	return err
}

func (e *Encoder) encodeAttr(buf *bytes.Buffer, attr Attribute) error {
	for i, v := range attr.Values {
		name := ""
		if i == 0 {
			name = attr.Name
		}

		if v.T == TagBeginCollection {
			col, ok := v.V.(Collection)
			if !ok {
				return fmt.Errorf("value tagged %s is not a Collection", v.T)
			}
			if err := e.encodeEntry(buf, TagBeginCollection, name, nil); err != nil {
				return err
			}
			if err := e.encodeCollection(buf, col); err != nil {
				return err
			}
			if err := e.encodeEntry(buf, TagEndCollection, "", nil); err != nil {
				return err
			}
			continue
		}

		data, err := v.V.encode()
		if err != nil {
			return err
		}
		if err := e.encodeEntry(buf, v.T, name, data); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeCollection(buf *bytes.Buffer, col Collection) error {
	for _, member := range Attributes(col) {
		if err := e.encodeEntry(buf, TagMemberName, "", []byte(member.Name)); err != nil {
			return err
		}
		// Member values carry an empty name; the member's name was just
		// given via the memberAttrName entry above.
		unnamed := Attribute{Values: member.Values}
		if err := e.encodeAttr(buf, unnamed); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeEntry(buf *bytes.Buffer, tag Tag, name string, value []byte) error {
	if len(name) > math.MaxUint16 {
		return fmt.Errorf("name %q exceeds %d bytes", name, math.MaxUint16)
	}
	if len(value) > maxOctetLen {
		return fmt.Errorf("value exceeds %d bytes", maxOctetLen)
	}

	buf.WriteByte(byte(tag))

	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(name)))
	buf.Write(lenBuf[:])
	buf.WriteString(name)

	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(value)))
	buf.Write(lenBuf[:])
	buf.Write(value)

	return nil
}

// Encode is the simple, one-shot entry point built on Encoder.
func Encode(w io.Writer, m *Message) error {
	return NewEncoder(nil).Encode(w, m)
}

// EncodeBytes encodes m and returns the resulting bytes directly.
func EncodeBytes(m *Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
