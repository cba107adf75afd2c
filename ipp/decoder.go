/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Binary wire decoder
 */
package ipp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// CodecState names where a Decoder is in the course of reading one
// message. Unlike a one-shot Decode call, a Decoder built with
// NewDecoder is meant to survive being fed partial input a chunk at a
// time: Step reports ErrWouldBlock rather than an error when it simply
// needs more bytes, and State lets the caller see which phase it's
// paused in.
type CodecState int

// Decoder states
const (
	StateIdle      CodecState = iota // nothing consumed yet
	StateHeader                      // reading version/code/request-id
	StateAttribute                   // reading group tags and attribute entries
	StateData                        // end-of-attributes seen; any trailing bytes are document data
	StateError                       // a previous Step failed; Decoder must be reset to continue
)

func (s CodecState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHeader:
		return "header"
	case StateAttribute:
		return "attribute"
	case StateData:
		return "data"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("CodecState(%d)", int(s))
	}
}

// ErrWouldBlock is returned by Decoder.Step when it cannot make forward
// progress without more input. It is not a decode failure: the Decoder
// is left exactly as it was before the call, and Feed followed by
// another Step resumes cleanly.
var ErrWouldBlock = errors.New("ipp: short read, need more input")

// collectionFrame tracks one nesting level of an in-progress collection
// value: the attribute name its members are destined for, and the
// partially-built Collection itself. A stack of these lets the decoder
// handle collections nested inside collections without recursion.
type collectionFrame struct {
	attrName   string
	col        Collection
	memberName string
}

// Decoder incrementally parses the IPP binary wire format out of a
// byte stream that may arrive in arbitrarily small pieces.
type Decoder struct {
	cancel func() bool

	state CodecState
	msg   *Message
	le    LastError

	pending   []byte // bytes fed but not yet consumed
	curGroup  Tag
	haveGroup bool
	stack     []*collectionFrame
}

// NewDecoder creates a Decoder. cancel, if non-nil, is polled at each
// attribute-entry boundary; when it returns true, Step aborts with
// ErrCancelled, discards any partial message and returns the Decoder to
// StateIdle.
func NewDecoder(cancel func() bool) *Decoder {
	return &Decoder{cancel: cancel}
}

// State reports the Decoder's current phase.
func (d *Decoder) State() CodecState { return d.state }

// Last returns the handle recording the Decoder's most recent failure.
func (d *Decoder) Last() *LastError { return &d.le }

// Reset discards all state, returning the Decoder to StateIdle so it
// can be reused for a new message.
func (d *Decoder) Reset() {
	*d = Decoder{cancel: d.cancel}
}

// Feed appends data to the Decoder's internal buffer. It never blocks
// and never fails; the bytes are simply queued for the next Step.
func (d *Decoder) Feed(data []byte) {
	d.pending = append(d.pending, data...)
}

// Step attempts to consume as much of the pending buffer as currently
// possible, advancing through StateHeader and StateAttribute into
// StateData. It returns (msg, nil) once the end-of-attributes tag has
// been seen, ErrWouldBlock if it ran out of buffered input mid-field,
// and any other error (wrapped with Last() detail) on malformed input
// or cancellation.
func (d *Decoder) Step() (*Message, error) {
	if d.state == StateError {
		return nil, fmt.Errorf("ipp: decoder is in error state, call Reset")
	}
	if d.msg == nil {
		d.msg = &Message{}
	}

	for {
		if d.cancel != nil && d.cancel() {
			return d.cancelled()
		}

		switch d.state {
		case StateIdle:
			d.state = StateHeader

		case StateHeader:
			if len(d.pending) < 8 {
				return nil, ErrWouldBlock
			}
			d.msg.Version = Version(binary.BigEndian.Uint16(d.pending[0:2]))
			d.msg.Code = Code(binary.BigEndian.Uint16(d.pending[2:4]))
			d.msg.RequestID = binary.BigEndian.Uint32(d.pending[4:8])
			d.pending = d.pending[8:]
			d.state = StateAttribute

		case StateAttribute:
			before := len(d.pending)
			done, err := d.stepAttribute()
			if err != nil {
				return d.fail(KindFormatError, "%s", err)
			}
			if done {
				d.state = StateData
				return d.msg, nil
			}
			if len(d.pending) == before {
				return nil, ErrWouldBlock
			}

		case StateData:
			return d.msg, nil
		}
	}
}

// stepAttribute consumes exactly one tag byte and, if it isn't a
// delimiter, one attribute entry; it reports done=true once the
// end-of-attributes tag is seen. When there isn't enough buffered data
// to consume a whole field, it leaves pending untouched and returns
// (false, nil); the caller (Step) interprets an unchanged pending
// buffer as ErrWouldBlock.
func (d *Decoder) stepAttribute() (done bool, err error) {
	if len(d.pending) < 1 {
		return false, nil
	}
	tag := Tag(d.pending[0])

	if tag.IsDelimiter() {
		if tag == TagEnd {
			d.pending = d.pending[1:]
			if len(d.stack) != 0 {
				return false, ErrUnbalancedCollection
			}
			return true, nil
		}
		if len(d.stack) != 0 {
			return false, fmt.Errorf("delimiter tag %s inside a collection", tag)
		}
		if tag == TagZero {
			// A zero separator between groups of identical tag is a
			// group boundary: it re-opens the running group.
			if !d.haveGroup {
				return false, fmt.Errorf("separator tag before the first group")
			}
			d.pending = d.pending[1:]
			d.msg.Groups.Add(Group{Tag: d.curGroup})
			return false, nil
		}
		if !tag.IsGroup() {
			return false, fmt.Errorf("unexpected delimiter tag %s", tag)
		}
		d.pending = d.pending[1:]
		d.curGroup = tag
		d.haveGroup = true
		d.msg.Groups.Add(Group{Tag: tag})
		return false, nil
	}

	name, value, rest, ok := splitEntry(d.pending[1:])
	if !ok {
		return false, nil // need more bytes; pending left untouched
	}
	d.pending = rest

	return false, d.applyEntry(tag, name, value)
}

// splitEntry parses a name-length-prefixed, value-length-prefixed pair
// out of data (data is everything after the tag byte). ok=false means
// data doesn't yet hold a complete entry.
func splitEntry(data []byte) (name, value string, rest []byte, ok bool) {
	if len(data) < 2 {
		return "", "", nil, false
	}
	nameLen := int(binary.BigEndian.Uint16(data[0:2]))
	if len(data) < 2+nameLen+2 {
		return "", "", nil, false
	}
	name = string(data[2 : 2+nameLen])
	data = data[2+nameLen:]

	valueLen := int(binary.BigEndian.Uint16(data[0:2]))
	if len(data) < 2+valueLen {
		return "", "", nil, false
	}
	value = string(data[2 : 2+valueLen])
	rest = data[2+valueLen:]
	return name, value, rest, true
}

// applyEntry folds one decoded (tag, name, value) triple into the
// message being built, handling collection framing (TagBeginCollection
// / TagMemberName / TagEndCollection) and ordinary scalar values.
func (d *Decoder) applyEntry(tag Tag, name, value string) error {
	switch tag {
	case TagBeginCollection:
		if len(value) != 0 {
			return fmt.Errorf("collection begin value must be empty")
		}
		frame := &collectionFrame{attrName: name}
		if len(d.stack) != 0 {
			parent := d.stack[len(d.stack)-1]
			frame.attrName = parent.memberName
			parent.memberName = ""
		}
		d.stack = append(d.stack, frame)
		return nil

	case TagEndCollection:
		if len(d.stack) == 0 {
			return ErrUnbalancedCollection
		}
		frame := d.stack[len(d.stack)-1]
		if frame.memberName != "" {
			return fmt.Errorf("memberAttrName %q without a value", frame.memberName)
		}
		d.stack = d.stack[:len(d.stack)-1]
		if len(d.stack) != 0 {
			// The collection just closed is itself a member value of
			// the enclosing collection, not a group attribute.
			return d.stack[len(d.stack)-1].addMember(frame.attrName, TagBeginCollection, frame.col)
		}
		return d.addValue(frame.attrName, TagBeginCollection, frame.col)

	case TagMemberName:
		if len(d.stack) == 0 {
			return fmt.Errorf("memberAttrName outside a collection")
		}
		top := d.stack[len(d.stack)-1]
		if top.memberName != "" {
			return fmt.Errorf("memberAttrName %q without a value", top.memberName)
		}
		if value == "" {
			return fmt.Errorf("memberAttrName value is empty")
		}
		top.memberName = value
		return nil
	}

	v, err := unpackValue(tag, []byte(value))
	if err != nil {
		return err
	}

	if len(d.stack) != 0 {
		top := d.stack[len(d.stack)-1]
		memberName := top.memberName
		top.memberName = ""
		return top.addMember(memberName, tag, v)
	}

	if !d.haveGroup {
		return ErrNoGroup
	}
	return d.addValue(name, tag, v)
}

// addMember appends (tag, v) to f's collection: a non-empty name (set
// by the preceding memberAttrName entry) opens a new member; an empty
// one appends an additional value to the most recent member, the wire's
// multi-valued-member form.
func (f *collectionFrame) addMember(name string, tag Tag, v Value) error {
	if name != "" {
		attr := Attribute{Name: name}
		attr.Values.Add(tag, v)
		f.col.Add(attr)
		return nil
	}
	if len(f.col) == 0 {
		return fmt.Errorf("collection value without a preceding memberAttrName")
	}
	f.col[len(f.col)-1].Values.Add(tag, v)
	return nil
}

// unpackValue is applyEntry's helper for the non-collection case: build
// a zero Attribute, let unpack do the tag-driven type dispatch, and
// pull the single resulting value back out.
func unpackValue(tag Tag, value []byte) (Value, error) {
	var a Attribute
	if err := a.unpack(tag, value); err != nil {
		return nil, err
	}
	return a.Values[0].V, nil
}

// addValue appends (tag, v) either as a new value of the current
// group's most recent attribute of the given name (multi-valued
// attributes repeat a zero-length name on the wire) or as a brand new
// attribute.
func (d *Decoder) addValue(name string, tag Tag, v Value) error {
	groups := d.msg.Groups
	if len(groups) == 0 {
		return ErrNoGroup
	}
	g := &groups[len(groups)-1]

	if name == "" {
		if len(g.Attrs) == 0 {
			return fmt.Errorf("additional value with no preceding attribute")
		}
		last := &g.Attrs[len(g.Attrs)-1]
		last.Values.Add(tag, v)
		return nil
	}

	attr := Attribute{Name: name}
	attr.Values.Add(tag, v)
	g.Add(attr)
	return nil
}

func (d *Decoder) fail(kind Kind, format string, args ...interface{}) (*Message, error) {
	d.le.SetLast(kind, format, args...)
	d.state = StateError
	return nil, d.le.Err()
}

// cancelled handles an observed cancel flag: the Decoder returns to
// StateIdle with no partial state left behind, so the next Feed/Step
// starts a fresh message without an explicit Reset. Only the LastError
// record survives.
func (d *Decoder) cancelled() (*Message, error) {
	d.le.SetLast(KindCancelled, "%s", ErrCancelled)
	d.pending = nil
	d.msg = nil
	d.stack = nil
	d.curGroup = TagZero
	d.haveGroup = false
	d.state = StateIdle
	return nil, d.le.Err()
}

// Decode is the simple, one-shot entry point: it reads all of r (which
// must already contain a complete message) and returns the parsed
// Message. It is built on the same Decoder used for incremental
// parsing, fed the whole body in one Feed, so its behavior is identical
// to driving Decoder by hand.
func Decode(r io.Reader) (*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := NewDecoder(nil)
	dec.Feed(data)
	msg, err := dec.Step()
	if err != nil {
		if errors.Is(err, ErrWouldBlock) {
			return nil, ErrMessageTruncated
		}
		return nil, err
	}
	return msg, nil
}

// DecodeBytes is a convenience wrapper around Decode for callers that
// already have the message in memory.
func DecodeBytes(data []byte) (*Message, error) {
	return Decode(bytes.NewReader(data))
}
