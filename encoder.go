package abx

import (
	"fmt"
	"io"
)

// Encoder turns XML event calls into ABX tokens (spec §4.4). Stateless with
// respect to semantics; stateful with respect to the tag-name stack and the
// write-side interning pool (spec §3.4, §5). The dual of Decoder, generalized
// from encoder.go's ManifestEncoder interface shape — tag-stack validation is
// new, since AXML (the teacher's domain) has no writer at all.
type Encoder struct {
	w        *writer
	tagStack []string
}

// NewEncoder writes the magic header immediately (spec §9's resolved Open
// Question: the constructor writes it, not StartDocument).
func NewEncoder(w io.Writer) (*Encoder, error) {
	wr := newWriter(w)
	if err := wr.writeRawBytes(magic[:]); err != nil {
		return nil, err
	}
	return &Encoder{w: wr}, nil
}

func (e *Encoder) StartDocument() error {
	return e.w.writeByte(token(cmdStartDocument, typeNull))
}

// EndDocument writes END_DOCUMENT and flushes the underlying sink, per spec
// §4.4. It fails with ErrUnbalancedEnd if any tag is still open.
func (e *Encoder) EndDocument() error {
	if len(e.tagStack) != 0 {
		return fmt.Errorf("%w: %d tag(s) still open at end of document", ErrUnbalancedEnd, len(e.tagStack))
	}
	if err := e.w.writeByte(token(cmdEndDocument, typeNull)); err != nil {
		return err
	}
	if f, ok := e.w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (e *Encoder) StartTag(name string) error {
	e.tagStack = append(e.tagStack, name)
	if err := e.w.writeByte(token(cmdStartTag, typeStringInterned)); err != nil {
		return err
	}
	return e.w.writeInternedUTF(name)
}

// EndTag fails with ErrTagMismatch if name doesn't match the innermost open
// tag, or ErrUnbalancedEnd if no tag is open (spec §4.4).
func (e *Encoder) EndTag(name string) error {
	if len(e.tagStack) == 0 {
		return fmt.Errorf("%w: end tag %q with no open tag", ErrUnbalancedEnd, name)
	}
	top := e.tagStack[len(e.tagStack)-1]
	if top != name {
		return fmt.Errorf("%w: expected </%s>, got </%s>", ErrTagMismatch, top, name)
	}
	e.tagStack = e.tagStack[:len(e.tagStack)-1]
	if err := e.w.writeByte(token(cmdEndTag, typeStringInterned)); err != nil {
		return err
	}
	return e.w.writeInternedUTF(name)
}

// Attribute writes a plain STRING-typed attribute. The caller's value is
// written verbatim, un-escaped (spec §4.4: the serializer does not escape
// string contents).
func (e *Encoder) Attribute(name, value string) error {
	return e.writeAttrHeader(name, typeString, func() error { return e.w.writeUTF(value) })
}

// AttributeInterned writes a STRING_INTERNED-typed attribute value.
func (e *Encoder) AttributeInterned(name, value string) error {
	return e.writeAttrHeader(name, typeStringInterned, func() error { return e.w.writeInternedUTF(value) })
}

func (e *Encoder) AttributeBool(name string, v bool) error {
	t := typeBooleanFalse
	if v {
		t = typeBooleanTrue
	}
	return e.writeAttrHeader(name, t, nil)
}

func (e *Encoder) AttributeInt(name string, v int32) error {
	return e.writeAttrHeader(name, typeInt, func() error { return e.w.writeI32(v) })
}

func (e *Encoder) AttributeIntHex(name string, v int32) error {
	return e.writeAttrHeader(name, typeIntHex, func() error { return e.w.writeI32(v) })
}

func (e *Encoder) AttributeLong(name string, v int64) error {
	return e.writeAttrHeader(name, typeLong, func() error { return e.w.writeI64(v) })
}

func (e *Encoder) AttributeLongHex(name string, v int64) error {
	return e.writeAttrHeader(name, typeLongHex, func() error { return e.w.writeI64(v) })
}

func (e *Encoder) AttributeFloat(name string, v float32) error {
	return e.writeAttrHeader(name, typeFloat, func() error { return e.w.writeF32(v) })
}

func (e *Encoder) AttributeDouble(name string, v float64) error {
	return e.writeAttrHeader(name, typeDouble, func() error { return e.w.writeF64(v) })
}

// AttributeBytesHex writes a BYTES_HEX attribute. Length is capped at 65535
// (spec §4.4); ErrStringTooLong doubles as the byte-array length error since
// both share the same u16 length-prefix limit.
func (e *Encoder) AttributeBytesHex(name string, b []byte) error {
	return e.writeAttrHeader(name, typeBytesHex, func() error { return e.writeByteArray(b) })
}

func (e *Encoder) AttributeBytesBase64(name string, b []byte) error {
	return e.writeAttrHeader(name, typeBytesBase64, func() error { return e.writeByteArray(b) })
}

func (e *Encoder) writeAttrHeader(name string, t attrType, payload func() error) error {
	if err := e.w.writeByte(token(cmdAttribute, t)); err != nil {
		return err
	}
	if err := e.w.writeInternedUTF(name); err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	return payload()
}

func (e *Encoder) writeByteArray(b []byte) error {
	if len(b) > maxStringLen {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	if err := e.w.writeU16(uint16(len(b))); err != nil {
		return err
	}
	return e.w.writeRawBytes(b)
}

func (e *Encoder) Text(s string) error {
	return e.writeStringCommand(cmdText, s)
}

func (e *Encoder) CData(s string) error {
	return e.writeStringCommand(cmdCDSect, s)
}

func (e *Encoder) Comment(s string) error {
	return e.writeStringCommand(cmdComment, s)
}

// ProcessingInstruction serializes as "target" alone, or "target data"
// joined by a single space (spec §4.4).
func (e *Encoder) ProcessingInstruction(target, data string) error {
	s := target
	if data != "" {
		s = target + " " + data
	}
	return e.writeStringCommand(cmdProcessingInstruction, s)
}

func (e *Encoder) Docdecl(s string) error {
	return e.writeStringCommand(cmdDocdecl, s)
}

func (e *Encoder) IgnorableWhitespace(s string) error {
	return e.writeStringCommand(cmdIgnorableWS, s)
}

func (e *Encoder) EntityRef(name string) error {
	return e.writeStringCommand(cmdEntityRef, name)
}

func (e *Encoder) writeStringCommand(c command, s string) error {
	if err := e.w.writeByte(token(c, typeString)); err != nil {
		return err
	}
	return e.w.writeUTF(s)
}
