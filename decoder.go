package abx

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Decoder turns an ABX byte stream into textual-XML Sink events. Grounded on
// binxml.go's parseXml/parseTagStart/parseText token-dispatch loop, with the
// chunk-length bookkeeping dropped (ABX records are self-delimiting; AXML's
// outer chunk-length framing has no counterpart here) and the attribute
// sub-loop driven by reader's 1-byte lookahead per spec §9.
type Decoder struct {
	r    *reader
	opts Options

	warnedUnknownCommand bool
}

// NewDecoder verifies the magic header (spec §3.1, §4.2) and prepares a
// Decoder. Readers fail fast on a bad magic, before any token is processed.
func NewDecoder(r io.Reader, opts Options) (*Decoder, error) {
	rd := newReader(r)
	var got [4]byte
	for i := range got {
		b, err := rd.readByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadMagic, err.Error())
		}
		got[i] = b
	}
	if got != magic {
		return nil, fmt.Errorf("%w: got % x", ErrBadMagic, got)
	}
	return &Decoder{r: rd, opts: opts}, nil
}

// Decode runs the token loop until END_DOCUMENT, emitting events to sink.
// The XML declaration is emitted unconditionally before the first token
// (spec §9's resolved Open Question); START_DOCUMENT itself is a no-op.
func (d *Decoder) Decode(sink Sink) error {
	if err := sink.StartDocument(); err != nil {
		return err
	}

	for {
		b, err := d.r.readByte()
		if err != nil {
			return err
		}
		cmd, typ := splitToken(b)

		switch cmd {
		case cmdStartDocument:
			// no-op: declaration already emitted by sink.StartDocument
		case cmdEndDocument:
			return sink.Flush()
		case cmdStartTag:
			if err := d.decodeStartTag(sink); err != nil {
				return err
			}
		case cmdEndTag:
			name, err := d.r.readInternedUTF()
			if err != nil {
				return err
			}
			if err := sink.EndTag(name); err != nil {
				return err
			}
		case cmdText:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if s != "" {
				if err := sink.Text(EscapeText(s)); err != nil {
					return err
				}
			}
		case cmdCDSect:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if err := sink.CData(s); err != nil {
				return err
			}
		case cmdComment:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if err := sink.Comment(s); err != nil {
				return err
			}
		case cmdProcessingInstruction:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			target, data := splitProcInst(s)
			if err := sink.ProcInst(target, data); err != nil {
				return err
			}
		case cmdDocdecl:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if err := sink.Docdecl(s); err != nil {
				return err
			}
		case cmdEntityRef:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if err := sink.EntityRef(s); err != nil {
				return err
			}
		case cmdIgnorableWS:
			s, err := d.r.readUTF()
			if err != nil {
				return err
			}
			if err := sink.IgnorableWhitespace(s); err != nil {
				return err
			}
		case cmdAttribute:
			return fmt.Errorf("%w: ATTRIBUTE outside start-tag context", ErrUnknownCommand)
		default:
			// Non-fatal per spec §7: tolerate and skip, matching the
			// observed leniency of Android's own reader. typ is unused for
			// unknown commands since we have no payload shape to read.
			_ = typ
			if !d.warnedUnknownCommand {
				d.warnedUnknownCommand = true
				d.opts.warn("unknown-command", fmt.Sprintf("skipping unrecognized command %d", cmd))
			}
		}
	}
}

// decodeStartTag emits the StartTag event, then runs the attribute sub-loop
// (spec §4.2): peek one byte; if it is an ATTRIBUTE token, consume and
// decode it; otherwise leave it for the main loop. Placing the closing ">"
// is left to the Sink.
func (d *Decoder) decodeStartTag(sink Sink) error {
	name, err := d.r.readInternedUTF()
	if err != nil {
		return err
	}
	if err := sink.StartTag(name); err != nil {
		return err
	}

	for {
		b, err := d.r.peekByte()
		if err != nil {
			return err
		}
		cmd, typ := splitToken(b)
		if cmd != cmdAttribute {
			return nil
		}
		if _, err := d.r.readByte(); err != nil { // consume the peeked byte
			return err
		}
		if err := d.decodeAttribute(sink, typ); err != nil {
			return err
		}
	}
}

// decodeAttribute decodes one ATTRIBUTE record's payload and renders it per
// the table in spec §4.3.
func (d *Decoder) decodeAttribute(sink Sink, typ attrType) error {
	name, err := d.r.readInternedUTF()
	if err != nil {
		return err
	}

	var rendered string
	switch typ {
	case typeNull:
		rendered = "null"
	case typeString:
		s, err := d.r.readUTF()
		if err != nil {
			return err
		}
		rendered = EscapeText(s)
	case typeStringInterned:
		s, err := d.r.readInternedUTF()
		if err != nil {
			return err
		}
		rendered = EscapeText(s)
	case typeBytesHex:
		b, err := d.readByteArray()
		if err != nil {
			return err
		}
		rendered = EncodeHex(b)
	case typeBytesBase64:
		b, err := d.readByteArray()
		if err != nil {
			return err
		}
		rendered = EncodeBase64(b)
	case typeInt:
		v, err := d.r.readI32()
		if err != nil {
			return err
		}
		rendered = strconv.FormatInt(int64(v), 10)
	case typeIntHex:
		v, err := d.r.readI32()
		if err != nil {
			return err
		}
		rendered = renderHex32(v)
	case typeLong:
		v, err := d.r.readI64()
		if err != nil {
			return err
		}
		rendered = strconv.FormatInt(v, 10)
	case typeLongHex:
		v, err := d.r.readI64()
		if err != nil {
			return err
		}
		rendered = renderHex64(v)
	case typeFloat:
		v, err := d.r.readF32()
		if err != nil {
			return err
		}
		rendered = renderFloat32(v)
	case typeDouble:
		v, err := d.r.readF64()
		if err != nil {
			return err
		}
		rendered = renderFloat64(v)
	case typeBooleanTrue:
		rendered = "true"
	case typeBooleanFalse:
		rendered = "false"
	default:
		return fmt.Errorf("%w: 0x%x", ErrUnknownAttrType, typ)
	}

	return sink.Attribute(name, rendered)
}

func (d *Decoder) readByteArray() ([]byte, error) {
	n, err := d.r.readU16()
	if err != nil {
		return nil, err
	}
	return d.r.readBytes(int(n))
}

// renderHex32/renderHex64 implement spec §4.2's normative rendering law:
// -1 always renders as decimal "-1"; every other value renders as lowercase
// hex of its unsigned bit pattern, no "0x" prefix (spec §9's resolved Open
// Question).
func renderHex32(v int32) string {
	if v == -1 {
		return "-1"
	}
	return strconv.FormatUint(uint64(uint32(v)), 16)
}

func renderHex64(v int64) string {
	if v == -1 {
		return "-1"
	}
	return strconv.FormatUint(uint64(v), 16)
}

// renderFloat32/renderFloat64 use the shortest round-trip representation
// (strconv's 'g' with precision -1, per spec §9's design note pointing at a
// Grisu/Ryu-family formatter — strconv.FormatFloat already is one). A finite
// integral value is instead written in fixed notation with a trailing ".0",
// so 1234567 renders as "1234567.0" rather than "1.234567e+06".
func renderFloat32(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	return withTrailingDotZero(s, float64(v), 32)
}

func renderFloat64(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	return withTrailingDotZero(s, v, 64)
}

func withTrailingDotZero(s string, v float64, bitSize int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Floor(v) {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, bitSize) + ".0"
}

// splitProcInst reverses the join done by Encoder.ProcessingInstruction:
// "target" alone, or "target data" split on the first space (spec §4.4).
func splitProcInst(s string) (target, data string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
