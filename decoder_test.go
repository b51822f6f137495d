package abx

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// textSink is a minimal abx.Sink that renders straight to a strings.Builder,
// used only to exercise Decoder in these tests without pulling in the
// xmltree package (which itself depends on abx).
type textSink struct {
	b strings.Builder
}

func (s *textSink) StartDocument() error { return nil }
func (s *textSink) EndDocument() error   { return nil }
func (s *textSink) StartTag(name string) error {
	s.b.WriteString("<" + name + ">")
	return nil
}
func (s *textSink) Attribute(name, value string) error { return nil }
func (s *textSink) EndTag(name string) error {
	s.b.WriteString("</" + name + ">")
	return nil
}
func (s *textSink) Text(v string) error                { s.b.WriteString(v); return nil }
func (s *textSink) CData(v string) error                { s.b.WriteString("<![CDATA[" + v + "]]>"); return nil }
func (s *textSink) Comment(v string) error               { s.b.WriteString("<!--" + v + "-->"); return nil }
func (s *textSink) ProcInst(target, data string) error   { s.b.WriteString("<?" + target + " " + data + "?>"); return nil }
func (s *textSink) Docdecl(v string) error               { s.b.WriteString("<!DOCTYPE " + v + ">"); return nil }
func (s *textSink) EntityRef(name string) error          { s.b.WriteString("&" + name + ";"); return nil }
func (s *textSink) IgnorableWhitespace(v string) error   { s.b.WriteString(v); return nil }
func (s *textSink) Flush() error                         { return nil }

// buildMinimalDocument hand-assembles the exact byte sequence spec §8
// scenario 1 specifies for "<r/>".
func buildMinimalDocument(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(token(cmdStartDocument, typeNull))
	buf.WriteByte(token(cmdStartTag, typeStringInterned))
	buf.Write([]byte{0xFF, 0xFF, 0x00, 0x01, 'r'})
	buf.WriteByte(token(cmdEndTag, typeStringInterned))
	buf.Write([]byte{0x00, 0x00})
	buf.WriteByte(token(cmdEndDocument, typeNull))
	return buf.Bytes()
}

func TestDecodeMinimalDocument(t *testing.T) {
	data := buildMinimalDocument(t)
	dec, err := NewDecoder(bytes.NewReader(data), Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	sink := &textSink{}
	if err := dec.Decode(sink); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	if got, want := sink.b.String(), "<r></r>"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := append([]byte{0x41, 0x42, 0x58, 0x01}, buildMinimalDocument(t)[4:]...)
	if _, err := NewDecoder(bytes.NewReader(data), Options{}); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodeAttributeTyping(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf)
	if err != nil {
		t.Fatalf("NewEncoder: %s", err.Error())
	}
	if err := enc.StartDocument(); err != nil {
		t.Fatal(err)
	}
	if err := enc.StartTag("r"); err != nil {
		t.Fatal(err)
	}
	if err := enc.AttributeBool("a", true); err != nil {
		t.Fatal(err)
	}
	if err := enc.AttributeInt("b", 42); err != nil {
		t.Fatal(err)
	}
	if err := enc.AttributeFloat("c", 3.14); err != nil {
		t.Fatal(err)
	}
	if err := enc.AttributeIntHex("d", 0xff); err != nil {
		t.Fatal(err)
	}
	if err := enc.EndTag("r"); err != nil {
		t.Fatal(err)
	}
	if err := enc.EndDocument(); err != nil {
		t.Fatal(err)
	}

	dec, err := NewDecoder(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	attrs := map[string]string{}
	sink := &recordingSink{attrs: attrs}
	if err := dec.Decode(sink); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	want := map[string]string{"a": "true", "b": "42", "c": "3.14", "d": "ff"}
	for k, v := range want {
		if attrs[k] != v {
			t.Fatalf("attribute %s = %q, want %q", k, attrs[k], v)
		}
	}
}

// recordingSink captures attribute name/value pairs for assertions.
type recordingSink struct {
	attrs map[string]string
}

func (s *recordingSink) StartDocument() error                 { return nil }
func (s *recordingSink) EndDocument() error                   { return nil }
func (s *recordingSink) StartTag(name string) error            { return nil }
func (s *recordingSink) Attribute(name, value string) error {
	s.attrs[name] = value
	return nil
}
func (s *recordingSink) EndTag(name string) error              { return nil }
func (s *recordingSink) Text(string) error                     { return nil }
func (s *recordingSink) CData(string) error                    { return nil }
func (s *recordingSink) Comment(string) error                  { return nil }
func (s *recordingSink) ProcInst(string, string) error         { return nil }
func (s *recordingSink) Docdecl(string) error                  { return nil }
func (s *recordingSink) EntityRef(string) error                { return nil }
func (s *recordingSink) IgnorableWhitespace(string) error      { return nil }
func (s *recordingSink) Flush() error                          { return nil }

func TestDecodeEntityEscaping(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	enc.StartTag("r")
	enc.Text(`5 < 6 & "t"`)
	enc.EndTag("r")
	enc.EndDocument()

	dec, err := NewDecoder(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	sink := &textSink{}
	if err := dec.Decode(sink); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	want := `<r>5 &lt; 6 &amp; &quot;t&quot;</r>`
	if got := sink.b.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeBase64Attribute(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	enc.StartTag("r")
	if err := enc.AttributeBytesBase64("b", []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatal(err)
	}
	enc.EndTag("r")
	enc.EndDocument()

	dec, err := NewDecoder(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	attrs := map[string]string{}
	if err := dec.Decode(&recordingSink{attrs: attrs}); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	if got, want := attrs["b"], "3q2+7w=="; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderHex(t *testing.T) {
	if got, want := renderHex32(-1), "-1"; got != want {
		t.Fatalf("renderHex32(-1) = %q, want %q", got, want)
	}
	if got, want := renderHex32(255), "ff"; got != want {
		t.Fatalf("renderHex32(255) = %q, want %q", got, want)
	}
	if got, want := renderHex64(-1), "-1"; got != want {
		t.Fatalf("renderHex64(-1) = %q, want %q", got, want)
	}
}

func TestRenderFloatTrailingDotZero(t *testing.T) {
	if got, want := renderFloat64(42), "42.0"; got != want {
		t.Fatalf("renderFloat64(42) = %q, want %q", got, want)
	}
	if got, want := renderFloat64(3.14), "3.14"; got != want {
		t.Fatalf("renderFloat64(3.14) = %q, want %q", got, want)
	}
}
