package abx

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncoderWritesMagicImmediately(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewEncoder(&buf); err != nil {
		t.Fatalf("NewEncoder: %s", err.Error())
	}
	if !bytes.Equal(buf.Bytes(), magic[:]) {
		t.Fatalf("got % x, want magic % x", buf.Bytes(), magic[:])
	}
}

func TestEncoderUnbalancedEndDocument(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	enc.StartTag("r")
	if err := enc.EndDocument(); !errors.Is(err, ErrUnbalancedEnd) {
		t.Fatalf("expected ErrUnbalancedEnd, got %v", err)
	}
}

func TestEncoderTagMismatch(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	enc.StartTag("a")
	if err := enc.EndTag("b"); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("expected ErrTagMismatch, got %v", err)
	}
}

func TestEncoderEndTagWithNoOpenTag(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	if err := enc.EndTag("r"); !errors.Is(err, ErrUnbalancedEnd) {
		t.Fatalf("expected ErrUnbalancedEnd, got %v", err)
	}
}

func TestEncoderByteArrayTooLong(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	enc.StartTag("r")
	big := make([]byte, maxStringLen+1)
	if err := enc.AttributeBytesHex("b", big); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestEncoderProcessingInstructionJoin(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf)
	enc.StartDocument()
	if err := enc.ProcessingInstruction("xml-stylesheet", `type="text/xsl" href="x.xsl"`); err != nil {
		t.Fatal(err)
	}
	enc.EndDocument()

	dec, err := NewDecoder(bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	var gotTarget, gotData string
	sink := &piSink{capture: func(target, data string) { gotTarget, gotData = target, data }}
	if err := dec.Decode(sink); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	if gotTarget != "xml-stylesheet" || gotData != `type="text/xsl" href="x.xsl"` {
		t.Fatalf("got target=%q data=%q", gotTarget, gotData)
	}
}

type piSink struct {
	capture func(target, data string)
}

func (s *piSink) StartDocument() error                 { return nil }
func (s *piSink) EndDocument() error                   { return nil }
func (s *piSink) StartTag(string) error                { return nil }
func (s *piSink) Attribute(string, string) error       { return nil }
func (s *piSink) EndTag(string) error                  { return nil }
func (s *piSink) Text(string) error                    { return nil }
func (s *piSink) CData(string) error                   { return nil }
func (s *piSink) Comment(string) error                  { return nil }
func (s *piSink) ProcInst(target, data string) error {
	s.capture(target, data)
	return nil
}
func (s *piSink) Docdecl(string) error             { return nil }
func (s *piSink) EntityRef(string) error           { return nil }
func (s *piSink) IgnorableWhitespace(string) error { return nil }
func (s *piSink) Flush() error                     { return nil }
