package xmltree

import (
	"fmt"
	"io"
)

// TextSink renders abx.Sink events directly as textual XML, the streaming
// counterpart to Parse/Walk: abx2xml drives an abx.Decoder straight into a
// TextSink instead of materializing a Document first.
type TextSink struct {
	w   io.Writer
	err error

	tagStack    []string
	pendingOpen bool // most recent StartTag's '<name' has not been closed with '>' yet
}

// NewTextSink wraps w. The caller is responsible for flushing/closing w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) write(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// closeOpenTag emits the deferred '>' for the most recent StartTag, if one
// is still pending. Every element renders with an explicit end tag (spec
// §4.2, §8 scenario 1: self-closing is always normalized away), so this
// never writes "/>".
func (s *TextSink) closeOpenTag() {
	if !s.pendingOpen {
		return
	}
	s.pendingOpen = false
	s.write(">")
}

func (s *TextSink) StartDocument() error {
	s.write(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	return s.err
}

func (s *TextSink) EndDocument() error {
	return s.err
}

func (s *TextSink) StartTag(name string) error {
	s.closeOpenTag()
	s.write("<%s", name)
	s.tagStack = append(s.tagStack, name)
	s.pendingOpen = true
	return s.err
}

func (s *TextSink) Attribute(name, renderedValue string) error {
	s.write(` %s="%s"`, name, renderedValue)
	return s.err
}

func (s *TextSink) EndTag(name string) error {
	s.closeOpenTag()
	if len(s.tagStack) > 0 {
		s.tagStack = s.tagStack[:len(s.tagStack)-1]
	}
	s.write("</%s>", name)
	return s.err
}

func (s *TextSink) Text(text string) error {
	s.closeOpenTag()
	s.write("%s", text)
	return s.err
}

func (s *TextSink) CData(text string) error {
	s.closeOpenTag()
	s.write("<![CDATA[%s]]>", text)
	return s.err
}

func (s *TextSink) Comment(text string) error {
	s.closeOpenTag()
	s.write("<!--%s-->", text)
	return s.err
}

func (s *TextSink) ProcInst(target, data string) error {
	s.closeOpenTag()
	if data == "" {
		s.write("<?%s?>", target)
	} else {
		s.write("<?%s %s?>", target, data)
	}
	return s.err
}

func (s *TextSink) Docdecl(text string) error {
	s.closeOpenTag()
	s.write("<!DOCTYPE %s>", text)
	return s.err
}

func (s *TextSink) EntityRef(name string) error {
	s.closeOpenTag()
	s.write("&%s;", name)
	return s.err
}

func (s *TextSink) IgnorableWhitespace(text string) error {
	s.closeOpenTag()
	s.write("%s", text)
	return s.err
}

func (s *TextSink) Flush() error {
	s.closeOpenTag()
	if f, ok := s.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil && s.err == nil {
			s.err = err
		}
	}
	return s.err
}
