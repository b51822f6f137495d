package xmltree

import "github.com/netcfg/abx"

// IndentingSink wraps another abx.Sink and injects newline+indent
// whitespace around element boundaries for the pretty-print CLI flag: before
// every nested start tag and comment, and before the end tag of any element
// that had a child event. Unlike encoding/xml.Encoder.Indent, an element
// holding only text also gets its end tag on a new line ("<a>one\n</a>"). It
// never touches attribute rendering or text content, only the whitespace
// between tags.
type IndentingSink struct {
	target abx.Sink
	prefix string
	indent string

	depth    int
	hasChild []bool // per open-element depth, whether any child event fired
}

// NewIndentingSink wraps target with the given line prefix and per-level
// indent string (mirroring encoding/xml.Encoder.Indent's parameters).
func NewIndentingSink(target abx.Sink, prefix, indent string) *IndentingSink {
	return &IndentingSink{target: target, prefix: prefix, indent: indent}
}

func (s *IndentingSink) pad(depth int) string {
	b := s.prefix
	for i := 0; i < depth; i++ {
		b += s.indent
	}
	return b
}

func (s *IndentingSink) markChild() {
	if n := len(s.hasChild); n > 0 {
		s.hasChild[n-1] = true
	}
}

func (s *IndentingSink) StartDocument() error { return s.target.StartDocument() }
func (s *IndentingSink) EndDocument() error   { return s.target.EndDocument() }

func (s *IndentingSink) StartTag(name string) error {
	if len(s.hasChild) > 0 {
		s.markChild()
		if err := s.target.IgnorableWhitespace("\n" + s.pad(s.depth)); err != nil {
			return err
		}
	}
	if err := s.target.StartTag(name); err != nil {
		return err
	}
	s.hasChild = append(s.hasChild, false)
	s.depth++
	return nil
}

func (s *IndentingSink) Attribute(name, renderedValue string) error {
	return s.target.Attribute(name, renderedValue)
}

func (s *IndentingSink) EndTag(name string) error {
	s.depth--
	hadChild := s.hasChild[len(s.hasChild)-1]
	s.hasChild = s.hasChild[:len(s.hasChild)-1]
	if hadChild {
		if err := s.target.IgnorableWhitespace("\n" + s.pad(s.depth)); err != nil {
			return err
		}
	}
	return s.target.EndTag(name)
}

func (s *IndentingSink) Text(v string) error {
	s.markChild()
	return s.target.Text(v)
}

func (s *IndentingSink) CData(v string) error {
	s.markChild()
	return s.target.CData(v)
}

func (s *IndentingSink) Comment(v string) error {
	s.markChild()
	if len(s.hasChild) > 0 {
		if err := s.target.IgnorableWhitespace("\n" + s.pad(s.depth)); err != nil {
			return err
		}
	}
	return s.target.Comment(v)
}

func (s *IndentingSink) ProcInst(target, data string) error {
	s.markChild()
	return s.target.ProcInst(target, data)
}

func (s *IndentingSink) Docdecl(v string) error {
	s.markChild()
	return s.target.Docdecl(v)
}

func (s *IndentingSink) EntityRef(name string) error {
	s.markChild()
	return s.target.EntityRef(name)
}

func (s *IndentingSink) IgnorableWhitespace(v string) error {
	return s.target.IgnorableWhitespace(v)
}

func (s *IndentingSink) Flush() error { return s.target.Flush() }
