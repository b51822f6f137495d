package xmltree

// TreeSink is an abx.Sink that rebuilds a Document instead of rendering
// text, so a round trip can be checked by comparing two Documents rather
// than two byte streams (whitespace and attribute-quoting choices differ
// between a hand-written fixture and TextSink's output, but the tree
// shouldn't).
type TreeSink struct {
	Doc *Document

	stack []*Node
}

func NewTreeSink() *TreeSink {
	return &TreeSink{Doc: &Document{}}
}

func (s *TreeSink) StartDocument() error { return nil }
func (s *TreeSink) EndDocument() error   { return nil }

func (s *TreeSink) StartTag(name string) error {
	n := &Node{Kind: KindElement, Name: name}
	s.append(n)
	s.stack = append(s.stack, n)
	return nil
}

func (s *TreeSink) Attribute(name, renderedValue string) error {
	if len(s.stack) == 0 {
		return nil
	}
	top := s.stack[len(s.stack)-1]
	top.Attrs = append(top.Attrs, Attr{Name: name, Value: unescapeText.Replace(renderedValue)})
	return nil
}

func (s *TreeSink) EndTag(name string) error {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return nil
}

func (s *TreeSink) Text(text string) error {
	s.append(&Node{Kind: KindText, Text: unescapeText.Replace(text)})
	return nil
}

// unescapeText reverses abx.EscapeText's five entity replacements.
var unescapeText = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")

func (s *TreeSink) CData(text string) error {
	s.append(&Node{Kind: KindCData, Text: text})
	return nil
}

func (s *TreeSink) Comment(text string) error {
	s.append(&Node{Kind: KindComment, Text: text})
	return nil
}

func (s *TreeSink) ProcInst(target, data string) error {
	s.append(&Node{Kind: KindProcInst, Target: target, Data: data})
	return nil
}

func (s *TreeSink) Docdecl(text string) error {
	s.Doc.Docdecl = text
	return nil
}

func (s *TreeSink) EntityRef(name string) error {
	s.append(&Node{Kind: KindEntityRef, Text: name})
	return nil
}

func (s *TreeSink) IgnorableWhitespace(text string) error {
	s.append(&Node{Kind: KindIgnorableWhitespace, Text: text})
	return nil
}

func (s *TreeSink) Flush() error { return nil }

func (s *TreeSink) append(n *Node) {
	if len(s.stack) == 0 {
		if n.Kind == KindElement && s.Doc.Root == nil {
			s.Doc.Root = n
			return
		}
		s.Doc.Prologue = append(s.Doc.Prologue, n)
		return
	}
	parent := s.stack[len(s.stack)-1]
	parent.Children = append(parent.Children, n)
}
