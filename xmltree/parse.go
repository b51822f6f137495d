package xmltree

import (
	"fmt"
	"io"

	"github.com/bored-engineer/fastxml"
)

// Parse turns textual XML bytes into a Document. The external textual-XML
// parser is fastxml's Decoder/RawToken pair (spec explicitly treats this
// parser as a black-box collaborator); Parse's only job is assembling the
// token stream it produces into a tree and decoding entities along the way.
func Parse(data []byte) (*Document, error) {
	dec := fastxml.NewDecoder(data)
	doc := &Document{}
	var stack []*Node

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: %w", err)
		}

		switch t := tok.(type) {
		case fastxml.StartElement:
			n := &Node{Kind: KindElement, Name: nameString(t.Name)}
			for _, a := range t.Attr {
				val, err := fastxml.DecodeEntities(a.Value)
				if err != nil {
					return nil, fmt.Errorf("xmltree: attribute %q: %w", nameString(a.Name), err)
				}
				n.Attrs = append(n.Attrs, Attr{Name: nameString(a.Name), Value: string(val)})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("xmltree: multiple root elements")
				}
				doc.Root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case fastxml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xmltree: end tag %q with no open element", nameString(t.Name))
			}
			stack = stack[:len(stack)-1]

		case fastxml.CharData:
			decoded, err := fastxml.DecodeEntities([]byte(t))
			if err != nil {
				return nil, fmt.Errorf("xmltree: text: %w", err)
			}
			appendLeaf(doc, stack, &Node{Kind: KindText, Text: string(decoded)})

		case fastxml.CDATA:
			appendLeaf(doc, stack, &Node{Kind: KindCData, Text: string(t)})

		case fastxml.Comment:
			appendLeaf(doc, stack, &Node{Kind: KindComment, Text: string(t)})

		case fastxml.ProcInst:
			appendLeaf(doc, stack, &Node{Kind: KindProcInst, Target: string(t.Target), Data: string(t.Inst)})

		case fastxml.Directive:
			// The only Directive form documents in this corpus use is a
			// DOCTYPE declaration; any directive is stored verbatim in
			// Docdecl, a later one replacing an earlier one.
			doc.Docdecl = string(t)
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("xmltree: no root element")
	}
	return doc, nil
}

func appendLeaf(doc *Document, stack []*Node, n *Node) {
	if len(stack) == 0 {
		doc.Prologue = append(doc.Prologue, n)
		return
	}
	parent := stack[len(stack)-1]
	parent.Children = append(parent.Children, n)
}

func nameString(n fastxml.Name) string {
	if len(n.Space) == 0 {
		return string(n.Local)
	}
	return string(n.Space) + ":" + string(n.Local)
}
