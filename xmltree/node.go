// Package xmltree drives the textual-XML side of an ABX conversion: parsing
// XML text into a small DOM, walking a DOM through an abx.Encoder, and the
// Sink implementations abx.Decoder writes events to on the way back out.
package xmltree

// Attr is one attribute of an Element, in source order.
type Attr struct {
	Name  string
	Value string
}

// NodeKind distinguishes the event types a Document can hold alongside
// elements (spec §4.2's non-element event set: comments, CDATA, ...). A
// doctype is not a Node; it is kept in Document.Docdecl.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
	KindCData
	KindComment
	KindProcInst
	KindEntityRef
	KindIgnorableWhitespace
)

// Node is one entry in a Document's tree: an element (with Children and
// Attrs populated) or a leaf event (Text/CData/Comment/...).
type Node struct {
	Kind NodeKind

	// Element fields.
	Name     string
	Attrs    []Attr
	Children []*Node

	// Leaf fields: Text holds the payload for Text/CData/Comment/EntityRef/
	// IgnorableWhitespace; Target/Data hold a ProcInst's two halves.
	Text   string
	Target string
	Data   string
}

// Document is the root of a parsed (or reconstructed) XML tree: the single
// root element plus the top-level non-element nodes around it.
type Document struct {
	Root     *Node
	Prologue []*Node // top-level non-element nodes, in source order, whether they come before or after Root
	Docdecl  string
}
