package xmltree

import (
	"strings"

	"github.com/netcfg/abx"
)

// Walk drives enc through doc's Prologue nodes and then its Root element
// (spec §2's "textual XML in, ABX out" direction), inferring each
// attribute's tightest ABX type via abx.InferAttribute along the way.
// doc.Docdecl is not written to enc.
func Walk(doc *Document, enc *abx.Encoder, opts abx.Options) error {
	if err := enc.StartDocument(); err != nil {
		return err
	}

	for _, n := range doc.Prologue {
		if err := walkLeaf(n, enc, opts); err != nil {
			return err
		}
	}

	w := &walker{opts: opts}
	if err := w.element(doc.Root, enc); err != nil {
		return err
	}

	return enc.EndDocument()
}

type walker struct {
	opts     abx.Options
	warnedNS bool
}

func (w *walker) element(n *Node, enc *abx.Encoder) error {
	if err := enc.StartTag(n.Name); err != nil {
		return err
	}

	for _, a := range n.Attrs {
		w.warnNamespace(a.Name)
		if err := abx.InferAttribute(a.Value).Apply(enc, a.Name); err != nil {
			return err
		}
	}
	w.warnNamespace(n.Name)

	for _, c := range n.Children {
		switch c.Kind {
		case KindElement:
			if err := w.element(c, enc); err != nil {
				return err
			}
		default:
			if err := walkLeaf(c, enc, w.opts); err != nil {
				return err
			}
		}
	}

	return enc.EndTag(n.Name)
}

// warnNamespace fires the namespace diagnostic spec §4.6 calls for: ABX has
// no namespace-aware encoding, so any "xmlns"/"xmlns:*" attribute or
// colon-prefixed name is flattened to a plain string name and reported once.
func (w *walker) warnNamespace(name string) {
	if w.warnedNS {
		return
	}
	if name == "xmlns" || strings.HasPrefix(name, "xmlns:") || strings.ContainsRune(name, ':') {
		w.warnedNS = true
		if w.opts.WarningCallback != nil {
			w.opts.WarningCallback("namespace", "namespace prefix kept verbatim on "+name)
		}
	}
}

func walkLeaf(n *Node, enc *abx.Encoder, opts abx.Options) error {
	switch n.Kind {
	case KindText:
		if opts.CollapseWhitespace && isAllWhitespace(n.Text) {
			return nil
		}
		if isAllWhitespace(n.Text) && n.Text != "" {
			return enc.IgnorableWhitespace(n.Text)
		}
		return enc.Text(n.Text)
	case KindCData:
		return enc.CData(n.Text)
	case KindComment:
		return enc.Comment(n.Text)
	case KindProcInst:
		return enc.ProcessingInstruction(n.Target, n.Data)
	case KindEntityRef:
		return enc.EntityRef(n.Text)
	case KindIgnorableWhitespace:
		return enc.IgnorableWhitespace(n.Text)
	}
	return nil
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
