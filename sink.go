package abx

// Sink receives the textual-XML events a Decoder produces as it walks an
// ABX stream (spec §2's "emits XML text events to an output sink"). Every
// string argument already carries whatever rendering spec §4.2/§4.3
// prescribes (entity-escaped text, lowercase hex, base64, decimal/hex
// numbers) — a Sink just places it on the page; it never re-renders.
//
// This generalizes encoder.go's ManifestEncoder (EncodeToken/Flush) to the
// richer event set spec §4.2 names, since spec's CDATA/comment/doctype
// fidelity requirements can't survive a round trip through encoding/xml's
// token set.
type Sink interface {
	StartDocument() error
	EndDocument() error
	StartTag(name string) error
	Attribute(name, renderedValue string) error
	EndTag(name string) error
	Text(s string) error
	CData(s string) error
	Comment(s string) error
	ProcInst(target, data string) error
	Docdecl(s string) error
	EntityRef(name string) error
	IgnorableWhitespace(s string) error
	Flush() error
}

// Options configures Decoder and the xmltree driver (Encoder takes none). A plain
// struct passed by value, per spec §9's design note ("model [warnings] as an
// optional function passed through the configuration; no global singleton")
// and matching the teacher's own plain-struct configuration style
// (ApkParser, axml2xml's optsType) over a functional-options builder.
type Options struct {
	// CollapseWhitespace, when true, drops whitespace-only text nodes
	// entirely instead of emitting them as IGNORABLE_WHITESPACE (spec §4.5).
	CollapseWhitespace bool

	// WarningCallback receives non-fatal diagnostics: unknown commands
	// tolerated per spec §7, and namespace usage per spec §4.6. Category is
	// a short machine-readable tag ("unknown-command", "namespace"); each
	// category fires at most once per Decoder/Walk run.
	WarningCallback func(category, message string)
}

func (o Options) warn(category, message string) {
	if o.WarningCallback != nil {
		o.WarningCallback(category, message)
	}
}
