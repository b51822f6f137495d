package xmltree

import (
	"bytes"
	"testing"

	"github.com/netcfg/abx"
)

func encodeAndDecode(t *testing.T, doc *Document, opts abx.Options) *Document {
	t.Helper()
	var buf bytes.Buffer
	enc, err := abx.NewEncoder(&buf)
	if err != nil {
		t.Fatalf("NewEncoder: %s", err.Error())
	}
	if err := Walk(doc, enc, opts); err != nil {
		t.Fatalf("Walk: %s", err.Error())
	}

	dec, err := abx.NewDecoder(bytes.NewReader(buf.Bytes()), opts)
	if err != nil {
		t.Fatalf("NewDecoder: %s", err.Error())
	}
	sink := NewTreeSink()
	if err := dec.Decode(sink); err != nil {
		t.Fatalf("Decode: %s", err.Error())
	}
	return sink.Doc
}

func TestRoundTripAttributeTyping(t *testing.T) {
	src, err := Parse([]byte(`<r a="true" b="42" c="3.14" d="0xff" e="hello"/>`))
	if err != nil {
		t.Fatalf("Parse: %s", err.Error())
	}

	got := encodeAndDecode(t, src, abx.Options{})
	want := map[string]string{"a": "true", "b": "42", "c": "3.14", "d": "ff", "e": "hello"}
	if len(got.Root.Attrs) != len(want) {
		t.Fatalf("got %d attrs, want %d", len(got.Root.Attrs), len(want))
	}
	for _, a := range got.Root.Attrs {
		if want[a.Name] != a.Value {
			t.Errorf("attribute %s = %q, want %q", a.Name, a.Value, want[a.Name])
		}
	}
}

func TestRoundTripNestedElementsAndText(t *testing.T) {
	src, err := Parse([]byte(`<root><a>one</a><b>two</b></root>`))
	if err != nil {
		t.Fatalf("Parse: %s", err.Error())
	}
	got := encodeAndDecode(t, src, abx.Options{})
	if got.Root.Name != "root" || len(got.Root.Children) != 2 {
		t.Fatalf("got root = %+v", got.Root)
	}
	if got.Root.Children[0].Name != "a" || got.Root.Children[0].Children[0].Text != "one" {
		t.Fatalf("child a = %+v", got.Root.Children[0])
	}
	if got.Root.Children[1].Name != "b" || got.Root.Children[1].Children[0].Text != "two" {
		t.Fatalf("child b = %+v", got.Root.Children[1])
	}
}

func TestRoundTripEntityEscaping(t *testing.T) {
	src, err := Parse([]byte(`<r>5 &lt; 6 &amp; &quot;t&quot;</r>`))
	if err != nil {
		t.Fatalf("Parse: %s", err.Error())
	}
	got := encodeAndDecode(t, src, abx.Options{})
	if len(got.Root.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(got.Root.Children))
	}
	if want := `5 < 6 & "t"`; got.Root.Children[0].Text != want {
		t.Fatalf("got %q, want %q", got.Root.Children[0].Text, want)
	}
}

func TestRoundTripNamespaceWarning(t *testing.T) {
	src, err := Parse([]byte(`<r xmlns:a="urn:x" a:b="v"/>`))
	if err != nil {
		t.Fatalf("Parse: %s", err.Error())
	}

	var warnings []string
	opts := abx.Options{WarningCallback: func(category, message string) {
		warnings = append(warnings, category)
	}}
	var buf bytes.Buffer
	enc, _ := abx.NewEncoder(&buf)
	if err := Walk(src, enc, opts); err != nil {
		t.Fatalf("Walk: %s", err.Error())
	}
	if len(warnings) != 1 || warnings[0] != "namespace" {
		t.Fatalf("warnings = %v, want exactly one \"namespace\"", warnings)
	}
}
