package abx

import "testing"

func TestEscapeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain text", "plain text"},
		{`5 < 6 & "t"`, "5 &lt; 6 &amp; &quot;t&quot;"},
		{"it's", "it&apos;s"},
		{"a>b", "a&gt;b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := EscapeText(c.in); got != c.want {
			t.Errorf("EscapeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeUTF8ReplacesNUL(t *testing.T) {
	in := "a\x00b"
	got := sanitizeUTF8(in)
	if got == in {
		t.Fatalf("sanitizeUTF8 did not alter NUL-containing string")
	}
	for _, r := range got {
		if r == 0 {
			t.Fatalf("sanitizeUTF8(%q) still contains NUL: %q", in, got)
		}
	}
}

func TestSanitizeUTF8LeavesValidUnchanged(t *testing.T) {
	in := "héllo wörld"
	if got := sanitizeUTF8(in); got != in {
		t.Fatalf("sanitizeUTF8(%q) = %q, want unchanged", in, got)
	}
}

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	s := EncodeHex(b)
	if s != "deadbeef" {
		t.Fatalf("EncodeHex = %q, want %q", s, "deadbeef")
	}
	got, err := DecodeHex(s)
	if err != nil {
		t.Fatalf("DecodeHex: %s", err.Error())
	}
	if string(got) != string(b) {
		t.Fatalf("DecodeHex round trip mismatch: got % x, want % x", got, b)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	b := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	s := EncodeBase64(b)
	if s != "3q2+7w==" {
		t.Fatalf("EncodeBase64 = %q, want %q", s, "3q2+7w==")
	}
	got, err := DecodeBase64(s)
	if err != nil {
		t.Fatalf("DecodeBase64: %s", err.Error())
	}
	if string(got) != string(b) {
		t.Fatalf("DecodeBase64 round trip mismatch: got % x, want % x", got, b)
	}
}
