package abx

import (
	"regexp"
	"strconv"
	"strings"
)

// Inferred is the result of inferring an ABX attribute type for an XML
// attribute string value (spec §4.5): which Encoder method to call, and the
// parsed payload to call it with.
type Inferred struct {
	Kind    InferredKind
	Bool    bool
	Int32   int32
	Int64   int64
	Float32 float32
	String  string
}

type InferredKind int

const (
	InferredBool InferredKind = iota
	InferredIntHex
	InferredLongHex
	InferredInt
	InferredLong
	InferredFloat
	InferredInternedString
	InferredString
)

var (
	hexIntRe     = regexp.MustCompile(`^-?0[xX][0-9a-fA-F]+$`)
	decimalIntRe = regexp.MustCompile(`^-?[0-9]+$`)
	floatRe      = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

// decimalIntMaxLen is spec §4.5's safety threshold: decimal strings 15
// characters or longer are left alone rather than risk truncating a
// certificate serial number or similar long digit string into an int/long.
const decimalIntMaxLen = 15

const internedStringMaxLen = 50

// InferAttribute applies the ordered predicates of spec §4.5: the first
// match wins, and a predicate that matches syntactically but fails to parse
// falls through to the next rule.
func InferAttribute(value string) Inferred {
	switch value {
	case "true":
		return Inferred{Kind: InferredBool, Bool: true}
	case "false":
		return Inferred{Kind: InferredBool, Bool: false}
	}

	if hexIntRe.MatchString(value) {
		if inf, ok := inferHexInt(value); ok {
			return inf
		}
	}

	if decimalIntRe.MatchString(value) && len(value) < decimalIntMaxLen {
		if inf, ok := inferDecimalInt(value); ok {
			return inf
		}
	}

	if floatRe.MatchString(value) {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return Inferred{Kind: InferredFloat, Float32: float32(f)}
		}
	}

	if len(value) < internedStringMaxLen && !strings.ContainsAny(value, " -") {
		return Inferred{Kind: InferredInternedString, String: value}
	}

	return Inferred{Kind: InferredString, String: value}
}

// inferHexInt counts the unprefixed hex digits to decide INT_HEX vs
// LONG_HEX (spec §4.5: "<= 8 digits -> INT_HEX; else LONG_HEX").
func inferHexInt(value string) (Inferred, bool) {
	neg := strings.HasPrefix(value, "-")
	s := value
	if neg {
		s = s[1:]
	}
	digits := s[2:] // strip "0x"/"0X"

	if len(digits) <= 8 {
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return Inferred{}, false
		}
		n := int32(uint32(v))
		if neg {
			n = -n
		}
		return Inferred{Kind: InferredIntHex, Int32: n}, true
	}

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return Inferred{}, false
	}
	n := int64(v)
	if neg {
		n = -n
	}
	return Inferred{Kind: InferredLongHex, Int64: n}, true
}

func inferDecimalInt(value string) (Inferred, bool) {
	if v, err := strconv.ParseInt(value, 10, 32); err == nil {
		return Inferred{Kind: InferredInt, Int32: int32(v)}, true
	}
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return Inferred{Kind: InferredLong, Int64: v}, true
	}
	return Inferred{}, false
}

// Apply calls the Encoder attribute method matching inf's Kind.
func (inf Inferred) Apply(enc *Encoder, name string) error {
	switch inf.Kind {
	case InferredBool:
		return enc.AttributeBool(name, inf.Bool)
	case InferredIntHex:
		return enc.AttributeIntHex(name, inf.Int32)
	case InferredLongHex:
		return enc.AttributeLongHex(name, inf.Int64)
	case InferredInt:
		return enc.AttributeInt(name, inf.Int32)
	case InferredLong:
		return enc.AttributeLong(name, inf.Int64)
	case InferredFloat:
		return enc.AttributeFloat(name, inf.Float32)
	case InferredInternedString:
		return enc.AttributeInterned(name, inf.String)
	default:
		return enc.Attribute(name, inf.String)
	}
}
