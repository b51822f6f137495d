package abx

// Wire-format constants. See frameworks/base's BinaryXmlSerializer/
// BinaryXmlPullParser for the reference Android implementation this mirrors.
const (
	magicByte0 = 0x41 // 'A'
	magicByte1 = 0x42 // 'B'
	magicByte2 = 0x58 // 'X'
	magicByte3 = 0x00
)

var magic = [4]byte{magicByte0, magicByte1, magicByte2, magicByte3}

// command is the low nibble of a token byte.
type command uint8

const (
	cmdStartDocument command = 0
	cmdEndDocument   command = 1
	cmdStartTag      command = 2
	cmdEndTag        command = 3
	cmdText          command = 4
	cmdCDSect        command = 5
	cmdEntityRef     command = 6
	cmdIgnorableWS   command = 7
	cmdProcessingInstruction command = 8
	cmdComment       command = 9
	cmdDocdecl       command = 10
	cmdAttribute     command = 15

	cmdMask = 0x0F
)

// attrType is the high nibble of a token byte (already shifted down by 4,
// i.e. divided by 16, as used throughout the decoder/encoder).
type attrType uint8

const (
	typeNull           attrType = 1
	typeString         attrType = 2
	typeStringInterned attrType = 3
	typeBytesHex       attrType = 4
	typeBytesBase64    attrType = 5
	typeInt            attrType = 6
	typeIntHex         attrType = 7
	typeLong           attrType = 8
	typeLongHex        attrType = 9
	typeFloat          attrType = 10
	typeDouble         attrType = 11
	typeBooleanTrue    attrType = 12
	typeBooleanFalse   attrType = 13

	typeMask = 0xF0
)

// token packs a command and a type into the single byte ABX puts on the wire.
func token(c command, t attrType) byte {
	return byte(c&cmdMask) | byte(t)<<4
}

func splitToken(b byte) (command, attrType) {
	return command(b & cmdMask), attrType(b>>4) & 0x0F
}

const sentinelNewString = 0xFFFF

const maxPoolSize = 65535
const maxStringLen = 65535
