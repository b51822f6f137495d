package abx

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// reader wraps an io.Reader with the typed big-endian primitives THE CORE
// needs, plus the read-side half of the interning pool. Modeled on
// stringtable.go's binary.Read-per-field style, but collected behind methods
// instead of repeating binary.Read call sites everywhere.
type reader struct {
	r        io.Reader
	pool     []string
	pending  *byte // 1-byte lookahead, per spec §9's design note
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (r *reader) readByte() (byte, error) {
	if r.pending != nil {
		b := *r.pending
		r.pending = nil
		return b, nil
	}
	var buf [1]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return buf[0], nil
}

// peekByte reads one byte without consuming it; a later readByte (or a
// second peekByte) returns the same byte.
func (r *reader) peekByte() (byte, error) {
	if r.pending != nil {
		return *r.pending, nil
	}
	var buf [1]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	r.pending = &buf[0]
	return buf[0], nil
}

func (r *reader) readU16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (r *reader) readI32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func (r *reader) readI64() (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func (r *reader) readF32() (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), nil
}

func (r *reader) readF64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, wrapEOF(err)
	}
	return buf, nil
}

func (r *reader) readUTF() (string, error) {
	n, err := r.readU16()
	if err != nil {
		return "", err
	}
	buf, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return sanitizeUTF8(string(buf)), nil
}

// readInternedUTF implements spec §3.1's interned-string reference: 0xFFFF
// introduces a new raw string and appends it to the pool; any other index k
// resolves to pool entry k.
func (r *reader) readInternedUTF() (string, error) {
	idx, err := r.readU16()
	if err != nil {
		return "", err
	}
	if idx == sentinelNewString {
		s, err := r.readUTF()
		if err != nil {
			return "", err
		}
		r.pool = append(r.pool, s)
		return s, nil
	}
	if int(idx) >= len(r.pool) {
		return "", fmt.Errorf("%w: index %d, pool size %d", ErrBadInternIndex, idx, len(r.pool))
	}
	return r.pool[idx], nil
}

func wrapEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %s", ErrUnexpectedEOF, err.Error())
	}
	return err
}

// writer is the dual of reader: typed big-endian primitives plus the
// write-side interning pool (map + insertion-order list, per spec §9's
// design note).
type writer struct {
	w         io.Writer
	poolIndex map[string]uint16
	poolOrder []string
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w, poolIndex: make(map[string]uint16)}
}

func (w *writer) writeByte(b byte) error {
	_, err := w.w.Write([]byte{b})
	return err
}

func (w *writer) writeU16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.w.Write(buf[:])
	return err
}

func (w *writer) writeI32(v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.w.Write(buf[:])
	return err
}

func (w *writer) writeI64(v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.w.Write(buf[:])
	return err
}

func (w *writer) writeF32(v float32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.w.Write(buf[:])
	return err
}

func (w *writer) writeF64(v float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.w.Write(buf[:])
	return err
}

func (w *writer) writeRawBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

func (w *writer) writeUTF(s string) error {
	b := []byte(s)
	if len(b) > maxStringLen {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	if err := w.writeU16(uint16(len(b))); err != nil {
		return err
	}
	return w.writeRawBytes(b)
}

// writeInternedUTF writes the sentinel + raw string on first sight of s, or
// the pool index on subsequent occurrences, per spec §3.1/§9.
func (w *writer) writeInternedUTF(s string) error {
	if idx, ok := w.poolIndex[s]; ok {
		return w.writeU16(idx)
	}
	if len(w.poolOrder) >= maxPoolSize {
		return fmt.Errorf("%w: adding %q", ErrPoolOverflow, s)
	}
	if err := w.writeU16(sentinelNewString); err != nil {
		return err
	}
	if err := w.writeUTF(s); err != nil {
		return err
	}
	idx := uint16(len(w.poolOrder))
	w.poolIndex[s] = idx
	w.poolOrder = append(w.poolOrder, s)
	return nil
}
