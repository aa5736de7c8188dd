package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Canonical message codec (§4.4). Every field is length-prefixed (a 4-byte
// big-endian length header followed by the raw bytes, or a fixed-width
// integer for the few fixed-size fields), so two replicas that encode the
// same value always produce identical bytes — no Go map is ever used, so
// there is no iteration-order hazard to rule out.

// Writer accumulates a canonical encoding.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty canonical-encoding writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// WriteBytes writes a length-prefixed byte slice.
func (w *Writer) WriteBytes(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf.Write(lenBuf[:])
	w.buf.Write(b)
}

// WriteString writes a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) { w.WriteBytes([]byte(s)) }

// WriteUint64 writes a fixed-width 8-byte big-endian integer.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt32 writes a fixed-width 4-byte big-endian integer.
func (w *Writer) WriteInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

// WriteInt writes an arbitrary-precision non-negative integer as a
// length-prefixed big-endian byte string (§3: amount is arbitrary-precision
// non-negative).
func (w *Writer) WriteInt(v math.Int) {
	if v.IsNil() {
		w.WriteBytes(nil)
		return
	}
	w.WriteBytes(v.BigInt().Bytes())
}

// WriteDec writes a LegacyDec by its canonical string form, length-prefixed.
func (w *Writer) WriteDec(v math.LegacyDec) {
	if v.IsNil() {
		w.WriteString("")
		return
	}
	w.WriteString(v.String())
}

// WriteCoin writes an sdk.Coin as denom then amount.
func (w *Writer) WriteCoin(c sdk.Coin) {
	w.WriteString(c.Denom)
	w.WriteInt(c.Amount)
}

// Reader consumes a canonical encoding produced by Writer.
type Reader struct {
	r *bytes.Reader
}

// NewReader wraps data for canonical decoding.
func NewReader(data []byte) *Reader { return &Reader{r: bytes.NewReader(data)} }

// ReadBytes reads a length-prefixed byte slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r.r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("read length prefix: %w", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return b, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadUint64 reads a fixed-width 8-byte big-endian integer.
func (r *Reader) ReadUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("read uint64: %w", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadInt32 reads a fixed-width 4-byte big-endian integer.
func (r *Reader) ReadInt32() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("read int32: %w", err)
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

// ReadInt reads an arbitrary-precision non-negative integer.
func (r *Reader) ReadInt() (math.Int, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return math.Int{}, err
	}
	if len(b) == 0 {
		return math.ZeroInt(), nil
	}
	return math.NewIntFromBigInt(new(big.Int).SetBytes(b)), nil
}

// ReadDec reads a LegacyDec from its canonical string form.
func (r *Reader) ReadDec() (math.LegacyDec, error) {
	s, err := r.ReadString()
	if err != nil {
		return math.LegacyDec{}, err
	}
	if s == "" {
		return math.LegacyDec{}, nil
	}
	return math.LegacyNewDecFromStr(s)
}

// ReadCoin reads an sdk.Coin.
func (r *Reader) ReadCoin() (sdk.Coin, error) {
	denom, err := r.ReadString()
	if err != nil {
		return sdk.Coin{}, err
	}
	amt, err := r.ReadInt()
	if err != nil {
		return sdk.Coin{}, err
	}
	return sdk.Coin{Denom: denom, Amount: amt}, nil
}
