package core

import (
	"bytes"
	"encoding/binary"
	"math"
)

// typeTag is the one-byte discriminator in front of every payload entry.
type typeTag uint8

const (
	tagChar typeTag = iota + 1
	tagInt32
	tagUint32
	tagInt64
	tagUint64
	tagFloat64
	tagString
	tagCString
	tagLiteral
)

// Every append method is safe on a nil *Record and returns nil, which lets
// a filtered log statement run its chain without doing any work.

// Char appends a single byte, replayed as that character.
func (r *Record) Char(c byte) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(2)
	b[0] = byte(tagChar)
	b[1] = c
	return r
}

// Int32 appends a signed 32-bit integer.
func (r *Record) Int32(v int32) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(1 + 4)
	b[0] = byte(tagInt32)
	binary.LittleEndian.PutUint32(b[1:], uint32(v))
	return r
}

// Uint32 appends an unsigned 32-bit integer.
func (r *Record) Uint32(v uint32) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(1 + 4)
	b[0] = byte(tagUint32)
	binary.LittleEndian.PutUint32(b[1:], v)
	return r
}

// Int64 appends a signed 64-bit integer.
func (r *Record) Int64(v int64) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(1 + 8)
	b[0] = byte(tagInt64)
	binary.LittleEndian.PutUint64(b[1:], uint64(v))
	return r
}

// Uint64 appends an unsigned 64-bit integer.
func (r *Record) Uint64(v uint64) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(1 + 8)
	b[0] = byte(tagUint64)
	binary.LittleEndian.PutUint64(b[1:], v)
	return r
}

// Int appends an int as a 64-bit integer.
func (r *Record) Int(v int) *Record {
	return r.Int64(int64(v))
}

// Float64 appends a double-precision float.
func (r *Record) Float64(v float64) *Record {
	if r == nil {
		return nil
	}
	b := r.reserve(1 + 8)
	b[0] = byte(tagFloat64)
	binary.LittleEndian.PutUint64(b[1:], math.Float64bits(v))
	return r
}

// String appends a copy of s.
func (r *Record) String(s string) *Record {
	if r == nil {
		return nil
	}
	if uint64(len(s)) > math.MaxUint32 {
		s = s[:math.MaxUint32]
	}
	b := r.reserve(1 + 4 + len(s))
	b[0] = byte(tagString)
	binary.LittleEndian.PutUint32(b[1:], uint32(len(s)))
	copy(b[5:], s)
	return r
}

// CString appends a copy of the C-style string held in p: the bytes up to
// the first NUL, or all of p if it has none. The caller may reuse p as
// soon as CString returns.
func (r *Record) CString(p []byte) *Record {
	if r == nil {
		return nil
	}
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	if uint64(len(p)) > math.MaxUint32 {
		p = p[:math.MaxUint32]
	}
	b := r.reserve(1 + 4 + len(p))
	b[0] = byte(tagCString)
	binary.LittleEndian.PutUint32(b[1:], uint32(len(p)))
	copy(b[5:], p)
	return r
}

// Literal appends the address of s without copying its bytes. s must stay
// valid until the record has been replayed; see Literal. The reference is
// padded to a pointer-aligned offset.
func (r *Record) Literal(s Literal) *Record {
	if r == nil {
		return nil
	}
	if r.used < headerSize {
		r.writeHeader(DebugLevel, 0, "", "", 0)
	}
	pad := refPad(r.used + 1)
	b := r.reserve(1 + pad + strRefSize)
	b[0] = byte(tagLiteral)
	putStringRef(b[1+pad:], string(s))
	return r
}

// Bool appends "true" or "false" as a literal.
func (r *Record) Bool(v bool) *Record {
	if v {
		return r.Literal("true")
	}
	return r.Literal("false")
}
