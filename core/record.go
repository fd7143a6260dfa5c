package core

import (
	"encoding/binary"
	"time"
	"unsafe"
)

const recordSize = 256

// InlineCapacity is the number of bytes a Record stores before it
// promotes itself to a dynamic region.
const InlineCapacity = recordSize - int(unsafe.Sizeof(int(0))) - int(unsafe.Sizeof([]byte(nil)))

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// header layout: the two string pointers come first so they sit on
// pointer-aligned offsets of the (aligned) region.
const (
	offFilePtr     = 0
	offFunctionPtr = offFilePtr + ptrSize
	offTime        = offFunctionPtr + ptrSize
	offFileLen     = offTime + 8
	offFunctionLen = offFileLen + 4
	offLine        = offFunctionLen + 4
	offLevel       = offLine + 4
	headerSize     = offLevel + 1

	strRefSize = ptrSize + 4
)

// noCopy lets go vet's copylocks check report a Record copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Record is one captured logging statement in binary form.
//
// A Record must not be copied by value once it holds data; use MoveTo to
// transfer it or CopyTo to duplicate it. The zero value is an empty record
// ready for use.
type Record struct {
	_      noCopy
	used   int
	heap   []byte // nil while inline is active
	inline [InlineCapacity]byte
}

// NewRecord allocates a record with its header set.
func NewRecord(level Level, file, function Literal, line uint32) *Record {
	r := new(Record)
	r.Init(level, file, function, line)
	return r
}

// Init empties r and writes the header for a new statement.
func (r *Record) Init(level Level, file, function Literal, line uint32) *Record {
	r.Reset()
	r.writeHeader(level, CoarseNow().UnixNano(), file, function, line)
	return r
}

func (r *Record) writeHeader(level Level, nanos int64, file, function Literal, line uint32) {
	b := r.buf()
	putStringPtr(b, offFilePtr, string(file))
	putStringPtr(b, offFunctionPtr, string(function))
	binary.LittleEndian.PutUint64(b[offTime:], uint64(nanos))
	binary.LittleEndian.PutUint32(b[offFileLen:], uint32(len(file)))
	binary.LittleEndian.PutUint32(b[offFunctionLen:], uint32(len(function)))
	binary.LittleEndian.PutUint32(b[offLine:], line)
	b[offLevel] = byte(level)
	r.used = headerSize
}

// Reset empties the record and releases its dynamic region.
func (r *Record) Reset() {
	r.used = 0
	r.heap = nil
}

// buf returns the active region.
func (r *Record) buf() []byte {
	if r.heap != nil {
		return r.heap
	}
	return r.inline[:]
}

// ensure guarantees n free bytes past used in the active region.
func (r *Record) ensure(n int) {
	size := len(r.buf())
	if r.used+n <= size {
		return
	}
	grown := make([]byte, max(2*size, r.used+n))
	copy(grown, r.buf()[:r.used])
	r.heap = grown
}

// reserve makes room for n bytes, advances used, and returns the window
// to fill. A record that was never initialised gets a blank header first.
func (r *Record) reserve(n int) []byte {
	if r.used < headerSize {
		r.writeHeader(DebugLevel, 0, "", "", 0)
	}
	r.ensure(n)
	start := r.used
	r.used += n
	return r.buf()[start:r.used:r.used]
}

// Grow guarantees room for n more bytes without another allocation.
func (r *Record) Grow(n int) {
	if n > 0 {
		r.ensure(n)
	}
}

// Len returns the number of bytes in use, header included.
func (r *Record) Len() int { return r.used }

// Cap returns the capacity of the active region.
func (r *Record) Cap() int { return len(r.buf()) }

// Inline reports whether the record still uses its inline region.
func (r *Record) Inline() bool { return r.heap == nil }

// Level returns the level the record was initialised with.
func (r *Record) Level() Level {
	if r.used < headerSize {
		return DebugLevel
	}
	return Level(r.buf()[offLevel])
}

// Time returns the capture time, or the zero time if none was recorded.
func (r *Record) Time() time.Time {
	if r.used < headerSize {
		return time.Time{}
	}
	nanos := int64(binary.LittleEndian.Uint64(r.buf()[offTime:]))
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// SetTime overrides the capture time, for records built from events that
// carry their own timestamp.
func (r *Record) SetTime(t time.Time) *Record {
	if r == nil {
		return nil
	}
	if r.used < headerSize {
		r.writeHeader(DebugLevel, 0, "", "", 0)
	}
	binary.LittleEndian.PutUint64(r.buf()[offTime:], uint64(t.UnixNano()))
	return r
}

// File returns the source file of the call site.
func (r *Record) File() string {
	if r.used < headerSize {
		return ""
	}
	b := r.buf()
	return loadString(b, offFilePtr, binary.LittleEndian.Uint32(b[offFileLen:]))
}

// Function returns the function name of the call site.
func (r *Record) Function() string {
	if r.used < headerSize {
		return ""
	}
	b := r.buf()
	return loadString(b, offFunctionPtr, binary.LittleEndian.Uint32(b[offFunctionLen:]))
}

// Line returns the source line of the call site.
func (r *Record) Line() uint32 {
	if r.used < headerSize {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf()[offLine:])
}

// CallSite returns file, function and line as one value.
func (r *Record) CallSite() CallSite {
	return CallSite{
		File:     Literal(r.File()),
		Function: Literal(r.Function()),
		Line:     r.Line(),
	}
}

// MoveTo transfers the contents of r, including ownership of its dynamic
// region, into dst and leaves r empty.
func (r *Record) MoveTo(dst *Record) {
	if r == dst {
		return
	}
	dst.used = r.used
	if r.heap != nil {
		dst.heap = r.heap
	} else {
		dst.heap = nil
		copy(dst.inline[:r.used], r.inline[:r.used])
	}
	r.Reset()
}

// CopyTo makes dst an independent copy of r. Copied strings are duplicated
// with the rest of the payload; literals keep pointing at the same
// immortal storage.
func (r *Record) CopyTo(dst *Record) {
	if r == dst {
		return
	}
	dst.Reset()
	if r.heap != nil {
		dst.heap = make([]byte, len(r.heap))
		copy(dst.heap, r.heap[:r.used])
	} else {
		copy(dst.inline[:r.used], r.inline[:r.used])
	}
	dst.used = r.used
}

// refPad returns the padding that puts a pointer written at pos on a
// pointer-aligned offset. Both regions start pointer-aligned.
func refPad(pos int) int {
	return -pos & (ptrSize - 1)
}

// putStringPtr stores the data pointer of s in b at off, which must be
// pointer-aligned. The slot is cleared byte-wise first so the write
// barrier never sees stale payload bytes as the previous pointer.
func putStringPtr(b []byte, off int, s string) {
	clear(b[off : off+ptrSize])
	if len(s) == 0 {
		return
	}
	*(*unsafe.Pointer)(unsafe.Pointer(&b[off])) = unsafe.Pointer(unsafe.StringData(s))
}

// loadString rebuilds the string whose pointer is stored at off.
func loadString(b []byte, off int, n uint32) string {
	if n == 0 {
		return ""
	}
	p := *(*unsafe.Pointer)(unsafe.Pointer(&b[off]))
	return unsafe.String((*byte)(p), int(n))
}

// putStringRef writes a pointer-aligned [ptr][u32 len] reference at the
// start of b.
func putStringRef(b []byte, s string) {
	putStringPtr(b, 0, s)
	binary.LittleEndian.PutUint32(b[ptrSize:], uint32(len(s)))
}

func loadStringRef(b []byte) string {
	return loadString(b, 0, binary.LittleEndian.Uint32(b[ptrSize:]))
}
