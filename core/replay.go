package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"
)

// CorruptError reports a type tag the decoder does not know. Records are
// produced in-process, so it always means a bug or memory corruption;
// replay panics with it rather than skipping data.
type CorruptError struct {
	Tag    byte
	Offset int
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("core: unknown type tag 0x%02x at offset %d", e.Tag, e.Offset)
}

// AppendMessage appends the text of every payload entry, in the order they
// were appended, to dst. Nothing is inserted between entries.
//
// Replay does not modify the record, so it may run more than once.
func (r *Record) AppendMessage(dst []byte) []byte {
	if r.used <= headerSize {
		return dst
	}
	b := r.buf()[:r.used]
	for pos := headerSize; pos < len(b); {
		tag := typeTag(b[pos])
		pos++
		switch tag {
		case tagChar:
			dst = append(dst, b[pos])
			pos++
		case tagInt32:
			dst = strconv.AppendInt(dst, int64(int32(binary.LittleEndian.Uint32(b[pos:]))), 10)
			pos += 4
		case tagUint32:
			dst = strconv.AppendUint(dst, uint64(binary.LittleEndian.Uint32(b[pos:])), 10)
			pos += 4
		case tagInt64:
			dst = strconv.AppendInt(dst, int64(binary.LittleEndian.Uint64(b[pos:])), 10)
			pos += 8
		case tagUint64:
			dst = strconv.AppendUint(dst, binary.LittleEndian.Uint64(b[pos:]), 10)
			pos += 8
		case tagFloat64:
			dst = strconv.AppendFloat(dst, math.Float64frombits(binary.LittleEndian.Uint64(b[pos:])), 'f', -1, 64)
			pos += 8
		case tagString, tagCString:
			n := int(binary.LittleEndian.Uint32(b[pos:]))
			pos += 4
			dst = append(dst, b[pos:pos+n]...)
			pos += n
		case tagLiteral:
			pos += refPad(pos)
			dst = append(dst, loadStringRef(b[pos:])...)
			pos += strRefSize
		default:
			panic(&CorruptError{Tag: byte(tag), Offset: pos - 1})
		}
	}
	return dst
}

var replayPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

// Replay writes the message text to w in a single Write call.
func (r *Record) Replay(w io.Writer) error {
	bp := replayPool.Get().(*[]byte)
	b := r.AppendMessage((*bp)[:0])
	_, err := w.Write(b)
	if cap(b) <= 64*1024 {
		*bp = b
		replayPool.Put(bp)
	}
	return err
}

// Message returns the message text as a string.
func (r *Record) Message() string {
	var scratch [128]byte
	return string(r.AppendMessage(scratch[:0]))
}
