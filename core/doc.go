// Package core defines the binary log record at the heart of linelog.
//
// A Record captures one logging statement without formatting it: the
// level and call site are written as a fixed header when the record is
// initialised, and every argument appended afterwards is stored as a
// one-byte type tag followed by a fixed-width or length-prefixed payload.
// Text is produced later, once, when a handler replays the record.
//
// The record keeps a 256-byte footprint. Payload lives in an inline array
// until it overflows, at which point the record switches to a dynamically
// sized region it owns exclusively. Records are pooled via GetRecord and
// PutRecord, so the common case performs no heap allocation at all.
//
// Records are move-only. A record handed to a Handler belongs to that
// handler; the producer must not touch it again. MoveTo makes the
// transfer explicit and leaves the source empty.
//
// Strings are stored in one of two ways. String and CString copy the
// bytes into the record, because the caller's memory may be gone by the
// time the record is replayed on another goroutine. Literal stores only
// the address of an immortal string, such as an untyped constant or a
// value returned by Intern, and therefore copies nothing.
package core
