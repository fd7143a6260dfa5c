// Package sloghandler provides an adapter from handler.Handler to
// log/slog.Handler, so code written against the standard library's
// structured logging can feed the record pipeline.
//
// The slog message is copied into the record, followed by one
// " key=value" entry per attribute. Attributes keep their type in the
// record: integers, floats and booleans are stored in binary and only
// rendered when the record is replayed. Attributes of nested groups are
// flattened into dotted keys ("auth.user_id=123").
package sloghandler
