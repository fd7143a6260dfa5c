// Package multihandler provides a fan-out handler that dispatches records
// to multiple child handlers.
//
// A record has a single owner, so the fan-out hands each child except the
// last a pooled copy made with core.CloneRecord. Copied strings are
// duplicated; literals are shared, since they outlive every record.
// Child errors are combined with go.uber.org/multierr.
package multihandler
