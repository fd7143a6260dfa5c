package core

import "sync"

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return new(Record)
	},
}

// GetRecord retrieves a Record from the pool with its header set for the
// given level and call site.
func GetRecord(level Level, site CallSite) *Record {
	r := recordPool.Get().(*Record)
	r.Init(level, site.File, site.Function, site.Line)
	return r
}

// PutRecord empties r and returns it to the pool. r must not be used
// afterwards.
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	r.Reset()
	recordPool.Put(r)
}

// CloneRecord returns a pooled deep copy of r, for handing the same
// statement to more than one consumer.
func CloneRecord(r *Record) *Record {
	c := recordPool.Get().(*Record)
	r.CopyTo(c)
	return c
}
