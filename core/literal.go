package core

import (
	"strings"
	"sync"
)

// Literal is a string whose backing bytes outlive every record that
// refers to it. Appending a Literal stores only its address.
//
// Untyped string constants convert to Literal implicitly:
//
//	r.Literal("user logged in")
//
// Runtime strings need an explicit conversion, which is a promise that
// the bytes stay reachable. Use Intern when that promise cannot be kept
// any other way.
type Literal string

var (
	internMu sync.RWMutex
	interned = make(map[string]string)
)

// Intern returns a Literal equal to s whose storage is pinned for the life
// of the process. Repeated calls with equal strings return the same storage.
func Intern(s string) Literal {
	internMu.RLock()
	v, ok := interned[s]
	internMu.RUnlock()
	if ok {
		return Literal(v)
	}

	internMu.Lock()
	defer internMu.Unlock()
	if v, ok := interned[s]; ok {
		return Literal(v)
	}
	v = strings.Clone(s)
	interned[v] = v
	return Literal(v)
}
