package core

import (
	"path/filepath"
	"runtime"
	"sync"
)

// CallSite identifies the statement that produced a record.
type CallSite struct {
	File     Literal
	Function Literal
	Line     uint32
}

// ShortFile returns the base name of the file.
func (c CallSite) ShortFile() string {
	return filepath.Base(string(c.File))
}

var (
	sitesMu sync.RWMutex
	sites   = make(map[uintptr]CallSite)
)

// Caller returns the call site skip frames above its caller; Caller(0)
// describes the function that called Caller. Lookups are cached per
// program counter, and file and function names are interned so that
// records may reference them by address.
func Caller(skip int) CallSite {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return CallSite{}
	}
	return SiteForPC(pcs[0])
}

// SiteForPC resolves a program counter as reported by runtime.Callers,
// through the same cache as Caller. A zero pc yields an empty CallSite.
func SiteForPC(pc uintptr) CallSite {
	if pc == 0 {
		return CallSite{}
	}

	sitesMu.RLock()
	site, ok := sites[pc]
	sitesMu.RUnlock()
	if ok {
		return site
	}

	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	site = CallSite{
		File:     Intern(frame.File),
		Function: Intern(frame.Function),
		Line:     uint32(frame.Line),
	}

	sitesMu.Lock()
	sites[pc] = site
	sitesMu.Unlock()
	return site
}
