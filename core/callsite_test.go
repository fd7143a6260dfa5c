package core

import (
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaller(t *testing.T) {
	site := Caller(0)

	assert.Equal(t, "callsite_test.go", site.ShortFile())
	assert.True(t, strings.HasSuffix(string(site.Function), ".TestCaller"), site.Function)
	assert.NotZero(t, site.Line)
}

func callerOfHelper() CallSite { return Caller(1) }

func TestCaller_Skip(t *testing.T) {
	site := callerOfHelper()
	assert.True(t, strings.HasSuffix(string(site.Function), ".TestCaller_Skip"), site.Function)
}

func TestCaller_Cached(t *testing.T) {
	var sites [3]CallSite
	for i := range sites {
		sites[i] = Caller(0)
	}
	require.Equal(t, sites[0], sites[1])
	assert.Equal(t, unsafe.StringData(string(sites[0].File)), unsafe.StringData(string(sites[2].File)))
}

func TestIntern(t *testing.T) {
	a := Intern(strings.Repeat("ab", 3))
	b := Intern(string([]byte("ababab")))

	assert.Equal(t, Literal("ababab"), a)
	assert.Equal(t, unsafe.StringData(string(a)), unsafe.StringData(string(b)))
}

func TestIntern_UsableAsLiteral(t *testing.T) {
	dynamic := strings.ToUpper("runtime value")
	r := NewRecord(InfoLevel, "t.go", "intern", 1).Literal(Intern(dynamic))
	dynamic = ""
	assert.Equal(t, "RUNTIME VALUE", r.Message())
}

func TestRecordHeaderFromCaller(t *testing.T) {
	site := Caller(0)
	r := GetRecord(InfoLevel, site)
	defer PutRecord(r)

	assert.Equal(t, string(site.File), r.File())
	assert.Equal(t, string(site.Function), r.Function())
	assert.Equal(t, site.Line, r.Line())
}

func TestSiteForPC(t *testing.T) {
	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])

	site := SiteForPC(pcs[0])
	assert.Equal(t, "callsite_test.go", site.ShortFile())
	assert.True(t, strings.HasSuffix(string(site.Function), ".TestSiteForPC"), site.Function)
	assert.Equal(t, site, SiteForPC(pcs[0]))
	assert.Equal(t, CallSite{}, SiteForPC(0))
}
