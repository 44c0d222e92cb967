package app

import (
	"github.com/poppolopoppo/syncproj/internal/base"
)

var LogProfiling = base.NewLogCategory("Profiling")

/***************************************
 * Profiling mode
 ***************************************/

type ProfilingMode byte

const (
	PROFILING_NONE ProfilingMode = iota
	PROFILING_BLOCK
	PROFILING_CPU
	PROFILING_GOROUTINE
	PROFILING_MEMORY
	PROFILING_MEMORYALLOC
	PROFILING_MEMORYHEAP
	PROFILING_MUTEX
	PROFILING_THREADCREATION
	PROFILING_TRACE
)

var profilingModeTags = base.EnumTagTable[ProfilingMode]{
	{"none", PROFILING_NONE},
	{"block", PROFILING_BLOCK},
	{"cpu", PROFILING_CPU},
	{"goroutine", PROFILING_GOROUTINE},
	{"mem", PROFILING_MEMORY},
	{"memalloc", PROFILING_MEMORYALLOC},
	{"memheap", PROFILING_MEMORYHEAP},
	{"mutex", PROFILING_MUTEX},
	{"threadcreation", PROFILING_THREADCREATION},
	{"trace", PROFILING_TRACE},
}

func ProfilingModes() []ProfilingMode { return profilingModeTags.Values() }

func (x ProfilingMode) String() string {
	return base.EnumString(x, profilingModeTags)
}
func (x *ProfilingMode) Set(in string) error {
	return base.ParseEnum(x, in, profilingModeTags)
}
